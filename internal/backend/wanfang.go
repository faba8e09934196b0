// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pdiddy/scholar-search/internal/httputil"
	"github.com/pdiddy/scholar-search/pkg/types"
)

// wanfangAPIBase is the Wanfang Data search endpoint. Declared as a var so
// tests can substitute an httptest server.
var wanfangAPIBase = "https://api.wanfangdata.com.cn/search/paper"

// WanfangAdapter queries the Wanfang Data national academic repository.
type WanfangAdapter struct {
	Client *http.Client
	APIKey string
}

// Name returns the backend identifier.
func (a *WanfangAdapter) Name() string { return Wanfang }

// Execute runs one repository search.
func (a *WanfangAdapter) Execute(ctx context.Context, query string, cfg types.ProviderConfig) ([]types.SearchResult, error) {
	params := url.Values{
		"query":    {query},
		"pageSize": {fmt.Sprintf("%d", capResults(cfg.MaxResults))},
		"page":     {"1"},
	}
	if a.APIKey != "" {
		params.Set("key", a.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, wanfangAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Wanfang request: %w", err)
	}
	defer httputil.DrainClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Wanfang returned HTTP %d", resp.StatusCode)
	}

	var wr wanfangResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return nil, fmt.Errorf("parsing Wanfang response: %w", err)
	}

	total := len(wr.Papers)
	results := make([]types.SearchResult, 0, total)
	for i, p := range wr.Papers {
		r := types.SearchResult{
			Title:          p.Title,
			URL:            p.URL,
			Snippet:        p.Abstract,
			Source:         Wanfang,
			DOI:            p.DOI,
			ContentType:    types.ContentPaper,
			Language:       "zh",
			RelevanceScore: positionScore(i, total),
		}
		if len(p.Authors) > 0 {
			r.Author = p.Authors[0]
		}
		if p.CitedCount != nil {
			r.CitationCount = p.CitedCount
		}
		if p.OpenAccess {
			r.AccessType = types.AccessOpen
		} else {
			r.AccessType = types.AccessSubscription
		}
		if p.PublishDate != "" {
			if t, parseErr := time.Parse("2006-01-02", p.PublishDate); parseErr == nil {
				r.PublishedDate = t
			}
		}
		results = append(results, r)
	}
	return finalize(results, cfg), nil
}

// Wanfang JSON structures.
type wanfangResponse struct {
	Total  int            `json:"total"`
	Papers []wanfangPaper `json:"papers"`
}

type wanfangPaper struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Abstract    string   `json:"abstract"`
	Authors     []string `json:"authors"`
	DOI         string   `json:"doi"`
	PublishDate string   `json:"publishDate"`
	CitedCount  *int     `json:"citedCount"`
	OpenAccess  bool     `json:"openAccess"`
}
