// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/scholar-search/internal/httputil"
	"github.com/pdiddy/scholar-search/pkg/types"
)

// metasearchAPIBase is the metasearch instance queried by the fallback
// backend. Declared as a var so tests can substitute an httptest server.
var metasearchAPIBase = "https://searx.mesh-intelligence.com/search"

// MetasearchAdapter queries a SearXNG-format metasearch instance. This is
// the fixed fallback backend: it needs no credential and aggregates public
// engines, trading precision for availability.
type MetasearchAdapter struct {
	Client *http.Client
	APIKey string
}

// Name returns the backend identifier.
func (a *MetasearchAdapter) Name() string { return Metasearch }

// Execute runs one metasearch call.
func (a *MetasearchAdapter) Execute(ctx context.Context, query string, cfg types.ProviderConfig) ([]types.SearchResult, error) {
	params := url.Values{
		"q":          {query},
		"format":     {"json"},
		"categories": {"general"},
		"safesearch": {"1"},
	}
	if cfg.Language != "" {
		params.Set("language", cfg.Language)
	} else {
		params.Set("language", "auto")
	}
	if a.APIKey != "" {
		params.Set("apikey", a.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, metasearchAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("metasearch request: %w", err)
	}
	defer httputil.DrainClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metasearch returned HTTP %d", resp.StatusCode)
	}

	var mr metasearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("parsing metasearch response: %w", err)
	}

	total := len(mr.Results)
	results := make([]types.SearchResult, 0, total)
	for i, res := range mr.Results {
		r := types.SearchResult{
			Title:          res.Title,
			URL:            res.URL,
			Snippet:        res.Content, // may carry highlight markup; finalize strips it
			Source:         Metasearch,
			ThumbnailURL:   res.Thumbnail,
			RelevanceScore: positionScore(i, total),
			ContentType:    contentTypeFromURL(res.URL),
		}
		results = append(results, r)
	}
	return finalize(results, cfg), nil
}

// contentTypeFromURL guesses a coarse content type from the URL path.
func contentTypeFromURL(rawURL string) types.ContentType {
	u, err := url.Parse(rawURL)
	if err != nil {
		return types.ContentWebsite
	}
	if strings.HasSuffix(strings.ToLower(u.Path), ".pdf") {
		return types.ContentPDF
	}
	return types.ContentWebsite
}

// SearXNG-format JSON structures.
type metasearchResponse struct {
	Query   string             `json:"query"`
	Results []metasearchResult `json:"results"`
}

type metasearchResult struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Content   string `json:"content"`
	Thumbnail string `json:"thumbnail"`
}
