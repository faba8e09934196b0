// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pdiddy/scholar-search/internal/httputil"
	"github.com/pdiddy/scholar-search/pkg/types"
)

// onlineAPIBase is the citation endpoint of the online-suffix model family.
// Declared as a var so tests can substitute an httptest server.
var onlineAPIBase = "https://api.perplexity.ai/search"

// OnlineAdapter queries the search index behind "-online" model variants.
// The endpoint returns the citations such a model would ground on.
type OnlineAdapter struct {
	Client *http.Client
	APIKey string
}

// Name returns the backend identifier.
func (a *OnlineAdapter) Name() string { return Online }

// Execute runs one citation-search call.
func (a *OnlineAdapter) Execute(ctx context.Context, query string, cfg types.ProviderConfig) ([]types.SearchResult, error) {
	if a.APIKey == "" {
		return nil, fmt.Errorf("online search: missing API key")
	}

	body, err := json.Marshal(onlineRequest{
		Query:      query,
		MaxResults: capResults(cfg.MaxResults),
		Language:   cfg.Language,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, onlineAPIBase, httputil.JSONBody(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.APIKey)

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("online search request: %w", err)
	}
	defer httputil.DrainClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("online search returned HTTP %d", resp.StatusCode)
	}

	var or onlineResponse
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		return nil, fmt.Errorf("parsing online search response: %w", err)
	}

	total := len(or.Citations)
	results := make([]types.SearchResult, 0, total)
	for i, c := range or.Citations {
		r := types.SearchResult{
			Title:          c.Title,
			URL:            c.URL,
			Snippet:        c.Excerpt,
			Source:         Online,
			ContentType:    types.ContentWebsite,
			RelevanceScore: positionScore(i, total),
		}
		if c.Date != "" {
			if t, parseErr := time.Parse("2006-01-02", c.Date); parseErr == nil {
				r.PublishedDate = t
			}
		}
		results = append(results, r)
	}
	return finalize(results, cfg), nil
}

// Online-suffix search JSON structures.
type onlineRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
	Language   string `json:"language,omitempty"`
}

type onlineResponse struct {
	Citations []onlineCitation `json:"citations"`
}

type onlineCitation struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Excerpt string `json:"excerpt"`
	Date    string `json:"date"`
}
