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

// nativeAPIBase is the native-model grounded search endpoint. Declared as a
// var so tests can substitute an httptest server.
var nativeAPIBase = "https://search.gateway.mesh-intelligence.com/v1/grounding"

// NativeAdapter queries the text-generation provider's own grounded web
// search. First-party, so it carries the highest quota of any backend.
type NativeAdapter struct {
	Client *http.Client
	APIKey string
}

// Name returns the backend identifier.
func (a *NativeAdapter) Name() string { return Native }

// Execute runs one grounded search call. A missing API key is the one truly
// exceptional condition: it fails immediately rather than producing a
// misleading empty response.
func (a *NativeAdapter) Execute(ctx context.Context, query string, cfg types.ProviderConfig) ([]types.SearchResult, error) {
	if a.APIKey == "" {
		return nil, fmt.Errorf("native search: missing API key")
	}

	params := url.Values{
		"q":     {query},
		"limit": {fmt.Sprintf("%d", capResults(cfg.MaxResults))},
	}
	if cfg.Language != "" {
		params.Set("lang", cfg.Language)
	}
	if cfg.Region != "" {
		params.Set("region", cfg.Region)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, nativeAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Authorization", "Bearer "+a.APIKey)

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("native search request: %w", err)
	}
	defer httputil.DrainClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("native search returned HTTP %d", resp.StatusCode)
	}

	var nr nativeResponse
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		return nil, fmt.Errorf("parsing native search response: %w", err)
	}

	total := len(nr.Sources)
	results := make([]types.SearchResult, 0, total)
	for i, src := range nr.Sources {
		r := types.SearchResult{
			Title:       src.Title,
			URL:         src.URL,
			Snippet:     src.Snippet,
			Source:      Native,
			ContentType: types.ContentWebsite,
		}
		if src.PublishedDate != "" {
			if t, parseErr := time.Parse("2006-01-02", src.PublishedDate); parseErr == nil {
				r.PublishedDate = t
			}
		}
		if src.Score > 0 {
			r.RelevanceScore = src.Score
		} else {
			r.RelevanceScore = positionScore(i, total)
		}
		results = append(results, r)
	}
	return finalize(results, cfg), nil
}

// Native grounded-search JSON structures.
type nativeResponse struct {
	Sources []nativeSource `json:"sources"`
}

type nativeSource struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Snippet       string  `json:"snippet"`
	PublishedDate string  `json:"published_date"`
	Score         float64 `json:"score"`
}
