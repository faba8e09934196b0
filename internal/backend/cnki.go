// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package backend

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/scholar-search/internal/httputil"
	"github.com/pdiddy/scholar-search/pkg/types"
)

// cnkiAPIBase is the CNKI literature search endpoint. Declared as a var so
// tests can substitute an httptest server.
var cnkiAPIBase = "https://api.cnki.net/openapi/literature"

// CNKIAdapter queries the CNKI national academic repository, which serves
// an XML feed of journal and dissertation records.
type CNKIAdapter struct {
	Client *http.Client
	APIKey string
}

// Name returns the backend identifier.
func (a *CNKIAdapter) Name() string { return CNKI }

// Execute runs one repository search.
func (a *CNKIAdapter) Execute(ctx context.Context, query string, cfg types.ProviderConfig) ([]types.SearchResult, error) {
	params := url.Values{
		"q":    {query},
		"rows": {fmt.Sprintf("%d", capResults(cfg.MaxResults))},
	}
	if a.APIKey != "" {
		params.Set("apikey", a.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cnkiAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("CNKI request: %w", err)
	}
	defer httputil.DrainClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("CNKI returned HTTP %d", resp.StatusCode)
	}

	var feed cnkiFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing CNKI response: %w", err)
	}

	total := len(feed.Records)
	results := make([]types.SearchResult, 0, total)
	for i, rec := range feed.Records {
		r := types.SearchResult{
			Title:          strings.TrimSpace(rec.Title),
			URL:            strings.TrimSpace(rec.Link),
			Snippet:        strings.TrimSpace(rec.Abstract),
			Author:         strings.TrimSpace(rec.Author),
			Source:         CNKI,
			DOI:            strings.TrimSpace(rec.DOI),
			ContentType:    types.ContentPaper,
			Language:       "zh",
			AccessType:     types.AccessSubscription,
			RelevanceScore: positionScore(i, total),
		}
		if rec.Cited > 0 {
			cited := rec.Cited
			r.CitationCount = &cited
		}
		if t, parseErr := time.Parse("2006-01-02", rec.PubDate); parseErr == nil {
			r.PublishedDate = t
		}
		results = append(results, r)
	}
	return finalize(results, cfg), nil
}

// CNKI XML feed structures.
type cnkiFeed struct {
	XMLName xml.Name     `xml:"response"`
	Records []cnkiRecord `xml:"records>record"`
}

type cnkiRecord struct {
	Title    string `xml:"title"`
	Link     string `xml:"link"`
	Abstract string `xml:"abstract"`
	Author   string `xml:"author"`
	DOI      string `xml:"doi"`
	PubDate  string `xml:"pubdate"`
	Cited    int    `xml:"cited"`
}
