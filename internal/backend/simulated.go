// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package backend

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/scholar-search/pkg/types"
)

// SimulatedAdapter fabricates deterministic, topically-relevant placeholder
// results keyed off the query text. It exists so the tool-calling flow never
// stalls or empties out during development or a backend outage. Results are
// always labeled with Source "simulated" so callers and tests can tell them
// apart from live data; whether the adapter is registered at all is a
// deployment choice (providers.enable_simulated).
type SimulatedAdapter struct{}

// Name returns the backend identifier.
func (a *SimulatedAdapter) Name() string { return Simulated }

// simulatedHosts are the plausible source hosts placeholder results rotate
// through. The mix deliberately spans credibility tiers so downstream
// classification and filtering stay exercised.
var simulatedHosts = []string{
	"arxiv.org",
	"www.jstor.org",
	"link.springer.com",
	"www.nature.com",
	"www.census.gov",
	"www.reuters.com",
	"www.example.org",
	"research.example.com",
}

var simulatedVenues = []string{
	"Journal of Applied Research",
	"Proceedings of the International Conference",
	"Review of Contemporary Studies",
	"Working Paper Series",
}

// Execute fabricates up to cfg.MaxResults placeholder results. The same
// query always yields the same results; distinct queries diverge via an
// FNV hash of the query text.
func (a *SimulatedAdapter) Execute(_ context.Context, query string, cfg types.ProviderConfig) ([]types.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("simulated search: empty query")
	}

	h := fnv.New64a()
	h.Write([]byte(query))
	seed := h.Sum64()

	n := capResults(cfg.MaxResults)
	slug := querySlug(query)

	results := make([]types.SearchResult, 0, n)
	for i := 0; i < n; i++ {
		host := simulatedHosts[(int(seed%uint64(len(simulatedHosts)))+i)%len(simulatedHosts)]
		venue := simulatedVenues[(int((seed>>8)%uint64(len(simulatedVenues)))+i)%len(simulatedVenues)]
		cited := int((seed>>16)%200) + i
		r := types.SearchResult{
			Title:          fmt.Sprintf("%s: perspectives and open problems (%d)", capitalize(query), i+1),
			URL:            fmt.Sprintf("https://%s/%s/%d", host, slug, seed%10000+uint64(i)),
			Snippet:        fmt.Sprintf("A placeholder overview of %s, published in the %s.", query, venue),
			Source:         Simulated,
			ContentType:    types.ContentArticle,
			AccessType:     types.AccessOpen,
			CitationCount:  &cited,
			PublishedDate:  time.Date(2020+i%5, time.Month(int(seed%12)+1), 1, 0, 0, 0, 0, time.UTC),
			RelevanceScore: positionScore(i, n),
		}
		results = append(results, r)
	}
	return finalize(results, cfg), nil
}

// capitalize upper-cases the first rune of s.
func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// querySlug turns the query into a URL path segment.
func querySlug(query string) string {
	fields := strings.Fields(strings.ToLower(query))
	if len(fields) > 4 {
		fields = fields[:4]
	}
	return url.PathEscape(strings.Join(fields, "-"))
}
