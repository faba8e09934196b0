// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package backend implements the provider adapters: one per external search
// data source, each executing a single query and normalizing the
// provider-specific response shape into types.SearchResult. Adapter errors
// are failed attempts from the dispatcher's point of view; the fallback
// chain, not the adapter, is responsible for resilience.
package backend

import (
	"context"
	"strings"

	"golang.org/x/net/html"

	"github.com/pdiddy/scholar-search/internal/classify"
	"github.com/pdiddy/scholar-search/pkg/types"
)

// Backend identifiers. These are the values accepted as an explicit
// provider override and recorded in search responses.
const (
	Native     = "native"     // native-model web search
	Online     = "online"     // online-suffix model search
	CNKI       = "cnki"       // national academic repository
	Wanfang    = "wanfang"    // national academic repository
	Metasearch = "metasearch" // generic metasearch engine, the fixed fallback
	Simulated  = "simulated"  // deterministic offline generator
)

// Adapter executes a single query against one backend. Implementations
// honor ctx cancellation, cap results at cfg.MaxResults (and the absolute
// ceiling), and return an error for any failed attempt; the dispatcher
// advances the fallback chain on error and never surfaces it to callers.
type Adapter interface {
	Name() string
	Execute(ctx context.Context, query string, cfg types.ProviderConfig) ([]types.SearchResult, error)
}

// Registry maps backend identifiers to their adapters. Built once at
// startup and read-only afterwards.
type Registry map[string]Adapter

// Register adds an adapter under its own name.
func (r Registry) Register(a Adapter) {
	r[a.Name()] = a
}

// Lookup returns the adapter for a backend identifier.
func (r Registry) Lookup(backend string) (Adapter, bool) {
	a, ok := r[backend]
	return a, ok
}

// capResults bounds the requested result count: positive, and never above
// the absolute ceiling regardless of what the caller asked for.
func capResults(requested int) int {
	if requested <= 0 || requested > types.MaxResultsCeiling {
		return types.MaxResultsCeiling
	}
	return requested
}

// finalize applies the normalization every adapter shares: drop results
// without a valid absolute URL, strip markup from snippets, stamp the
// request language onto results missing one, and truncate to the capped
// count. Relative order is preserved.
func finalize(results []types.SearchResult, cfg types.ProviderConfig) []types.SearchResult {
	limit := capResults(cfg.MaxResults)
	out := make([]types.SearchResult, 0, min(len(results), limit))
	for _, r := range results {
		if len(out) >= limit {
			break
		}
		if classify.Hostname(r.URL) == "" {
			continue
		}
		r.Title = strings.TrimSpace(r.Title)
		r.Snippet = stripMarkup(r.Snippet)
		if r.Language == "" {
			r.Language = cfg.Language
		}
		out = append(out, r)
	}
	return out
}

// positionScore derives a relevance score from a result's rank when the
// backend reports none: 1.0 for the first result, decaying to 0.1.
func positionScore(i, total int) float64 {
	if total <= 1 {
		return 1.0
	}
	return 1.0 - float64(i)/float64(total-1)*0.9
}

// stripMarkup removes HTML tags from a snippet. Metasearch engines return
// highlight markup (<b>, <em>) inside result excerpts.
func stripMarkup(s string) string {
	if !strings.ContainsRune(s, '<') {
		return strings.TrimSpace(s)
	}
	var b strings.Builder
	tok := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := tok.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			b.Write(tok.Text())
		}
	}
	return strings.TrimSpace(b.String())
}
