// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine is the search façade: the single entry point the tool
// layer calls. It composes the dispatcher with the domain classifier and
// the result filter and returns a bounded, ranked result set plus metadata
// about the backend that actually served the call. Search failures degrade
// to an empty result set; they are never surfaced as errors, because the
// calling agent has no recovery path for a failed tool call
// mid-conversation.
package engine

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/scholar-search/internal/classify"
	"github.com/pdiddy/scholar-search/internal/dispatch"
	"github.com/pdiddy/scholar-search/internal/filter"
	"github.com/pdiddy/scholar-search/internal/history"
	"github.com/pdiddy/scholar-search/pkg/types"
)

// DefaultMaxResults applies when the caller requests no result count.
const DefaultMaxResults = 8

// Options are per-call search parameters. The zero value is valid: default
// result count, backend chosen by pairing, no filters.
type Options struct {
	// MaxResults bounds the returned result count. Values outside 1..20
	// are clamped.
	MaxResults int

	// TextProvider is the active text-generation provider; its pairing
	// decides the default backend.
	TextProvider string

	// Backend explicitly overrides backend selection.
	Backend string

	// Language and Region are passed through to the backend.
	Language string
	Region   string

	// Filters shape the result set after classification.
	Filters types.SearchFilters
}

// Response is the façade's return value.
type Response struct {
	Results      []types.SearchResult `json:"results"`
	BackendUsed  string               `json:"backend_used"`
	Query        string               `json:"query"`
	TotalResults int                  `json:"total_results"`
	SearchID     string               `json:"search_id"`
}

// Engine wires the dispatcher, classifier, and optional history store.
type Engine struct {
	dispatcher *dispatch.Dispatcher
	classifier *classify.Classifier
	store      *history.Store
	httpCfg    types.HTTPConfig
}

// New builds an Engine. store may be nil to disable search logging.
func New(dispatcher *dispatch.Dispatcher, classifier *classify.Classifier, store *history.Store, httpCfg types.HTTPConfig) *Engine {
	return &Engine{
		dispatcher: dispatcher,
		classifier: classifier,
		store:      store,
		httpCfg:    httpCfg,
	}
}

// Search executes one search call: dispatch, classify, drop excluded
// sources, apply caller filters, truncate. The only error it returns is an
// empty query, which is caller misuse; every downstream failure degrades to
// an empty Response with BackendUsed "error".
func (e *Engine) Search(ctx context.Context, query string, opts Options) (Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Response{}, fmt.Errorf("query is empty")
	}

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if maxResults > types.MaxResultsCeiling {
		maxResults = types.MaxResultsCeiling
	}

	cfg := types.ProviderConfig{
		HTTPConfig: e.httpCfg,
		MaxResults: maxResults,
		Language:   opts.Language,
		Region:     opts.Region,
	}

	start := time.Now()
	raw, backendUsed := e.dispatcher.SelectAndExecute(ctx, query, cfg, opts.TextProvider, opts.Backend)

	// Classification and the exclusion tier are a hard policy, applied
	// before and independently of any caller-supplied filter.
	classified := make([]types.SearchResult, 0, len(raw))
	for _, r := range raw {
		q := e.classifier.Classify(r.URL)
		if q.Tier == types.TierExcluded {
			continue
		}
		r.Quality = &q
		classified = append(classified, r)
	}

	filtered := filter.Apply(classified, opts.Filters, e.classifier)
	if len(filtered) > maxResults {
		filtered = filtered[:maxResults]
	}

	resp := Response{
		Results:      filtered,
		BackendUsed:  backendUsed,
		Query:        query,
		TotalResults: len(filtered),
		SearchID:     uuid.NewString(),
	}
	e.record(resp, maxResults, time.Since(start))
	return resp, nil
}

// record logs the call to the history store. Logging failures are reported
// on stderr and otherwise ignored; they must never affect the search path.
func (e *Engine) record(resp Response, requested int, elapsed time.Duration) {
	if e.store == nil {
		return
	}
	err := e.store.Record(history.Entry{
		ID:          resp.SearchID,
		Timestamp:   time.Now(),
		Query:       resp.Query,
		BackendUsed: resp.BackendUsed,
		Requested:   requested,
		Returned:    resp.TotalResults,
		Duration:    elapsed,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record search: %v\n", err)
	}
}
