// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dispatch selects a search backend for each call and walks the
// fallback chain when the selection fails. Nothing in this package returns
// an error to its caller: a search call always completes, trading result
// completeness for reliability.
package dispatch

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/scholar-search/internal/backend"
	"github.com/pdiddy/scholar-search/internal/ratelimit"
	"github.com/pdiddy/scholar-search/pkg/types"
)

// ErrorBackend is the backend label reported when every candidate in the
// fallback chain has failed.
const ErrorBackend = "error"

// DefaultPairings maps each text-generation provider to its paired default
// search backend. Overridable via providers.pairings in config.
var DefaultPairings = map[string]string{
	"gemini":     backend.Native,
	"perplexity": backend.Online,
	"deepseek":   backend.CNKI,
	"qwen":       backend.Wanfang,
}

// Dispatcher owns backend selection, the rate limiter, and the fallback
// policy. Construct with New; safe for concurrent use.
type Dispatcher struct {
	registry  backend.Registry
	limiter   *ratelimit.Limiter
	pairings  map[string]string
	fallbacks map[string][]string
	warnings  io.Writer
}

// New builds a Dispatcher. Nil pairings or fallbacks select the defaults;
// warnings receives one line per failed attempt (io.Discard to silence).
func New(registry backend.Registry, limiter *ratelimit.Limiter, cfg types.ProvidersConfig, warnings io.Writer) *Dispatcher {
	pairings := cfg.Pairings
	if len(pairings) == 0 {
		pairings = DefaultPairings
	}
	fallbacks := cfg.Fallbacks
	if len(fallbacks) == 0 {
		fallbacks = defaultFallbacks(registry)
	}
	if warnings == nil {
		warnings = io.Discard
	}
	return &Dispatcher{
		registry:  registry,
		limiter:   limiter,
		pairings:  pairings,
		fallbacks: fallbacks,
		warnings:  warnings,
	}
}

// defaultFallbacks reproduces the two-hop policy: every backend falls back
// to metasearch, and metasearch falls back to the simulated backend when
// that adapter is registered.
func defaultFallbacks(registry backend.Registry) map[string][]string {
	fb := make(map[string][]string)
	_, simulated := registry.Lookup(backend.Simulated)
	for name := range registry {
		switch name {
		case backend.Metasearch:
			if simulated {
				fb[name] = []string{backend.Simulated}
			}
		case backend.Simulated:
			// terminal
		default:
			chain := []string{backend.Metasearch}
			if simulated {
				chain = append(chain, backend.Simulated)
			}
			fb[name] = chain
		}
	}
	return fb
}

// Select resolves which backend a call should use: an explicit override
// wins, then the active text provider's pairing, then metasearch.
func (d *Dispatcher) Select(activeTextProvider, explicitBackend string) string {
	if explicitBackend != "" {
		return explicitBackend
	}
	if paired, ok := d.pairings[activeTextProvider]; ok {
		return paired
	}
	return backend.Metasearch
}

// SelectAndExecute picks a backend, runs the query against it through the
// rate limiter, and walks the fallback chain on denial, adapter error, or
// timeout. Each backend is attempted at most once per call. On exhaustion
// it returns an empty result list and the ErrorBackend label; it never
// returns an error.
func (d *Dispatcher) SelectAndExecute(ctx context.Context, query string, cfg types.ProviderConfig, activeTextProvider, explicitBackend string) ([]types.SearchResult, string) {
	selected := d.Select(activeTextProvider, explicitBackend)

	attempted := make(map[string]bool)
	for _, name := range d.chain(selected) {
		if attempted[name] {
			continue
		}
		attempted[name] = true

		results, err := d.attempt(ctx, name, query, cfg)
		if err != nil {
			fmt.Fprintf(d.warnings, "warning: backend %s failed: %v\n", name, err)
			continue
		}
		return results, name
	}
	return nil, ErrorBackend
}

// chain returns the selected backend followed by its fallback candidates.
func (d *Dispatcher) chain(selected string) []string {
	return append([]string{selected}, d.fallbacks[selected]...)
}

// attempt runs one backend once: rate-limit gate, then the adapter call
// bounded by cfg.Timeout. A rate-limit denial is reported identically to an
// adapter failure so the caller advances the chain either way.
func (d *Dispatcher) attempt(ctx context.Context, name, query string, cfg types.ProviderConfig) ([]types.SearchResult, error) {
	adapter, ok := d.registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("no adapter registered")
	}
	if !d.limiter.CheckAndIncrement(name) {
		return nil, fmt.Errorf("rate limit exceeded")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	results, err := adapter.Execute(callCtx, query, cfg)
	if err != nil {
		return nil, err
	}
	return results, nil
}
