// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tool exposes the engine to the agent framework as the single
// web_search tool. The tool boundary never raises for search failures: a
// total failure is a normal response with resultsCount 0, which the model
// can reason about as "no sources found".
package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/scholar-search/internal/engine"
	"github.com/pdiddy/scholar-search/pkg/types"
)

// Tool is the agent-facing tool interface.
type Tool interface {
	Name() string
	Description() string
	Parameters() []ParameterDef
	Execute(ctx context.Context, args map[string]any) (string, error)
}

// ParameterDef describes one tool parameter for the model.
type ParameterDef struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // "string" | "number" | "boolean"
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Tool-call result bounds. Tighter than the engine ceiling: tool output
// feeds straight into the model's context window.
const (
	minToolResults     = 1
	maxToolResults     = 10
	defaultToolResults = 8
)

// WebSearchTool searches the web through the engine façade.
type WebSearchTool struct {
	engine *engine.Engine
}

// NewWebSearchTool wraps an engine as the web_search tool.
func NewWebSearchTool(e *engine.Engine) *WebSearchTool {
	return &WebSearchTool{engine: e}
}

func (t *WebSearchTool) Name() string {
	return "web_search"
}

func (t *WebSearchTool) Description() string {
	return "Search the web for sources relevant to academic writing. Results are filtered for source credibility."
}

func (t *WebSearchTool) Parameters() []ParameterDef {
	return []ParameterDef{
		{
			Name:        "query",
			Type:        "string",
			Description: "Search query",
			Required:    true,
		},
		{
			Name:        "maxResults",
			Type:        "number",
			Description: fmt.Sprintf("Number of results to return (1-%d, default %d)", maxToolResults, defaultToolResults),
			Required:    false,
		},
		{
			Name:        "provider",
			Type:        "string",
			Description: "Search backend override (default \"native\")",
			Required:    false,
		},
	}
}

// response is the tool-call payload shape.
type response struct {
	Results      []types.SearchResult `json:"results"`
	ResultsCount int                  `json:"resultsCount"`
	Provider     string               `json:"provider"`
	Query        string               `json:"query"`
}

// Execute runs one web_search call. It returns an error only for a missing
// query argument; search failures come back as a normal payload with
// resultsCount 0.
func (t *WebSearchTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	query, ok := args["query"].(string)
	if !ok || strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("missing required parameter: query")
	}

	maxResults := defaultToolResults
	if val, ok := args["maxResults"].(float64); ok && val > 0 {
		maxResults = int(val)
	}
	if maxResults < minToolResults {
		maxResults = minToolResults
	}
	if maxResults > maxToolResults {
		maxResults = maxToolResults
	}

	provider := "native"
	if val, ok := args["provider"].(string); ok && strings.TrimSpace(val) != "" {
		provider = strings.ToLower(strings.TrimSpace(val))
	}

	resp, err := t.engine.Search(ctx, query, engine.Options{
		MaxResults: maxResults,
		Backend:    provider,
	})
	if err != nil {
		return "", err
	}

	payload, err := json.MarshalIndent(response{
		Results:      resp.Results,
		ResultsCount: resp.TotalResults,
		Provider:     resp.BackendUsed,
		Query:        resp.Query,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding response: %w", err)
	}
	return string(payload), nil
}
