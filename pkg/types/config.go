// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by backends that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "scholar-search/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// MaxResultsCeiling is the absolute cap on results per backend call,
// regardless of what the caller requests.
const MaxResultsCeiling = 20

// ProviderConfig holds per-call execution parameters. It is constructed
// fresh for every engine call and never shared or mutated across calls.
type ProviderConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of results the backend should
	// return. Backends additionally cap this at MaxResultsCeiling.
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Language is an optional ISO language code stamped onto results whose
	// backend does not report a language natively.
	Language string `json:"language,omitempty" yaml:"language,omitempty"`

	// Region is an optional region hint passed to backends that honor one.
	Region string `json:"region,omitempty" yaml:"region,omitempty"`
}

// ProvidersConfig holds the deployment-level provider policy: quotas,
// pairings, and fallback chains. Loaded once at process start and treated
// as immutable afterwards.
type ProvidersConfig struct {
	// Quotas maps backend identifier to its per-minute call quota.
	Quotas map[string]int `json:"quotas" yaml:"quotas"`

	// Pairings maps a text-generation provider to its paired default
	// search backend.
	Pairings map[string]string `json:"pairings" yaml:"pairings"`

	// Fallbacks maps a backend to the ordered list of backends tried when
	// it fails or is rate limited.
	Fallbacks map[string][]string `json:"fallbacks" yaml:"fallbacks"`

	// EnableSimulated registers the simulated backend, which fabricates
	// deterministic placeholder results so the tool-call flow never
	// empties out during development or a backend outage.
	EnableSimulated bool `json:"enable_simulated" yaml:"enable_simulated"`
}

// ClassifierConfig optionally overrides the built-in credibility lists.
// Empty lists keep the defaults.
type ClassifierConfig struct {
	Excluded  []string `json:"excluded" yaml:"excluded"`
	Academic  []string `json:"academic" yaml:"academic"`
	Reputable []string `json:"reputable" yaml:"reputable"`
}

// EngineConfig groups all engine configuration.
type EngineConfig struct {
	HTTPConfig `yaml:",inline"`

	Providers  ProvidersConfig  `json:"providers" yaml:"providers"`
	Classifier ClassifierConfig `json:"classifier" yaml:"classifier"`

	// HistoryPath is the SQLite search-log location. Empty disables the
	// log.
	HistoryPath string `json:"history_path,omitempty" yaml:"history_path,omitempty"`
}
