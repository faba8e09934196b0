// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-search/internal/backend"
	"github.com/pdiddy/scholar-search/internal/classify"
	"github.com/pdiddy/scholar-search/internal/dispatch"
	"github.com/pdiddy/scholar-search/internal/engine"
	"github.com/pdiddy/scholar-search/internal/history"
	"github.com/pdiddy/scholar-search/internal/httputil"
	"github.com/pdiddy/scholar-search/internal/ratelimit"
	"github.com/pdiddy/scholar-search/internal/secrets"
	"github.com/pdiddy/scholar-search/pkg/types"
)

// defaultQuotas holds the per-minute call quotas: high for the first-party
// backends, low for the third-party academic repositories, moderate for
// metasearch. Overridable under providers.quotas.
var defaultQuotas = map[string]int{
	backend.Native:     100,
	backend.Online:     60,
	backend.CNKI:       20,
	backend.Wanfang:    20,
	backend.Metasearch: 30,
	backend.Simulated:  1000,
}

// engineConfig assembles the engine configuration from viper settings and
// the optional classifier sources file.
func engineConfig() (types.EngineConfig, error) {
	cfg := types.EngineConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("http.timeout"),
			UserAgent: viper.GetString("http.user_agent"),
		},
		Providers: types.ProvidersConfig{
			Quotas:          quotasFromViper("providers.quotas"),
			Pairings:        viper.GetStringMapString("providers.pairings"),
			Fallbacks:       viper.GetStringMapStringSlice("providers.fallbacks"),
			EnableSimulated: viperBoolDefault("providers.enable_simulated", true),
		},
		HistoryPath: viper.GetString("history.path"),
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = httputil.DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "scholar-search/" + version
	}
	if len(cfg.Providers.Quotas) == 0 {
		cfg.Providers.Quotas = defaultQuotas
	}

	if path := viper.GetString("classifier.sources_file"); path != "" {
		lists, err := loadSourcesFile(path)
		if err != nil {
			return types.EngineConfig{}, err
		}
		cfg.Classifier = lists
	}
	return cfg, nil
}

// loadSourcesFile reads curated classification lists from a YAML file with
// excluded/academic/reputable keys.
func loadSourcesFile(path string) (types.ClassifierConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ClassifierConfig{}, fmt.Errorf("reading sources file: %w", err)
	}
	var lists types.ClassifierConfig
	if err := yaml.Unmarshal(data, &lists); err != nil {
		return types.ClassifierConfig{}, fmt.Errorf("parsing sources file %s: %w", path, err)
	}
	return lists, nil
}

// quotasFromViper converts the loosely-typed viper map into backend quotas.
func quotasFromViper(key string) map[string]int {
	raw := viper.GetStringMap(key)
	if len(raw) == 0 {
		return nil
	}
	quotas := make(map[string]int, len(raw))
	for k, v := range raw {
		switch n := v.(type) {
		case int:
			quotas[k] = n
		case int64:
			quotas[k] = int(n)
		case float64:
			quotas[k] = int(n)
		}
	}
	return quotas
}

func viperBoolDefault(key string, def bool) bool {
	if !viper.IsSet(key) {
		return def
	}
	return viper.GetBool(key)
}

// buildEngine wires the full engine: adapters with their credentials, rate
// limiter, dispatcher, classifier, and the optional history store. The
// returned closer releases the history store and may be nil.
func buildEngine(cfg types.EngineConfig, warnings io.Writer) (*engine.Engine, io.Closer, error) {
	client := httputil.NewClient(cfg.Timeout)

	registry := make(backend.Registry)
	registry.Register(&backend.NativeAdapter{Client: client, APIKey: secrets.ForBackend(loadedSecrets, backend.Native)})
	registry.Register(&backend.OnlineAdapter{Client: client, APIKey: secrets.ForBackend(loadedSecrets, backend.Online)})
	registry.Register(&backend.CNKIAdapter{Client: client, APIKey: secrets.ForBackend(loadedSecrets, backend.CNKI)})
	registry.Register(&backend.WanfangAdapter{Client: client, APIKey: secrets.ForBackend(loadedSecrets, backend.Wanfang)})
	registry.Register(&backend.MetasearchAdapter{Client: client, APIKey: secrets.ForBackend(loadedSecrets, backend.Metasearch)})
	if cfg.Providers.EnableSimulated {
		registry.Register(&backend.SimulatedAdapter{})
	}

	limiter := ratelimit.New(cfg.Providers.Quotas)
	dispatcher := dispatch.New(registry, limiter, cfg.Providers, warnings)
	classifier := classify.New(cfg.Classifier)

	var store *history.Store
	var closer io.Closer
	if cfg.HistoryPath != "" {
		s, err := history.Open(cfg.HistoryPath)
		if err != nil {
			return nil, nil, err
		}
		store = s
		closer = s
	}

	eng := engine.New(dispatcher, classifier, store, cfg.HTTPConfig)
	return eng, closer, nil
}

// timeoutOrDefault applies the flag override on top of the configured HTTP
// timeout.
func timeoutOrDefault(cfg *types.EngineConfig, flagTimeout time.Duration) {
	if flagTimeout > 0 {
		cfg.Timeout = flagTimeout
	}
}
