package config

import (
	"fmt"
	"strings"
)

// Validate checks the config for:
//   - Required fields (version, both dataset paths)
//   - Non-negative engine settings
//   - A known logging format
func Validate(cfg *AppConfig) error {
	var errs []string
	if cfg.Version == "" {
		errs = append(errs, "version is required")
	}
	if cfg.Dataset.Movies == "" {
		errs = append(errs, "dataset.movies is required")
	}
	if cfg.Dataset.Actors == "" {
		errs = append(errs, "dataset.actors is required")
	}

	e := cfg.Engine
	for _, f := range []struct {
		name string
		val  int
	}{
		{"engine.query_workers", e.QueryWorkers},
		{"engine.queue_depth", e.QueueDepth},
		{"engine.query_timeout_ms", e.QueryTimeoutMs},
		{"engine.cache_size", e.CacheSize},
	} {
		if f.val < 0 {
			errs = append(errs, fmt.Sprintf("%s must not be negative, got %d", f.name, f.val))
		}
	}

	switch strings.ToLower(cfg.Logging.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("logging.format must be text or json, got %q", cfg.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
