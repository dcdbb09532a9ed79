package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/costar/internal/config"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "costar.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoader_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
version: v1
dataset:
  movies: data/movies.tsv
  actors: /abs/actors.tsv
`)
	l, err := config.NewLoader(path)
	require.NoError(t, err)
	cfg := l.Config()

	assert.Equal(t, filepath.Join(dir, "data/movies.tsv"), cfg.Dataset.Movies)
	assert.Equal(t, "/abs/actors.tsv", cfg.Dataset.Actors)
	assert.Equal(t, 8, cfg.Engine.QueryWorkers)
	assert.Equal(t, 1000, cfg.Engine.QueueDepth)
	assert.Equal(t, 30000, cfg.Engine.QueryTimeoutMs)
	assert.Equal(t, 4096, cfg.Engine.CacheSize)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.NoError(t, config.Validate(cfg))
}

func TestLoader_ParseError(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "version: [unterminated")
	_, err := config.NewLoader(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")

	_, err = config.NewLoader(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoader_Reload(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "version: v1\n")
	l, err := config.NewLoader(path)
	require.NoError(t, err)

	writeConfig(t, dir, "version: v2\nengine:\n  query_workers: 3\n")
	cfg, err := l.Reload()
	require.NoError(t, err)
	assert.Equal(t, "v2", cfg.Version)
	assert.Equal(t, 3, l.Config().Engine.QueryWorkers)
}

func TestLoader_Watch(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "version: v1\n")
	l, err := config.NewLoader(path)
	require.NoError(t, err)

	changed := make(chan *config.AppConfig, 4)
	l.OnChange(func(c *config.AppConfig) {
		select {
		case changed <- c:
		default:
		}
	})
	stop, err := l.Watch()
	require.NoError(t, err)
	defer stop()

	writeConfig(t, dir, "version: v7\n")
	deadline := time.After(5 * time.Second)
	for {
		select {
		case c := <-changed:
			// A truncating write can surface an intermediate empty file first.
			if c.Version == "v7" {
				return
			}
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}

func TestValidate(t *testing.T) {
	cfg := &config.AppConfig{
		Engine:  config.EngineConf{QueryWorkers: -1},
		Logging: config.LoggingConf{Format: "xml"},
	}
	err := config.Validate(cfg)
	require.Error(t, err)
	for _, want := range []string{
		"version is required",
		"dataset.movies is required",
		"dataset.actors is required",
		"engine.query_workers must not be negative",
		`logging.format must be text or json, got "xml"`,
	} {
		assert.Contains(t, err.Error(), want)
	}
}
