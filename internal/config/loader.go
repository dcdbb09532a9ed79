package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

const (
	defaultQueryWorkers   = 8
	defaultQueueDepth     = 1000
	defaultQueryTimeoutMs = 30000
	defaultCacheSize      = 4096
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
)

// Loader reads a YAML config file and watches it for changes.
type Loader struct {
	path     string
	mu       sync.RWMutex
	current  *AppConfig
	onChange []func(*AppConfig)
}

// NewLoader creates a Loader and performs the initial load.
func NewLoader(path string) (*Loader, error) {
	l := &Loader{path: path}
	cfg, err := l.load()
	if err != nil {
		return nil, err
	}
	l.current = cfg
	return l, nil
}

// Path returns the watched file.
func (l *Loader) Path() string { return l.path }

// Config returns the current (latest) configuration.
func (l *Loader) Config() *AppConfig {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// OnChange registers a callback invoked whenever the watcher picks up a new config.
func (l *Loader) OnChange(fn func(*AppConfig)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// Watch starts a background goroutine that reloads the config on file changes
// and notifies OnChange callbacks. Call the returned stop function to clean up.
func (l *Loader) Watch() (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	// Editors often replace the file, so watch the directory and filter.
	dir := filepath.Dir(l.path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("config watcher add %s: %w", dir, err)
	}
	target := filepath.Clean(l.path)

	done := make(chan struct{})
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				cfg, err := l.Reload()
				if err != nil {
					slog.Warn("config reload failed, keeping previous", "path", l.path, "err", err)
					continue
				}
				l.mu.RLock()
				callbacks := make([]func(*AppConfig), len(l.onChange))
				copy(callbacks, l.onChange)
				l.mu.RUnlock()
				for _, fn := range callbacks {
					fn(cfg)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.Warn("config watcher error", "err", err)
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }, nil
}

// Reload forces an immediate re-read of the config file. Callbacks are not
// invoked; the caller acts on the returned config.
func (l *Loader) Reload() (*AppConfig, error) {
	cfg, err := l.load()
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	l.current = cfg
	l.mu.Unlock()
	return cfg, nil
}

func (l *Loader) load() (*AppConfig, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", l.path, err)
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", l.path, err)
	}
	ApplyDefaults(&cfg)
	resolvePaths(&cfg, filepath.Dir(l.path))
	return &cfg, nil
}

// ApplyDefaults fills zero-valued settings.
func ApplyDefaults(cfg *AppConfig) {
	if cfg.Engine.QueryWorkers == 0 {
		cfg.Engine.QueryWorkers = defaultQueryWorkers
	}
	if cfg.Engine.QueueDepth == 0 {
		cfg.Engine.QueueDepth = defaultQueueDepth
	}
	if cfg.Engine.QueryTimeoutMs == 0 {
		cfg.Engine.QueryTimeoutMs = defaultQueryTimeoutMs
	}
	if cfg.Engine.CacheSize == 0 {
		cfg.Engine.CacheSize = defaultCacheSize
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = defaultLogFormat
	}
}

// resolvePaths makes relative dataset paths relative to the config file.
func resolvePaths(cfg *AppConfig, base string) {
	if cfg.Dataset.Movies != "" && !filepath.IsAbs(cfg.Dataset.Movies) {
		cfg.Dataset.Movies = filepath.Join(base, cfg.Dataset.Movies)
	}
	if cfg.Dataset.Actors != "" && !filepath.IsAbs(cfg.Dataset.Actors) {
		cfg.Dataset.Actors = filepath.Join(base, cfg.Dataset.Actors)
	}
}
