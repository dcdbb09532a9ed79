package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/gyaneshwarpardhi/costar/internal/config"
	"github.com/gyaneshwarpardhi/costar/internal/dataset"
	"github.com/gyaneshwarpardhi/costar/internal/graph"
	"github.com/gyaneshwarpardhi/costar/internal/metrics"
	"github.com/gyaneshwarpardhi/costar/internal/query"
)

var (
	ErrQueueFull = errors.New("query queue full")
	ErrTimeout   = errors.New("query timed out")
	ErrNotLoaded = errors.New("no dataset loaded")
	ErrShutdown  = errors.New("engine shut down")
)

// Snapshot is one immutable, fully indexed dataset. Queries read it
// concurrently; a reload builds a new Snapshot and swaps it in.
type Snapshot struct {
	Generation    uint64
	LoadedAt      time.Time
	BuildDuration time.Duration
	Graph         *graph.Graph
	Movies        *graph.MovieIndex
	Credits       *graph.Credits
	Components    *graph.Labeling
}

// BuildSnapshot indexes movies, builds the actor graph and labels its components.
func BuildSnapshot(gen uint64, ds *dataset.Snapshot) *Snapshot {
	start := time.Now()
	movies := graph.NewMovieIndex(ds.Movies)
	g, credits := graph.Build(ds.Actors, movies)
	labels := graph.LabelComponents(g)
	return &Snapshot{
		Generation:    gen,
		LoadedAt:      time.Now(),
		BuildDuration: time.Since(start),
		Graph:         g,
		Movies:        movies,
		Credits:       credits,
		Components:    labels,
	}
}

// BatchItem is the per-request outcome of Batch.
type BatchItem struct {
	Result *query.Result `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// Engine answers path queries against the current Snapshot.
type Engine struct {
	snap     atomic.Pointer[Snapshot]
	gen      atomic.Uint64
	registry *query.Registry
	pool     *workerPool[*queryWork]
	cache    *lru.Cache[string, *query.Result] // nil when disabled
	flight   singleflight.Group
	conf     config.EngineConf
	logger   *slog.Logger
	reloadMu sync.Mutex

	// done is closed when the engine context ends. Shared query work waits
	// on it instead of on any single caller's context.
	done <-chan struct{}
}

type queryWork struct {
	req     query.Request
	snap    *Snapshot
	runner  query.Runner
	resultC chan *query.Result
}

// New creates an Engine using conf and starts the query pool. The engine has
// no snapshot until Install or LoadDataset is called.
func New(ctx context.Context, reg *query.Registry, conf config.EngineConf, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		registry: reg,
		conf:     conf,
		logger:   logger.With("component", "engine"),
		done:     ctx.Done(),
	}
	if conf.CacheSize > 0 {
		c, err := lru.New[string, *query.Result](conf.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("query cache: %w", err)
		}
		e.cache = c
	}
	e.pool = newWorkerPool[*queryWork](
		ctx,
		max(conf.QueryWorkers, 1),
		max(conf.QueueDepth, 1),
		func(_ context.Context, w *queryWork) {
			w.resultC <- e.run(w)
		},
	)
	return e, nil
}

// Snapshot returns the current snapshot, nil before the first load.
func (e *Engine) Snapshot() *Snapshot {
	return e.snap.Load()
}

// Install builds a snapshot from ds and swaps it in atomically.
func (e *Engine) Install(ds *dataset.Snapshot) *Snapshot {
	snap := BuildSnapshot(e.gen.Add(1), ds)
	e.snap.Store(snap)
	if e.cache != nil {
		e.cache.Purge()
	}

	metrics.GraphNodes.Set(float64(snap.Graph.NodeCount()))
	metrics.GraphEdges.Set(float64(snap.Graph.EdgeCount()))
	metrics.GraphMovies.Set(float64(snap.Movies.Len()))
	metrics.GraphComponents.Set(float64(snap.Components.Count()))
	metrics.SnapshotBuildDuration.Observe(snap.BuildDuration.Seconds())
	e.logger.Info("snapshot installed",
		"generation", snap.Generation,
		"nodes", snap.Graph.NodeCount(),
		"edges", snap.Graph.EdgeCount(),
		"movies", snap.Movies.Len(),
		"components", snap.Components.Count(),
		"build", snap.BuildDuration.String(),
	)
	return snap
}

// LoadDataset reads the dataset files and installs them. On failure the
// previous snapshot stays in place.
func (e *Engine) LoadDataset(ds config.DatasetConf) (*Snapshot, error) {
	e.reloadMu.Lock()
	defer e.reloadMu.Unlock()

	data, err := dataset.Load(ds.Movies, ds.Actors)
	if err != nil {
		metrics.DatasetReloads.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	metrics.DatasetReloads.WithLabelValues("success").Inc()
	return e.Install(data), nil
}

// Query answers req synchronously through the worker pool. Identical
// concurrent queries share one search, and results are cached per snapshot.
// Cancelling ctx abandons only this caller's wait; the shared search keeps
// running for the other callers, bounded by the engine timeout.
func (e *Engine) Query(ctx context.Context, req query.Request) (*query.Result, error) {
	snap := e.snap.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	runner, err := e.registry.Get(req.Kind)
	if err != nil {
		return nil, err
	}
	if req.ReceivedAt.IsZero() {
		req.ReceivedAt = time.Now()
	}

	key := cacheKey(snap.Generation, req)
	if e.cache != nil {
		if res, ok := e.cache.Get(key); ok {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			out := res.Clone()
			out.RequestID = req.ID
			out.Cached = true
			return out, nil
		}
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	ch := e.flight.DoChan(key, func() (any, error) {
		return e.dispatch(&queryWork{
			req:     req,
			snap:    snap,
			runner:  runner,
			resultC: make(chan *query.Result, 1),
		})
	})
	select {
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		out := r.Val.(*query.Result).Clone()
		out.RequestID = req.ID
		return out, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func cacheKey(gen uint64, req query.Request) string {
	return fmt.Sprintf("%d|%s|%s|%s", gen, req.Kind, req.From, req.To)
}

func (e *Engine) dispatch(w *queryWork) (*query.Result, error) {
	if !e.pool.Submit(w) {
		metrics.QueriesDropped.Inc()
		return nil, fmt.Errorf("%w (capacity %d)", ErrQueueFull, e.pool.QueueCap())
	}

	timeout := time.Duration(e.conf.QueryTimeoutMs) * time.Millisecond
	var timer <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		timer = t.C
	}

	select {
	case res := <-w.resultC:
		// A result computed against a replaced snapshot is never looked up again.
		if e.cache != nil && e.snap.Load() == w.snap {
			e.cache.Add(cacheKey(w.snap.Generation, w.req), res)
		}
		return res, nil
	case <-timer:
		metrics.QueriesTotal.WithLabelValues(string(w.req.Kind), "timeout").Inc()
		return nil, fmt.Errorf("%w after %v", ErrTimeout, timeout)
	case <-e.done:
		return nil, ErrShutdown
	}
}

func (e *Engine) run(w *queryWork) *query.Result {
	start := time.Now()
	wait := start.Sub(w.req.ReceivedAt)
	metrics.QueryQueueWait.Observe(float64(wait.Microseconds()) / 1000)
	res := w.runner.Run(w.snap.Graph, w.snap.Movies, w.req)
	elapsed := time.Since(start)

	res.Generation = w.snap.Generation
	res.DurationMs = elapsed.Milliseconds()

	outcome := "found"
	switch {
	case len(res.Missing) > 0:
		outcome = "missing"
	case !res.Found:
		outcome = "no_path"
	}
	metrics.QueriesTotal.WithLabelValues(string(w.req.Kind), outcome).Inc()
	metrics.QueryDuration.WithLabelValues(string(w.req.Kind)).Observe(float64(elapsed.Microseconds()) / 1000)
	e.logger.Debug("query answered",
		"request_id", w.req.ID,
		"kind", w.req.Kind,
		"from", w.req.From,
		"to", w.req.To,
		"outcome", outcome,
		"wait", wait.String(),
		"duration", elapsed.String(),
	)
	return res
}

// Batch runs reqs concurrently and returns their outcomes in request order.
func (e *Engine) Batch(ctx context.Context, reqs []query.Request) []BatchItem {
	out := make([]BatchItem, len(reqs))
	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req query.Request) {
			defer wg.Done()
			res, err := e.Query(ctx, req)
			if err != nil {
				out[i] = BatchItem{Error: err.Error()}
				return
			}
			out[i] = BatchItem{Result: res}
		}(i, req)
	}
	wg.Wait()
	return out
}

// QueueUtilization returns queue used / capacity (0–1).
func (e *Engine) QueueUtilization() float64 {
	if e.pool.QueueCap() == 0 {
		return 0
	}
	return float64(e.pool.QueueLen()) / float64(e.pool.QueueCap())
}

// CachedResults returns the number of entries in the result cache.
func (e *Engine) CachedResults() int {
	if e.cache == nil {
		return 0
	}
	return e.cache.Len()
}

// Shutdown drains the query pool gracefully.
func (e *Engine) Shutdown() {
	e.pool.Drain()
}
