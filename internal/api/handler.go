package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gyaneshwarpardhi/costar/internal/config"
	"github.com/gyaneshwarpardhi/costar/internal/engine"
	"github.com/gyaneshwarpardhi/costar/internal/graph"
	"github.com/gyaneshwarpardhi/costar/internal/metrics"
	"github.com/gyaneshwarpardhi/costar/internal/query"
)

const maxBatchSize = 100

// Handler holds all HTTP handler dependencies.
type Handler struct {
	eng    *engine.Engine
	loader *config.Loader
	mux    *http.ServeMux
}

// New creates an HTTP handler and registers all routes. loader may be nil,
// in which case dataset reloads are disabled.
func New(eng *engine.Engine, loader *config.Loader) http.Handler {
	h := &Handler{eng: eng, loader: loader, mux: http.NewServeMux()}

	h.mux.HandleFunc("GET /v1/graph", h.graphStats)
	h.mux.HandleFunc("GET /v1/components", h.listComponents)
	h.mux.HandleFunc("GET /v1/components/{actor}", h.actorComponent)
	h.mux.HandleFunc("GET /v1/movies/{id}/actors", h.movieActors)
	h.mux.HandleFunc("GET /v1/actors/{id}/movies", h.actorMovies)
	h.mux.HandleFunc("GET /v1/paths/shortest", h.pathQuery(query.KindShortest))
	h.mux.HandleFunc("GET /v1/paths/best", h.pathQuery(query.KindBest))
	h.mux.HandleFunc("POST /v1/paths/batch", h.pathBatch)
	h.mux.HandleFunc("POST /v1/dataset/reload", h.reloadDataset)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	h.mux.HandleFunc("GET /readyz", h.readyz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	return loggingMiddleware(h.mux)
}

// snapshot writes 503 and returns nil while no dataset is loaded.
func (h *Handler) snapshot(w http.ResponseWriter) *engine.Snapshot {
	snap := h.eng.Snapshot()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, engine.ErrNotLoaded.Error())
	}
	return snap
}

// GET /v1/graph — size of the current snapshot.
func (h *Handler) graphStats(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshot(w)
	if snap == nil {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"generation": snap.Generation,
		"loaded_at":  snap.LoadedAt,
		"nodes":      snap.Graph.NodeCount(),
		"edges":      snap.Graph.EdgeCount(),
		"movies":     snap.Movies.Len(),
		"components": snap.Components.Count(),
		"cached":     h.eng.CachedResults(),
	})
}

// GET /v1/components — component size histogram.
func (h *Handler) listComponents(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshot(w)
	if snap == nil {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"generation": snap.Generation,
		"count":      snap.Components.Count(),
		"largest":    snap.Components.Largest(),
		"histogram":  snap.Components.Histogram(),
	})
}

// GET /v1/components/{actor} — component of one actor.
func (h *Handler) actorComponent(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshot(w)
	if snap == nil {
		return
	}
	id := r.PathValue("actor")
	label, ok := snap.Components.Label(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("actor %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"actor_id":  id,
		"component": label,
		"size":      snap.Components.Size(label),
	})
}

// GET /v1/movies/{id}/actors — cast of one indexed movie.
func (h *Handler) movieActors(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshot(w)
	if snap == nil {
		return
	}
	id := r.PathValue("id")
	movie, ok := snap.Movies.Lookup(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("movie %q not found", id))
		return
	}
	actors := snap.Credits.ActorsPerMovie[id]
	if actors == nil {
		actors = []graph.Actor{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"movie":  movie,
		"actors": actors,
	})
}

// GET /v1/actors/{id}/movies — indexed filmography of one actor.
func (h *Handler) actorMovies(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshot(w)
	if snap == nil {
		return
	}
	id := r.PathValue("id")
	i, ok := snap.Graph.Lookup(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("actor %q not found", id))
		return
	}
	ids := snap.Credits.MoviesPerActor[id]
	movies := make([]graph.Movie, 0, len(ids))
	for _, mid := range ids {
		if m, ok := snap.Movies.Lookup(mid); ok {
			movies = append(movies, m)
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"actor":  snap.Graph.Actor(i),
		"movies": movies,
	})
}

// GET /v1/paths/{kind}?from=&to= — synchronous single query.
func (h *Handler) pathQuery(kind query.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := query.Request{
			ID:         r.URL.Query().Get("id"),
			Kind:       kind,
			From:       r.URL.Query().Get("from"),
			To:         r.URL.Query().Get("to"),
			ReceivedAt: time.Now(),
		}
		if req.ID == "" {
			req.ID = uuid.New().String()
		}
		res, err := h.eng.Query(r.Context(), req)
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// POST /v1/paths/batch — up to 100 queries run through the worker pool.
func (h *Handler) pathBatch(w http.ResponseWriter, r *http.Request) {
	var reqs []query.Request
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if len(reqs) == 0 {
		writeError(w, http.StatusBadRequest, "batch must contain at least one query")
		return
	}
	if len(reqs) > maxBatchSize {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("batch size %d exceeds max %d", len(reqs), maxBatchSize))
		return
	}
	if h.snapshot(w) == nil {
		return
	}

	now := time.Now()
	for i := range reqs {
		if reqs[i].ID == "" {
			reqs[i].ID = uuid.New().String()
		}
		reqs[i].ReceivedAt = now
	}
	items := h.eng.Batch(r.Context(), reqs)

	failed := 0
	for _, it := range items {
		if it.Error != "" {
			failed++
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"batch_id": uuid.New().String(),
		"total":    len(items),
		"failed":   failed,
		"results":  items,
	})
}

// POST /v1/dataset/reload — re-read config and dataset, swap the snapshot.
func (h *Handler) reloadDataset(w http.ResponseWriter, r *http.Request) {
	if h.loader == nil {
		writeError(w, http.StatusNotImplemented, "reload requires a config file")
		return
	}
	cfg, err := h.loader.Reload()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := config.Validate(cfg); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	snap, err := h.eng.LoadDataset(cfg.Dataset)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reloaded":   true,
		"config":     h.loader.Path(),
		"generation": snap.Generation,
		"nodes":      snap.Graph.NodeCount(),
		"edges":      snap.Graph.EdgeCount(),
	})
}

// GET /healthz — always 200 (liveness probe).
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /readyz — 503 until a snapshot is loaded or while the queue is >80% full.
func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	util := h.eng.QueueUtilization()
	metrics.QueueUtilization.Set(util)
	if h.eng.Snapshot() == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "loading",
		})
		return
	}
	if util > 0.8 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":            "overloaded",
			"queue_utilization": util,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "ready",
		"queue_utilization": util,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, query.ErrUnknownKind), errors.Is(err, query.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrQueueFull):
		return http.StatusTooManyRequests
	case errors.Is(err, engine.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, engine.ErrNotLoaded), errors.Is(err, engine.ErrShutdown):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
