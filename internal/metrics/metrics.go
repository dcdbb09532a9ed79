package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "costar_queries_total",
		Help: "Total number of path queries answered, labelled by kind and outcome.",
	}, []string{"kind", "outcome"})

	QueriesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "costar_queries_dropped_total",
		Help: "Total number of queries rejected due to a full queue.",
	})

	QueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "costar_query_duration_ms",
		Help:    "Search latency in milliseconds, labelled by kind.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 10000},
	}, []string{"kind"})

	QueryQueueWait = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "costar_query_queue_wait_ms",
		Help:    "Time from request receipt until a worker starts the search, in milliseconds.",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 50, 100, 500, 1000, 5000},
	})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "costar_cache_lookups_total",
		Help: "Query result cache lookups, labelled by result (hit|miss).",
	}, []string{"result"})

	GraphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "costar_graph_nodes",
		Help: "Actors in the current graph snapshot.",
	})

	GraphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "costar_graph_edges",
		Help: "Undirected actor-movie-actor edges in the current graph snapshot.",
	})

	GraphMovies = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "costar_graph_movies",
		Help: "Movies in the current metadata index.",
	})

	GraphComponents = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "costar_graph_components",
		Help: "Connected components in the current graph snapshot.",
	})

	SnapshotBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "costar_snapshot_build_duration_seconds",
		Help:    "Time to build graph, indices and component labels from a dataset.",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	})

	DatasetReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "costar_dataset_reloads_total",
		Help: "Dataset reload attempts, labelled by status.",
	}, []string{"status"})

	QueueUtilization = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "costar_queue_utilization_ratio",
		Help: "Current query queue utilization (0–1).",
	})
)
