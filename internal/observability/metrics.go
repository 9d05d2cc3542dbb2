package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	IngestionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalogd_ingestion_seconds",
		Help:    "Time spent building the catalog from an HBK container or a JSON export.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})

	CatalogDefinitions = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "catalogd_catalog_definitions_total",
		Help: "Number of definitions in the published catalog, by kind.",
	}, []string{"kind"})

	PagesSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalogd_pages_skipped_total",
		Help: "Total number of HTML pages skipped during ingestion due to a parse failure.",
	})

	SearchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalogd_search_seconds",
		Help:    "Latency of a single search() call.",
		Buckets: prometheus.DefBuckets,
	}, []string{"winning_strategy"})

	SearchRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalogd_search_requests_total",
		Help: "Total number of search requests, by outcome.",
	}, []string{"outcome"})

	StrategyMatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalogd_strategy_matches_total",
		Help: "Total number of definitions contributed by each search strategy.",
	}, []string{"strategy"})
)
