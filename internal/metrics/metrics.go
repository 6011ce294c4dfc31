package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var msBuckets = []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 2000, 5000}

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "relief_http_requests_total",
		Help: "Total API requests by route and status code",
	}, []string{"route", "code"})
	ResolveTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "relief_geocode_resolve_total",
		Help: "Postal code resolutions by outcome (ok, not_found)",
	}, []string{"outcome"})
	ResolveDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "relief_geocode_resolve_duration_ms",
		Help:    "End-to-end postal code resolution duration in milliseconds",
		Buckets: msBuckets,
	})
	StageHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "relief_geocode_stage_hits_total",
		Help: "Resolution hits per stage",
	}, []string{"stage"})
	StageMissesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "relief_geocode_stage_misses_total",
		Help: "Resolution misses per stage",
	}, []string{"stage"})
	SharedCacheErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "relief_geocode_shared_errors_total",
		Help: "Redis errors in the shared geocode stage",
	})
	NominatimRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "relief_nominatim_requests_total",
		Help: "Outbound Nominatim search requests",
	})
	NominatimFailTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "relief_nominatim_fail_total",
		Help: "Nominatim failures by reason",
	}, []string{"reason"})
	NominatimDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "relief_nominatim_duration_ms",
		Help:    "Nominatim call duration in milliseconds, excluding throttle wait",
		Buckets: msBuckets,
	})
	ThrottleWaitMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "relief_nominatim_throttle_wait_ms",
		Help:    "Time callers spent waiting for the outbound throttle",
		Buckets: []float64{0, 10, 50, 100, 250, 500, 750, 1000, 2000, 5000},
	})
	NearbyResultsCount = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "relief_nearby_results",
		Help:    "Number of records returned by radius queries",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
	})
	LocateTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "relief_locate_total",
		Help: "IP based approximate location lookups by outcome",
	}, []string{"outcome"})
	RateLimitedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "relief_rate_limited_total",
		Help: "Inbound requests rejected with 429",
	})
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(ResolveTotal)
	prometheus.MustRegister(ResolveDurationMs)
	prometheus.MustRegister(StageHitsTotal)
	prometheus.MustRegister(StageMissesTotal)
	prometheus.MustRegister(SharedCacheErrorsTotal)
	prometheus.MustRegister(NominatimRequestsTotal)
	prometheus.MustRegister(NominatimFailTotal)
	prometheus.MustRegister(NominatimDurationMs)
	prometheus.MustRegister(ThrottleWaitMs)
	prometheus.MustRegister(NearbyResultsCount)
	prometheus.MustRegister(LocateTotal)
	prometheus.MustRegister(RateLimitedTotal)
}

// Handler 暴露已注册指标，由主入口挂载到 {API_BASE}/metrics
func Handler() http.Handler { return promhttp.Handler() }
