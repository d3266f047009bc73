package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Store metrics
	rowsLoaded        *prometheus.CounterVec
	rowsSkipped       *prometheus.CounterVec
	storeLoadDuration prometheus.Histogram
	storeMatches      prometheus.Gauge
	storeTeams        prometheus.Gauge
	storeSeasons      prometheus.Gauge

	// Aggregation and cache metrics
	aggregationLatency *prometheus.HistogramVec
	cacheHits          *prometheus.CounterVec
	cacheMisses        *prometheus.CounterVec
	cacheSize          *prometheus.GaugeVec

	// Chart metrics
	chartRenders       *prometheus.CounterVec
	chartRenderLatency *prometheus.HistogramVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Warm-up queue metrics
	queueCapacity      prometheus.Gauge
	queueSize          prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueueRate   prometheus.Counter
	queueDequeueRate   prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Worker metrics
	workerCount             prometheus.Gauge
	workerActiveCount       prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter
	warmupJobs              *prometheus.CounterVec

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // process-wide metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "epl",
		subsystem:        "history",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

var latencyBucketsMs = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000} //nolint:gochecknoglobals // shared bucket layout

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels, Buckets: buckets,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.rowsLoaded = auto.NewCounterVec(m.counterOpts("rows_loaded_total",
		"Match rows accepted into the store"), []string{"source"})
	m.rowsSkipped = auto.NewCounterVec(m.counterOpts("rows_skipped_total",
		"Match rows rejected while loading"), []string{"source"})
	m.storeLoadDuration = auto.NewHistogram(m.histogramOpts("store_load_duration_milliseconds",
		"Time spent loading the match table in milliseconds",
		[]float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}))
	m.storeMatches = auto.NewGauge(m.gaugeOpts("store_matches", "Matches held in the store"))
	m.storeTeams = auto.NewGauge(m.gaugeOpts("store_teams", "Distinct teams in the store"))
	m.storeSeasons = auto.NewGauge(m.gaugeOpts("store_seasons", "Distinct seasons in the store"))

	m.aggregationLatency = auto.NewHistogramVec(m.histogramOpts("aggregation_latency_milliseconds",
		"Aggregation latency in milliseconds", latencyBucketsMs), []string{"operation"})
	m.cacheHits = auto.NewCounterVec(m.counterOpts("cache_hits_total",
		"Memo cache hits"), []string{"cache"})
	m.cacheMisses = auto.NewCounterVec(m.counterOpts("cache_misses_total",
		"Memo cache misses"), []string{"cache"})
	m.cacheSize = auto.NewGaugeVec(m.gaugeOpts("cache_entries",
		"Entries held by a memo cache"), []string{"cache"})

	m.chartRenders = auto.NewCounterVec(m.counterOpts("chart_renders_total",
		"Charts rendered"), []string{"kind", "format"})
	m.chartRenderLatency = auto.NewHistogramVec(m.histogramOpts("chart_render_latency_milliseconds",
		"Chart render latency in milliseconds", latencyBucketsMs), []string{"kind"})

	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total",
		"Total HTTP requests"), []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts("http_request_duration_seconds",
		"HTTP request duration in seconds", m.histogramBuckets), []string{"endpoint", "method", "status_code"})

	m.queueCapacity = auto.NewGauge(m.gaugeOpts("warmup_queue_capacity", "Warm-up queue capacity"))
	m.queueSize = auto.NewGauge(m.gaugeOpts("warmup_queue_size", "Warm-up jobs waiting"))
	m.queueUtilization = auto.NewGauge(m.gaugeOpts("warmup_queue_utilization_percent",
		"Warm-up queue utilization percentage"))
	m.queueEnqueueRate = auto.NewCounter(m.counterOpts("warmup_queue_enqueue_total", "Warm-up jobs enqueued"))
	m.queueDequeueRate = auto.NewCounter(m.counterOpts("warmup_queue_dequeue_total", "Warm-up jobs dequeued"))
	m.queueEnqueueErrors = auto.NewCounter(m.counterOpts("warmup_queue_enqueue_errors_total",
		"Warm-up jobs rejected by the queue"))

	m.workerCount = auto.NewGauge(m.gaugeOpts("worker_count", "Warm-up workers started"))
	m.workerActiveCount = auto.NewGauge(m.gaugeOpts("worker_active_count", "Warm-up workers processing a job"))
	m.workerProcessingLatency = auto.NewHistogram(m.histogramOpts("worker_processing_latency_milliseconds",
		"Warm-up job latency in milliseconds", latencyBucketsMs))
	m.workerErrors = auto.NewCounter(m.counterOpts("worker_errors_total", "Warm-up jobs that failed"))
	m.warmupJobs = auto.NewCounterVec(m.counterOpts("warmup_jobs_total",
		"Warm-up jobs finished by outcome"), []string{"outcome"})

	m.errorRateByComponent = auto.NewCounterVec(m.counterOpts("errors_by_component_total",
		"Errors by component"), []string{"component", "error_type"})
	m.errorRateByType = auto.NewCounterVec(m.counterOpts("errors_by_type_total",
		"Errors by type and severity"), []string{"error_type", "severity"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts("errors_by_endpoint_total",
		"Errors by HTTP endpoint"), []string{"endpoint", "method", "error_type"})
	m.errorLatency = auto.NewHistogramVec(m.histogramOpts("error_latency_milliseconds",
		"Latency of failed operations in milliseconds", latencyBucketsMs), []string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "Heap memory in use in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts("system_gc_pause_time_milliseconds",
		"GC pause time in milliseconds", []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// Store Metrics Functions.

// RecordRowsLoaded adds n accepted rows for source.
func RecordRowsLoaded(source string, n int) {
	globalManager.rowsLoaded.WithLabelValues(source).Add(float64(n))
}

// RecordRowsSkipped adds n rejected rows for source.
func RecordRowsSkipped(source string, n int) {
	globalManager.rowsSkipped.WithLabelValues(source).Add(float64(n))
}

// RecordStoreLoadDuration records how long a load took.
func RecordStoreLoadDuration(ms float64) {
	globalManager.storeLoadDuration.Observe(ms)
}

// UpdateStoreMatches sets the match count.
func UpdateStoreMatches(n int) {
	globalManager.storeMatches.Set(float64(n))
}

// UpdateStoreTeams sets the team count.
func UpdateStoreTeams(n int) {
	globalManager.storeTeams.Set(float64(n))
}

// UpdateStoreSeasons sets the season count.
func UpdateStoreSeasons(n int) {
	globalManager.storeSeasons.Set(float64(n))
}

// Aggregation and Cache Metrics Functions.

// RecordAggregationLatency records the latency of an aggregation operation.
func RecordAggregationLatency(operation string, ms float64) {
	globalManager.aggregationLatency.WithLabelValues(operation).Observe(ms)
}

// RecordCacheHit increments the hit counter of cache.
func RecordCacheHit(cache string) {
	globalManager.cacheHits.WithLabelValues(cache).Inc()
}

// RecordCacheMiss increments the miss counter of cache.
func RecordCacheMiss(cache string) {
	globalManager.cacheMisses.WithLabelValues(cache).Inc()
}

// UpdateCacheSize sets the number of entries held by cache.
func UpdateCacheSize(cache string, n int) {
	globalManager.cacheSize.WithLabelValues(cache).Set(float64(n))
}

// Chart Metrics Functions.

// RecordChartRender counts a rendered chart.
func RecordChartRender(kind, format string) {
	globalManager.chartRenders.WithLabelValues(kind, format).Inc()
}

// RecordChartRenderLatency records the render time of a chart kind.
func RecordChartRenderLatency(kind string, ms float64) {
	globalManager.chartRenderLatency.WithLabelValues(kind).Observe(ms)
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in seconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Queue Metrics Functions.

// UpdateQueueCapacity sets the warm-up queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueSize sets the number of waiting warm-up jobs.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueUtilization sets the queue utilization percentage.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueueRate.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeueRate.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// Worker Metrics Functions.

// UpdateWorkerCount sets the number of started workers.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// UpdateWorkerActiveCount sets the number of busy workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActiveCount.Set(float64(count))
}

// RecordWorkerProcessingLatency records warm-up job latency in milliseconds.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// RecordWarmupJob counts a finished warm-up job by outcome ("ok", "error", "cached").
func RecordWarmupJob(outcome string) {
	globalManager.warmupJobs.WithLabelValues(outcome).Inc()
}

// Error Metrics Functions.

// RecordErrorByComponent records an error for a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error for an HTTP endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of a failed operation.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System Metrics Functions.

// UpdateSystemMemoryUsage sets heap memory in use.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records a GC pause in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
