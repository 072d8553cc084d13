package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	lookupsTotal     *prometheus.CounterVec
	lookupDuration   prometheus.Histogram
	reportsTotal     *prometheus.CounterVec
	reportDuration   prometheus.Histogram
	llmTokens        *prometheus.CounterVec
	reportJobsActive prometheus.Gauge
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	// Business metrics
	r.lookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockscope_lookups_total",
			Help: "Total number of stock analysis lookups",
		},
		[]string{"outcome"},
	)
	r.lookupDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stockscope_lookup_duration_seconds",
			Help:    "Stock analysis lookup duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
	r.reportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockscope_reports_total",
			Help: "Total number of report jobs by final status",
		},
		[]string{"status"},
	)
	r.reportDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stockscope_report_duration_seconds",
			Help:    "Report generation duration in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
	)
	r.llmTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockscope_llm_tokens_total",
			Help: "Total number of LLM tokens consumed",
		},
		[]string{"provider", "direction"},
	)
	r.reportJobsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "stockscope_report_jobs_active",
			Help: "Number of report jobs currently pending or running",
		},
	)

	reg.MustRegister(r.lookupsTotal)
	reg.MustRegister(r.lookupDuration)
	reg.MustRegister(r.reportsTotal)
	reg.MustRegister(r.reportDuration)
	reg.MustRegister(r.llmTokens)
	reg.MustRegister(r.reportJobsActive)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordLookup records one analysis lookup and its duration.
func (r *Registry) RecordLookup(outcome string, duration float64) {
	r.lookupsTotal.WithLabelValues(outcome).Inc()
	r.lookupDuration.Observe(duration)
}

// RecordReport records a finished report job.
func (r *Registry) RecordReport(status string, duration float64) {
	r.reportsTotal.WithLabelValues(status).Inc()
	r.reportDuration.Observe(duration)
}

// RecordLLMTokens records token usage for one LLM call.
func (r *Registry) RecordLLMTokens(provider string, input, output int) {
	r.llmTokens.WithLabelValues(provider, "input").Add(float64(input))
	r.llmTokens.WithLabelValues(provider, "output").Add(float64(output))
}

// SetReportJobsActive sets the number of in-progress report jobs.
func (r *Registry) SetReportJobsActive(count int) {
	r.reportJobsActive.Set(float64(count))
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
