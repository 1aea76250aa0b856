package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "uniease",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "uniease",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "uniease",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	bookings = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "uniease",
			Subsystem: "salon",
			Name:      "booking_attempts_total",
			Help:      "Booking attempts by outcome.",
		},
		[]string{"result"},
	)

	orders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "uniease",
			Subsystem: "food",
			Name:      "order_events_total",
			Help:      "Order lifecycle events.",
		},
		[]string{"event"},
	)

	ordersPruned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "uniease",
			Subsystem: "food",
			Name:      "orders_pruned_total",
			Help:      "Orders deleted by the retention policy.",
		},
	)

	notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "uniease",
			Subsystem: "laundry",
			Name:      "notifications_total",
			Help:      "Completion notifications by outcome.",
		},
		[]string{"sent"},
	)

	jobRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "uniease",
			Subsystem: "maintenance",
			Name:      "job_runs_total",
			Help:      "Maintenance job runs.",
		},
		[]string{"job", "success"},
	)

	jobDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "uniease",
			Subsystem: "maintenance",
			Name:      "job_run_duration_seconds",
			Help:      "Duration of maintenance job runs.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		},
		[]string{"job"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		bookings,
		orders,
		ordersPruned,
		notifications,
		jobRuns,
		jobDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency labelled by route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := strings.ToUpper(c.Request.Method)

		httpRequests.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

func RecordBooking(result string) {
	bookings.WithLabelValues(result).Inc()
}

func RecordOrderEvent(event string) {
	orders.WithLabelValues(event).Inc()
}

func RecordPruned(n int64) {
	if n > 0 {
		ordersPruned.Add(float64(n))
	}
}

func RecordNotification(sent bool) {
	notifications.WithLabelValues(strconv.FormatBool(sent)).Inc()
}

// RecordJob records a maintenance run.
func RecordJob(job string, duration time.Duration, success bool) {
	if duration <= 0 {
		duration = time.Millisecond
	}
	jobRuns.WithLabelValues(job, strconv.FormatBool(success)).Inc()
	jobDuration.WithLabelValues(job).Observe(duration.Seconds())
}
