package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "endpoint", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)
	checkoutTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_checkout_total",
			Help: "Checkout attempts that reached the external provider, by outcome.",
		},
		[]string{"provider", "outcome"},
	)
	adminMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_admin_mutations_total",
			Help: "Successful admin item mutations.",
		},
		[]string{"action"},
	)
	rateLimitedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_rate_limited_total",
			Help: "Requests rejected by the API rate limiter.",
		},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(checkoutTotal)
	prometheus.MustRegister(adminMutationsTotal)
	prometheus.MustRegister(rateLimitedTotal)
}

// RecordRequest записывает метрики для HTTP-запроса.
func RecordRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := classifyStatus(statusCode)
	httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

func RecordCheckout(provider string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	checkoutTotal.WithLabelValues(provider, outcome).Inc()
}

func RecordAdminMutation(action string) {
	adminMutationsTotal.WithLabelValues(action).Inc()
}

func RecordRateLimited() {
	rateLimitedTotal.Inc()
}

// classifyStatus классифицирует HTTP-статус код в строку.
func classifyStatus(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return "2xx"
	} else if statusCode >= 300 && statusCode < 400 {
		return "3xx"
	} else if statusCode >= 400 && statusCode < 500 {
		return "4xx"
	} else if statusCode >= 500 && statusCode < 600 {
		return "5xx"
	}
	return "unknown"
}

// MetricsHandler возвращает HTTP-обработчик для экспорта метрик Prometheus.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
