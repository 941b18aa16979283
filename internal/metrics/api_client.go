package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	apiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "energypulse",
		Subsystem: "api_client",
		Name:      "requests_total",
		Help:      "Count of backend API requests.",
	}, []string{"operation", "status"})
	apiRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "energypulse",
		Subsystem: "api_client",
		Name:      "request_duration_seconds",
		Help:      "Duration of backend API requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
)

type categorized interface {
	Category() string
}

// APIClient tracks metrics for backend API calls.
type APIClient struct{}

// NewAPIClient constructs a metrics collector for API calls.
func NewAPIClient() *APIClient {
	return &APIClient{}
}

// Observe records a single API call outcome and duration. Failed calls are labelled
// with their error category when the error exposes one.
func (m APIClient) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	apiRequestsTotal.WithLabelValues(operation, status).Inc()
	apiRequestDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}

func statusOf(err error) string {
	if err == nil {
		return "success"
	}
	var c categorized
	if errors.As(err, &c) && c.Category() != "" {
		return c.Category()
	}
	return "error"
}
