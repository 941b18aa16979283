package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pollTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "energypulse",
		Subsystem: "poller",
		Name:      "polls_total",
		Help:      "Count of periodic refreshes.",
	}, []string{"name", "status"})
	pollDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "energypulse",
		Subsystem: "poller",
		Name:      "poll_duration_seconds",
		Help:      "Duration of periodic refreshes.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"name", "status"})
	pollLastSuccess = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "energypulse",
		Subsystem: "poller",
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix time of the last successful refresh.",
	}, []string{"name"})
)

// Poller tracks metrics for a named periodic refresh.
type Poller struct {
	name string
}

// NewPoller constructs a metrics collector for the named poller.
func NewPoller(name string) *Poller {
	if name == "" {
		name = "unknown"
	}
	return &Poller{name: name}
}

// ObservePoll records one refresh outcome.
func (m Poller) ObservePoll(err error, started time.Time) {
	status := statusOf(err)
	pollTotal.WithLabelValues(m.name, status).Inc()
	pollDuration.WithLabelValues(m.name, status).Observe(time.Since(started).Seconds())
	if err == nil {
		pollLastSuccess.WithLabelValues(m.name).SetToCurrentTime()
	}
}
