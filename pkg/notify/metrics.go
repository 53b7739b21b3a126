package notify

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts push outcomes per channel.
type Metrics struct {
	Pushes   *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics creates the push metrics and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Pushes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "checkin_notify",
			Name:      "pushes_total",
			Help:      "Notification push attempts by channel and result",
		}, []string{"channel", "result"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "checkin_notify",
			Name:      "push_duration_seconds",
			Help:      "Time spent pushing to a single channel",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60},
		}, []string{"channel"}),
	}
	reg.MustRegister(m.Pushes, m.Duration)
	return m
}

func (m *Metrics) observe(o Outcome) {
	result := "success"
	switch {
	case o.OK():
	case IsNotConfigured(o.Err):
		result = "not_configured"
	default:
		result = "failure"
	}
	m.Pushes.WithLabelValues(string(o.Channel), result).Inc()
	m.Duration.WithLabelValues(string(o.Channel)).Observe(o.Duration.Seconds())
}
