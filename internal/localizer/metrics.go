package localizer

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts localized requests.
type Metrics struct {
	requests *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lingueasy_localized_requests_total",
				Help: "Requests localized, by resolved locale.",
			},
			[]string{"locale"},
		),
	}

	reg.MustRegister(m.requests)

	return m
}

func (m *Metrics) observe(locale string) {
	m.requests.WithLabelValues(locale).Inc()
}
