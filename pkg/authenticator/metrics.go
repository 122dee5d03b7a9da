package authenticator

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "otp"

// Result label values.
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// Metrics holds the verification counters. Replays are counted as rejected.
type Metrics struct {
	Verifications *prometheus.CounterVec
	Drift         *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg when it is non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Verifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "verifications_total",
				Help:      "Total number of TOTP verification attempts by result",
			},
			[]string{"result"},
		),
		Drift: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "accepted_drift_total",
				Help:      "Accepted codes by time-step offset from the server clock",
			},
			[]string{"delta"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Verifications, m.Drift)
	}
	return m
}

func (m *Metrics) observe(result string, delta int) {
	if m == nil {
		return
	}
	m.Verifications.WithLabelValues(result).Inc()
	if result == ResultAccepted {
		m.Drift.WithLabelValues(strconv.Itoa(delta)).Inc()
	}
}
