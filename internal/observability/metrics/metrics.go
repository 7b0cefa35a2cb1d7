package metrics

import "github.com/prometheus/client_golang/prometheus"

// Submission outcomes recorded by the intake pipeline.
const (
	OutcomeAccepted    = "accepted"
	OutcomeInvalid     = "invalid"
	OutcomeRateLimited = "rate_limited"
)

// IntakeMetrics exposes counters for the lead intake pipeline.
type IntakeMetrics struct {
	submissionsTotal *prometheus.CounterVec
	appendFailures   prometheus.Counter
	notifyFailures   prometheus.Counter
}

func NewIntakeMetrics(reg prometheus.Registerer) *IntakeMetrics {
	m := &IntakeMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadgate",
			Subsystem: "intake",
			Name:      "submissions_total",
			Help:      "Contact form submissions by outcome",
		}, []string{"outcome"}),
		appendFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "leadgate",
			Subsystem: "intake",
			Name:      "lead_append_failures_total",
			Help:      "Failed writes to the lead log",
		}),
		notifyFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "leadgate",
			Subsystem: "intake",
			Name:      "notify_failures_total",
			Help:      "Failed staff notification sends",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.appendFailures, m.notifyFailures)
	return m
}

func (m *IntakeMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *IntakeMetrics) ObserveAppendFailure() {
	if m == nil {
		return
	}
	m.appendFailures.Inc()
}

func (m *IntakeMetrics) ObserveNotifyFailure() {
	if m == nil {
		return
	}
	m.notifyFailures.Inc()
}
