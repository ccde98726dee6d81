package metrics

import "github.com/prometheus/client_golang/prometheus"

// Submission outcomes recorded by LeadMetrics.
const (
	OutcomeAccepted  = "accepted"
	OutcomeRejected  = "rejected"
	OutcomeSpam      = "spam"
	OutcomeSinkError = "sink_error"
)

// LeadMetrics exposes counters for the lead submission pipeline.
type LeadMetrics struct {
	submissionsTotal        *prometheus.CounterVec
	integrationFailureTotal *prometheus.CounterVec
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rapidcleanouts",
			Subsystem: "leads",
			Name:      "submissions_total",
			Help:      "Total lead form submissions by outcome",
		}, []string{"outcome"}),
		integrationFailureTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rapidcleanouts",
			Subsystem: "leads",
			Name:      "integration_failures_total",
			Help:      "Total optional integration failures",
		}, []string{"integration"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.integrationFailureTotal)
	return m
}

func (m *LeadMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *LeadMetrics) ObserveIntegrationFailure(integration string) {
	if m == nil {
		return
	}
	m.integrationFailureTotal.WithLabelValues(integration).Inc()
}
