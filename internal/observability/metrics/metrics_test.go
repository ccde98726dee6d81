package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveSubmission(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLeadMetrics(reg)

	m.ObserveSubmission(OutcomeAccepted)
	m.ObserveSubmission(OutcomeAccepted)
	m.ObserveSubmission(OutcomeRejected)

	if got := testutil.ToFloat64(m.submissionsTotal.WithLabelValues(OutcomeAccepted)); got != 2 {
		t.Errorf("accepted count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.submissionsTotal.WithLabelValues(OutcomeRejected)); got != 1 {
		t.Errorf("rejected count = %v, want 1", got)
	}
}

func TestObserveIntegrationFailure(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLeadMetrics(reg)

	m.ObserveIntegrationFailure("Zoho CRM push")

	if got := testutil.ToFloat64(m.integrationFailureTotal.WithLabelValues("Zoho CRM push")); got != 1 {
		t.Errorf("failure count = %v, want 1", got)
	}
}

func TestNilReceiverSafe(t *testing.T) {
	var m *LeadMetrics
	m.ObserveSubmission(OutcomeSpam)
	m.ObserveIntegrationFailure("Notification email")
}
