package leads

import (
	"context"
	"fmt"
	"sync"

	"github.com/rapidcleanouts/landing/internal/observability/metrics"
	"github.com/rapidcleanouts/landing/pkg/logging"
)

// RowAppender is the primary sink: it appends one lead row to the
// spreadsheet of record.
type RowAppender interface {
	Append(ctx context.Context, lead Lead) error
}

// LeadPusher forwards a lead to the CRM.
type LeadPusher interface {
	PushLead(ctx context.Context, lead Lead) error
}

// Notifier sends the new-lead notification email.
type Notifier interface {
	NotifyLead(ctx context.Context, lead Lead) error
}

// Service runs the submission pipeline: spreadsheet append first, then a
// best-effort concurrent fan-out to the optional integrations. A nil crm or
// notifier means that integration is disabled and is skipped silently.
type Service struct {
	sink     RowAppender
	crm      LeadPusher
	notifier Notifier
	metrics  *metrics.LeadMetrics
	logger   *logging.Logger
}

// NewService creates a submission pipeline service.
func NewService(sink RowAppender, crm LeadPusher, notifier Notifier, m *metrics.LeadMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		sink:     sink,
		crm:      crm,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

// Process appends the lead to the spreadsheet and, on success, fans out to
// the configured optional integrations. Integration failures never fail the
// submission; each becomes one warning string. A sink failure returns an
// error and skips the fan-out entirely.
func (s *Service) Process(ctx context.Context, lead Lead) ([]string, error) {
	if s.sink == nil {
		return nil, ErrSheetsNotConfigured
	}
	if err := s.sink.Append(ctx, lead); err != nil {
		return nil, fmt.Errorf("append lead to sheet: %w", err)
	}
	s.logger.Info("lead appended to sheet", "name", lead.FullName(), "phone", lead.Phone)

	return s.fanOut(ctx, lead), nil
}

type integration struct {
	name string
	run  func(context.Context, Lead) error
}

// fanOut runs every configured integration concurrently and always waits for
// all of them, so one failure cannot suppress reporting of the other's
// outcome. Returned warnings are never nil.
func (s *Service) fanOut(ctx context.Context, lead Lead) []string {
	var targets []integration
	if s.crm != nil {
		targets = append(targets, integration{name: "Zoho CRM push", run: s.crm.PushLead})
	}
	if s.notifier != nil {
		targets = append(targets, integration{name: "Notification email", run: s.notifier.NotifyLead})
	}

	results := make([]error, len(targets))
	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func(i int, target integration) {
			defer wg.Done()
			results[i] = target.run(ctx, lead)
		}(i, target)
	}
	wg.Wait()

	warnings := []string{}
	for i, err := range results {
		if err == nil {
			continue
		}
		s.logger.Error("optional integration failed", "integration", targets[i].name, "error", err)
		s.metrics.ObserveIntegrationFailure(targets[i].name)
		warnings = append(warnings, fmt.Sprintf("%s failed: %v", targets[i].name, err))
	}
	return warnings
}
