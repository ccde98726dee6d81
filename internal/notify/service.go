package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rapidcleanouts/landing/internal/leads"
	"github.com/rapidcleanouts/landing/pkg/logging"
)

// Service formats and sends the new-lead notification email to the
// configured recipient.
type Service struct {
	sender    EmailSender
	recipient string
	logger    *logging.Logger
}

// NewService creates a notification service.
func NewService(sender EmailSender, recipient string, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		sender:    sender,
		recipient: recipient,
		logger:    logger,
	}
}

// NotifyLead sends one plain-text summary email for the lead.
func (s *Service) NotifyLead(ctx context.Context, lead leads.Lead) error {
	if s.sender == nil {
		return fmt.Errorf("notify: email sender not configured")
	}

	msg := EmailMessage{
		To:      s.recipient,
		Subject: leadSubject(lead),
		Body:    leadBody(lead),
	}
	return s.sender.Send(ctx, msg)
}

func leadSubject(lead leads.Lead) string {
	return strings.TrimSpace("New Handyman Lead: " + lead.FullName())
}

// leadBody renders one line per field, n/a for a missing photo.
func leadBody(lead leads.Lead) string {
	consent := "No"
	if lead.SMSConsent != "" {
		consent = "Yes"
	}
	photo := lead.PhotoURL
	if photo == "" {
		photo = "n/a"
	}

	lines := []string{
		"New lead submitted from rapidcleanouts.com",
		"First Name: " + lead.FirstName,
		"Last Name: " + lead.LastName,
		"Phone: " + lead.Phone,
		"Email: " + lead.Email,
		"Address: " + lead.Address,
		"City: " + lead.City,
		"State: " + lead.State,
		"ZIP: " + lead.Zip,
		"Timeline: " + lead.Timeline,
		"SMS Consent: " + consent,
		"Project: " + lead.ProjectDetails,
		"Photo URL: " + photo,
		"Submitted At: " + lead.SubmittedAt.Format(time.RFC3339),
	}
	return strings.Join(lines, "\n")
}
