package leads

import (
	"strings"
	"time"
)

// Lead represents one normalized estimate-request submission. Leads are built
// once per request and never persisted server-side beyond the spreadsheet row
// they produce.
type Lead struct {
	SubmittedAt    time.Time `json:"submittedAt"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	Zip            string    `json:"zip"`
	Timeline       string    `json:"timeline"`
	ProjectDetails string    `json:"projectDetails"`
	SMSConsent     string    `json:"smsConsent"`
	Honeypot       string    `json:"-"`
	PhotoURL       string    `json:"photoUrl"`
}

// FormValues is the subset of url.Values behavior the normalizer needs: a
// multipart form's text fields. Absent keys read as empty strings.
type FormValues interface {
	Get(key string) string
}

// FromForm builds a Lead from submitted form fields. Normalization never
// fails; required-field checks happen in Validate so the honeypot can be
// inspected before any business validation runs.
func FromForm(form FormValues, photoURL string) Lead {
	lead := Lead{
		SubmittedAt:    time.Now().UTC(),
		FirstName:      field(form, "firstName"),
		LastName:       field(form, "lastName"),
		Phone:          field(form, "phone"),
		Email:          field(form, "email"),
		Address:        field(form, "address"),
		City:           field(form, "city"),
		State:          field(form, "state"),
		Zip:            field(form, "zip"),
		Timeline:       field(form, "timeline"),
		ProjectDetails: field(form, "projectDetails"),
		SMSConsent:     field(form, "smsConsent"),
		Honeypot:       field(form, "website"),
		PhotoURL:       photoURL,
	}
	if lead.Timeline == "" {
		lead.Timeline = "Flexible"
	}
	return lead
}

// IsSpam reports whether the hidden honeypot field was filled in.
func (l Lead) IsSpam() bool {
	return l.Honeypot != ""
}

// FullName joins first and last name for display.
func (l Lead) FullName() string {
	return strings.TrimSpace(l.FirstName + " " + l.LastName)
}

// Validate checks the required fields in a fixed order and returns a
// ValidationError with a user-facing message for the first failure.
func (l Lead) Validate() error {
	if l.FirstName == "" || l.LastName == "" || l.Phone == "" {
		return &ValidationError{Message: "First name, last name, and phone are required."}
	}
	if !validPhone(l.Phone) {
		return &ValidationError{Message: "A valid phone number is required."}
	}
	if l.SMSConsent == "" {
		return &ValidationError{Message: "SMS consent is required."}
	}
	if l.PhotoURL == "" {
		return &ValidationError{Message: "A project photo is required."}
	}
	return nil
}

// validPhone strips every non-digit character and requires at least seven
// digits, matching the client-side check.
func validPhone(value string) bool {
	digits := 0
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7
}

func field(form FormValues, key string) string {
	return strings.TrimSpace(form.Get(key))
}
