package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/rapidcleanouts/landing/internal/leads"
	"github.com/rapidcleanouts/landing/internal/observability/metrics"
	"github.com/rapidcleanouts/landing/internal/uploads"
	"github.com/rapidcleanouts/landing/pkg/logging"
)

// maxFormMemory is the in-memory threshold for multipart parsing; larger
// files spill to temp disk.
const maxFormMemory = 10 << 20

type photoStore interface {
	Save(file multipart.File, header *multipart.FileHeader) (string, error)
	PublicURL(r *http.Request, filename string) string
}

type pipeline interface {
	Process(ctx context.Context, lead leads.Lead) ([]string, error)
}

// LeadIntakeHandler handles POST /api/lead: it parses the multipart
// submission, short-circuits spam, stores the photo, validates the lead, and
// runs the pipeline.
type LeadIntakeHandler struct {
	store   photoStore
	service pipeline
	metrics *metrics.LeadMetrics
	logger  *logging.Logger
}

// NewLeadIntakeHandler creates the lead intake handler.
func NewLeadIntakeHandler(store photoStore, service pipeline, m *metrics.LeadMetrics, logger *logging.Logger) *LeadIntakeHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadIntakeHandler{
		store:   store,
		service: service,
		metrics: m,
		logger:  logger,
	}
}

// Submit processes one estimate-request submission. Exactly one response is
// produced per request; there are no retries and no queued resubmission.
func (h *LeadIntakeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	// Photo limit plus slack for the text fields.
	r.Body = http.MaxBytesReader(w, r.Body, uploads.MaxPhotoBytes+1<<20)

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		h.logger.Error("multipart parse failed", "error", err)
		h.metrics.ObserveSubmission(metrics.OutcomeRejected)
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("The uploaded photo exceeds the %d MiB size limit.", uploads.MaxPhotoBytes>>20))
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid form submission.")
		return
	}

	// Honeypot short-circuit: respond with a success shape so spam senders
	// gain no signal, and persist nothing.
	if strings.TrimSpace(r.FormValue("website")) != "" {
		h.logger.Info("honeypot triggered", "remote_ip", r.RemoteAddr)
		h.metrics.ObserveSubmission(metrics.OutcomeSpam)
		writeJSON(w, http.StatusAccepted, map[string]bool{"ok": true})
		return
	}

	photoURL, ok := h.storePhoto(w, r)
	if !ok {
		return
	}

	lead := leads.FromForm(r.Form, photoURL)

	if err := lead.Validate(); err != nil {
		h.metrics.ObserveSubmission(metrics.OutcomeRejected)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.Info("incoming lead",
		"name", lead.FullName(),
		"phone", lead.Phone,
		"email", lead.Email,
		"city", lead.City,
		"state", lead.State,
		"zip", lead.Zip,
		"timeline", lead.Timeline,
		"photo_url", lead.PhotoURL,
	)

	warnings, err := h.service.Process(r.Context(), lead)
	if err != nil {
		h.logger.Error("lead submission failed", "error", err)
		h.metrics.ObserveSubmission(metrics.OutcomeSinkError)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.metrics.ObserveSubmission(metrics.OutcomeAccepted)
	writeJSON(w, http.StatusCreated, acceptedResponse{
		OK:       true,
		PhotoURL: lead.PhotoURL,
		Warnings: warnings,
	})
}

// storePhoto persists the attached photo, if any, and returns its public
// URL. A store rejection (wrong type, too large) fails the submission before
// a Lead is constructed. A missing file yields an empty URL; the required
// check happens in validation.
func (h *LeadIntakeHandler) storePhoto(w http.ResponseWriter, r *http.Request) (string, bool) {
	file, header, err := r.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return "", true
	}
	if err != nil {
		h.metrics.ObserveSubmission(metrics.OutcomeRejected)
		writeError(w, http.StatusBadRequest, "Could not read the uploaded photo.")
		return "", false
	}
	defer file.Close()

	name, err := h.store.Save(file, header)
	if err != nil {
		h.metrics.ObserveSubmission(metrics.OutcomeRejected)
		writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return h.store.PublicURL(r, name), true
}

type acceptedResponse struct {
	OK       bool     `json:"ok"`
	PhotoURL string   `json:"photoUrl"`
	Warnings []string `json:"warnings"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
