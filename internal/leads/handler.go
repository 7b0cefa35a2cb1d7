package leads

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/secureitservices/leadgate/internal/observability/metrics"
	"github.com/secureitservices/leadgate/pkg/logging"
)

const confirmationMessage = "Thank you for your inquiry! We will contact you within 2 hours."

const notifyTimeout = 15 * time.Second

// Notifier delivers a best-effort staff notification for an accepted lead.
type Notifier interface {
	Notify(ctx context.Context, lead *Lead) error
}

// SubmissionResponse is the JSON envelope for the contact endpoint.
type SubmissionResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Errors  []string        `json:"errors,omitempty"`
	Data    *SubmissionData `json:"data,omitempty"`
}

// SubmissionData carries the follow-up affordances returned on success.
type SubmissionData struct {
	WhatsAppURL string `json:"whatsappUrl"`
}

// Handler handles contact-form submissions.
type Handler struct {
	repo           Repository
	notifier       Notifier
	metrics        *metrics.IntakeMetrics
	logger         *logging.Logger
	whatsAppNumber string
}

// NewHandler creates the intake handler. notifier and m may be nil.
func NewHandler(repo Repository, notifier Notifier, m *metrics.IntakeMetrics, logger *logging.Logger, whatsAppNumber string) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:           repo,
		notifier:       notifier,
		metrics:        m,
		logger:         logger,
		whatsAppNumber: whatsAppNumber,
	}
}

// Submit handles POST /api/contact: rate limiting has already been applied
// by middleware; this validates, sanitizes, persists and notifies. Storage
// and notification failures are degraded-mode conditions and never change
// the client-visible outcome.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSubmission(r)
	if err != nil {
		h.logger.Error("failed to decode submission", "error", err)
		h.metrics.ObserveSubmission(metrics.OutcomeInvalid)
		writeJSON(w, http.StatusBadRequest, SubmissionResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		h.metrics.ObserveSubmission(metrics.OutcomeInvalid)
		writeJSON(w, http.StatusBadRequest, SubmissionResponse{
			Success: false,
			Message: "Validation errors",
			Errors:  errs,
		})
		return
	}

	clean := req.Sanitize()
	lead := &Lead{
		IP:                clientAddress(r),
		FullName:          clean.FullName,
		Email:             clean.Email,
		Phone:             clean.Phone,
		Service:           clean.Service,
		PreferredDateTime: clean.PreferredDateTime,
		Message:           clean.Message,
		Status:            StatusNew,
	}

	if err := h.repo.Append(r.Context(), lead); err != nil {
		// Durability degradation is not a user error; the submission is
		// still accepted.
		h.logger.Error("failed to append lead", "error", err, "email", lead.Email)
		h.metrics.ObserveAppendFailure()
	}

	if h.notifier != nil {
		go h.dispatchNotification(lead)
	}

	h.logger.Info("lead accepted", "service", lead.Service, "ip", lead.IP)
	h.metrics.ObserveSubmission(metrics.OutcomeAccepted)

	writeJSON(w, http.StatusOK, SubmissionResponse{
		Success: true,
		Message: confirmationMessage,
		Data: &SubmissionData{
			WhatsAppURL: WhatsAppIntroLink(h.whatsAppNumber, clean.Service, clean.FullName),
		},
	})
}

// dispatchNotification runs outside the request lifecycle so the submitter
// never waits on the email transport.
func (h *Handler) dispatchNotification(lead *Lead) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := h.notifier.Notify(ctx, lead); err != nil {
		h.logger.Error("lead notification failed", "error", err, "email", lead.Email)
		h.metrics.ObserveNotifyFailure()
	}
}

// decodeSubmission accepts either a JSON or form-encoded body.
func decodeSubmission(r *http.Request) (SubmissionRequest, error) {
	var req SubmissionRequest

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseForm(); err != nil {
			return req, err
		}
		req.FullName = r.PostFormValue("fullName")
		req.Email = r.PostFormValue("email")
		req.Phone = r.PostFormValue("phone")
		req.Service = r.PostFormValue("service")
		req.PreferredDateTime = r.PostFormValue("preferredDateTime")
		req.Message = r.PostFormValue("message")
		req.Consent = formConsent(r.PostFormValue("consent"))
		return req, nil
	}

	err := json.NewDecoder(r.Body).Decode(&req)
	return req, err
}

func formConsent(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}

// clientAddress returns the submitting client's address, best effort. The
// RealIP middleware has already folded X-Real-Ip into RemoteAddr.
func clientAddress(r *http.Request) string {
	addr := r.RemoteAddr
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	if addr == "" {
		return "Unknown"
	}
	return addr
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
