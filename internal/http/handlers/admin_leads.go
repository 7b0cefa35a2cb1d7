package handlers

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"sort"
	"time"

	"github.com/secureitservices/leadgate/internal/leads"
	"github.com/secureitservices/leadgate/pkg/logging"
)

const dashboardTimeLayout = "02/01/2006, 15:04"

// AdminLeadsHandler serves the shared-secret-gated lead dashboard and the
// raw CSV export. The secret arrives as a query parameter; on mismatch the
// dashboard renders a password prompt and discloses nothing.
type AdminLeadsHandler struct {
	repo    leads.Repository
	logPath string
	secret  string
	loc     *time.Location
	logger  *logging.Logger
	now     func() time.Time
}

// NewAdminLeadsHandler creates the admin handler. An empty secret disables
// the admin endpoints entirely.
func NewAdminLeadsHandler(repo leads.Repository, logPath, secret, timezone string, logger *logging.Logger) *AdminLeadsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		logger.Warn("invalid dashboard timezone, falling back to UTC", "timezone", timezone, "error", err)
		loc = time.UTC
	}
	return &AdminLeadsHandler{
		repo:    repo,
		logPath: logPath,
		secret:  secret,
		loc:     loc,
		logger:  logger,
		now:     time.Now,
	}
}

// authorized compares the supplied secret in constant time so the check
// leaks no timing signal.
func (h *AdminLeadsHandler) authorized(r *http.Request) bool {
	if h.secret == "" {
		return false
	}
	supplied := r.URL.Query().Get("password")
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(h.secret)) == 1
}

// Dashboard handles GET /admin/leads: the full lead table with aggregate
// counters, newest first.
func (h *AdminLeadsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnauthorized)
		_ = promptTmpl.Execute(w, nil)
		return
	}

	all, err := h.repo.ReadAll(r.Context())
	if err != nil {
		// Render an empty dashboard rather than failing the view; the
		// log may simply be unreadable right now.
		h.logger.Error("failed to read lead log", "error", err)
		all = nil
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp.After(all[j].Timestamp)
	})

	now := h.now().In(h.loc)
	data := dashboardData{
		UpdatedAt:   now.Format("02/01/2006, 3:04:05 pm"),
		DownloadURL: "/admin/leads/download?password=" + url.QueryEscape(r.URL.Query().Get("password")),
	}
	weekAgo := now.AddDate(0, 0, -7)
	for _, lead := range all {
		local := lead.Timestamp.In(h.loc)
		data.Total++
		if sameDay(local, now) {
			data.Today++
		}
		if !local.Before(weekAgo) {
			data.Week++
		}
		data.Rows = append(data.Rows, leadRow{
			When:         local.Format(dashboardTimeLayout),
			Name:         lead.FullName,
			Service:      lead.Service,
			Email:        lead.Email,
			Phone:        lead.Phone,
			Message:      lead.Message,
			Status:       lead.Status,
			TelLink:      template.URL("tel:" + lead.Phone),
			WhatsAppLink: template.URL(leads.WhatsAppLink(lead.Phone)),
			MailLink:     template.URL("mailto:" + lead.Email),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, data); err != nil {
		h.logger.Error("failed to render dashboard", "error", err)
	}
}

// Export handles GET /admin/leads/download: streams the raw log file as a
// dated attachment.
func (h *AdminLeadsHandler) Export(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	f, err := os.Open(h.logPath)
	if errors.Is(err, fs.ErrNotExist) {
		http.Error(w, "No leads data found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to open lead log", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("leads_%s.csv", h.now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := io.Copy(w, f); err != nil {
		h.logger.Error("failed to stream lead log", "error", err)
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
