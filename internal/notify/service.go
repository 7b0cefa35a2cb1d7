package notify

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/secureitservices/leadgate/internal/leads"
	"github.com/secureitservices/leadgate/pkg/logging"
)

const submittedAtLayout = "02/01/2006, 3:04:05 pm"

// LeadNotifier renders and sends the staff notification for a new lead. The
// send is best effort: callers dispatch it outside the request lifecycle
// and a transport failure never reaches the submitter.
type LeadNotifier struct {
	sender EmailSender
	to     string
	loc    *time.Location
	logger *logging.Logger
}

// NewLeadNotifier creates a notifier addressing the fixed staff recipient.
// Timestamps in the rendered message use the given IANA timezone.
func NewLeadNotifier(sender EmailSender, to, timezone string, logger *logging.Logger) *LeadNotifier {
	if logger == nil {
		logger = logging.Default()
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		logger.Warn("invalid notifier timezone, falling back to UTC", "timezone", timezone, "error", err)
		loc = time.UTC
	}
	return &LeadNotifier{sender: sender, to: to, loc: loc, logger: logger}
}

// Notify sends both a plain-text and an HTML rendering of the lead to the
// staff recipient.
func (n *LeadNotifier) Notify(ctx context.Context, lead *leads.Lead) error {
	if n.sender == nil || n.to == "" {
		n.logger.Debug("notify: no email recipient configured, skipping")
		return nil
	}

	msg := EmailMessage{
		To:      n.to,
		Subject: "New IT Service Inquiry - " + lead.Service,
		Body:    n.textBody(lead),
		HTML:    n.htmlBody(lead),
	}
	if err := n.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: send lead email: %w", err)
	}
	return nil
}

func (n *LeadNotifier) submittedAt(lead *leads.Lead) string {
	return lead.Timestamp.In(n.loc).Format(submittedAtLayout)
}

func (n *LeadNotifier) textBody(lead *leads.Lead) string {
	var b strings.Builder
	b.WriteString("New IT Service Inquiry\n\n")
	fmt.Fprintf(&b, "Service: %s\n", lead.Service)
	fmt.Fprintf(&b, "Name: %s\n", lead.FullName)
	fmt.Fprintf(&b, "Email: %s\n", lead.Email)
	fmt.Fprintf(&b, "Phone: %s\n", lead.Phone)
	if lead.PreferredDateTime != "" && lead.PreferredDateTime != leads.NotSpecified {
		fmt.Fprintf(&b, "Preferred Date/Time: %s\n", lead.PreferredDateTime)
	}
	fmt.Fprintf(&b, "\nMessage:\n%s\n\n", lead.Message)
	fmt.Fprintf(&b, "Submitted on: %s\n", n.submittedAt(lead))
	fmt.Fprintf(&b, "IP Address: %s\n", lead.IP)
	return b.String()
}

func (n *LeadNotifier) htmlBody(lead *leads.Lead) string {
	esc := html.EscapeString
	var b strings.Builder
	b.WriteString("<h2>New Contact Form Submission</h2>")
	fmt.Fprintf(&b, "<p><strong>Service:</strong> %s</p>", esc(lead.Service))
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>", esc(lead.FullName))
	fmt.Fprintf(&b, `<p><strong>Email:</strong> <a href="mailto:%s">%s</a></p>`, esc(lead.Email), esc(lead.Email))
	fmt.Fprintf(&b, `<p><strong>Phone:</strong> <a href="tel:%s">%s</a></p>`, esc(lead.Phone), esc(lead.Phone))
	if lead.PreferredDateTime != "" && lead.PreferredDateTime != leads.NotSpecified {
		fmt.Fprintf(&b, "<p><strong>Preferred Date/Time:</strong> %s</p>", esc(lead.PreferredDateTime))
	}
	fmt.Fprintf(&b, "<p><strong>Message:</strong></p><p>%s</p>", esc(lead.Message))
	b.WriteString("<hr>")
	fmt.Fprintf(&b, "<p><small>Submitted on: %s</small></p>", esc(n.submittedAt(lead)))
	fmt.Fprintf(&b, "<p><small>IP Address: %s</small></p>", esc(lead.IP))
	b.WriteString("<h3>Quick Actions:</h3><p>")
	fmt.Fprintf(&b, `<a href="tel:%s">Call %s</a> `, esc(lead.Phone), esc(lead.FullName))
	fmt.Fprintf(&b, `<a href="%s">WhatsApp</a>`, esc(leads.WhatsAppLink(lead.Phone)))
	b.WriteString("</p>")
	return b.String()
}
