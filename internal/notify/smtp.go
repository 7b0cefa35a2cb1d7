package notify

import (
	"context"
	"fmt"

	"github.com/secureitservices/leadgate/pkg/logging"
	"gopkg.in/gomail.v2"
)

// SMTPConfig holds the SMTP relay settings.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// SMTPSender sends email through a plain SMTP relay via gomail. This is the
// default transport; SendGrid is available for deployments without a relay.
type SMTPSender struct {
	cfg    SMTPConfig
	logger *logging.Logger
}

// NewSMTPSender creates a new SMTP email sender. Returns nil when no host
// or credentials are configured.
func NewSMTPSender(cfg SMTPConfig, logger *logging.Logger) *SMTPSender {
	if cfg.Host == "" || cfg.Username == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.FromEmail == "" {
		cfg.FromEmail = cfg.Username
	}
	return &SMTPSender{cfg: cfg, logger: logger}
}

// Send dials the relay and delivers the message. The dial-and-send runs in
// its own goroutine so the context deadline is honored even while blocked
// inside the SMTP handshake.
func (s *SMTPSender) Send(ctx context.Context, msg EmailMessage) error {
	m := gomail.NewMessage()
	if s.cfg.FromName != "" {
		m.SetAddressHeader("From", s.cfg.FromEmail, s.cfg.FromName)
	} else {
		m.SetHeader("From", s.cfg.FromEmail)
	}
	if msg.ToName != "" {
		m.SetAddressHeader("To", msg.To, msg.ToName)
	} else {
		m.SetHeader("To", msg.To)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	done := make(chan error, 1)
	go func() {
		done <- d.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			s.logger.Error("smtp send failed", "error", err, "to", msg.To)
			return fmt.Errorf("notify: smtp send failed: %w", err)
		}
		s.logger.Info("email sent via smtp", "to", msg.To, "subject", msg.Subject)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
