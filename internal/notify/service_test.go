package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secureitservices/leadgate/internal/leads"
)

type fakeSender struct {
	sent []EmailMessage
	err  error
}

func (f *fakeSender) Send(ctx context.Context, msg EmailMessage) error {
	f.sent = append(f.sent, msg)
	return f.err
}

func sampleLead() *leads.Lead {
	return &leads.Lead{
		Timestamp:         time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC),
		IP:                "203.0.113.7",
		FullName:          "Asha Rao",
		Email:             "asha@example.com",
		Phone:             "+919876543210",
		Service:           "Network Setup",
		PreferredDateTime: "Monday morning",
		Message:           "Need help setting up office network",
		Status:            leads.StatusNew,
	}
}

func TestNotifyRendersBothBodies(t *testing.T) {
	sender := &fakeSender{}
	n := NewLeadNotifier(sender, "staff@secureit.example", "Asia/Kolkata", nil)

	require.NoError(t, n.Notify(context.Background(), sampleLead()))
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, "staff@secureit.example", msg.To)
	assert.Equal(t, "New IT Service Inquiry - Network Setup", msg.Subject)

	// 09:30 UTC is 15:00 IST.
	assert.Contains(t, msg.Body, "Submitted on: 15/06/2025, 3:00:00 pm")
	assert.Contains(t, msg.Body, "Preferred Date/Time: Monday morning")
	assert.Contains(t, msg.Body, "IP Address: 203.0.113.7")

	assert.Contains(t, msg.HTML, `<a href="tel:+919876543210">`)
	assert.Contains(t, msg.HTML, `<a href="https://wa.me/919876543210">WhatsApp</a>`)
	assert.Contains(t, msg.HTML, `<a href="mailto:asha@example.com">`)
}

func TestNotifyOmitsUnspecifiedPreferredTime(t *testing.T) {
	sender := &fakeSender{}
	n := NewLeadNotifier(sender, "staff@secureit.example", "Asia/Kolkata", nil)

	lead := sampleLead()
	lead.PreferredDateTime = leads.NotSpecified
	require.NoError(t, n.Notify(context.Background(), lead))

	msg := sender.sent[0]
	assert.NotContains(t, msg.Body, "Preferred Date/Time")
	assert.NotContains(t, msg.HTML, "Preferred Date/Time")
}

func TestNotifyPropagatesTransportError(t *testing.T) {
	sender := &fakeSender{err: errors.New("relay refused")}
	n := NewLeadNotifier(sender, "staff@secureit.example", "Asia/Kolkata", nil)

	err := n.Notify(context.Background(), sampleLead())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "relay refused"))
}

func TestNotifySkipsWithoutRecipient(t *testing.T) {
	sender := &fakeSender{}
	n := NewLeadNotifier(sender, "", "Asia/Kolkata", nil)

	require.NoError(t, n.Notify(context.Background(), sampleLead()))
	assert.Empty(t, sender.sent)
}

func TestNewLeadNotifierBadTimezoneFallsBack(t *testing.T) {
	sender := &fakeSender{}
	n := NewLeadNotifier(sender, "staff@secureit.example", "Not/AZone", nil)

	require.NoError(t, n.Notify(context.Background(), sampleLead()))
	require.Len(t, sender.sent, 1)
	// UTC fallback keeps the original clock time.
	assert.Contains(t, sender.sent[0].Body, "15/06/2025, 9:30:00 am")
}

func TestStubSenderNeverFails(t *testing.T) {
	s := NewStubEmailSender(nil)
	require.NoError(t, s.Send(context.Background(), EmailMessage{To: "x@example.com", Subject: "s", Body: "b"}))
}

func TestNewSendGridSenderRequiresKey(t *testing.T) {
	if s := NewSendGridSender(SendGridConfig{}, nil); s != nil {
		t.Fatal("expected nil sender without API key")
	}
}

func TestNewSMTPSenderRequiresHostAndUser(t *testing.T) {
	if s := NewSMTPSender(SMTPConfig{Host: "smtp.example.com"}, nil); s != nil {
		t.Fatal("expected nil sender without username")
	}
	if s := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Username: "u", Password: "p"}, nil); s == nil {
		t.Fatal("expected sender with host and username")
	}
}
