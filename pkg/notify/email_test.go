package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/go-mail/mail"
	"github.com/m-mizutani/gt"
)

type dialAttempt struct {
	host        string
	port        int
	implicitTLS bool
	user        string
}

type fakeDialer struct {
	err  error
	sent *[]*mail.Message
}

func (f fakeDialer) DialAndSend(m ...*mail.Message) error {
	if f.err != nil {
		return f.err
	}
	*f.sent = append(*f.sent, m...)
	return nil
}

// newTestEmail returns a notifier whose dialer fails for the listed ports.
func newTestEmail(cfg EmailConfig, failPorts map[int]error) (*EmailNotifier, *[]dialAttempt, *[]*mail.Message) {
	var attempts []dialAttempt
	var sent []*mail.Message
	n := NewEmailNotifier(cfg, "")
	n.dial = func(host string, s smtpStrategy, user, password string) mailDialer {
		attempts = append(attempts, dialAttempt{host: host, port: s.port, implicitTLS: s.implicitTLS, user: user})
		return fakeDialer{err: failPorts[s.port], sent: &sent}
	}
	return n, &attempts, &sent
}

var testEmailConfig = EmailConfig{
	User:     "bot@example.com",
	Password: "secret",
	To:       "a@example.com, b@example.com",
}

func TestEmail_ImplicitTLSFirst(t *testing.T) {
	n, attempts, sent := newTestEmail(testEmailConfig, nil)

	gt.NoError(t, n.Send(context.Background(), "subject", "body"))
	gt.A(t, *attempts).Length(1)
	gt.Equal(t, (*attempts)[0], dialAttempt{host: "smtp.example.com", port: 465, implicitTLS: true, user: "bot@example.com"})
	gt.A(t, *sent).Length(1)
}

func TestEmail_FallsBackToStartTLS(t *testing.T) {
	n, attempts, sent := newTestEmail(testEmailConfig, map[int]error{465: errors.New("connection reset")})

	gt.NoError(t, n.Send(context.Background(), "subject", "body"))
	gt.A(t, *attempts).Length(2)
	gt.Equal(t, (*attempts)[0].port, 465)
	gt.Equal(t, (*attempts)[1].port, 587)
	gt.False(t, (*attempts)[1].implicitTLS)
	gt.A(t, *sent).Length(1)
}

func TestEmail_BothStrategiesFail(t *testing.T) {
	n, attempts, _ := newTestEmail(testEmailConfig, map[int]error{
		465: errors.New("ssl refused"),
		587: errors.New("auth rejected"),
	})

	err := n.Send(context.Background(), "subject", "body")
	gt.Error(t, err)
	gt.A(t, *attempts).Length(2)
	gt.True(t, IsTransport(err))
	gt.S(t, err.Error()).Contains("auth rejected")
	gt.False(t, bytes.Contains([]byte(err.Error()), []byte("ssl refused")))
}

func TestEmail_NotConfigured(t *testing.T) {
	for _, cfg := range []EmailConfig{
		{},
		{User: "bot@example.com", Password: "secret"},
		{User: "bot@example.com", To: "a@example.com"},
		{Password: "secret", To: "a@example.com"},
	} {
		n, attempts, _ := newTestEmail(cfg, nil)
		err := n.Send(context.Background(), "subject", "body")
		gt.Error(t, err)
		gt.True(t, IsNotConfigured(err))
		gt.S(t, err.Error()).Contains("Email configuration not set")
		gt.A(t, *attempts).Length(0)
		gt.False(t, n.Configured())
	}
}

func TestEmail_Host(t *testing.T) {
	cfg := testEmailConfig
	cfg.SMTPServer = "mail.internal"
	n, attempts, _ := newTestEmail(cfg, nil)
	gt.NoError(t, n.Send(context.Background(), "s", "b"))
	gt.Equal(t, (*attempts)[0].host, "mail.internal")

	cfg = testEmailConfig
	cfg.User = "no-at-sign"
	n, attempts, _ = newTestEmail(cfg, nil)
	err := n.Send(context.Background(), "s", "b")
	gt.True(t, IsNotConfigured(err))
	gt.A(t, *attempts).Length(0)
}

func TestEmail_CancelledContext(t *testing.T) {
	n, attempts, _ := newTestEmail(testEmailConfig, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := n.Send(ctx, "s", "b")
	gt.True(t, IsTransport(err))
	gt.A(t, *attempts).Length(0)
}

func TestEmail_Message(t *testing.T) {
	cfg := testEmailConfig
	cfg.Sender = "noreply@example.com"
	n, _, sent := newTestEmail(cfg, nil)

	gt.NoError(t, n.SendAs(context.Background(), "Daily check-in", "<p>ok</p>", BodyHTML))
	gt.A(t, *sent).Length(1)

	msg := (*sent)[0]
	gt.Equal(t, msg.GetHeader("Subject"), []string{"Daily check-in"})
	gt.Equal(t, msg.GetHeader("To"), []string{"a@example.com", "b@example.com"})

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	gt.NoError(t, err)
	raw := buf.String()
	gt.S(t, raw).Contains(`"AnyRouter Assistant" <noreply@example.com>`)
	gt.S(t, raw).Contains("text/html")
}

func TestSplitRecipients(t *testing.T) {
	gt.Equal(t, splitRecipients(" a@x.com ,, b@y.com,"), []string{"a@x.com", "b@y.com"})
	gt.A(t, splitRecipients("")).Length(0)
}
