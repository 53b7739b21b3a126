package notify

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	"github.com/go-mail/mail"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultProductName is shown in the From header and the report footer.
const DefaultProductName = "AnyRouter"

// smtpTimeout bounds each connection attempt.
const smtpTimeout = 30 * time.Second

// EmailConfig holds email notification configuration.
type EmailConfig struct {
	User       string `yaml:"user" env:"EMAIL_USER"`                // login, also the default sender
	Password   string `yaml:"password" env:"EMAIL_PASS"`            // SMTP password or app-specific password
	To         string `yaml:"to" env:"EMAIL_TO"`                    // comma-separated recipient emails
	Sender     string `yaml:"sender" env:"EMAIL_SENDER"`            // optional From address
	SMTPServer string `yaml:"smtp_server" env:"CUSTOM_SMTP_SERVER"` // optional, defaults to smtp.<user domain>
}

// Configured reports whether all required email settings are present.
func (c EmailConfig) Configured() bool {
	return c.User != "" && c.Password != "" && c.To != ""
}

// smtpStrategy is one way of reaching the mail server.
type smtpStrategy struct {
	name        string
	port        int
	implicitTLS bool
}

// smtpStrategies are tried in order until one delivers.
var smtpStrategies = []smtpStrategy{
	{name: "SMTP_SSL", port: 465, implicitTLS: true},
	{name: "STARTTLS", port: 587},
}

type mailDialer interface {
	DialAndSend(m ...*mail.Message) error
}

type dialFunc func(host string, s smtpStrategy, user, password string) mailDialer

func dialSMTP(host string, s smtpStrategy, user, password string) mailDialer {
	d := mail.NewDialer(host, s.port, user, password)
	d.Timeout = smtpTimeout
	d.TLSConfig = &tls.Config{ServerName: host}
	if s.implicitTLS {
		d.SSL = true
	} else {
		d.SSL = false
		d.StartTLSPolicy = mail.MandatoryStartTLS
	}
	return d
}

// EmailNotifier delivers messages over SMTP.
type EmailNotifier struct {
	cfg         EmailConfig
	productName string
	dial        dialFunc
}

// NewEmailNotifier creates an email notifier.
func NewEmailNotifier(cfg EmailConfig, productName string) *EmailNotifier {
	if productName == "" {
		productName = DefaultProductName
	}
	return &EmailNotifier{cfg: cfg, productName: productName, dial: dialSMTP}
}

func (e *EmailNotifier) Channel() Channel { return ChannelEmail }

func (e *EmailNotifier) Configured() bool { return e.cfg.Configured() }

// Send sends content as a plain-text mail.
func (e *EmailNotifier) Send(ctx context.Context, title, content string) error {
	return e.SendAs(ctx, title, content, BodyPlain)
}

// SendAs sends body with the given content kind, trying implicit TLS first and
// STARTTLS second. Only the last strategy's error is returned.
func (e *EmailNotifier) SendAs(ctx context.Context, title, body string, kind BodyKind) error {
	if !e.cfg.Configured() {
		return notConfigured("Email configuration not set", "EMAIL_USER", "EMAIL_PASS", "EMAIL_TO")
	}

	host, err := e.host()
	if err != nil {
		return err
	}
	msg := e.buildMessage(title, body, kind)
	logger := ctxlog.From(ctx)

	var lastErr error
	for _, s := range smtpStrategies {
		if err := ctx.Err(); err != nil {
			lastErr = goerr.Wrap(err, "SMTP send aborted",
				goerr.V("strategy", s.name),
				goerr.T(ErrTagTransport))
			break
		}

		err := e.dial(host, s, e.cfg.User, e.cfg.Password).DialAndSend(msg)
		if err == nil {
			logger.Debug("email sent", "strategy", s.name, "host", host, "port", s.port)
			return nil
		}

		logger.Warn("SMTP strategy failed", "strategy", s.name, "host", host, "port", s.port, "error", err)
		lastErr = goerr.Wrap(err, "SMTP send failed",
			goerr.V("strategy", s.name),
			goerr.V("host", host),
			goerr.V("port", s.port),
			goerr.T(ErrTagTransport))
	}
	return lastErr
}

// host returns the configured server or derives smtp.<domain> from the user
// address. The derived name is a convention and is not checked.
func (e *EmailNotifier) host() (string, error) {
	if e.cfg.SMTPServer != "" {
		return e.cfg.SMTPServer, nil
	}
	_, domain, ok := strings.Cut(e.cfg.User, "@")
	if !ok || domain == "" {
		return "", goerr.New("cannot derive SMTP server from EMAIL_USER, set CUSTOM_SMTP_SERVER",
			goerr.V("user", e.cfg.User),
			goerr.T(ErrTagNotConfigured))
	}
	return "smtp." + domain, nil
}

func (e *EmailNotifier) sender() string {
	if e.cfg.Sender != "" {
		return e.cfg.Sender
	}
	return e.cfg.User
}

func (e *EmailNotifier) buildMessage(title, body string, kind BodyKind) *mail.Message {
	m := mail.NewMessage()
	m.SetAddressHeader("From", e.sender(), e.productName+" Assistant")
	m.SetHeader("To", splitRecipients(e.cfg.To)...)
	m.SetHeader("Subject", title)

	contentType := "text/plain"
	if kind == BodyHTML {
		contentType = "text/html"
	}
	m.SetBody(contentType, body)
	return m
}

func splitRecipients(to string) []string {
	parts := strings.Split(to, ",")
	recipients := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			recipients = append(recipients, p)
		}
	}
	return recipients
}
