package notify

import (
	"context"
	"net/http"
)

// WebhookConfig holds generic webhook configuration.
type WebhookConfig struct {
	URL     string            `yaml:"url" json:"url" env:"WEBHOOK_URL"`
	Headers map[string]string `yaml:"headers" json:"headers"`
}

// WebhookNotifier sends notifications to a webhook URL.
type WebhookNotifier struct {
	config WebhookConfig
	http   *http.Client
}

// NewWebhookNotifier creates a new webhook notifier.
func NewWebhookNotifier(cfg WebhookConfig) *WebhookNotifier {
	return &WebhookNotifier{config: cfg, http: newHTTPClient()}
}

func (w *WebhookNotifier) Channel() Channel { return ChannelWebhook }

func (w *WebhookNotifier) Configured() bool { return w.config.URL != "" }

// Send sends a message to the webhook URL.
func (w *WebhookNotifier) Send(ctx context.Context, title, content string) error {
	if !w.Configured() {
		return notConfigured("Webhook URL not configured", "WEBHOOK_URL")
	}
	payload := map[string]string{
		"title":  title,
		"body":   content,
		"format": string(BodyPlain),
	}
	client := w.http
	if len(w.config.Headers) > 0 {
		client = withHeaders(w.http, w.config.Headers)
	}
	return postJSON(ctx, client, w.config.URL, payload)
}

// headerTransport adds fixed headers to every request.
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (h *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range h.headers {
		req.Header.Set(k, v)
	}
	return h.base.RoundTrip(req)
}

func withHeaders(c *http.Client, headers map[string]string) *http.Client {
	base := c.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	clone := *c
	clone.Transport = &headerTransport{base: base, headers: headers}
	return &clone
}
