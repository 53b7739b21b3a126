package notify

import (
	"context"
	"net/http"

	"github.com/slack-go/slack"
)

// SlackConfig holds a Slack incoming webhook.
type SlackConfig struct {
	Webhook string `yaml:"webhook" env:"SLACK_WEBHOOK"`
}

// SlackNotifier posts to a Slack incoming webhook.
type SlackNotifier struct {
	config SlackConfig
	http   *http.Client
}

// NewSlackNotifier creates a new Slack notifier.
func NewSlackNotifier(cfg SlackConfig) *SlackNotifier {
	return &SlackNotifier{config: cfg, http: newHTTPClient()}
}

func (s *SlackNotifier) Channel() Channel { return ChannelSlack }

func (s *SlackNotifier) Configured() bool { return s.config.Webhook != "" }

// Send posts the title in bold followed by the content. Unlike
// slack.PostWebhook, the response status is not checked.
func (s *SlackNotifier) Send(ctx context.Context, title, content string) error {
	if !s.Configured() {
		return notConfigured("Slack Webhook not configured", "SLACK_WEBHOOK")
	}
	msg := &slack.WebhookMessage{
		Text: "*" + title + "*\n" + content,
	}
	return postJSON(ctx, s.http, s.config.Webhook, msg)
}
