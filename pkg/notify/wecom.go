package notify

import (
	"context"
	"net/http"
)

// WeComConfig holds the WeChat Work group robot webhook.
type WeComConfig struct {
	Webhook string `yaml:"webhook" env:"WEIXIN_WEBHOOK"`
}

// WeComNotifier posts to a WeChat Work group robot.
type WeComNotifier struct {
	config WeComConfig
	http   *http.Client
}

// NewWeComNotifier creates a new WeChat Work notifier.
func NewWeComNotifier(cfg WeComConfig) *WeComNotifier {
	return &WeComNotifier{config: cfg, http: newHTTPClient()}
}

func (w *WeComNotifier) Channel() Channel { return ChannelWeCom }

func (w *WeComNotifier) Configured() bool { return w.config.Webhook != "" }

func (w *WeComNotifier) Send(ctx context.Context, title, content string) error {
	if !w.Configured() {
		return notConfigured("WeChat Work Webhook not configured", "WEIXIN_WEBHOOK")
	}
	return postJSON(ctx, w.http, w.config.Webhook, newTextMessage(title, content))
}
