package notify

import (
	"context"
	"net/http"
)

const pushPlusEndpoint = "http://www.pushplus.plus/send"

// PushPlusConfig holds PushPlus token configuration.
type PushPlusConfig struct {
	Token string `yaml:"token" env:"PUSHPLUS_TOKEN"`
}

// PushPlusNotifier sends messages through pushplus.plus.
type PushPlusNotifier struct {
	config   PushPlusConfig
	endpoint string
	http     *http.Client
}

// NewPushPlusNotifier creates a new PushPlus notifier.
func NewPushPlusNotifier(cfg PushPlusConfig) *PushPlusNotifier {
	return &PushPlusNotifier{
		config:   cfg,
		endpoint: pushPlusEndpoint,
		http:     newHTTPClient(),
	}
}

func (p *PushPlusNotifier) Channel() Channel { return ChannelPushPlus }

func (p *PushPlusNotifier) Configured() bool { return p.config.Token != "" }

// Send posts the message with the html template so line breaks survive.
func (p *PushPlusNotifier) Send(ctx context.Context, title, content string) error {
	if !p.Configured() {
		return notConfigured("PushPlus Token not configured", "PUSHPLUS_TOKEN")
	}
	payload := map[string]string{
		"token":    p.config.Token,
		"title":    title,
		"content":  content,
		"template": "html",
	}
	return postJSON(ctx, p.http, p.endpoint, payload)
}
