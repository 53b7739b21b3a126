package notify

import (
	"context"
	"net/http"
)

// FeishuConfig holds the Feishu (Lark) custom bot webhook.
type FeishuConfig struct {
	Webhook string `yaml:"webhook" env:"FEISHU_WEBHOOK"`
}

type feishuText struct {
	Content string `json:"content"`
	Tag     string `json:"tag"`
}

type feishuElement struct {
	Tag       string `json:"tag"`
	Content   string `json:"content"`
	TextAlign string `json:"text_align"`
}

type feishuCard struct {
	Elements []feishuElement `json:"elements"`
	Header   struct {
		Template string     `json:"template"`
		Title    feishuText `json:"title"`
	} `json:"header"`
}

type feishuMessage struct {
	MsgType string     `json:"msg_type"`
	Card    feishuCard `json:"card"`
}

// FeishuNotifier sends an interactive card with a markdown body.
type FeishuNotifier struct {
	config FeishuConfig
	http   *http.Client
}

// NewFeishuNotifier creates a new Feishu notifier.
func NewFeishuNotifier(cfg FeishuConfig) *FeishuNotifier {
	return &FeishuNotifier{config: cfg, http: newHTTPClient()}
}

func (f *FeishuNotifier) Channel() Channel { return ChannelFeishu }

func (f *FeishuNotifier) Configured() bool { return f.config.Webhook != "" }

func (f *FeishuNotifier) Send(ctx context.Context, title, content string) error {
	if !f.Configured() {
		return notConfigured("Feishu Webhook not configured", "FEISHU_WEBHOOK")
	}

	msg := feishuMessage{MsgType: "interactive"}
	msg.Card.Elements = []feishuElement{{Tag: "markdown", Content: content, TextAlign: "left"}}
	msg.Card.Header.Template = "blue"
	msg.Card.Header.Title = feishuText{Content: title, Tag: "plain_text"}

	return postJSON(ctx, f.http, f.config.Webhook, msg)
}
