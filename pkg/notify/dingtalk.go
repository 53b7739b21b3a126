package notify

import (
	"context"
	"net/http"
)

// DingTalkConfig holds the DingTalk robot webhook.
type DingTalkConfig struct {
	Webhook string `yaml:"webhook" env:"DINGDING_WEBHOOK"`
}

// textMessage is the plain text robot payload shared by DingTalk and WeCom.
type textMessage struct {
	MsgType string `json:"msgtype"`
	Text    struct {
		Content string `json:"content"`
	} `json:"text"`
}

func newTextMessage(title, content string) textMessage {
	var m textMessage
	m.MsgType = "text"
	m.Text.Content = title + "\n" + content
	return m
}

// DingTalkNotifier posts to a DingTalk group robot.
type DingTalkNotifier struct {
	config DingTalkConfig
	http   *http.Client
}

// NewDingTalkNotifier creates a new DingTalk notifier.
func NewDingTalkNotifier(cfg DingTalkConfig) *DingTalkNotifier {
	return &DingTalkNotifier{config: cfg, http: newHTTPClient()}
}

func (d *DingTalkNotifier) Channel() Channel { return ChannelDingTalk }

func (d *DingTalkNotifier) Configured() bool { return d.config.Webhook != "" }

func (d *DingTalkNotifier) Send(ctx context.Context, title, content string) error {
	if !d.Configured() {
		return notConfigured("DingTalk Webhook not configured", "DINGDING_WEBHOOK")
	}
	return postJSON(ctx, d.http, d.config.Webhook, newTextMessage(title, content))
}
