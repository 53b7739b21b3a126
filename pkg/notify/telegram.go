package notify

import (
	"context"
	"fmt"
	"net/http"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramConfig holds Telegram bot configuration.
type TelegramConfig struct {
	BotToken string `yaml:"bot_token" env:"TELEGRAM_BOT_TOKEN"`
	ChatID   string `yaml:"chat_id" env:"TELEGRAM_CHAT_ID"`
}

// TelegramNotifier sends messages via Telegram Bot API.
type TelegramNotifier struct {
	config  TelegramConfig
	apiBase string
	http    *http.Client
}

// NewTelegramNotifier creates a new Telegram notifier.
func NewTelegramNotifier(cfg TelegramConfig) *TelegramNotifier {
	return &TelegramNotifier{
		config:  cfg,
		apiBase: telegramAPIBase,
		http:    newHTTPClient(),
	}
}

func (t *TelegramNotifier) Channel() Channel { return ChannelTelegram }

func (t *TelegramNotifier) Configured() bool {
	return t.config.BotToken != "" && t.config.ChatID != ""
}

// Send sends a message via Telegram with the title in bold.
func (t *TelegramNotifier) Send(ctx context.Context, title, content string) error {
	if !t.Configured() {
		return notConfigured("Telegram Bot Token or Chat ID not configured", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID")
	}

	payload := map[string]string{
		"chat_id":    t.config.ChatID,
		"text":       fmt.Sprintf("<b>%s</b>\n\n%s", title, content),
		"parse_mode": "HTML",
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.config.BotToken)
	return postJSON(ctx, t.http, url, payload)
}
