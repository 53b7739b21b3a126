package notify

import (
	"context"
	"fmt"
	"net/http"
)

const serverChanBaseURL = "https://sctapi.ftqq.com"

// ServerChanConfig holds the Server Push (ServerChan Turbo) send key.
type ServerChanConfig struct {
	SendKey string `yaml:"send_key" env:"SERVERPUSHKEY"`
}

// ServerChanNotifier sends messages through sctapi.ftqq.com.
type ServerChanNotifier struct {
	config  ServerChanConfig
	baseURL string
	http    *http.Client
}

// NewServerChanNotifier creates a new ServerChan notifier.
func NewServerChanNotifier(cfg ServerChanConfig) *ServerChanNotifier {
	return &ServerChanNotifier{
		config:  cfg,
		baseURL: serverChanBaseURL,
		http:    newHTTPClient(),
	}
}

func (s *ServerChanNotifier) Channel() Channel { return ChannelServerChan }

func (s *ServerChanNotifier) Configured() bool { return s.config.SendKey != "" }

func (s *ServerChanNotifier) Send(ctx context.Context, title, content string) error {
	if !s.Configured() {
		return notConfigured("Server Push key not configured", "SERVERPUSHKEY")
	}
	url := fmt.Sprintf("%s/%s.send", s.baseURL, s.config.SendKey)
	return postJSON(ctx, s.http, url, map[string]string{
		"title": title,
		"desp":  content,
	})
}
