package notify

import (
	"context"
	"net/http"
	"net/url"
)

const (
	defaultGotifyPriority = 9
	minGotifyPriority     = 1
	maxGotifyPriority     = 10
)

// GotifyConfig holds Gotify server configuration.
type GotifyConfig struct {
	URL      string `yaml:"url" env:"GOTIFY_URL"` // full message endpoint, e.g. https://host/message
	Token    string `yaml:"token" env:"GOTIFY_TOKEN"`
	Priority int    `yaml:"priority" env:"GOTIFY_PRIORITY"`
}

// GotifyNotifier sends messages to a Gotify server.
type GotifyNotifier struct {
	config GotifyConfig
	http   *http.Client
}

// NewGotifyNotifier creates a new Gotify notifier.
func NewGotifyNotifier(cfg GotifyConfig) *GotifyNotifier {
	return &GotifyNotifier{config: cfg, http: newHTTPClient()}
}

func (g *GotifyNotifier) Channel() Channel { return ChannelGotify }

func (g *GotifyNotifier) Configured() bool {
	return g.config.URL != "" && g.config.Token != ""
}

type gotifyMessage struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority int    `json:"priority"`
}

func (g *GotifyNotifier) Send(ctx context.Context, title, content string) error {
	if !g.Configured() {
		return notConfigured("Gotify URL or Token not configured", "GOTIFY_URL", "GOTIFY_TOKEN")
	}

	target := g.config.URL + "?token=" + url.QueryEscape(g.config.Token)
	return postJSON(ctx, g.http, target, gotifyMessage{
		Title:    title,
		Message:  content,
		Priority: clampPriority(g.config.Priority),
	})
}

func clampPriority(p int) int {
	return max(minGotifyPriority, min(maxGotifyPriority, p))
}
