package notify

import (
	"github.com/m-mizutani/goerr/v2"
)

// Error tags attached to every error a notifier returns.
var (
	// ErrTagNotConfigured marks a missing required setting. No network I/O
	// was attempted.
	ErrTagNotConfigured = goerr.NewTag("not_configured")
	// ErrTagTransport marks a connection, TLS, authentication or send failure.
	ErrTagTransport = goerr.NewTag("transport")
)

func notConfigured(msg string, settings ...string) error {
	return goerr.New(msg,
		goerr.V("settings", settings),
		goerr.T(ErrTagNotConfigured))
}

// IsNotConfigured reports whether err was caused by missing channel settings.
func IsNotConfigured(err error) bool {
	return goerr.HasTag(err, ErrTagNotConfigured)
}

// IsTransport reports whether err was caused by talking to the remote service.
func IsTransport(err error) bool {
	return goerr.HasTag(err, ErrTagTransport)
}
