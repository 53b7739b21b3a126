package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// requestTimeout bounds every outbound webhook call.
const requestTimeout = 30 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}

// postJSON issues a single JSON POST.
//
// Only network-level failures are returned. The response status and body are
// not inspected, so an endpoint answering 4xx/5xx still counts as delivered.
func postJSON(ctx context.Context, client *http.Client, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return goerr.Wrap(err, "marshal payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return goerr.Wrap(err, "create request", goerr.T(ErrTagTransport))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return goerr.Wrap(err, "send request", goerr.T(ErrTagTransport))
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		ctxlog.From(ctx).Warn("webhook answered with non-2xx status, treating as delivered",
			"status", resp.StatusCode, "host", req.URL.Host)
	}
	return nil
}
