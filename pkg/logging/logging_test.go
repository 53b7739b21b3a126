package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/RobinCoderZhao/checkin-notify/pkg/logging"
)

func TestParseLevel(t *testing.T) {
	gt.Equal(t, logging.ParseLevel("DEBUG"), slog.LevelDebug)
	gt.Equal(t, logging.ParseLevel(" warning "), slog.LevelWarn)
	gt.Equal(t, logging.ParseLevel("error"), slog.LevelError)
	gt.Equal(t, logging.ParseLevel(""), slog.LevelInfo)
	gt.Equal(t, logging.ParseLevel("verbose"), slog.LevelInfo)
}

func TestParseFormat(t *testing.T) {
	gt.Equal(t, logging.ParseFormat("JSON"), logging.FormatJSON)
	gt.Equal(t, logging.ParseFormat("console"), logging.FormatConsole)
	gt.Equal(t, logging.ParseFormat("text"), logging.FormatConsole)
	gt.Equal(t, logging.ParseFormat(""), logging.FormatAuto)
}

func TestNew_AutoFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(slog.LevelInfo, logging.FormatAuto, &buf)

	logger.Debug("hidden")
	logger.Info("notification sent", "channel", "gotify")

	var rec map[string]any
	gt.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	gt.Equal(t, rec["msg"], any("notification sent"))
	gt.Equal(t, rec["channel"], any("gotify"))
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(slog.LevelDebug, logging.FormatConsole, &buf)
	logger.Debug("email sent", "strategy", "STARTTLS")
	gt.S(t, buf.String()).Contains("email sent")
}
