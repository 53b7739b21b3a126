package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/RobinCoderZhao/checkin-notify/internal/app/config"
)

func TestLoad_EnvOnly(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EMAIL_USER", "bot@example.com")
	t.Setenv("EMAIL_PASS", "secret")
	t.Setenv("EMAIL_TO", "me@example.com")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load(filepath.Join(dir, "missing.yaml"), filepath.Join(dir, "missing.env"))
	gt.NoError(t, err)
	gt.True(t, cfg.Notify.Email.Configured())
	gt.Equal(t, cfg.Notify.Gotify.Priority, 9)
	gt.Equal(t, cfg.Notify.ProductName, "AnyRouter")
	gt.Equal(t, cfg.Log.Level, "debug")
	gt.Equal(t, cfg.Log.Format, "auto")
}

func TestLoad_FileDotEnvAndEnv(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "checkin-notify.yaml")
	gt.NoError(t, os.WriteFile(yamlPath, []byte(`
notify:
  product_name: Acme
  gotify:
    url: https://gotify.example/message
    priority: 4
history_db: /tmp/history.db
`), 0o600))

	envPath := filepath.Join(dir, ".env")
	gt.NoError(t, os.WriteFile(envPath, []byte("GOTIFY_TOKEN=from-dotenv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("GOTIFY_TOKEN") })
	t.Setenv("GOTIFY_PRIORITY", "7")

	cfg, err := config.Load(yamlPath, envPath)
	gt.NoError(t, err)
	gt.Equal(t, cfg.Notify.ProductName, "Acme")
	gt.Equal(t, cfg.Notify.Gotify.URL, "https://gotify.example/message")
	gt.Equal(t, cfg.Notify.Gotify.Token, "from-dotenv")
	gt.Equal(t, cfg.Notify.Gotify.Priority, 7)
	gt.Equal(t, cfg.HistoryDB, "/tmp/history.db")
}
