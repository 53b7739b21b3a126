// Package config provides the checkin-notify application configuration.
package config

import (
	"github.com/RobinCoderZhao/checkin-notify/pkg/notify"
	appconfig "github.com/RobinCoderZhao/checkin-notify/pkg/config"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "checkin-notify.yaml"

// AppConfig is the full configuration of the CLI.
type AppConfig struct {
	Notify notify.Config `yaml:"notify"`
	Log    LogConfig     `yaml:"log"`
	// MetricsTextfile, when set, receives push counters in Prometheus text format.
	MetricsTextfile string `yaml:"metrics_textfile" env:"METRICS_TEXTFILE"`
	// HistoryDB, when set, stores every push in a SQLite file.
	HistoryDB string `yaml:"history_db" env:"HISTORY_DB"`
}

// LogConfig controls log output.
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`   // debug, info, warn, error
	Format string `yaml:"format" env:"LOG_FORMAT"` // auto, console, json
}

// DefaultConfig returns an AppConfig with every channel disabled.
func DefaultConfig() AppConfig {
	return AppConfig{
		Notify: notify.DefaultConfig(),
		Log:    LogConfig{Level: "info", Format: "auto"},
	}
}

// Load reads .env files, then the YAML file at path (optional), then the
// process environment. path == "" uses DefaultPath.
func Load(path string, dotenv ...string) (AppConfig, error) {
	cfg := DefaultConfig()

	if err := appconfig.LoadDotEnv(dotenv...); err != nil {
		return cfg, err
	}
	if path == "" {
		path = DefaultPath
	}
	if err := appconfig.LoadOrDefault(path, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Notify.ProductName == "" {
		cfg.Notify.ProductName = notify.DefaultProductName
	}
	return cfg, nil
}
