package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type AppConfig struct {
	// DatasetPath is a local file path or an http(s) URL.
	DatasetPath string

	Port string

	LogLevel  string
	LogFormat string // text or json

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// FetchTimeout bounds the dataset download when DatasetPath is a URL.
	FetchTimeout time.Duration

	// ReportInterval controls how often binding usage is logged (0 = never).
	ReportInterval time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.DatasetPath = getenvDefault("DATASET_PATH", "weatherHistory.csv")
	cfg.Port = getenvDefault("PORT", "5000")
	if err := ValidatePort(cfg.Port); err != nil {
		return nil, err
	}

	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")
	cfg.LogFormat = getenvDefault("LOG_FORMAT", "text")
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want text or json", cfg.LogFormat)
	}

	durations := []struct {
		key string
		def string
		dst *time.Duration
	}{
		{"READ_TIMEOUT", "10s", &cfg.ReadTimeout},
		{"WRITE_TIMEOUT", "10s", &cfg.WriteTimeout},
		{"SHUTDOWN_TIMEOUT", "10s", &cfg.ShutdownTimeout},
		{"FETCH_TIMEOUT", "30s", &cfg.FetchTimeout},
		{"REPORT_INTERVAL", "15m", &cfg.ReportInterval},
	}
	for _, d := range durations {
		v, err := getenvDuration(d.key, d.def)
		if err != nil {
			return nil, err
		}
		*d.dst = v
	}

	return cfg, nil
}

// ValidatePort checks that port is a number in the TCP port range.
func ValidatePort(port string) error {
	n, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}
	if n < 0 || n > 65535 {
		return fmt.Errorf("invalid PORT %d: out of range", n)
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return d, nil
}
