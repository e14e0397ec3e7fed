package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"DATASET_PATH", "PORT", "LOG_LEVEL", "LOG_FORMAT", "READ_TIMEOUT", "WRITE_TIMEOUT", "SHUTDOWN_TIMEOUT", "FETCH_TIMEOUT", "REPORT_INTERVAL"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, &AppConfig{
		DatasetPath:     "weatherHistory.csv",
		Port:            "5000",
		LogLevel:        "info",
		LogFormat:       "text",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		FetchTimeout:    30 * time.Second,
		ReportInterval:  15 * time.Minute,
	}, cfg)
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATASET_PATH", "https://example.com/weatherHistory.csv")
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("REPORT_INTERVAL", "0")
	t.Setenv("FETCH_TIMEOUT", "2m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/weatherHistory.csv", cfg.DatasetPath)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Zero(t, cfg.ReportInterval)
	assert.Equal(t, 2*time.Minute, cfg.FetchTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"port":            {"PORT", "http"},
		"log format":      {"LOG_FORMAT", "xml"},
		"duration":        {"READ_TIMEOUT", "soon"},
		"negative":        {"SHUTDOWN_TIMEOUT", "-1s"},
		"report interval": {"REPORT_INTERVAL", "daily"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.ErrorContains(t, err, "invalid")
		})
	}
}

func TestValidatePort(t *testing.T) {
	assert.NoError(t, ValidatePort("5000"))
	assert.NoError(t, ValidatePort("0"))
	for _, port := range []string{"", "abc", "80a", "-1", "70000"} {
		assert.ErrorContains(t, ValidatePort(port), "invalid PORT", port)
	}
}
