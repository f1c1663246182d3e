package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigWithDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, SourceModeSample, cfg.SourceMode)
	assert.Equal(t, "https://data-argo.ifremer.fr/api/v1", cfg.GlobalSourceURL)
	assert.Equal(t, "https://incois.gov.in/argo-api", cfg.RegionalSourceURL)
	assert.Equal(t, 5.0, cfg.SourceRateLimit)
	assert.Equal(t, 1, cfg.SourceBurst)
	assert.Empty(t, cfg.ExportBucket)
	assert.Equal(t, ".", cfg.ExportDir)
	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.IsLocal())
}

func TestWithEnvironment(t *testing.T) {
	cfg := New(WithEnvironment("development"))

	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.IsLocal())
}

func TestWithLogLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, New(WithLogLevel("debug")).LogLevel)
	assert.Equal(t, zerolog.InfoLevel, New(WithLogLevel("shouting")).LogLevel)
}

func TestWithSourceMode(t *testing.T) {
	tests := []struct {
		mode string
		want SourceMode
	}{
		{mode: "http", want: SourceModeHTTP},
		{mode: "degraded", want: SourceModeDegraded},
		{mode: "sample", want: SourceModeSample},
		{mode: "carrier-pigeon", want: SourceModeSample},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			assert.Equal(t, tt.want, New(WithSourceMode(tt.mode)).SourceMode)
		})
	}
}

func TestWithSourceURLsKeepsDefaultsForEmptyValues(t *testing.T) {
	cfg := New(WithSourceURLs("http://localhost:9000", ""))

	assert.Equal(t, "http://localhost:9000", cfg.GlobalSourceURL)
	assert.Equal(t, "https://incois.gov.in/argo-api", cfg.RegionalSourceURL)
}

func TestWithPortIgnoresNonPositive(t *testing.T) {
	assert.Equal(t, 9090, New(WithPort(9090)).Port)
	assert.Equal(t, 8080, New(WithPort(0)).Port)
}

func TestInitializeLogging(t *testing.T) {
	cfg := New(WithEnvironment("local"), WithLogLevel("debug"))
	cfg.InitializeLogging()

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	New(WithLogLevel("info")).InitializeLogging()
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("SOURCE_MODE", "http")
	t.Setenv("ARGO_GLOBAL_URL", "http://global.test")
	t.Setenv("ARGO_REGIONAL_URL", "http://regional.test")
	t.Setenv("SOURCE_RPS", "0.5")
	t.Setenv("SOURCE_BURST", "2")
	t.Setenv("EXPORT_BUCKET", "argo-exports")
	t.Setenv("EXPORT_DIR", "/tmp/exports")
	t.Setenv("PORT", "3000")

	cfg := LoadFromEnv()

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, zerolog.WarnLevel, cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, SourceModeHTTP, cfg.SourceMode)
	assert.Equal(t, "http://global.test", cfg.GlobalSourceURL)
	assert.Equal(t, "http://regional.test", cfg.RegionalSourceURL)
	assert.Equal(t, 0.5, cfg.SourceRateLimit)
	assert.Equal(t, 2, cfg.SourceBurst)
	assert.Equal(t, "argo-exports", cfg.ExportBucket)
	assert.Equal(t, "/tmp/exports", cfg.ExportDir)
	assert.Equal(t, 3000, cfg.Port)
}

func TestLoadFromEnvReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("EXPORT_BUCKET=from-dotenv\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		_ = os.Unsetenv("EXPORT_BUCKET")
	})

	cfg := LoadFromEnv()

	assert.Equal(t, "from-dotenv", cfg.ExportBucket)
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("TEST_ENV_VAR", "value")

	assert.Equal(t, "value", getEnvOrDefault("TEST_ENV_VAR", "default"))
	assert.Equal(t, "default", getEnvOrDefault("NON_EXISTENT_ENV_VAR", "default"))
}

func TestGetDurationEnvOrDefault(t *testing.T) {
	t.Setenv("TEST_DURATION_ENV_VAR", "2s")
	t.Setenv("TEST_BAD_DURATION_ENV_VAR", "soon")

	assert.Equal(t, 2*time.Second, getDurationEnvOrDefault("TEST_DURATION_ENV_VAR", 1*time.Second))
	assert.Equal(t, 1*time.Second, getDurationEnvOrDefault("TEST_BAD_DURATION_ENV_VAR", 1*time.Second))
	assert.Equal(t, 1*time.Second, getDurationEnvOrDefault("NON_EXISTENT_DURATION_ENV_VAR", 1*time.Second))
}

func TestGetFloatEnvOrDefault(t *testing.T) {
	t.Setenv("TEST_FLOAT_ENV_VAR", "2.5")
	t.Setenv("TEST_BAD_FLOAT_ENV_VAR", "lots")

	assert.Equal(t, 2.5, getFloatEnvOrDefault("TEST_FLOAT_ENV_VAR", 1))
	assert.Equal(t, 1.0, getFloatEnvOrDefault("TEST_BAD_FLOAT_ENV_VAR", 1))
}
