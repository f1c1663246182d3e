package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type SourceMode string

const (
	// SourceModeSample serves the built-in sample floats from both sources
	SourceModeSample SourceMode = "sample"
	// SourceModeHTTP queries the configured repository endpoints
	SourceModeHTTP SourceMode = "http"
	// SourceModeDegraded serves global samples while the regional source always fails
	SourceModeDegraded SourceMode = "degraded"
)

type Config struct {
	Environment       string
	LogLevel          zerolog.Level
	HTTPTimeout       time.Duration
	SourceMode        SourceMode
	GlobalSourceURL   string
	RegionalSourceURL string
	SourceRateLimit   float64
	SourceBurst       int
	ExportBucket      string
	ExportDir         string
	Port              int
}

type Option func(*Config)

// WithEnvironment allows setting the environment
func WithEnvironment(env string) Option {
	return func(c *Config) {
		c.Environment = env
	}
}

// WithLogLevel allows setting the log level
func WithLogLevel(level string) Option {
	return func(c *Config) {
		parsedLevel, err := zerolog.ParseLevel(level)
		if err != nil {
			parsedLevel = zerolog.InfoLevel
		}
		c.LogLevel = parsedLevel
	}
}

// WithHTTPTimeout allows setting the HTTP timeout
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.HTTPTimeout = timeout
	}
}

// WithSourceMode selects where ARGO data comes from. Unknown modes keep the default.
func WithSourceMode(mode string) Option {
	return func(c *Config) {
		switch m := SourceMode(mode); m {
		case SourceModeSample, SourceModeHTTP, SourceModeDegraded:
			c.SourceMode = m
		default:
			log.Warn().Str("mode", mode).Msg("Unknown source mode, keeping default")
		}
	}
}

// WithSourceURLs overrides the global and regional repository endpoints
func WithSourceURLs(global, regional string) Option {
	return func(c *Config) {
		if global != "" {
			c.GlobalSourceURL = global
		}
		if regional != "" {
			c.RegionalSourceURL = regional
		}
	}
}

// WithSourceRateLimit caps outbound requests per source; rps <= 0 disables the limit
func WithSourceRateLimit(rps float64, burst int) Option {
	return func(c *Config) {
		c.SourceRateLimit = rps
		c.SourceBurst = burst
	}
}

func WithExportBucket(bucket string) Option {
	return func(c *Config) {
		c.ExportBucket = bucket
	}
}

func WithExportDir(dir string) Option {
	return func(c *Config) {
		c.ExportDir = dir
	}
}

func WithPort(port int) Option {
	return func(c *Config) {
		if port > 0 {
			c.Port = port
		}
	}
}

// New creates a new configuration with default values
func New(opts ...Option) *Config {
	cfg := &Config{
		Environment:       "production",
		LogLevel:          zerolog.InfoLevel,
		HTTPTimeout:       10 * time.Second,
		SourceMode:        SourceModeSample,
		GlobalSourceURL:   "https://data-argo.ifremer.fr/api/v1",
		RegionalSourceURL: "https://incois.gov.in/argo-api",
		SourceRateLimit:   5,
		SourceBurst:       1,
		ExportDir:         ".",
		Port:              8080,
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// IsLocal reports whether the process runs on a developer machine
func (c *Config) IsLocal() bool {
	return c.Environment == "local" || c.Environment == "development"
}

// InitializeLogging sets up logging based on the configuration
func (c *Config) InitializeLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(c.LogLevel)

	// Setup console logger for development environments
	if c.IsLocal() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	} else {
		log.Logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Logger()
	}
}

// LoadFromEnv loads configuration from environment variables, reading an
// optional .env file first
func LoadFromEnv() *Config {
	_ = godotenv.Load() // ignore missing file

	return New(
		WithEnvironment(getEnvOrDefault("ENV", "production")),
		WithLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
		WithHTTPTimeout(getDurationEnvOrDefault("HTTP_TIMEOUT", 10*time.Second)),
		WithSourceMode(getEnvOrDefault("SOURCE_MODE", string(SourceModeSample))),
		WithSourceURLs(os.Getenv("ARGO_GLOBAL_URL"), os.Getenv("ARGO_REGIONAL_URL")),
		WithSourceRateLimit(getFloatEnvOrDefault("SOURCE_RPS", 5), getEnvInt("SOURCE_BURST", 1)),
		WithExportBucket(os.Getenv("EXPORT_BUCKET")),
		WithExportDir(getEnvOrDefault("EXPORT_DIR", ".")),
		WithPort(getEnvInt("PORT", 8080)),
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getFloatEnvOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Warn().Str("key", key).Msg("Invalid float value in environment variable, using default")
	}
	return defaultValue
}
