package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// PresetConfig holds settings for the saved filter preset store
type PresetConfig struct {
	// LRU Cache settings
	LRUSize       int
	LRUTTLMinutes int

	// DynamoDB settings
	TableName     string
	DynamoTTLDays int

	// Batch processing settings
	BatchSize       int
	MaxBatchRetries int

	EnableDynamo bool
}

const (
	defaultPresetLRUSize       = 500
	defaultPresetLRUTTLMinutes = 30
	defaultPresetTable         = "argo-filter-presets"
	defaultPresetDynamoTTLDays = 90
	defaultBatchSize           = 25
	defaultMaxBatchRetries     = 3
)

// GetPresetConfig returns the preset configuration from environment variables or defaults
func GetPresetConfig() *PresetConfig {
	config := &PresetConfig{
		LRUSize:         getEnvInt("PRESET_LRU_SIZE", defaultPresetLRUSize),
		LRUTTLMinutes:   getEnvInt("PRESET_LRU_TTL_MINUTES", defaultPresetLRUTTLMinutes),
		TableName:       getEnvOrDefault("PRESET_TABLE", defaultPresetTable),
		DynamoTTLDays:   getEnvInt("PRESET_DYNAMO_TTL_DAYS", defaultPresetDynamoTTLDays),
		BatchSize:       getEnvInt("PRESET_BATCH_SIZE", defaultBatchSize),
		MaxBatchRetries: getEnvInt("PRESET_MAX_BATCH_RETRIES", defaultMaxBatchRetries),
		EnableDynamo:    getEnvBool("PRESET_ENABLE_DYNAMO", true),
	}

	log.Debug().
		Int("LRUSize", config.LRUSize).
		Int("LRUTTLMinutes", config.LRUTTLMinutes).
		Str("TableName", config.TableName).
		Int("DynamoTTLDays", config.DynamoTTLDays).
		Int("BatchSize", config.BatchSize).
		Int("MaxBatchRetries", config.MaxBatchRetries).
		Bool("EnableDynamo", config.EnableDynamo).
		Msg("Preset configuration loaded")

	return config
}

func (c *PresetConfig) GetLRUTTL() time.Duration {
	return time.Duration(c.LRUTTLMinutes) * time.Minute
}

func (c *PresetConfig) GetDynamoTTL() time.Duration {
	return time.Duration(c.DynamoTTLDays) * 24 * time.Hour
}

// Helper functions to get environment variables with defaults
func getEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Msg("Invalid integer value in environment variable, using default")
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val, exists := os.LookupEnv(key); exists {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
