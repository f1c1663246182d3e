package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetPresetConfigDefaults(t *testing.T) {
	cfg := GetPresetConfig()

	assert.Equal(t, defaultPresetLRUSize, cfg.LRUSize)
	assert.Equal(t, defaultPresetTable, cfg.TableName)
	assert.Equal(t, defaultBatchSize, cfg.BatchSize)
	assert.Equal(t, defaultMaxBatchRetries, cfg.MaxBatchRetries)
	assert.True(t, cfg.EnableDynamo)
	assert.Equal(t, 30*time.Minute, cfg.GetLRUTTL())
	assert.Equal(t, 90*24*time.Hour, cfg.GetDynamoTTL())
}

func TestGetPresetConfigFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(*testing.T, *PresetConfig)
	}{
		{
			name: "custom sizes",
			envVars: map[string]string{
				"PRESET_LRU_SIZE":        "10",
				"PRESET_LRU_TTL_MINUTES": "5",
				"PRESET_TABLE":           "presets-test",
			},
			validate: func(t *testing.T, cfg *PresetConfig) {
				assert.Equal(t, 10, cfg.LRUSize)
				assert.Equal(t, 5*time.Minute, cfg.GetLRUTTL())
				assert.Equal(t, "presets-test", cfg.TableName)
			},
		},
		{
			name: "invalid integers fall back to defaults",
			envVars: map[string]string{
				"PRESET_LRU_SIZE":   "many",
				"PRESET_BATCH_SIZE": "",
			},
			validate: func(t *testing.T, cfg *PresetConfig) {
				assert.Equal(t, defaultPresetLRUSize, cfg.LRUSize)
				assert.Equal(t, defaultBatchSize, cfg.BatchSize)
			},
		},
		{
			name: "dynamo disabled",
			envVars: map[string]string{
				"PRESET_ENABLE_DYNAMO": "false",
			},
			validate: func(t *testing.T, cfg *PresetConfig) {
				assert.False(t, cfg.EnableDynamo)
			},
		},
		{
			name: "dynamo enabled with yes",
			envVars: map[string]string{
				"PRESET_ENABLE_DYNAMO": "yes",
			},
			validate: func(t *testing.T, cfg *PresetConfig) {
				assert.True(t, cfg.EnableDynamo)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}
			tt.validate(t, GetPresetConfig())
		})
	}
}
