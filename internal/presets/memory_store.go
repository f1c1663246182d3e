package presets

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore keeps presets in process memory. Used when DynamoDB is disabled.
type MemoryStore struct {
	presets     map[string]Preset
	mu          sync.RWMutex
	validityTTL time.Duration
	clock       clock
}

func NewMemoryStore(validityTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		presets:     make(map[string]Preset),
		validityTTL: validityTTL,
		clock:       systemClock{},
	}
}

func (m *MemoryStore) GetPreset(_ context.Context, id string) (*Preset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	preset, exists := m.presets[id]
	if !exists {
		return nil, nil
	}
	if m.clock.Now().Unix() >= preset.TTL {
		delete(m.presets, id)
		return nil, nil
	}
	return &preset, nil
}

func (m *MemoryStore) SavePreset(_ context.Context, preset Preset) error {
	if err := preset.Validate(); err != nil {
		return fmt.Errorf("invalid preset: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	preset.TTL = m.clock.Now().Add(m.validityTTL).Unix()
	m.presets[preset.ID] = preset
	return nil
}

func (m *MemoryStore) SavePresetsBatch(ctx context.Context, presets []Preset) error {
	for _, preset := range presets {
		if err := m.SavePreset(ctx, preset); err != nil {
			return fmt.Errorf("saving preset %s: %w", preset.ID, err)
		}
	}
	return nil
}
