package presets

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/argoview/backend-go/internal/config"
	"github.com/hashicorp/golang-lru/v2"
)

// lruEntry wraps the cached preset with metadata
type lruEntry struct {
	Data      *Preset
	ExpiresAt time.Time
}

// Service fronts a Store with an LRU cache
type Service struct {
	lru   *lru.Cache[string, *lruEntry]
	store Store
	ttl   time.Duration
	clock clock

	mu          sync.Mutex
	lruHits     uint64
	lruMisses   uint64
	storeHits   uint64
	storeMisses uint64
}

func NewService(store Store, cfg *config.PresetConfig) (*Service, error) {
	lruCache, err := lru.New[string, *lruEntry](cfg.LRUSize)
	if err != nil {
		return nil, fmt.Errorf("creating LRU cache: %w", err)
	}

	return &Service{
		lru:   lruCache,
		store: store,
		ttl:   cfg.GetLRUTTL(),
		clock: systemClock{},
	}, nil
}

// NewServiceFromConfig picks DynamoDB or in-memory persistence based on cfg
func NewServiceFromConfig(ctx context.Context, cfg *config.PresetConfig) (*Service, error) {
	var store Store
	if cfg.EnableDynamo {
		client, err := NewDynamoClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("creating DynamoDB client: %w", err)
		}
		store = NewDynamoStore(client, cfg)
	} else {
		store = NewMemoryStore(cfg.GetDynamoTTL())
	}
	return NewService(store, cfg)
}

// Get tries the LRU cache first, then the backing store. A missing preset returns nil, nil.
func (s *Service) Get(ctx context.Context, id string) (*Preset, error) {
	if entry, ok := s.lru.Get(id); ok {
		if s.clock.Now().Before(entry.ExpiresAt) {
			s.count(&s.lruHits)
			return entry.Data, nil
		}
		s.lru.Remove(id)
	}
	s.count(&s.lruMisses)

	preset, err := s.store.GetPreset(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting preset from store: %w", err)
	}

	if preset == nil {
		s.count(&s.storeMisses)
		return nil, nil
	}
	s.count(&s.storeHits)
	s.remember(preset)

	return preset, nil
}

// Save writes through to the backing store and caches the preset
func (s *Service) Save(ctx context.Context, preset Preset) error {
	if err := s.store.SavePreset(ctx, preset); err != nil {
		return fmt.Errorf("saving preset: %w", err)
	}
	s.remember(&preset)
	return nil
}

func (s *Service) SaveBatch(ctx context.Context, presets []Preset) error {
	if err := s.store.SavePresetsBatch(ctx, presets); err != nil {
		return fmt.Errorf("saving preset batch: %w", err)
	}
	for i := range presets {
		preset := presets[i]
		s.remember(&preset)
	}
	return nil
}

func (s *Service) remember(preset *Preset) {
	s.lru.Add(preset.ID, &lruEntry{
		Data:      preset,
		ExpiresAt: s.clock.Now().Add(s.ttl),
	})
}

func (s *Service) count(counter *uint64) {
	s.mu.Lock()
	*counter++
	s.mu.Unlock()
}

// Stats returns statistics about cache hits and misses
func (s *Service) Stats() map[string]uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]uint64{
		"lru_hits":     s.lruHits,
		"lru_misses":   s.lruMisses,
		"store_hits":   s.storeHits,
		"store_misses": s.storeMisses,
	}
}
