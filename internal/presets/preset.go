package presets

import (
	"context"
	"fmt"
	"time"

	"github.com/argoview/backend-go/internal/models"
	"github.com/google/uuid"
)

// Preset is a saved filter selection a user can recall later
type Preset struct {
	ID        string             `json:"id" dynamodbav:"presetId"`
	Name      string             `json:"name" dynamodbav:"name"`
	Filters   models.QueryParams `json:"filters" dynamodbav:"filters"`
	CreatedAt int64              `json:"createdAt" dynamodbav:"createdAt"`
	TTL       int64              `json:"-" dynamodbav:"ttl"`
}

// NewPreset assigns a fresh ID to a named filter selection
func NewPreset(name string, filters models.QueryParams, now time.Time) Preset {
	return Preset{
		ID:        uuid.NewString(),
		Name:      name,
		Filters:   filters,
		CreatedAt: now.Unix(),
	}
}

// Draft is a preset as submitted by a client, before it has an ID
type Draft struct {
	Name    string             `json:"name"`
	Filters models.QueryParams `json:"filters"`
}

func (d Draft) Preset(now time.Time) Preset {
	return NewPreset(d.Name, d.Filters, now)
}

func (p Preset) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("preset id is required")
	}
	if _, err := uuid.Parse(p.ID); err != nil {
		return fmt.Errorf("invalid preset id %q: %w", p.ID, err)
	}
	if p.Name == "" {
		return fmt.Errorf("preset name is required")
	}
	if p.Filters.Region != "" {
		if _, err := models.ParseRegion(string(p.Filters.Region)); err != nil {
			return err
		}
	}
	if p.Filters.Dataset != "" {
		if _, err := models.ParseDataset(string(p.Filters.Dataset)); err != nil {
			return err
		}
	}
	return nil
}

// Store persists presets
type Store interface {
	GetPreset(ctx context.Context, id string) (*Preset, error)
	SavePreset(ctx context.Context, preset Preset) error
	SavePresetsBatch(ctx context.Context, presets []Preset) error
}

type clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
