package argo

import (
	"context"
	"errors"
	"fmt"

	"github.com/argoview/backend-go/internal/fanout"
	"github.com/argoview/backend-go/internal/models"
	"github.com/rs/zerolog/log"
)

// Aggregator queries the global and the regional source together and merges
// whatever they return. A failing source never aborts the other one.
type Aggregator struct {
	global   Source
	regional Source
}

func NewAggregator(global, regional Source) (*Aggregator, error) {
	if global == nil || regional == nil {
		return nil, errors.New("aggregator requires both a global and a regional source")
	}
	return &Aggregator{
		global:   global,
		regional: regional,
	}, nil
}

func (a *Aggregator) Sources() []Source {
	return []Source{a.global, a.regional}
}

// FetchArgoData runs both lookups concurrently and waits for both to settle.
// Floats and profiles are concatenated global first, then regional; each
// failed lookup contributes one *SourceError to the result instead.
func (a *Aggregator) FetchArgoData(ctx context.Context, params models.QueryParams) (*models.CombinedResult, error) {
	sources := a.Sources()

	tasks := make([]fanout.Task[*models.SourceData], len(sources))
	for i, source := range sources {
		source := source
		tasks[i] = func(ctx context.Context) (*models.SourceData, error) {
			return source.Fetch(ctx, params)
		}
	}

	results := fanout.Gather(ctx, tasks...)
	if len(results) != len(sources) {
		return nil, fmt.Errorf("combining ARGO data: expected %d results, got %d", len(sources), len(results))
	}

	combined := &models.CombinedResult{
		Floats:   make([]models.Float, 0),
		Profiles: make([]models.Profile, 0),
	}

	for i, result := range results {
		name := sources[i].Name()
		if result.Err != nil {
			log.Warn().Err(result.Err).Str("source", name).Msg("ARGO source lookup failed")
			combined.Errors = append(combined.Errors, NewSourceError(name, result.Err))
			continue
		}
		if result.Value == nil {
			continue
		}
		combined.Floats = append(combined.Floats, result.Value.Floats...)
		combined.Profiles = append(combined.Profiles, result.Value.Profiles...)
	}

	log.Debug().
		Int("floats", len(combined.Floats)).
		Int("profiles", len(combined.Profiles)).
		Int("errors", len(combined.Errors)).
		Msg("Combined ARGO data")

	return combined, nil
}
