package argo

import (
	"errors"
	"fmt"

	"github.com/argoview/backend-go/internal/config"
	"github.com/argoview/backend-go/pkg/http/client"
	"github.com/rs/zerolog/log"
)

var ErrRegionalUnavailable = errors.New("regional repository unavailable")

// NewAggregatorFromConfig wires the global and regional sources selected by cfg.SourceMode
func NewAggregatorFromConfig(cfg *config.Config) (*Aggregator, error) {
	var global, regional Source

	switch cfg.SourceMode {
	case config.SourceModeHTTP:
		global = NewHTTPSource(GlobalSourceName, client.New(client.Options{
			BaseURL: cfg.GlobalSourceURL,
			Timeout: cfg.HTTPTimeout,
		}))
		regional = NewHTTPSource(RegionalSourceName, client.New(client.Options{
			BaseURL: cfg.RegionalSourceURL,
			Timeout: cfg.HTTPTimeout,
		}))
		if cfg.SourceRateLimit > 0 {
			global = NewRateLimitedSource(global, cfg.SourceRateLimit, cfg.SourceBurst)
			regional = NewRateLimitedSource(regional, cfg.SourceRateLimit, cfg.SourceBurst)
		}
	case config.SourceModeDegraded:
		global = NewGlobalSampleSource()
		regional = NewFailingSource(RegionalSourceName, ErrRegionalUnavailable)
	case config.SourceModeSample, "":
		global = NewGlobalSampleSource()
		regional = NewRegionalSampleSource()
	default:
		return nil, fmt.Errorf("unsupported source mode: %s", cfg.SourceMode)
	}

	log.Debug().Str("mode", string(cfg.SourceMode)).Msg("Configured ARGO sources")

	return NewAggregator(global, regional)
}
