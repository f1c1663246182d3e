package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/argoview/backend-go/internal/argo"
	"github.com/argoview/backend-go/internal/config"
	"github.com/argoview/backend-go/internal/export"
	"github.com/argoview/backend-go/internal/handler"
	"github.com/argoview/backend-go/internal/presets"
	"github.com/argoview/backend-go/internal/server"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.LoadFromEnv()
	cfg.InitializeLogging()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	aggregator, err := argo.NewAggregatorFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create ARGO aggregator")
	}

	var saver export.Saver
	if cfg.ExportBucket != "" {
		s3Saver, err := export.NewS3SaverFromDefaultConfig(ctx, cfg.ExportBucket)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create S3 export saver")
		}
		saver = s3Saver
	}

	presetService, err := presets.NewServiceFromConfig(ctx, config.GetPresetConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create preset service")
	}

	srv := server.New(cfg.Port, cfg.HTTPTimeout, server.Handlers{
		Query:   handler.NewQueryHandler(aggregator),
		Export:  handler.NewExportHandler(aggregator, saver),
		Presets: handler.NewPresetsHandler(presetService),

		PresetStats: presetService.Stats,
	})

	if err := srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
