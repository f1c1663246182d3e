package main

import (
	"context"
	"sync"

	"github.com/argoview/backend-go/internal/argo"
	"github.com/argoview/backend-go/internal/config"
	"github.com/argoview/backend-go/internal/export"
	"github.com/argoview/backend-go/internal/handler"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"
)

var (
	exportHandler *handler.ExportHandler
	setupOnce     sync.Once
)

func init() {
	setupOnce.Do(func() {
		cfg := config.LoadFromEnv()
		cfg.InitializeLogging()

		log.Info().Str("env", cfg.Environment).Str("bucket", cfg.ExportBucket).Msg("Environment")

		aggregator, err := argo.NewAggregatorFromConfig(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create ARGO aggregator")
		}

		// Without a bucket exports are returned inline
		var saver export.Saver
		if cfg.ExportBucket != "" {
			s3Saver, err := export.NewS3SaverFromDefaultConfig(context.Background(), cfg.ExportBucket)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to create S3 export saver")
			}
			saver = s3Saver
		}

		exportHandler = handler.NewExportHandler(aggregator, saver)
	})
}

func main() {
	lambda.Start(exportHandler.HandleRequest)
}
