package main

import (
	"sync"

	"github.com/argoview/backend-go/internal/argo"
	"github.com/argoview/backend-go/internal/config"
	"github.com/argoview/backend-go/internal/handler"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"
)

var (
	queryHandler *handler.QueryHandler
	setupOnce    sync.Once
)

func init() {
	setupOnce.Do(func() {
		cfg := config.LoadFromEnv()
		cfg.InitializeLogging()

		log.Info().Str("env", cfg.Environment).Str("sourceMode", string(cfg.SourceMode)).Msg("Environment")

		aggregator, err := argo.NewAggregatorFromConfig(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create ARGO aggregator")
		}
		queryHandler = handler.NewQueryHandler(aggregator)
	})
}

func main() {
	lambda.Start(queryHandler.HandleRequest)
}
