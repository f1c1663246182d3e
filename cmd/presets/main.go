package main

import (
	"context"
	"sync"

	"github.com/argoview/backend-go/internal/config"
	"github.com/argoview/backend-go/internal/handler"
	"github.com/argoview/backend-go/internal/presets"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"
)

var (
	presetsHandler *handler.PresetsHandler
	setupOnce      sync.Once
)

func init() {
	setupOnce.Do(func() {
		cfg := config.LoadFromEnv()
		cfg.InitializeLogging()

		service, err := presets.NewServiceFromConfig(context.Background(), config.GetPresetConfig())
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create preset service")
		}
		presetsHandler = handler.NewPresetsHandler(service)
	})
}

func main() {
	lambda.Start(presetsHandler.HandleRequest)
}
