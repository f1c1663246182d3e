package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/argoview/backend-go/internal/api"
	"github.com/argoview/backend-go/internal/argo"
	"github.com/argoview/backend-go/internal/export"
	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog/log"
)

type ExportHandler struct {
	fetcher argo.DataFetcher
	saver   export.Saver
	now     func() time.Time
}

// NewExportHandler builds the export endpoint. With a nil saver the export is
// returned inline as an attachment.
func NewExportHandler(fetcher argo.DataFetcher, saver export.Saver) *ExportHandler {
	return &ExportHandler{
		fetcher: fetcher,
		saver:   saver,
		now:     time.Now,
	}
}

func (h *ExportHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	params, err := api.ParseQueryParams(request.QueryStringParameters)
	if err != nil {
		return badRequest(err)
	}
	format := api.ParseFormat(request.QueryStringParameters)

	result, err := h.fetcher.FetchArgoData(ctx, params)
	if err != nil {
		log.Error().Err(err).Msg("Error fetching ARGO data for export")
		return api.Error("Error fetching ARGO data", http.StatusInternalServerError)
	}
	if result.Partial() {
		log.Warn().Strs("errors", result.ErrorMessages()).Msg("Exporting partial ARGO data")
	}

	if h.saver == nil {
		payload, err := export.Export(result.Profiles, format, h.now())
		if err != nil {
			log.Error().Err(err).Msg("Error encoding export")
			return api.Error("Error encoding export", http.StatusInternalServerError)
		}
		return api.Attachment(payload)
	}

	payload, location, err := export.Download(ctx, h.saver, result.Profiles, format, h.now())
	if err != nil {
		log.Error().Err(err).Msg("Error saving export")
		return api.Error("Error saving export", http.StatusInternalServerError)
	}

	log.Info().Str("location", location).Str("format", string(format)).Msg("Export saved")
	return api.Success(api.NewExportResponse(payload, location))
}
