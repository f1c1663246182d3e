package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/argoview/backend-go/internal/api"
	"github.com/argoview/backend-go/internal/argo"
	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog/log"
)

type QueryHandler struct {
	fetcher argo.DataFetcher
}

func NewQueryHandler(fetcher argo.DataFetcher) *QueryHandler {
	return &QueryHandler{
		fetcher: fetcher,
	}
}

// HandleRequest answers with whatever data the sources returned. Source failures
// are reported in the body and never turn the response into an error.
func (h *QueryHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	params, err := api.ParseQueryParams(request.QueryStringParameters)
	if err != nil {
		return badRequest(err)
	}

	result, err := h.fetcher.FetchArgoData(ctx, params)
	if err != nil {
		log.Error().Err(err).Msg("Error fetching ARGO data")
		return api.Error("Error fetching ARGO data", http.StatusInternalServerError)
	}

	log.Debug().
		Int("floats", len(result.Floats)).
		Int("profiles", len(result.Profiles)).
		Int("errors", len(result.Errors)).
		Msg("Query served")

	return api.Success(api.NewArgoDataResponse(result))
}

func badRequest(err error) (events.APIGatewayProxyResponse, error) {
	var paramErr api.InvalidParameterError
	if errors.As(err, &paramErr) {
		return api.Error(err.Error(), http.StatusBadRequest)
	}
	return api.Error("Invalid parameters", http.StatusBadRequest)
}
