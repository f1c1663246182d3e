package argo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/argoview/backend-go/internal/models"
	"github.com/argoview/backend-go/pkg/http/client"
	"github.com/rs/zerolog/log"
)

// HTTPSource fetches floats and profiles from a JSON query endpoint at
// <base URL>/query.
type HTTPSource struct {
	name       string
	httpClient client.Interface
}

func NewHTTPSource(name string, httpClient client.Interface) *HTTPSource {
	return &HTTPSource{
		name:       name,
		httpClient: httpClient,
	}
}

func (s *HTTPSource) Name() string {
	return s.name
}

func (s *HTTPSource) Fetch(ctx context.Context, params models.QueryParams) (*models.SourceData, error) {
	query := QueryValues(params)

	resp, err := s.httpClient.Get(ctx, "/query", query)
	if err != nil {
		return nil, fmt.Errorf("fetching %s data: %w", s.name, err)
	}

	log.Debug().Str("source", s.name).Int("status", resp.StatusCode).
		Msgf("Fetched ARGO data: %s", query.Encode())

	if !resp.OK() {
		return nil, NewUpstreamError(resp.StatusCode, resp.Body)
	}

	var data models.SourceData
	if err := json.Unmarshal(resp.Body, &data); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	for _, f := range data.Floats {
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("invalid float in response: %w", err)
		}
	}
	for _, p := range data.Profiles {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("invalid profile in response: %w", err)
		}
	}

	return &data, nil
}
