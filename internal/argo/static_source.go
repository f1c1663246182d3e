package argo

import (
	"context"
	"net/url"
	"strings"

	"github.com/argoview/backend-go/internal/models"
	"github.com/rs/zerolog/log"
)

const (
	GlobalSourceName   = "global"
	RegionalSourceName = "regional"

	DefaultGlobalURL   = "https://data-argo.ifremer.fr/api/v1"
	DefaultRegionalURL = "https://incois.gov.in/argo-api"
)

// StaticSource answers every query with a fixed sample payload. It stands in
// for a repository that has not been connected yet.
type StaticSource struct {
	name    string
	baseURL string
	data    models.SourceData
}

func NewStaticSource(name, baseURL string, data models.SourceData) *StaticSource {
	return &StaticSource{
		name:    name,
		baseURL: baseURL,
		data:    data,
	}
}

func (s *StaticSource) Name() string {
	return s.name
}

func (s *StaticSource) Fetch(ctx context.Context, params models.QueryParams) (*models.SourceData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("source", s.name).
		Str("url", s.baseURL+"/query?"+QueryValues(params).Encode()).
		Msg("Would fetch from")

	// Callers own the returned slices
	data := &models.SourceData{
		Floats:   append([]models.Float(nil), s.data.Floats...),
		Profiles: append([]models.Profile(nil), s.data.Profiles...),
	}
	return data, nil
}

// QueryValues encodes query parameters the way both repositories expect them
func QueryValues(params models.QueryParams) url.Values {
	values := url.Values{}
	if params.Region != "" {
		values.Set("region", string(params.Region))
	}
	if params.StartDate != "" {
		values.Set("start", params.StartDate)
	}
	if params.EndDate != "" {
		values.Set("end", params.EndDate)
	}
	if len(params.Parameters) > 0 {
		values.Set("param", strings.Join(params.Parameters, ","))
	}
	if params.Dataset != "" {
		values.Set("dataset", string(params.Dataset))
	}
	return values
}

func NewGlobalSampleSource() *StaticSource {
	return NewStaticSource(GlobalSourceName, DefaultGlobalURL, models.SourceData{
		Floats: []models.Float{
			{ID: "GL001", Lat: 20.0, Lon: 65.0, Status: models.FloatStatusActive, LastObservation: "2024-01-15"},
			{ID: "GL002", Lat: 5.0, Lon: 80.0, Status: models.FloatStatusActive, LastObservation: "2024-01-15"},
		},
		Profiles: []models.Profile{
			{Depth: 0, Temperature: models.Reading(28.5), Salinity: models.Reading(35.1), FloatID: "GL001", Timestamp: "2024-01-15T10:00:00Z"},
			{Depth: 50, Temperature: models.Reading(26.2), Salinity: models.Reading(34.9), FloatID: "GL001", Timestamp: "2024-01-15T10:00:00Z"},
		},
	})
}

func NewRegionalSampleSource() *StaticSource {
	return NewStaticSource(RegionalSourceName, DefaultRegionalURL, models.SourceData{
		Floats: []models.Float{
			{ID: "IN123", Lat: 8.5, Lon: 73.2, Status: models.FloatStatusActive, LastObservation: "2024-01-15"},
			{ID: "IN456", Lat: 12.3, Lon: 75.1, Status: models.FloatStatusActive, LastObservation: "2024-01-14"},
		},
		Profiles: []models.Profile{
			{Depth: 0, Temperature: models.Reading(28.5), Salinity: models.Reading(35.1), FloatID: "IN123", Timestamp: "2024-01-15T10:00:00Z"},
			{Depth: 50, Temperature: models.Reading(26.2), Salinity: models.Reading(34.9), FloatID: "IN123", Timestamp: "2024-01-15T10:00:00Z"},
		},
	})
}

// FailingSource always fails with the same error
type FailingSource struct {
	name string
	err  error
}

func NewFailingSource(name string, err error) *FailingSource {
	return &FailingSource{name: name, err: err}
}

func (s *FailingSource) Name() string {
	return s.name
}

func (s *FailingSource) Fetch(_ context.Context, _ models.QueryParams) (*models.SourceData, error) {
	return nil, s.err
}
