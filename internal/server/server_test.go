package server

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	response events.APIGatewayProxyResponse
	err      error
	request  events.APIGatewayProxyRequest
}

func (h *recordingHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	h.request = request
	return h.response, h.err
}

func jsonResponse(body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
	}
}

func TestHealthz(t *testing.T) {
	srv := New(0, 0, Handlers{Query: &recordingHandler{}, Export: &recordingHandler{}, Presets: &recordingHandler{}})

	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHealthzReportsPresetCacheStats(t *testing.T) {
	srv := New(0, 0, Handlers{
		Query:   &recordingHandler{},
		Export:  &recordingHandler{},
		Presets: &recordingHandler{},
		PresetStats: func() map[string]uint64 {
			return map[string]uint64{"lru_hits": 3, "lru_misses": 1}
		},
	})

	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","presetCache":{"lru_hits":3,"lru_misses":1}}`, rec.Body.String())
}

func TestQueryRouteForwardsParameters(t *testing.T) {
	query := &recordingHandler{response: jsonResponse(`{"responseType":"argoData"}`)}
	srv := New(0, 0, Handlers{Query: query, Export: &recordingHandler{}, Presets: &recordingHandler{}})

	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/query?region=arabian-sea&parameters=temperature,salinity", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.MethodGet, query.request.HTTPMethod)
	assert.Equal(t, "arabian-sea", query.request.QueryStringParameters["region"])
	assert.Equal(t, "temperature,salinity", query.request.QueryStringParameters["parameters"])
}

func TestExportRouteDecodesBase64(t *testing.T) {
	exp := &recordingHandler{response: events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type":        "application/octet-stream",
			"Content-Disposition": `attachment; filename="argo-data-2024-01-15.nc"`,
		},
		Body:            base64.StdEncoding.EncodeToString([]byte("[]")),
		IsBase64Encoded: true,
	}}
	srv := New(0, 0, Handlers{Query: &recordingHandler{}, Export: exp, Presets: &recordingHandler{}})

	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export?format=netcdf", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
	assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "argo-data-2024-01-15.nc")
}

func TestPresetsPostForwardsBody(t *testing.T) {
	presets := &recordingHandler{response: events.APIGatewayProxyResponse{
		StatusCode: http.StatusCreated,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       `{"responseType":"preset"}`,
	}}
	srv := New(0, 0, Handlers{Query: &recordingHandler{}, Export: &recordingHandler{}, Presets: presets})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/presets", strings.NewReader(`{"name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	srv.Engine().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, http.MethodPost, presets.request.HTTPMethod)
	assert.Equal(t, `{"name":"x"}`, presets.request.Body)
	assert.Equal(t, "application/json", presets.request.Headers["Content-Type"])
}

func TestHandlerErrorBecomes500(t *testing.T) {
	query := &recordingHandler{err: errors.New("boom")}
	srv := New(0, 0, Handlers{Query: query, Export: &recordingHandler{}, Presets: &recordingHandler{}})

	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/query", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	srv := New(0, 0, Handlers{Query: &recordingHandler{}, Export: &recordingHandler{}, Presets: &recordingHandler{}})

	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/presets", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
