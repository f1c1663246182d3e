package api

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/argoview/backend-go/internal/export"
	"github.com/argoview/backend-go/internal/models"
	"github.com/aws/aws-lambda-go/events"
)

type APIResponse struct {
	ResponseType string `json:"responseType"`
}

func (r APIResponse) GetResponseType() string {
	return r.ResponseType
}

type ArgoDataResponse struct {
	APIResponse
	Floats   []models.Float   `json:"floats"`
	Profiles []models.Profile `json:"profiles"`
	Errors   []string         `json:"errors"`
}

type ExportResponse struct {
	APIResponse
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Location    string `json:"location"`
}

type PresetResponse struct {
	APIResponse
	Preset any `json:"preset"`
}

type PresetsResponse struct {
	APIResponse
	Presets any `json:"presets"`
}

type ErrorResponse struct {
	APIResponse
	Error string `json:"error"`
}

func NewArgoDataResponse(result *models.CombinedResult) *ArgoDataResponse {
	floats := result.Floats
	if floats == nil {
		floats = []models.Float{}
	}
	profiles := result.Profiles
	if profiles == nil {
		profiles = []models.Profile{}
	}
	return &ArgoDataResponse{
		APIResponse: APIResponse{ResponseType: "argoData"},
		Floats:      floats,
		Profiles:    profiles,
		Errors:      result.ErrorMessages(),
	}
}

func NewExportResponse(payload *export.Payload, location string) *ExportResponse {
	return &ExportResponse{
		APIResponse: APIResponse{ResponseType: "export"},
		Filename:    payload.Filename,
		ContentType: payload.ContentType,
		Location:    location,
	}
}

func NewPresetResponse(preset any) *PresetResponse {
	return &PresetResponse{
		APIResponse: APIResponse{ResponseType: "preset"},
		Preset:      preset,
	}
}

func NewPresetsResponse(presets any) *PresetsResponse {
	return &PresetsResponse{
		APIResponse: APIResponse{ResponseType: "presets"},
		Presets:     presets,
	}
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		APIResponse: APIResponse{ResponseType: "error"},
		Error:       message,
	}
}

// Response helpers
func Success(body interface{}) (events.APIGatewayProxyResponse, error) {
	return JSON(body, http.StatusOK)
}

func JSON(body interface{}, statusCode int) (events.APIGatewayProxyResponse, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return Error("Internal Server Error", http.StatusInternalServerError)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(jsonBody),
	}, nil
}

func Error(message string, statusCode int) (events.APIGatewayProxyResponse, error) {
	body, _ := json.Marshal(NewErrorResponse(message))

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(body),
	}, nil
}

// Attachment returns the export itself as a download. Binary payloads are base64 encoded.
func Attachment(payload *export.Payload) (events.APIGatewayProxyResponse, error) {
	resp := events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type":                payload.ContentType,
			"Content-Disposition":         fmt.Sprintf("attachment; filename=%q", payload.Filename),
			"Access-Control-Allow-Origin": "*",
		},
	}

	if payload.Binary() {
		resp.Body = base64.StdEncoding.EncodeToString(payload.Data)
		resp.IsBase64Encoded = true
	} else {
		resp.Body = string(payload.Data)
	}

	return resp, nil
}

// Parameter parsing helpers

// ParseQueryParams reads filter criteria from query string parameters. Absent
// fields stay empty. Region and dataset must be known values when present.
func ParseQueryParams(params map[string]string) (models.QueryParams, error) {
	var query models.QueryParams

	if v := params["region"]; v != "" {
		region, err := models.ParseRegion(v)
		if err != nil {
			return models.QueryParams{}, InvalidParameterError{Name: "region", Value: v}
		}
		query.Region = region
	}

	if v := params["dataset"]; v != "" {
		dataset, err := models.ParseDataset(v)
		if err != nil {
			return models.QueryParams{}, InvalidParameterError{Name: "dataset", Value: v}
		}
		query.Dataset = dataset
	}

	query.StartDate = params["startDate"]
	query.EndDate = params["endDate"]
	query.Parameters = splitList(params["parameters"])

	return query, nil
}

// ParseFormat never fails: unrecognized formats are exported as JSON.
// Selectors are case sensitive, so "CSV" is unrecognized.
func ParseFormat(params map[string]string) export.Format {
	return export.Format(params["format"])
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

type InvalidParameterError struct {
	Name  string
	Value string
}

func (e InvalidParameterError) Error() string {
	return fmt.Sprintf("Invalid %s: %s", e.Name, e.Value)
}
