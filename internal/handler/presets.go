package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/argoview/backend-go/internal/api"
	"github.com/argoview/backend-go/internal/presets"
	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog/log"
)

// PresetService is what the presets endpoint needs from presets.Service
type PresetService interface {
	Get(ctx context.Context, id string) (*presets.Preset, error)
	Save(ctx context.Context, preset presets.Preset) error
	SaveBatch(ctx context.Context, batch []presets.Preset) error
}

type PresetsHandler struct {
	service PresetService
	now     func() time.Time
}

func NewPresetsHandler(service PresetService) *PresetsHandler {
	return &PresetsHandler{
		service: service,
		now:     time.Now,
	}
}

func (h *PresetsHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	switch request.HTTPMethod {
	case http.MethodGet, "":
		return h.get(ctx, request.QueryStringParameters["id"])
	case http.MethodPost:
		return h.save(ctx, request.Body)
	default:
		return api.Error("Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *PresetsHandler) get(ctx context.Context, id string) (events.APIGatewayProxyResponse, error) {
	if id == "" {
		return api.Error("Missing preset id", http.StatusBadRequest)
	}

	preset, err := h.service.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("preset_id", id).Msg("Error loading preset")
		return api.Error("Error loading preset", http.StatusInternalServerError)
	}
	if preset == nil {
		return api.Error("Preset not found", http.StatusNotFound)
	}

	return api.Success(api.NewPresetResponse(preset))
}

// save accepts a single preset object or a JSON array of them
func (h *PresetsHandler) save(ctx context.Context, body string) (events.APIGatewayProxyResponse, error) {
	if strings.HasPrefix(strings.TrimSpace(body), "[") {
		return h.saveBatch(ctx, body)
	}

	var draft presets.Draft
	if err := json.Unmarshal([]byte(body), &draft); err != nil {
		return api.Error("Invalid request body", http.StatusBadRequest)
	}

	preset := draft.Preset(h.now())
	if err := preset.Validate(); err != nil {
		return api.Error(err.Error(), http.StatusBadRequest)
	}

	if err := h.service.Save(ctx, preset); err != nil {
		log.Error().Err(err).Str("preset_id", preset.ID).Msg("Error saving preset")
		return api.Error("Error saving preset", http.StatusInternalServerError)
	}

	return api.JSON(api.NewPresetResponse(preset), http.StatusCreated)
}

func (h *PresetsHandler) saveBatch(ctx context.Context, body string) (events.APIGatewayProxyResponse, error) {
	var drafts []presets.Draft
	if err := json.Unmarshal([]byte(body), &drafts); err != nil {
		return api.Error("Invalid request body", http.StatusBadRequest)
	}
	if len(drafts) == 0 {
		return api.Error("No presets in request", http.StatusBadRequest)
	}

	now := h.now()
	batch := make([]presets.Preset, 0, len(drafts))
	for i, draft := range drafts {
		preset := draft.Preset(now)
		if err := preset.Validate(); err != nil {
			return api.Error(fmt.Sprintf("preset %d: %s", i, err), http.StatusBadRequest)
		}
		batch = append(batch, preset)
	}

	if err := h.service.SaveBatch(ctx, batch); err != nil {
		log.Error().Err(err).Int("count", len(batch)).Msg("Error saving presets")
		return api.Error("Error saving presets", http.StatusInternalServerError)
	}

	return api.JSON(api.NewPresetsResponse(batch), http.StatusCreated)
}
