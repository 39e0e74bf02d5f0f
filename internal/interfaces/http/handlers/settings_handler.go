package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"maisquecardapio.backend/internal/domain/entities"
	"maisquecardapio.backend/internal/interfaces/http/response"
)

type SettingsService interface {
	GetAll(ctx context.Context, establishmentID int64) (map[string]string, error)
	GetPublic(ctx context.Context, establishmentID int64) (entities.PublicSettings, error)
	Save(ctx context.Context, establishmentID int64, values map[string]interface{}) error
}

// SettingsHandler handles the per tenant key/value settings
type SettingsHandler struct {
	settingsUsecase SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsUsecase SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsUsecase: settingsUsecase}
}

// GetSettings returns every stored key as a flat map
// GET /api/e/settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	settings, err := h.settingsUsecase.GetAll(c.Request.Context(), est.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, settings)
}

// SaveSettings upserts the posted keys and leaves the others untouched
// POST /api/e/settings
func (h *SettingsHandler) SaveSettings(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	var values map[string]interface{}
	if !bindJSON(c, &values) {
		return
	}

	if err := h.settingsUsecase.Save(c.Request.Context(), est.ID, values); err != nil {
		response.Error(c, err)
		return
	}
	respondOK(c)
}

// GetPublicSettings returns the menu facing settings without secrets
// GET /api/e/settings/public
func (h *SettingsHandler) GetPublicSettings(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	settings, err := h.settingsUsecase.GetPublic(c.Request.Context(), est.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, settings)
}
