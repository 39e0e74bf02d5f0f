package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"maisquecardapio.backend/internal/domain/entities"
	"maisquecardapio.backend/internal/interfaces/http/response"
)

type EstablishmentService interface {
	Register(ctx context.Context, input *entities.RegisterEstablishmentInput) (*entities.Establishment, error)
	GetPublic(ctx context.Context, slug string) (*entities.PublicEstablishment, error)
}

// PublicHandler serves the anonymous establishment endpoints
type PublicHandler struct {
	establishments EstablishmentService
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(establishments EstablishmentService) *PublicHandler {
	return &PublicHandler{establishments: establishments}
}

// Register signs up a new establishment on the free plan
// POST /api/public/register
func (h *PublicHandler) Register(c *gin.Context) {
	var input entities.RegisterEstablishmentInput
	if !bindJSON(c, &input) {
		return
	}

	est, err := h.establishments.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"id": est.ID, "slug": est.Slug})
}

// GetEstablishment returns the public view of a tenant
// GET /api/public/establishments/:slug
func (h *PublicHandler) GetEstablishment(c *gin.Context) {
	est, err := h.establishments.GetPublic(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.ErrorNotFound(c, err, "establishment not found")
		return
	}
	response.Success(c, http.StatusOK, est)
}
