package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"maisquecardapio.backend/internal/domain/entities"
	domainerrors "maisquecardapio.backend/internal/domain/errors"
)

func newPublicRouter(svc EstablishmentService) *gin.Engine {
	h := NewPublicHandler(svc)
	r := gin.New()
	r.POST("/api/public/register", h.Register)
	r.GET("/api/public/establishments/:slug", h.GetEstablishment)
	return r
}

func registration() gin.H {
	return gin.H{
		"name":        "Joe Burger",
		"slug":        "joe-burger",
		"owner_email": "joe@example.com",
		"password":    "secret123",
	}
}

func TestPublicHandler_Register(t *testing.T) {
	svc := &establishmentServiceStub{registerFn: func(_ context.Context, input *entities.RegisterEstablishmentInput) (*entities.Establishment, error) {
		if input.Slug == "taken" {
			return nil, domainerrors.Conflict("slug já em uso")
		}
		return &entities.Establishment{ID: 11, Slug: input.Slug}, nil
	}}
	r := newPublicRouter(svc)

	rec := doJSON(t, r, http.MethodPost, "/api/public/register", registration())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, float64(11), body["id"])
	assert.Equal(t, "joe-burger", body["slug"])

	taken := registration()
	taken["slug"] = "taken"
	rec = doJSON(t, r, http.MethodPost, "/api/public/register", taken)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "slug já em uso", decode(t, rec)["message"])

	short := registration()
	short["password"] = "123"
	rec = doJSON(t, r, http.MethodPost, "/api/public/register", short)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPublicHandler_GetEstablishment(t *testing.T) {
	svc := &establishmentServiceStub{publicFn: func(_ context.Context, slug string) (*entities.PublicEstablishment, error) {
		switch slug {
		case "joe-burger":
			public := joeBurger.Public()
			return &public, nil
		case "broken":
			return nil, errors.New("db down")
		}
		return nil, domainerrors.ErrNotFound
	}}
	r := newPublicRouter(svc)

	rec := doJSON(t, r, http.MethodGet, "/api/public/establishments/joe-burger", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Joe Burger", body["name"])
	assert.Equal(t, "active", body["status"])
	assert.Len(t, body, 4)

	rec = doJSON(t, r, http.MethodGet, "/api/public/establishments/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "establishment not found", decode(t, rec)["message"])

	rec = doJSON(t, r, http.MethodGet, "/api/public/establishments/broken", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
