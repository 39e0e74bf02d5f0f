package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"maisquecardapio.backend/internal/domain/entities"
	domainerrors "maisquecardapio.backend/internal/domain/errors"
	"maisquecardapio.backend/internal/interfaces/http/middleware"
	"maisquecardapio.backend/internal/interfaces/http/response"
	"maisquecardapio.backend/pkg/jwt"
	"maisquecardapio.backend/pkg/logger"
)

type AuthService interface {
	OwnerLogin(ctx context.Context, input *entities.OwnerLoginInput) (*entities.OwnerSession, error)
	Logout(ctx context.Context, sessionID string) error
	SuperadminLogin(ctx context.Context, input *entities.SuperadminLoginInput) (*jwt.IssuedToken, error)
}

// AuthHandler handles owner and superadmin authentication endpoints
type AuthHandler struct {
	authUsecase AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase AuthService) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

// OwnerLogin opens an owner session for one establishment
// POST /api/public/login
func (h *AuthHandler) OwnerLogin(c *gin.Context) {
	var input entities.OwnerLoginInput
	if !bindJSON(c, &input) {
		return
	}

	session, err := h.authUsecase.OwnerLogin(c.Request.Context(), &input)
	if err != nil {
		if err == domainerrors.ErrInvalidCredentials {
			response.Error(c, domainerrors.InvalidCredentials("invalid slug or password"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, session)
}

// Logout revokes the caller's owner session
// POST /api/e/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authUsecase.Logout(c.Request.Context(), middleware.GetSessionID(c)); err != nil {
		logger.Warn(c.Request.Context(), "Failed to delete owner session", zap.Error(err))
		response.Error(c, err)
		return
	}
	respondOK(c)
}

// SuperadminLogin issues a console token
// POST /api/superadmin/login
func (h *AuthHandler) SuperadminLogin(c *gin.Context) {
	var input entities.SuperadminLoginInput
	if !bindJSON(c, &input) {
		return
	}

	token, err := h.authUsecase.SuperadminLogin(c.Request.Context(), &input)
	if err != nil {
		if err == domainerrors.ErrInvalidCredentials {
			response.Error(c, domainerrors.InvalidCredentials("invalid username or password"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, token)
}

// Verify echoes the validated console token claims
// GET /api/superadmin/verify
func (h *AuthHandler) Verify(c *gin.Context) {
	claims, found := middleware.GetClaims(c)
	if !found {
		response.Error(c, domainerrors.Unauthorized("invalid token"))
		return
	}
	body := gin.H{
		"valid":    true,
		"username": claims.Subject,
		"role":     claims.Role,
	}
	if claims.ExpiresAt != nil {
		body["expires_at"] = claims.ExpiresAt.Time
	}
	response.Success(c, http.StatusOK, body)
}
