package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "maisquecardapio.backend/internal/domain/errors"
	"maisquecardapio.backend/internal/interfaces/http/response"
	"maisquecardapio.backend/pkg/jwt"
	"maisquecardapio.backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// ClaimsKey is the context key for the validated token claims
	ClaimsKey = "claims"
	// SessionIDKey is the context key for the owner session id
	SessionIDKey = "sessionId"
)

// OwnerAuthenticator validates owner tokens against their server side session
type OwnerAuthenticator interface {
	AuthenticateOwner(ctx context.Context, token string) (*jwt.Claims, error)
}

// SuperadminAuthenticator validates console tokens
type SuperadminAuthenticator interface {
	AuthenticateSuperadmin(token string) (*jwt.Claims, error)
}

// OwnerAuth requires an owner token for the tenant resolved by TenantMiddleware.
// A token issued for another establishment is refused with 403.
func OwnerAuth(auth OwnerAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			return
		}

		claims, err := auth.AuthenticateOwner(c.Request.Context(), token)
		if err != nil {
			abortAuth(c, err)
			return
		}

		est, ok := GetEstablishment(c)
		if !ok {
			response.ErrorWithStatus(c, http.StatusBadRequest, domainerrors.CodeBadRequest, "establishment slug required")
			return
		}
		if claims.EstablishmentID != est.ID {
			logger.Warn(c.Request.Context(), "Owner token used for another establishment",
				zap.Int64("token_establishment_id", claims.EstablishmentID),
				zap.Int64("establishment_id", est.ID),
			)
			response.ErrorWithStatus(c, http.StatusForbidden, domainerrors.CodeForbidden, "token does not belong to this establishment")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(SessionIDKey, claims.SessionID)
		c.Next()
	}
}

// SuperadminAuth requires a superadmin token
func SuperadminAuth(auth SuperadminAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			return
		}

		claims, err := auth.AuthenticateSuperadmin(token)
		if err != nil {
			abortAuth(c, err)
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// GetClaims returns the claims set by OwnerAuth or SuperadminAuth
func GetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}

// GetSessionID returns the owner session id set by OwnerAuth
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		response.ErrorWithStatus(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, "Authorization header is required")
		return "", false
	}
	if !strings.HasPrefix(authHeader, BearerPrefix) {
		response.ErrorWithStatus(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, "Invalid authorization format. Use: Bearer <token>")
		return "", false
	}
	return strings.TrimPrefix(authHeader, BearerPrefix), true
}

func abortAuth(c *gin.Context, err error) {
	logger.Debug(c.Request.Context(), "Authentication failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	switch {
	case errors.Is(err, jwt.ErrExpiredToken):
		response.ErrorWithStatus(c, http.StatusUnauthorized, domainerrors.CodeTokenExpired, "token has expired")
	case errors.Is(err, jwt.ErrInvalidToken):
		response.ErrorWithStatus(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, "invalid token")
	case errors.Is(err, domainerrors.ErrForbidden):
		response.ErrorWithStatus(c, http.StatusForbidden, domainerrors.CodeForbidden, "insufficient permissions")
	case errors.Is(err, domainerrors.ErrUnauthorized):
		response.ErrorWithStatus(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, "session expired or revoked")
	default:
		response.Error(c, err)
	}
}
