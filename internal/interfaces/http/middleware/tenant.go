package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"maisquecardapio.backend/internal/domain/entities"
	domainerrors "maisquecardapio.backend/internal/domain/errors"
	"maisquecardapio.backend/internal/interfaces/http/response"
	"maisquecardapio.backend/pkg/logger"
)

const (
	// TenantHeader carries the establishment slug on every tenant scoped request
	TenantHeader = "X-Establishment-Slug"
	// EstablishmentKey is the gin context key holding the resolved establishment
	EstablishmentKey = "establishment"
)

// DefaultTenantSkipPrefixes are served without a tenant header
var DefaultTenantSkipPrefixes = []string{"/api/public", "/api/superadmin"}

// EstablishmentLookup resolves a slug to its establishment (with plan)
type EstablishmentLookup interface {
	GetBySlug(ctx context.Context, slug string) (*entities.Establishment, error)
}

type establishmentCtxKey struct{}

// TenantMiddleware resolves X-Establishment-Slug into the establishment for
// the rest of the chain. Requests without the header pass through only when
// their path starts with one of skipPrefixes.
func TenantMiddleware(lookup EstablishmentLookup, skipPrefixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := strings.ToLower(strings.TrimSpace(c.GetHeader(TenantHeader)))
		if slug == "" {
			if hasAnyPrefix(c.Request.URL.Path, skipPrefixes) {
				c.Next()
				return
			}
			response.ErrorWithStatus(c, http.StatusBadRequest, domainerrors.CodeBadRequest, "establishment slug required")
			return
		}

		est, err := lookup.GetBySlug(c.Request.Context(), slug)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				response.ErrorWithStatus(c, http.StatusNotFound, domainerrors.CodeNotFound, "establishment not found")
				return
			}
			response.Error(c, err)
			return
		}

		c.Set(EstablishmentKey, est)
		ctx := context.WithValue(c.Request.Context(), establishmentCtxKey{}, est)
		ctx = context.WithValue(ctx, logger.EstablishmentKey, est.Slug)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetEstablishment returns the establishment resolved by TenantMiddleware
func GetEstablishment(c *gin.Context) (*entities.Establishment, bool) {
	v, ok := c.Get(EstablishmentKey)
	if !ok {
		return nil, false
	}
	est, ok := v.(*entities.Establishment)
	return est, ok && est != nil
}

// EstablishmentFromContext returns the establishment stored on a request context
func EstablishmentFromContext(ctx context.Context) (*entities.Establishment, bool) {
	est, ok := ctx.Value(establishmentCtxKey{}).(*entities.Establishment)
	return est, ok && est != nil
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
