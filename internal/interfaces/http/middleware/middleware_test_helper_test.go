package middleware

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"maisquecardapio.backend/internal/domain/entities"
	domainerrors "maisquecardapio.backend/internal/domain/errors"
	"maisquecardapio.backend/pkg/jwt"
	"maisquecardapio.backend/pkg/redis"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func useMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	srv := miniredis.RunT(t)
	cli := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	orig := redis.GetClient()
	redis.SetClient(cli)
	t.Cleanup(func() {
		_ = cli.Close()
		redis.SetClient(orig)
	})
	return srv
}

type stubLookup map[string]*entities.Establishment

func (s stubLookup) GetBySlug(_ context.Context, slug string) (*entities.Establishment, error) {
	if est, ok := s[slug]; ok {
		return est, nil
	}
	return nil, domainerrors.ErrNotFound
}

type stubOwnerAuth struct {
	claims *jwt.Claims
	err    error
}

func (s stubOwnerAuth) AuthenticateOwner(context.Context, string) (*jwt.Claims, error) {
	return s.claims, s.err
}

type stubSuperadminAuth struct {
	claims *jwt.Claims
	err    error
}

func (s stubSuperadminAuth) AuthenticateSuperadmin(string) (*jwt.Claims, error) {
	return s.claims, s.err
}

var (
	joeBurger = &entities.Establishment{ID: 1, Slug: "joe-burger", Name: "Joe Burger", Status: entities.EstablishmentStatusActive}
	pizzaria  = &entities.Establishment{ID: 2, Slug: "pizzaria", Name: "Pizzaria", Status: entities.EstablishmentStatusActive}
	tenants   = stubLookup{"joe-burger": joeBurger, "pizzaria": pizzaria}
)
