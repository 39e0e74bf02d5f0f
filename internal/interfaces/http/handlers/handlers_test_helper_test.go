package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"maisquecardapio.backend/internal/domain/entities"
	"maisquecardapio.backend/internal/infrastructure/models"
	"maisquecardapio.backend/internal/infrastructure/repositories"
	"maisquecardapio.backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// seedTenants creates two establishments on a plan limited to maxProducts
func seedTenants(t *testing.T, db *gorm.DB, maxProducts int) (*entities.Establishment, *entities.Establishment) {
	t.Helper()
	ctx := context.Background()
	plan := &entities.Plan{Code: entities.PlanCodeFree, Name: "Gratuito", MaxProducts: null.IntFrom(maxProducts)}
	require.NoError(t, repositories.NewPlanRepository(db).Create(ctx, plan))

	estRepo := repositories.NewEstablishmentRepository(db)
	var out []*entities.Establishment
	for _, slug := range []string{"joe-burger", "pizzaria"} {
		est := &entities.Establishment{
			Name:         slug,
			Slug:         slug,
			OwnerEmail:   slug + "@example.com",
			PasswordHash: "hash",
			PlanID:       plan.ID,
			Status:       entities.EstablishmentStatusActive,
		}
		require.NoError(t, estRepo.Create(ctx, est))
		est.Plan = plan
		out = append(out, est)
	}
	return out[0], out[1]
}

// withTenant stands in for TenantMiddleware
func withTenant(est *entities.Establishment) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.EstablishmentKey, est)
		c.Next()
	}
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func createdID(t *testing.T, rec *httptest.ResponseRecorder) int64 {
	t.Helper()
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id, ok := decode(t, rec)["id"].(float64)
	require.True(t, ok, rec.Body.String())
	return int64(id)
}

func jsonUnmarshal(rec *httptest.ResponseRecorder, dst interface{}) error {
	return json.Unmarshal(rec.Body.Bytes(), dst)
}
