package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"maisquecardapio.backend/internal/domain/entities"
	"maisquecardapio.backend/internal/infrastructure/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err, "open sqlite")
	require.NoError(t, db.AutoMigrate(models.All()...), "automigrate")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

// seedPlans inserts the free and premium plans and returns them in that order
func seedPlans(t *testing.T, db *gorm.DB) (*entities.Plan, *entities.Plan) {
	t.Helper()
	repo := NewPlanRepository(db)
	free := &entities.Plan{Code: entities.PlanCodeFree, Name: "Gratuito", MaxProducts: null.IntFrom(10)}
	premium := &entities.Plan{
		Code:               entities.PlanCodePremium,
		Name:               "Premium",
		Price:              49.90,
		MaxProducts:        null.IntFrom(100),
		EnableAI:           true,
		EnableReservations: true,
		EnableAutomation:   true,
	}
	require.NoError(t, repo.Create(context.Background(), free))
	require.NoError(t, repo.Create(context.Background(), premium))
	return free, premium
}

func seedEstablishment(t *testing.T, db *gorm.DB, planID int64, slug string) *entities.Establishment {
	t.Helper()
	e := &entities.Establishment{
		Name:         slug,
		Slug:         slug,
		OwnerEmail:   slug + "@example.com",
		PasswordHash: "hash",
		PlanID:       planID,
		Status:       entities.EstablishmentStatusActive,
	}
	require.NoError(t, NewEstablishmentRepository(db).Create(context.Background(), e))
	return e
}
