package repositories

import (
	"context"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"maisquecardapio.backend/internal/domain/entities"
	"maisquecardapio.backend/internal/domain/repositories"
	"maisquecardapio.backend/internal/infrastructure/models"
)

// planRepo implements repositories.PlanRepository
type planRepo struct {
	db *gorm.DB
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *gorm.DB) repositories.PlanRepository {
	return &planRepo{db: db}
}

// List lists plans by price
func (r *planRepo) List(ctx context.Context) ([]*entities.Plan, error) {
	var ms []models.Plan
	if err := GetDB(ctx, r.db).Order("price ASC, id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.Plan, 0, len(ms))
	for i := range ms {
		items = append(items, planToEntity(&ms[i]))
	}
	return items, nil
}

// GetByID gets a plan by ID
func (r *planRepo) GetByID(ctx context.Context, id int64) (*entities.Plan, error) {
	var m models.Plan
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return planToEntity(&m), nil
}

// GetByCode gets a plan by code
func (r *planRepo) GetByCode(ctx context.Context, code string) (*entities.Plan, error) {
	var m models.Plan
	if err := GetDB(ctx, r.db).Where("code = ?", code).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return planToEntity(&m), nil
}

// Create creates a new plan
func (r *planRepo) Create(ctx context.Context, plan *entities.Plan) error {
	m := planToModel(plan)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translateError(err)
	}
	plan.ID = m.ID
	plan.CreatedAt = m.CreatedAt
	return nil
}

// Update updates a plan
func (r *planRepo) Update(ctx context.Context, plan *entities.Plan) error {
	m := planToModel(plan)
	result := GetDB(ctx, r.db).
		Model(&models.Plan{}).
		Where("id = ?", plan.ID).
		Updates(map[string]interface{}{
			"code":                m.Code,
			"name":                m.Name,
			"price":               m.Price,
			"max_products":        m.MaxProducts,
			"enable_ai":           m.EnableAI,
			"enable_reservations": m.EnableReservations,
			"enable_automation":   m.EnableAutomation,
		})
	return affectedOrNotFound(result)
}

// Delete deletes a plan
func (r *planRepo) Delete(ctx context.Context, id int64) error {
	return affectedOrNotFound(GetDB(ctx, r.db).Delete(&models.Plan{}, "id = ?", id))
}

// CountEstablishments counts establishments on a plan
func (r *planRepo) CountEstablishments(ctx context.Context, planID int64) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&models.Establishment{}).Where("plan_id = ?", planID).Count(&count).Error
	return count, err
}

func planToEntity(m *models.Plan) *entities.Plan {
	p := &entities.Plan{
		ID:                 m.ID,
		Code:               m.Code,
		Name:               m.Name,
		Price:              m.Price,
		EnableAI:           m.EnableAI,
		EnableReservations: m.EnableReservations,
		EnableAutomation:   m.EnableAutomation,
		CreatedAt:          m.CreatedAt,
	}
	if m.MaxProducts != nil {
		p.MaxProducts = null.IntFrom(*m.MaxProducts)
	}
	return p
}

func planToModel(e *entities.Plan) *models.Plan {
	m := &models.Plan{
		ID:                 e.ID,
		Code:               e.Code,
		Name:               e.Name,
		Price:              e.Price,
		EnableAI:           e.EnableAI,
		EnableReservations: e.EnableReservations,
		EnableAutomation:   e.EnableAutomation,
		CreatedAt:          e.CreatedAt,
	}
	if e.MaxProducts.Valid {
		v := e.MaxProducts.Int
		m.MaxProducts = &v
	}
	return m
}
