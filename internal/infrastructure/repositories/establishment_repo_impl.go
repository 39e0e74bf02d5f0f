package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"maisquecardapio.backend/internal/domain/entities"
	domainerrors "maisquecardapio.backend/internal/domain/errors"
	"maisquecardapio.backend/internal/domain/repositories"
	"maisquecardapio.backend/internal/infrastructure/models"
	"maisquecardapio.backend/pkg/utils"
)

// tenantTables holds every table carrying establishment_id, children first
var tenantTables = []string{
	"settings",
	"orders",
	"reservations",
	"commands",
	"tables",
	"products",
	"categories",
	"neighborhoods",
	"subscription_reminders",
	"subscriptions",
}

// establishmentRepo implements repositories.EstablishmentRepository
type establishmentRepo struct {
	db *gorm.DB
}

// NewEstablishmentRepository creates a new establishment repository
func NewEstablishmentRepository(db *gorm.DB) repositories.EstablishmentRepository {
	return &establishmentRepo{db: db}
}

// Create creates a new establishment
func (r *establishmentRepo) Create(ctx context.Context, establishment *entities.Establishment) error {
	m := establishmentToModel(establishment)
	if err := GetDB(ctx, r.db).Omit("Plan").Create(m).Error; err != nil {
		return translateError(err)
	}
	establishment.ID = m.ID
	establishment.CreatedAt = m.CreatedAt
	establishment.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets an establishment by ID
func (r *establishmentRepo) GetByID(ctx context.Context, id int64) (*entities.Establishment, error) {
	return r.first(ctx, "id = ?", id)
}

// GetBySlug gets an establishment by slug
func (r *establishmentRepo) GetBySlug(ctx context.Context, slug string) (*entities.Establishment, error) {
	return r.first(ctx, "slug = ?", slug)
}

// FindByOwnerContact matches on the owner email (case insensitive) or phone, oldest first
func (r *establishmentRepo) FindByOwnerContact(ctx context.Context, email, phone string) (*entities.Establishment, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	phone = strings.TrimSpace(phone)
	if email == "" && phone == "" {
		return nil, domainerrors.ErrNotFound
	}

	query := GetDB(ctx, r.db).Preload("Plan")
	switch {
	case email != "" && phone != "":
		query = query.Where("LOWER(owner_email) = ? OR owner_phone = ?", email, phone)
	case email != "":
		query = query.Where("LOWER(owner_email) = ?", email)
	default:
		query = query.Where("owner_phone = ?", phone)
	}

	var m models.Establishment
	if err := query.Order("id ASC").First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return establishmentToEntity(&m), nil
}

// SlugExists checks whether a slug is taken
func (r *establishmentRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	return exists(GetDB(ctx, r.db).Model(&models.Establishment{}).Where("slug = ?", slug))
}

// List lists establishments with their plan name, newest first
func (r *establishmentRepo) List(ctx context.Context, params utils.PaginationParams) ([]*entities.EstablishmentSummary, int64, error) {
	var total int64
	if err := GetDB(ctx, r.db).Model(&models.Establishment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Establishment
	if err := GetDB(ctx, r.db).
		Preload("Plan").
		Order("created_at DESC, id DESC").
		Limit(params.Limit).
		Offset(params.CalculateOffset()).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.EstablishmentSummary, 0, len(ms))
	for i := range ms {
		e := establishmentToEntity(&ms[i])
		summary := &entities.EstablishmentSummary{Establishment: *e}
		if e.Plan != nil {
			summary.PlanName = e.Plan.Name
		}
		items = append(items, summary)
	}
	return items, total, nil
}

// ListByPlanAndStatus lists establishments on a plan code with a status
func (r *establishmentRepo) ListByPlanAndStatus(ctx context.Context, planCode string, status entities.EstablishmentStatus) ([]*entities.Establishment, error) {
	var ms []models.Establishment
	if err := GetDB(ctx, r.db).
		Select("establishments.*").
		Joins("JOIN plans ON plans.id = establishments.plan_id").
		Where("plans.code = ? AND establishments.status = ?", planCode, string(status)).
		Preload("Plan").
		Order("establishments.id ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.Establishment, 0, len(ms))
	for i := range ms {
		items = append(items, establishmentToEntity(&ms[i]))
	}
	return items, nil
}

// Update writes every editable column of an establishment
func (r *establishmentRepo) Update(ctx context.Context, establishment *entities.Establishment) error {
	m := establishmentToModel(establishment)
	result := GetDB(ctx, r.db).
		Model(&models.Establishment{}).
		Where("id = ?", establishment.ID).
		Updates(map[string]interface{}{
			"name":            m.Name,
			"owner_email":     m.OwnerEmail,
			"owner_phone":     m.OwnerPhone,
			"password_hash":   m.PasswordHash,
			"plan_id":         m.PlanID,
			"status":          m.Status,
			"paid_until":      m.PaidUntil,
			"trial_ends_at":   m.TrialEndsAt,
			"last_payment_at": m.LastPaymentAt,
			"updated_at":      time.Now().UTC(),
		})
	return affectedOrNotFound(result)
}

// DowngradeExpired changes the plan with a guarded update so a renewal committed meanwhile wins
func (r *establishmentRepo) DowngradeExpired(ctx context.Context, id, fromPlanID, toPlanID int64, cutoff time.Time) (bool, error) {
	result := GetDB(ctx, r.db).
		Model(&models.Establishment{}).
		Where("id = ? AND plan_id = ? AND paid_until IS NOT NULL AND paid_until < ?", id, fromPlanID, cutoff.UTC()).
		Updates(map[string]interface{}{
			"plan_id":    toPlanID,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, translateError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Delete deletes an establishment and its tenant rows
func (r *establishmentRepo) Delete(ctx context.Context, id int64) error {
	db := GetDB(ctx, r.db)
	for _, table := range tenantTables {
		if err := db.Exec("DELETE FROM "+table+" WHERE establishment_id = ?", id).Error; err != nil {
			return err
		}
	}
	return affectedOrNotFound(db.Delete(&models.Establishment{}, "id = ?", id))
}

func (r *establishmentRepo) first(ctx context.Context, query string, args ...interface{}) (*entities.Establishment, error) {
	var m models.Establishment
	if err := GetDB(ctx, r.db).Preload("Plan").Where(query, args...).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return establishmentToEntity(&m), nil
}

func establishmentToEntity(m *models.Establishment) *entities.Establishment {
	e := &entities.Establishment{
		ID:            m.ID,
		Name:          m.Name,
		Slug:          m.Slug,
		OwnerEmail:    m.OwnerEmail,
		OwnerPhone:    m.OwnerPhone,
		PasswordHash:  m.PasswordHash,
		PlanID:        m.PlanID,
		Status:        entities.EstablishmentStatus(m.Status),
		PaidUntil:     null.TimeFromPtr(m.PaidUntil),
		TrialEndsAt:   null.TimeFromPtr(m.TrialEndsAt),
		LastPaymentAt: null.TimeFromPtr(m.LastPaymentAt),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.Plan != nil {
		e.Plan = planToEntity(m.Plan)
	}
	return e
}

func establishmentToModel(e *entities.Establishment) *models.Establishment {
	return &models.Establishment{
		ID:            e.ID,
		Name:          e.Name,
		Slug:          e.Slug,
		OwnerEmail:    strings.ToLower(strings.TrimSpace(e.OwnerEmail)),
		OwnerPhone:    strings.TrimSpace(e.OwnerPhone),
		PasswordHash:  e.PasswordHash,
		PlanID:        e.PlanID,
		Status:        string(e.Status),
		PaidUntil:     utcPtr(e.PaidUntil),
		TrialEndsAt:   utcPtr(e.TrialEndsAt),
		LastPaymentAt: utcPtr(e.LastPaymentAt),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func utcPtr(t null.Time) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}
