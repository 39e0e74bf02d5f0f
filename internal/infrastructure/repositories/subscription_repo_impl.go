package repositories

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"maisquecardapio.backend/internal/domain/entities"
	"maisquecardapio.backend/internal/domain/repositories"
	"maisquecardapio.backend/internal/infrastructure/models"
)

// subscriptionRepo implements repositories.SubscriptionRepository
type subscriptionRepo struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *gorm.DB) repositories.SubscriptionRepository {
	return &subscriptionRepo{db: db}
}

// Create creates a new subscription record
func (r *subscriptionRepo) Create(ctx context.Context, subscription *entities.Subscription) error {
	m := &models.Subscription{
		EstablishmentID: subscription.EstablishmentID,
		PlanID:          subscription.PlanID,
		Price:           subscription.Price,
		Months:          subscription.Months,
		Status:          string(subscription.Status),
		Source:          subscription.Source,
		StartedAt:       utcPtr(subscription.StartedAt),
		EndsAt:          utcPtr(subscription.EndsAt),
		NextPaymentAt:   utcPtr(subscription.NextPaymentAt),
		Payload:         subscription.Payload,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translateError(err)
	}
	subscription.ID = m.ID
	subscription.CreatedAt = m.CreatedAt
	subscription.UpdatedAt = m.UpdatedAt
	return nil
}

// GetLatestPending gets the newest pending record
func (r *subscriptionRepo) GetLatestPending(ctx context.Context, establishmentID int64) (*entities.Subscription, error) {
	var m models.Subscription
	if err := GetDB(ctx, r.db).
		Where("establishment_id = ? AND status = ?", establishmentID, string(entities.SubscriptionStatusPending)).
		Order("id DESC").
		First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return subscriptionToEntity(&m), nil
}

// TransitionActive moves every active record of the establishment to status
func (r *subscriptionRepo) TransitionActive(ctx context.Context, establishmentID int64, status entities.SubscriptionStatus) error {
	return GetDB(ctx, r.db).
		Model(&models.Subscription{}).
		Where("establishment_id = ? AND status = ?", establishmentID, string(entities.SubscriptionStatusActive)).
		Updates(map[string]interface{}{"status": string(status), "updated_at": time.Now().UTC()}).Error
}

// UpdateStatus updates the status of a record
func (r *subscriptionRepo) UpdateStatus(ctx context.Context, id int64, status entities.SubscriptionStatus) error {
	result := GetDB(ctx, r.db).
		Model(&models.Subscription{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": string(status), "updated_at": time.Now().UTC()})
	return affectedOrNotFound(result)
}

// Activate turns a pending request into the active billing period
func (r *subscriptionRepo) Activate(ctx context.Context, id int64, activation entities.SubscriptionActivation) error {
	result := GetDB(ctx, r.db).
		Model(&models.Subscription{}).
		Where("id = ? AND status = ?", id, string(entities.SubscriptionStatusPending)).
		Updates(map[string]interface{}{
			"status":          string(entities.SubscriptionStatusActive),
			"plan_id":         activation.PlanID,
			"price":           activation.Price,
			"months":          activation.Months,
			"started_at":      activation.StartedAt.UTC(),
			"ends_at":         activation.EndsAt.UTC(),
			"next_payment_at": activation.EndsAt.UTC(),
			"updated_at":      time.Now().UTC(),
		})
	return affectedOrNotFound(result)
}

func subscriptionToEntity(m *models.Subscription) *entities.Subscription {
	return &entities.Subscription{
		ID:              m.ID,
		EstablishmentID: m.EstablishmentID,
		PlanID:          m.PlanID,
		Price:           m.Price,
		Months:          m.Months,
		Status:          entities.SubscriptionStatus(m.Status),
		Source:          m.Source,
		StartedAt:       null.TimeFromPtr(m.StartedAt),
		EndsAt:          null.TimeFromPtr(m.EndsAt),
		NextPaymentAt:   null.TimeFromPtr(m.NextPaymentAt),
		Payload:         m.Payload,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// reminderRepo implements repositories.ReminderRepository
type reminderRepo struct {
	db *gorm.DB
}

// NewReminderRepository creates a new reminder repository
func NewReminderRepository(db *gorm.DB) repositories.ReminderRepository {
	return &reminderRepo{db: db}
}

// Create logs a sent reminder
func (r *reminderRepo) Create(ctx context.Context, reminder *entities.SubscriptionReminder) error {
	m := &models.SubscriptionReminder{
		EstablishmentID: reminder.EstablishmentID,
		Type:            reminder.Type,
		SentAt:          reminder.SentAt.UTC(),
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	reminder.ID = m.ID
	return nil
}

// SentSince checks whether a reminder of the type was sent since the given time
func (r *reminderRepo) SentSince(ctx context.Context, establishmentID int64, reminderType string, since time.Time) (bool, error) {
	return exists(GetDB(ctx, r.db).
		Model(&models.SubscriptionReminder{}).
		Where("establishment_id = ? AND type = ? AND sent_at >= ?", establishmentID, reminderType, since.UTC()))
}
