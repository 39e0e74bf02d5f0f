package repositories

import (
	"context"
	"time"

	"maisquecardapio.backend/internal/domain/entities"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *entities.Subscription) error
	GetLatestPending(ctx context.Context, establishmentID int64) (*entities.Subscription, error)
	// TransitionActive moves every active record of the establishment to status
	TransitionActive(ctx context.Context, establishmentID int64, status entities.SubscriptionStatus) error
	UpdateStatus(ctx context.Context, id int64, status entities.SubscriptionStatus) error
	// Activate moves a pending record to active, repriced for the plan and window actually granted
	Activate(ctx context.Context, id int64, activation entities.SubscriptionActivation) error
}

type ReminderRepository interface {
	Create(ctx context.Context, reminder *entities.SubscriptionReminder) error
	SentSince(ctx context.Context, establishmentID int64, reminderType string, since time.Time) (bool, error)
}
