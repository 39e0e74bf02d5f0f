package repositories

import (
	"context"
	"time"

	"maisquecardapio.backend/internal/domain/entities"
	"maisquecardapio.backend/pkg/utils"
)

// EstablishmentRepository loads establishments with their plan preloaded
type EstablishmentRepository interface {
	Create(ctx context.Context, establishment *entities.Establishment) error
	GetByID(ctx context.Context, id int64) (*entities.Establishment, error)
	GetBySlug(ctx context.Context, slug string) (*entities.Establishment, error)
	FindByOwnerContact(ctx context.Context, email, phone string) (*entities.Establishment, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, params utils.PaginationParams) ([]*entities.EstablishmentSummary, int64, error)
	ListByPlanAndStatus(ctx context.Context, planCode string, status entities.EstablishmentStatus) ([]*entities.Establishment, error)
	Update(ctx context.Context, establishment *entities.Establishment) error
	// DowngradeExpired moves the establishment from fromPlanID to toPlanID only while
	// paid_until is still before cutoff; it reports whether the row changed
	DowngradeExpired(ctx context.Context, id, fromPlanID, toPlanID int64, cutoff time.Time) (bool, error)
	// Delete removes the establishment and every tenant scoped row
	Delete(ctx context.Context, id int64) error
}
