package repositories

import (
	"context"

	"maisquecardapio.backend/internal/domain/entities"
	"maisquecardapio.backend/pkg/utils"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entities.Order) error
	// List returns newest first, joined with the neighborhood name
	List(ctx context.Context, establishmentID int64, params utils.PaginationParams) ([]*entities.Order, int64, error)
	UpdateStatus(ctx context.Context, establishmentID, id int64, status string) error
}

type ReservationRepository interface {
	// List is ordered by reservation time, left joined with the table number
	List(ctx context.Context, establishmentID int64) ([]*entities.Reservation, error)
	Create(ctx context.Context, reservation *entities.Reservation) error
	UpdateStatus(ctx context.Context, establishmentID, id int64, status string) error
	Delete(ctx context.Context, establishmentID, id int64) error
}
