package repositories

import (
	"context"

	"maisquecardapio.backend/internal/domain/entities"
)

// Every method is scoped by establishment id; an id that belongs to another
// establishment behaves as not found.

type CategoryRepository interface {
	List(ctx context.Context, establishmentID int64) ([]*entities.Category, error)
	Exists(ctx context.Context, establishmentID, id int64) (bool, error)
	Create(ctx context.Context, category *entities.Category) error
	Update(ctx context.Context, category *entities.Category) error
	Delete(ctx context.Context, establishmentID, id int64) error
}

type ProductRepository interface {
	List(ctx context.Context, establishmentID int64, onlyAvailable bool) ([]*entities.Product, error)
	Count(ctx context.Context, establishmentID int64) (int64, error)
	Create(ctx context.Context, product *entities.Product) error
	Update(ctx context.Context, product *entities.Product) error
	Delete(ctx context.Context, establishmentID, id int64) error
}

type NeighborhoodRepository interface {
	List(ctx context.Context, establishmentID int64) ([]*entities.Neighborhood, error)
	Exists(ctx context.Context, establishmentID, id int64) (bool, error)
	Create(ctx context.Context, neighborhood *entities.Neighborhood) error
	Update(ctx context.Context, neighborhood *entities.Neighborhood) error
	Delete(ctx context.Context, establishmentID, id int64) error
}
