package repositories

import (
	"context"

	"maisquecardapio.backend/internal/domain/entities"
)

type TableRepository interface {
	List(ctx context.Context, establishmentID int64) ([]*entities.Table, error)
	Exists(ctx context.Context, establishmentID, id int64) (bool, error)
	Create(ctx context.Context, table *entities.Table) error
	Update(ctx context.Context, table *entities.Table) error
	Delete(ctx context.Context, establishmentID, id int64) error
}

type CommandRepository interface {
	ListOpen(ctx context.Context, establishmentID int64) ([]*entities.Command, error)
	Create(ctx context.Context, command *entities.Command) error
	UpdateStatus(ctx context.Context, establishmentID, id int64, status string) error
	Delete(ctx context.Context, establishmentID, id int64) error
}
