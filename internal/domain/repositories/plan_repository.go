package repositories

import (
	"context"

	"maisquecardapio.backend/internal/domain/entities"
)

type PlanRepository interface {
	List(ctx context.Context) ([]*entities.Plan, error)
	GetByID(ctx context.Context, id int64) (*entities.Plan, error)
	GetByCode(ctx context.Context, code string) (*entities.Plan, error)
	Create(ctx context.Context, plan *entities.Plan) error
	Update(ctx context.Context, plan *entities.Plan) error
	Delete(ctx context.Context, id int64) error
	CountEstablishments(ctx context.Context, planID int64) (int64, error)
}
