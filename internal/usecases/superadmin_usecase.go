package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"maisquecardapio.backend/internal/domain/entities"
	domainerrors "maisquecardapio.backend/internal/domain/errors"
	"maisquecardapio.backend/internal/domain/repositories"
	"maisquecardapio.backend/pkg/logger"
	"maisquecardapio.backend/pkg/utils"
)

// SuperadminUsecase backs the platform console
type SuperadminUsecase struct {
	establishmentRepo repositories.EstablishmentRepository
	planRepo          repositories.PlanRepository
	uow               repositories.UnitOfWork
}

// NewSuperadminUsecase creates a new superadmin usecase
func NewSuperadminUsecase(
	establishmentRepo repositories.EstablishmentRepository,
	planRepo repositories.PlanRepository,
	uow repositories.UnitOfWork,
) *SuperadminUsecase {
	return &SuperadminUsecase{establishmentRepo: establishmentRepo, planRepo: planRepo, uow: uow}
}

// ListEstablishments returns a page of establishments joined with their plan name
func (u *SuperadminUsecase) ListEstablishments(ctx context.Context, params utils.PaginationParams) ([]*entities.EstablishmentSummary, utils.PaginationMeta, error) {
	params = utils.GetPaginationParams(params.Page, params.Limit)
	items, total, err := u.establishmentRepo.List(ctx, params)
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return items, utils.CalculateMeta(total, params.Page, params.Limit), nil
}

// UpdateEstablishment applies the non nil fields of input
func (u *SuperadminUsecase) UpdateEstablishment(ctx context.Context, id int64, input *entities.UpdateEstablishmentInput) (*entities.Establishment, error) {
	est, err := u.establishmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerrors.BadRequest("name must not be empty")
		}
		est.Name = name
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, domainerrors.BadRequest("invalid status")
		}
		est.Status = *input.Status
	}
	if input.PlanID != nil {
		plan, err := u.planRepo.GetByID(ctx, *input.PlanID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return nil, domainerrors.BadRequest("plan not found")
			}
			return nil, err
		}
		est.PlanID = plan.ID
		est.Plan = plan
	}
	if input.PaidUntil != nil {
		est.PaidUntil = null.TimeFrom(input.PaidUntil.UTC())
	}

	if err := u.establishmentRepo.Update(ctx, est); err != nil {
		return nil, err
	}
	logger.Info(ctx, "Establishment updated by superadmin", zap.Int64("establishment_id", est.ID))
	return est, nil
}

// DeleteEstablishment removes the tenant and all of its rows in one transaction
func (u *SuperadminUsecase) DeleteEstablishment(ctx context.Context, id int64) error {
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		return u.establishmentRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}
	logger.Warn(ctx, "Establishment deleted by superadmin", zap.Int64("establishment_id", id))
	return nil
}

// ListPlans returns every plan
func (u *SuperadminUsecase) ListPlans(ctx context.Context) ([]*entities.Plan, error) {
	return u.planRepo.List(ctx)
}

// CreatePlan adds a plan; codes are unique
func (u *SuperadminUsecase) CreatePlan(ctx context.Context, input *entities.PlanInput) (*entities.Plan, error) {
	plan := planFromInput(input)
	if plan.Code == "" {
		return nil, domainerrors.BadRequest("code is required")
	}
	if err := u.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// UpdatePlan replaces the plan attributes
func (u *SuperadminUsecase) UpdatePlan(ctx context.Context, id int64, input *entities.PlanInput) (*entities.Plan, error) {
	plan := planFromInput(input)
	plan.ID = id
	if err := u.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// DeletePlan refuses while any establishment still references the plan
func (u *SuperadminUsecase) DeletePlan(ctx context.Context, id int64) error {
	count, err := u.planRepo.CountEstablishments(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domainerrors.Conflict("plan is in use by establishments")
	}
	return u.planRepo.Delete(ctx, id)
}

func planFromInput(input *entities.PlanInput) *entities.Plan {
	plan := &entities.Plan{
		Code:               strings.ToLower(strings.TrimSpace(input.Code)),
		Name:               strings.TrimSpace(input.Name),
		Price:              roundCents(input.Price),
		EnableAI:           input.EnableAI,
		EnableReservations: input.EnableReservations,
		EnableAutomation:   input.EnableAutomation,
	}
	if input.MaxProducts != nil {
		plan.MaxProducts = null.IntFrom(*input.MaxProducts)
	}
	return plan
}
