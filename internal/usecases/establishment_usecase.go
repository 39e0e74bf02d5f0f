package usecases

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	"maisquecardapio.backend/internal/domain/entities"
	domainerrors "maisquecardapio.backend/internal/domain/errors"
	"maisquecardapio.backend/internal/domain/repositories"
	"maisquecardapio.backend/pkg/crypto"
	"maisquecardapio.backend/pkg/utils"
)

const slugTakenMessage = "slug já em uso"

// EstablishmentUsecase handles tenant registration and public lookup
type EstablishmentUsecase struct {
	establishmentRepo repositories.EstablishmentRepository
	planRepo          repositories.PlanRepository
	settingsRepo      repositories.SettingsRepository
	uow               repositories.UnitOfWork
	trialDays         int
}

// NewEstablishmentUsecase creates a new establishment usecase
func NewEstablishmentUsecase(
	establishmentRepo repositories.EstablishmentRepository,
	planRepo repositories.PlanRepository,
	settingsRepo repositories.SettingsRepository,
	uow repositories.UnitOfWork,
	trialDays int,
) *EstablishmentUsecase {
	return &EstablishmentUsecase{
		establishmentRepo: establishmentRepo,
		planRepo:          planRepo,
		settingsRepo:      settingsRepo,
		uow:               uow,
		trialDays:         trialDays,
	}
}

// Register creates an establishment on the free plan with default settings
func (u *EstablishmentUsecase) Register(ctx context.Context, input *entities.RegisterEstablishmentInput) (*entities.Establishment, error) {
	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	if !utils.IsValidSlug(slug) {
		return nil, domainerrors.BadRequest("invalid slug: use lowercase letters, digits and hyphens")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerrors.BadRequest("name is required")
	}
	if len(input.Password) > crypto.MaxPasswordBytes {
		return nil, domainerrors.BadRequest("password too long: at most 72 bytes")
	}

	taken, err := u.establishmentRepo.SlugExists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domainerrors.Conflict(slugTakenMessage)
	}

	plan, err := u.planRepo.GetByCode(ctx, entities.PlanCodeFree)
	if err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := nowFunc().UTC()
	establishment := &entities.Establishment{
		Name:         name,
		Slug:         slug,
		OwnerEmail:   strings.TrimSpace(input.OwnerEmail),
		OwnerPhone:   strings.TrimSpace(input.OwnerPhone),
		PasswordHash: passwordHash,
		PlanID:       plan.ID,
		Plan:         plan,
		Status:       entities.EstablishmentStatusActive,
	}
	if u.trialDays > 0 {
		establishment.TrialEndsAt = null.TimeFrom(now.Add(time.Duration(u.trialDays) * 24 * time.Hour))
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.establishmentRepo.Create(txCtx, establishment); err != nil {
			return err
		}
		return u.settingsRepo.Upsert(txCtx, establishment.ID, entities.DefaultSettings(name))
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict(slugTakenMessage)
		}
		return nil, err
	}

	return establishment, nil
}

// GetPublic returns the anonymous view of an establishment
func (u *EstablishmentUsecase) GetPublic(ctx context.Context, slug string) (*entities.PublicEstablishment, error) {
	establishment, err := u.establishmentRepo.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, err
	}
	public := establishment.Public()
	return &public, nil
}

// uniqueSlug derives a free slug from a store name, appending -2, -3, ... on collision
func uniqueSlug(ctx context.Context, repo repositories.EstablishmentRepository, name string) (string, error) {
	base := utils.Slugify(name)
	if base == "" {
		base = "loja"
	}
	candidate := base
	for i := 2; ; i++ {
		taken, err := repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(i)
	}
}
