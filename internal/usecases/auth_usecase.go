package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"maisquecardapio.backend/internal/domain/entities"
	domainerrors "maisquecardapio.backend/internal/domain/errors"
	"maisquecardapio.backend/internal/domain/repositories"
	"maisquecardapio.backend/pkg/crypto"
	"maisquecardapio.backend/pkg/jwt"
	"maisquecardapio.backend/pkg/logger"
	"maisquecardapio.backend/pkg/redis"
	"maisquecardapio.backend/pkg/utils"
)

// SessionStore keeps owner sessions server side
type SessionStore interface {
	CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// SuperadminCredentials come from process configuration
type SuperadminCredentials struct {
	Username     string
	PasswordHash string
}

// AuthUsecase handles owner and superadmin authentication
type AuthUsecase struct {
	establishmentRepo repositories.EstablishmentRepository
	jwtService        *jwt.JWTService
	sessions          SessionStore
	superadmin        SuperadminCredentials
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	establishmentRepo repositories.EstablishmentRepository,
	jwtService *jwt.JWTService,
	sessions SessionStore,
	superadmin SuperadminCredentials,
) *AuthUsecase {
	return &AuthUsecase{
		establishmentRepo: establishmentRepo,
		jwtService:        jwtService,
		sessions:          sessions,
		superadmin:        superadmin,
	}
}

// OwnerLogin verifies the establishment password and opens a session
func (u *AuthUsecase) OwnerLogin(ctx context.Context, input *entities.OwnerLoginInput) (*entities.OwnerSession, error) {
	establishment, err := u.establishmentRepo.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(input.Slug)))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if establishment.PasswordHash == "" || !checkPassword(input.Password, establishment.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	sessionID := utils.NewID()
	issued, err := u.jwtService.GenerateOwnerToken(establishment.ID, establishment.Slug, sessionID)
	if err != nil {
		return nil, err
	}

	data := &redis.SessionData{
		EstablishmentID: establishment.ID,
		Slug:            establishment.Slug,
		CreatedAt:       nowFunc().UTC(),
	}
	if err := u.sessions.CreateSession(ctx, sessionID, data, u.jwtService.OwnerExpiry()); err != nil {
		return nil, err
	}

	logger.Info(ctx, "Owner logged in", zap.String("slug", establishment.Slug))

	return &entities.OwnerSession{
		Token:         issued.AccessToken,
		ExpiresAt:     issued.ExpiresAt,
		Establishment: establishment.Public(),
	}, nil
}

// AuthenticateOwner validates an owner token and its server side session
func (u *AuthUsecase) AuthenticateOwner(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := u.jwtService.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	if claims.Role != jwt.RoleOwner || claims.SessionID == "" {
		return nil, domainerrors.ErrForbidden
	}

	session, err := u.sessions.GetSession(ctx, claims.SessionID)
	if err != nil {
		if redis.IsNil(err) {
			return nil, domainerrors.ErrUnauthorized
		}
		return nil, err
	}
	if session.EstablishmentID != claims.EstablishmentID {
		return nil, domainerrors.ErrUnauthorized
	}
	return claims, nil
}

// Logout removes the owner session; the token stops working immediately
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return u.sessions.DeleteSession(ctx, sessionID)
}

// SuperadminLogin checks the configured operator credentials
func (u *AuthUsecase) SuperadminLogin(ctx context.Context, input *entities.SuperadminLoginInput) (*jwt.IssuedToken, error) {
	if u.superadmin.PasswordHash == "" {
		logger.Warn(ctx, "Superadmin login attempted but SUPERADMIN_PASSWORD_HASH is not set")
		return nil, domainerrors.ErrInvalidCredentials
	}

	userOK := crypto.ConstantTimeEqual(input.Username, u.superadmin.Username)
	passOK := checkPassword(input.Password, u.superadmin.PasswordHash)
	if !userOK || !passOK {
		return nil, domainerrors.ErrInvalidCredentials
	}

	return u.jwtService.GenerateSuperadminToken(u.superadmin.Username)
}

// AuthenticateSuperadmin validates a console token
func (u *AuthUsecase) AuthenticateSuperadmin(token string) (*jwt.Claims, error) {
	claims, err := u.jwtService.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	if claims.Role != jwt.RoleSuperadmin {
		return nil, domainerrors.ErrForbidden
	}
	return claims, nil
}
