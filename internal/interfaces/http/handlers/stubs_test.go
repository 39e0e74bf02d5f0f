package handlers

import (
	"context"
	"time"

	"maisquecardapio.backend/internal/domain/entities"
	domainerrors "maisquecardapio.backend/internal/domain/errors"
	"maisquecardapio.backend/pkg/jwt"
	"maisquecardapio.backend/pkg/utils"
)

type orderServiceStub struct {
	createFn func(ctx context.Context, est *entities.Establishment, input *entities.CreateOrderInput) (*entities.Order, error)
	listFn   func(ctx context.Context, establishmentID int64, params utils.PaginationParams) ([]*entities.Order, utils.PaginationMeta, error)
	statusFn func(ctx context.Context, establishmentID, id int64, status string) error
}

func (s *orderServiceStub) CreateOrder(ctx context.Context, est *entities.Establishment, input *entities.CreateOrderInput) (*entities.Order, error) {
	if s.createFn != nil {
		return s.createFn(ctx, est, input)
	}
	return &entities.Order{ID: 1}, nil
}

func (s *orderServiceStub) ListOrders(ctx context.Context, establishmentID int64, params utils.PaginationParams) ([]*entities.Order, utils.PaginationMeta, error) {
	if s.listFn != nil {
		return s.listFn(ctx, establishmentID, params)
	}
	return nil, utils.CalculateMeta(0, params.Page, params.Limit), nil
}

func (s *orderServiceStub) UpdateOrderStatus(ctx context.Context, establishmentID, id int64, status string) error {
	if s.statusFn != nil {
		return s.statusFn(ctx, establishmentID, id, status)
	}
	return nil
}

type settingsServiceStub struct {
	all    map[string]string
	public entities.PublicSettings
	err    error
	saved  map[string]interface{}
}

func (s *settingsServiceStub) GetAll(context.Context, int64) (map[string]string, error) {
	return s.all, s.err
}

func (s *settingsServiceStub) GetPublic(context.Context, int64) (entities.PublicSettings, error) {
	return s.public, s.err
}

func (s *settingsServiceStub) Save(_ context.Context, _ int64, values map[string]interface{}) error {
	if s.err != nil {
		return s.err
	}
	s.saved = values
	return nil
}

type subscriptionServiceStub struct {
	runCheckFn func(ctx context.Context) (*entities.SubscriptionCheckReport, error)
	renewFn    func(ctx context.Context, establishmentID int64, months int, source string, payload interface{}) (*entities.Establishment, error)
	upgradeFn  func(ctx context.Context, est *entities.Establishment, input *entities.UpgradeRequestInput) (*entities.Subscription, error)
	paymentFn  func(ctx context.Context, input *entities.PaymentWebhookInput) (*entities.Establishment, bool, error)
	syncFn     func(ctx context.Context, input *entities.ExternalOrderInput) (*entities.ExternalOrderResult, error)
	statusFn   func(ctx context.Context, est *entities.Establishment, now time.Time) (*entities.SubscriptionOverview, error)
}

func (s *subscriptionServiceStub) RunCheck(ctx context.Context) (*entities.SubscriptionCheckReport, error) {
	if s.runCheckFn != nil {
		return s.runCheckFn(ctx)
	}
	return &entities.SubscriptionCheckReport{}, nil
}

func (s *subscriptionServiceStub) Renew(ctx context.Context, establishmentID int64, months int, source string, payload interface{}) (*entities.Establishment, error) {
	if s.renewFn != nil {
		return s.renewFn(ctx, establishmentID, months, source, payload)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *subscriptionServiceStub) RequestUpgrade(ctx context.Context, est *entities.Establishment, input *entities.UpgradeRequestInput) (*entities.Subscription, error) {
	if s.upgradeFn != nil {
		return s.upgradeFn(ctx, est, input)
	}
	return &entities.Subscription{ID: 1}, nil
}

func (s *subscriptionServiceStub) HandlePaymentWebhook(ctx context.Context, input *entities.PaymentWebhookInput) (*entities.Establishment, bool, error) {
	if s.paymentFn != nil {
		return s.paymentFn(ctx, input)
	}
	return nil, false, nil
}

func (s *subscriptionServiceStub) SyncFromExternalOrder(ctx context.Context, input *entities.ExternalOrderInput) (*entities.ExternalOrderResult, error) {
	if s.syncFn != nil {
		return s.syncFn(ctx, input)
	}
	return &entities.ExternalOrderResult{}, nil
}

func (s *subscriptionServiceStub) Status(ctx context.Context, est *entities.Establishment, now time.Time) (*entities.SubscriptionOverview, error) {
	if s.statusFn != nil {
		return s.statusFn(ctx, est, now)
	}
	return &entities.SubscriptionOverview{}, nil
}

type authServiceStub struct {
	ownerLoginFn func(ctx context.Context, input *entities.OwnerLoginInput) (*entities.OwnerSession, error)
	logoutFn     func(ctx context.Context, sessionID string) error
	superFn      func(ctx context.Context, input *entities.SuperadminLoginInput) (*jwt.IssuedToken, error)
}

func (s *authServiceStub) OwnerLogin(ctx context.Context, input *entities.OwnerLoginInput) (*entities.OwnerSession, error) {
	if s.ownerLoginFn != nil {
		return s.ownerLoginFn(ctx, input)
	}
	return nil, domainerrors.ErrInvalidCredentials
}

func (s *authServiceStub) Logout(ctx context.Context, sessionID string) error {
	if s.logoutFn != nil {
		return s.logoutFn(ctx, sessionID)
	}
	return nil
}

func (s *authServiceStub) SuperadminLogin(ctx context.Context, input *entities.SuperadminLoginInput) (*jwt.IssuedToken, error) {
	if s.superFn != nil {
		return s.superFn(ctx, input)
	}
	return nil, domainerrors.ErrInvalidCredentials
}

type superadminServiceStub struct {
	listFn       func(ctx context.Context, params utils.PaginationParams) ([]*entities.EstablishmentSummary, utils.PaginationMeta, error)
	updateFn     func(ctx context.Context, id int64, input *entities.UpdateEstablishmentInput) (*entities.Establishment, error)
	deleteFn     func(ctx context.Context, id int64) error
	plans        []*entities.Plan
	createPlanFn func(ctx context.Context, input *entities.PlanInput) (*entities.Plan, error)
	updatePlanFn func(ctx context.Context, id int64, input *entities.PlanInput) (*entities.Plan, error)
	deletePlanFn func(ctx context.Context, id int64) error
}

func (s *superadminServiceStub) ListEstablishments(ctx context.Context, params utils.PaginationParams) ([]*entities.EstablishmentSummary, utils.PaginationMeta, error) {
	if s.listFn != nil {
		return s.listFn(ctx, params)
	}
	return nil, utils.CalculateMeta(0, params.Page, params.Limit), nil
}

func (s *superadminServiceStub) UpdateEstablishment(ctx context.Context, id int64, input *entities.UpdateEstablishmentInput) (*entities.Establishment, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, id, input)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *superadminServiceStub) DeleteEstablishment(ctx context.Context, id int64) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func (s *superadminServiceStub) ListPlans(context.Context) ([]*entities.Plan, error) {
	return s.plans, nil
}

func (s *superadminServiceStub) CreatePlan(ctx context.Context, input *entities.PlanInput) (*entities.Plan, error) {
	if s.createPlanFn != nil {
		return s.createPlanFn(ctx, input)
	}
	return &entities.Plan{ID: 1}, nil
}

func (s *superadminServiceStub) UpdatePlan(ctx context.Context, id int64, input *entities.PlanInput) (*entities.Plan, error) {
	if s.updatePlanFn != nil {
		return s.updatePlanFn(ctx, id, input)
	}
	return &entities.Plan{ID: id}, nil
}

func (s *superadminServiceStub) DeletePlan(ctx context.Context, id int64) error {
	if s.deletePlanFn != nil {
		return s.deletePlanFn(ctx, id)
	}
	return nil
}

type establishmentServiceStub struct {
	registerFn func(ctx context.Context, input *entities.RegisterEstablishmentInput) (*entities.Establishment, error)
	publicFn   func(ctx context.Context, slug string) (*entities.PublicEstablishment, error)
}

func (s *establishmentServiceStub) Register(ctx context.Context, input *entities.RegisterEstablishmentInput) (*entities.Establishment, error) {
	if s.registerFn != nil {
		return s.registerFn(ctx, input)
	}
	return nil, domainerrors.ErrAlreadyExists
}

func (s *establishmentServiceStub) GetPublic(ctx context.Context, slug string) (*entities.PublicEstablishment, error) {
	if s.publicFn != nil {
		return s.publicFn(ctx, slug)
	}
	return nil, domainerrors.ErrNotFound
}
