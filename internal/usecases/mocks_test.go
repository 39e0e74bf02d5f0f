package usecases_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"maisquecardapio.backend/internal/domain/entities"
	"maisquecardapio.backend/internal/infrastructure/messaging"
	"maisquecardapio.backend/pkg/redis"
	"maisquecardapio.backend/pkg/utils"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock EstablishmentRepository
type MockEstablishmentRepository struct {
	mock.Mock
}

func (m *MockEstablishmentRepository) Create(ctx context.Context, e *entities.Establishment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEstablishmentRepository) GetByID(ctx context.Context, id int64) (*entities.Establishment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Establishment), args.Error(1)
}

func (m *MockEstablishmentRepository) GetBySlug(ctx context.Context, slug string) (*entities.Establishment, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Establishment), args.Error(1)
}

func (m *MockEstablishmentRepository) FindByOwnerContact(ctx context.Context, email, phone string) (*entities.Establishment, error) {
	args := m.Called(ctx, email, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Establishment), args.Error(1)
}

func (m *MockEstablishmentRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockEstablishmentRepository) List(ctx context.Context, params utils.PaginationParams) ([]*entities.EstablishmentSummary, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.EstablishmentSummary), args.Get(1).(int64), args.Error(2)
}

func (m *MockEstablishmentRepository) ListByPlanAndStatus(ctx context.Context, planCode string, status entities.EstablishmentStatus) ([]*entities.Establishment, error) {
	args := m.Called(ctx, planCode, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Establishment), args.Error(1)
}

func (m *MockEstablishmentRepository) Update(ctx context.Context, e *entities.Establishment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEstablishmentRepository) DowngradeExpired(ctx context.Context, id, fromPlanID, toPlanID int64, cutoff time.Time) (bool, error) {
	args := m.Called(ctx, id, fromPlanID, toPlanID, cutoff)
	return args.Bool(0), args.Error(1)
}

func (m *MockEstablishmentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock PlanRepository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) List(ctx context.Context) ([]*entities.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Plan), args.Error(1)
}

func (m *MockPlanRepository) GetByID(ctx context.Context, id int64) (*entities.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Plan), args.Error(1)
}

func (m *MockPlanRepository) GetByCode(ctx context.Context, code string) (*entities.Plan, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Plan), args.Error(1)
}

func (m *MockPlanRepository) Create(ctx context.Context, plan *entities.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) Update(ctx context.Context, plan *entities.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPlanRepository) CountEstablishments(ctx context.Context, planID int64) (int64, error) {
	args := m.Called(ctx, planID)
	return args.Get(0).(int64), args.Error(1)
}

// Mock SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetAll(ctx context.Context, establishmentID int64) (map[string]string, error) {
	args := m.Called(ctx, establishmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockSettingsRepository) Upsert(ctx context.Context, establishmentID int64, values map[string]string) error {
	args := m.Called(ctx, establishmentID, values)
	return args.Error(0)
}

func (m *MockSettingsRepository) DeleteKeys(ctx context.Context, establishmentID int64, keys []string) error {
	args := m.Called(ctx, establishmentID, keys)
	return args.Error(0)
}

// Mock SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, sub *entities.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) GetLatestPending(ctx context.Context, establishmentID int64) (*entities.Subscription, error) {
	args := m.Called(ctx, establishmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) TransitionActive(ctx context.Context, establishmentID int64, status entities.SubscriptionStatus) error {
	args := m.Called(ctx, establishmentID, status)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) UpdateStatus(ctx context.Context, id int64, status entities.SubscriptionStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) Activate(ctx context.Context, id int64, activation entities.SubscriptionActivation) error {
	args := m.Called(ctx, id, activation)
	return args.Error(0)
}

// Mock ReminderRepository
type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) Create(ctx context.Context, r *entities.SubscriptionReminder) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReminderRepository) SentSince(ctx context.Context, establishmentID int64, reminderType string, since time.Time) (bool, error) {
	args := m.Called(ctx, establishmentID, reminderType, since)
	return args.Bool(0), args.Error(1)
}

// Mock CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) List(ctx context.Context, establishmentID int64) ([]*entities.Category, error) {
	args := m.Called(ctx, establishmentID)
	return args.Get(0).([]*entities.Category), args.Error(1)
}

func (m *MockCategoryRepository) Exists(ctx context.Context, establishmentID, id int64) (bool, error) {
	args := m.Called(ctx, establishmentID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *entities.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, c *entities.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, establishmentID, id int64) error {
	args := m.Called(ctx, establishmentID, id)
	return args.Error(0)
}

// Mock ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, establishmentID int64, onlyAvailable bool) ([]*entities.Product, error) {
	args := m.Called(ctx, establishmentID, onlyAvailable)
	return args.Get(0).([]*entities.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, establishmentID int64) (int64, error) {
	args := m.Called(ctx, establishmentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, p *entities.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *entities.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, establishmentID, id int64) error {
	args := m.Called(ctx, establishmentID, id)
	return args.Error(0)
}

// Mock NeighborhoodRepository
type MockNeighborhoodRepository struct {
	mock.Mock
}

func (m *MockNeighborhoodRepository) List(ctx context.Context, establishmentID int64) ([]*entities.Neighborhood, error) {
	args := m.Called(ctx, establishmentID)
	return args.Get(0).([]*entities.Neighborhood), args.Error(1)
}

func (m *MockNeighborhoodRepository) Exists(ctx context.Context, establishmentID, id int64) (bool, error) {
	args := m.Called(ctx, establishmentID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockNeighborhoodRepository) Create(ctx context.Context, n *entities.Neighborhood) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNeighborhoodRepository) Update(ctx context.Context, n *entities.Neighborhood) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNeighborhoodRepository) Delete(ctx context.Context, establishmentID, id int64) error {
	args := m.Called(ctx, establishmentID, id)
	return args.Error(0)
}

// Mock TableRepository
type MockTableRepository struct {
	mock.Mock
}

func (m *MockTableRepository) List(ctx context.Context, establishmentID int64) ([]*entities.Table, error) {
	args := m.Called(ctx, establishmentID)
	return args.Get(0).([]*entities.Table), args.Error(1)
}

func (m *MockTableRepository) Exists(ctx context.Context, establishmentID, id int64) (bool, error) {
	args := m.Called(ctx, establishmentID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTableRepository) Create(ctx context.Context, t *entities.Table) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTableRepository) Update(ctx context.Context, t *entities.Table) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTableRepository) Delete(ctx context.Context, establishmentID, id int64) error {
	args := m.Called(ctx, establishmentID, id)
	return args.Error(0)
}

// Mock CommandRepository
type MockCommandRepository struct {
	mock.Mock
}

func (m *MockCommandRepository) ListOpen(ctx context.Context, establishmentID int64) ([]*entities.Command, error) {
	args := m.Called(ctx, establishmentID)
	return args.Get(0).([]*entities.Command), args.Error(1)
}

func (m *MockCommandRepository) Create(ctx context.Context, c *entities.Command) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCommandRepository) UpdateStatus(ctx context.Context, establishmentID, id int64, status string) error {
	args := m.Called(ctx, establishmentID, id, status)
	return args.Error(0)
}

func (m *MockCommandRepository) Delete(ctx context.Context, establishmentID, id int64) error {
	args := m.Called(ctx, establishmentID, id)
	return args.Error(0)
}

// Mock OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o *entities.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) List(ctx context.Context, establishmentID int64, params utils.PaginationParams) ([]*entities.Order, int64, error) {
	args := m.Called(ctx, establishmentID, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, establishmentID, id int64, status string) error {
	args := m.Called(ctx, establishmentID, id, status)
	return args.Error(0)
}

// Mock ReservationRepository
type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) List(ctx context.Context, establishmentID int64) ([]*entities.Reservation, error) {
	args := m.Called(ctx, establishmentID)
	return args.Get(0).([]*entities.Reservation), args.Error(1)
}

func (m *MockReservationRepository) Create(ctx context.Context, r *entities.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReservationRepository) UpdateStatus(ctx context.Context, establishmentID, id int64, status string) error {
	args := m.Called(ctx, establishmentID, id, status)
	return args.Error(0)
}

func (m *MockReservationRepository) Delete(ctx context.Context, establishmentID, id int64) error {
	args := m.Called(ctx, establishmentID, id)
	return args.Error(0)
}

// Mock Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Enqueue(ctx context.Context, msg messaging.Message) bool {
	args := m.Called(ctx, msg)
	return args.Bool(0)
}

// messages returns every message handed to the notifier, in order
func (m *MockNotifier) messages() []messaging.Message {
	var out []messaging.Message
	for _, c := range m.Calls {
		if c.Method == "Enqueue" {
			out = append(out, c.Arguments.Get(1).(messaging.Message))
		}
	}
	return out
}

// Mock SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error {
	args := m.Called(ctx, sessionID, data, expiration)
	return args.Error(0)
}

func (m *MockSessionStore) GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*redis.SessionData), args.Error(1)
}

func (m *MockSessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}
