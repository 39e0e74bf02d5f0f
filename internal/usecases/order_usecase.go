package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"maisquecardapio.backend/internal/domain/entities"
	domainerrors "maisquecardapio.backend/internal/domain/errors"
	"maisquecardapio.backend/internal/domain/repositories"
	"maisquecardapio.backend/internal/infrastructure/messaging"
	"maisquecardapio.backend/pkg/logger"
	"maisquecardapio.backend/pkg/metrics"
	"maisquecardapio.backend/pkg/utils"
)

// OrderUsecase places orders and forwards them to the restaurant's WhatsApp
type OrderUsecase struct {
	orderRepo        repositories.OrderRepository
	neighborhoodRepo repositories.NeighborhoodRepository
	settingsRepo     repositories.SettingsRepository
	notifier         Notifier
}

// NewOrderUsecase creates a new order usecase
func NewOrderUsecase(
	orderRepo repositories.OrderRepository,
	neighborhoodRepo repositories.NeighborhoodRepository,
	settingsRepo repositories.SettingsRepository,
	notifier Notifier,
) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:        orderRepo,
		neighborhoodRepo: neighborhoodRepo,
		settingsRepo:     settingsRepo,
		notifier:         notifier,
	}
}

// CreateOrder stores the order and then enqueues the kitchen or cashier notification.
// Once the row is written the order is placed; notification problems never surface here.
func (u *OrderUsecase) CreateOrder(ctx context.Context, establishment *entities.Establishment, input *entities.CreateOrderInput) (*entities.Order, error) {
	if establishment.Status == entities.EstablishmentStatusSuspended {
		return nil, domainerrors.ErrSuspended
	}
	if !input.Type.Valid() {
		return nil, domainerrors.BadRequest("type must be table or delivery")
	}

	raw, err := u.settingsRepo.GetAll(ctx, establishment.ID)
	if err != nil {
		return nil, err
	}
	settings := entities.ParseSettings(raw)
	if !settings.IsOpen {
		return nil, domainerrors.ErrStoreClosed
	}

	order := &entities.Order{
		EstablishmentID: establishment.ID,
		CustomerName:    strings.TrimSpace(input.CustomerName),
		CustomerPhone:   strings.TrimSpace(input.CustomerPhone),
		Address:         strings.TrimSpace(input.Address),
		Total:           input.Total,
		PaymentMethod:   strings.TrimSpace(input.PaymentMethod),
		Status:          entities.OrderStatusPending,
		Type:            input.Type,
		ItemsText:       input.ItemsText,
	}

	if input.NeighborhoodID != nil && input.Type == entities.OrderTypeDelivery {
		ok, err := u.neighborhoodRepo.Exists(ctx, establishment.ID, *input.NeighborhoodID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domainerrors.BadRequest("neighborhood not found for this establishment")
		}
		order.NeighborhoodID = null.Int64From(*input.NeighborhoodID)
	}

	if err := u.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	metrics.OrdersCreatedTotal.WithLabelValues(string(order.Type)).Inc()
	logger.Info(ctx, "Order created",
		zap.Int64("order_id", order.ID),
		zap.String("slug", establishment.Slug),
		zap.String("type", string(order.Type)),
	)

	u.notify(ctx, establishment.ID, settings, order)
	return order, nil
}

func (u *OrderUsecase) notify(ctx context.Context, establishmentID int64, settings entities.StoreSettings, order *entities.Order) {
	if !settings.AutomationReady() {
		return
	}
	target := settings.TargetFor(order.Type)
	if target == "" {
		logger.Debug(ctx, "No WhatsApp target configured for order type", zap.String("type", string(order.Type)))
		return
	}

	u.notifier.Enqueue(ctx, messaging.Message{
		Kind:            messaging.KindOrder,
		EstablishmentID: establishmentID,
		Gateway: messaging.GatewayConfig{
			BaseURL:  settings.EvolutionAPIURL,
			APIKey:   settings.EvolutionAPIKey,
			Instance: settings.EvolutionInstance,
		},
		Number: target,
		Text:   FormatOrderMessage(order),
	})
}

// FormatOrderMessage renders the WhatsApp text for a new order
func FormatOrderMessage(order *entities.Order) string {
	return fmt.Sprintf("*Pedido #%d Recebido!*\n\n*Cliente:* %s\n*Tipo:* %s\n\n*Itens:*\n%s\n\n*Total: %s*\n*Pagamento:* %s",
		order.ID,
		order.CustomerName,
		order.Type.Label(),
		order.ItemsText,
		formatBRL(order.Total),
		order.PaymentMethod,
	)
}

// ListOrders returns a page of orders, newest first
func (u *OrderUsecase) ListOrders(ctx context.Context, establishmentID int64, params utils.PaginationParams) ([]*entities.Order, utils.PaginationMeta, error) {
	params = utils.GetPaginationParams(params.Page, params.Limit)
	orders, total, err := u.orderRepo.List(ctx, establishmentID, params)
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return orders, utils.CalculateMeta(total, params.Page, params.Limit), nil
}

// UpdateOrderStatus moves an order through the kitchen workflow
func (u *OrderUsecase) UpdateOrderStatus(ctx context.Context, establishmentID, id int64, status string) error {
	if !entities.ValidOrderStatus(status) {
		return domainerrors.BadRequest("invalid order status")
	}
	return u.orderRepo.UpdateStatus(ctx, establishmentID, id, status)
}
