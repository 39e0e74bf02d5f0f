package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"maisquecardapio.backend/internal/domain/entities"
	"maisquecardapio.backend/internal/interfaces/http/response"
	"maisquecardapio.backend/pkg/utils"
)

type OrderService interface {
	CreateOrder(ctx context.Context, establishment *entities.Establishment, input *entities.CreateOrderInput) (*entities.Order, error)
	ListOrders(ctx context.Context, establishmentID int64, params utils.PaginationParams) ([]*entities.Order, utils.PaginationMeta, error)
	UpdateOrderStatus(ctx context.Context, establishmentID, id int64, status string) error
}

// OrderHandler handles order endpoints
type OrderHandler struct {
	orderUsecase OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderUsecase OrderService) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase}
}

// CreateOrder places a customer order. The kitchen or cashier is notified asynchronously.
// POST /api/e/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	var input entities.CreateOrderInput
	if !bindJSON(c, &input) {
		return
	}

	order, err := h.orderUsecase.CreateOrder(c.Request.Context(), est, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, order.ID)
}

// ListOrders returns the tenant's orders newest first
// GET /api/e/orders?page=1&limit=50
func (h *OrderHandler) ListOrders(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(utils.DefaultPageLimit)))

	orders, meta, err := h.orderUsecase.ListOrders(c.Request.Context(), est.ID, utils.GetPaginationParams(page, limit))
	if err != nil {
		response.Error(c, err)
		return
	}
	if orders == nil {
		orders = []*entities.Order{}
	}
	response.Paginated(c, orders, meta)
}

// UpdateOrderStatus
// PUT /api/e/orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	var input entities.StatusInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.orderUsecase.UpdateOrderStatus(c.Request.Context(), est.ID, id, strings.TrimSpace(input.Status)); err != nil {
		response.ErrorNotFound(c, err, "order not found")
		return
	}
	respondOK(c)
}
