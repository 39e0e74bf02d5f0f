package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"maisquecardapio.backend/internal/domain/entities"
	"maisquecardapio.backend/internal/interfaces/http/response"
	"maisquecardapio.backend/pkg/utils"
)

type SuperadminService interface {
	ListEstablishments(ctx context.Context, params utils.PaginationParams) ([]*entities.EstablishmentSummary, utils.PaginationMeta, error)
	UpdateEstablishment(ctx context.Context, id int64, input *entities.UpdateEstablishmentInput) (*entities.Establishment, error)
	DeleteEstablishment(ctx context.Context, id int64) error
	ListPlans(ctx context.Context) ([]*entities.Plan, error)
	CreatePlan(ctx context.Context, input *entities.PlanInput) (*entities.Plan, error)
	UpdatePlan(ctx context.Context, id int64, input *entities.PlanInput) (*entities.Plan, error)
	DeletePlan(ctx context.Context, id int64) error
}

// SuperadminHandler handles the platform console endpoints
type SuperadminHandler struct {
	superadminUsecase SuperadminService
}

// NewSuperadminHandler creates a new superadmin handler
func NewSuperadminHandler(superadminUsecase SuperadminService) *SuperadminHandler {
	return &SuperadminHandler{superadminUsecase: superadminUsecase}
}

// ListEstablishments
// GET /api/superadmin/establishments?page=1&limit=50
func (h *SuperadminHandler) ListEstablishments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(utils.DefaultPageLimit)))

	items, meta, err := h.superadminUsecase.ListEstablishments(c.Request.Context(), utils.GetPaginationParams(page, limit))
	if err != nil {
		response.Error(c, err)
		return
	}
	if items == nil {
		items = []*entities.EstablishmentSummary{}
	}
	response.Paginated(c, items, meta)
}

// UpdateEstablishment edits name, status, plan or paid_until
// PUT /api/superadmin/establishments/:id
func (h *SuperadminHandler) UpdateEstablishment(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	var input entities.UpdateEstablishmentInput
	if !bindJSON(c, &input) {
		return
	}

	est, err := h.superadminUsecase.UpdateEstablishment(c.Request.Context(), id, &input)
	if err != nil {
		response.ErrorNotFound(c, err, "establishment not found")
		return
	}
	response.Success(c, http.StatusOK, est)
}

// DeleteEstablishment removes a tenant with all of its data
// DELETE /api/superadmin/establishments/:id
func (h *SuperadminHandler) DeleteEstablishment(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	if err := h.superadminUsecase.DeleteEstablishment(c.Request.Context(), id); err != nil {
		response.ErrorNotFound(c, err, "establishment not found")
		return
	}
	respondOK(c)
}

// ListPlans
// GET /api/superadmin/plans
func (h *SuperadminHandler) ListPlans(c *gin.Context) {
	plans, err := h.superadminUsecase.ListPlans(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, plans)
}

// CreatePlan
// POST /api/superadmin/plans
func (h *SuperadminHandler) CreatePlan(c *gin.Context) {
	var input entities.PlanInput
	if !bindJSON(c, &input) {
		return
	}
	plan, err := h.superadminUsecase.CreatePlan(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, plan.ID)
}

// UpdatePlan
// PUT /api/superadmin/plans/:id
func (h *SuperadminHandler) UpdatePlan(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	var input entities.PlanInput
	if !bindJSON(c, &input) {
		return
	}
	if _, err := h.superadminUsecase.UpdatePlan(c.Request.Context(), id, &input); err != nil {
		response.ErrorNotFound(c, err, "plan not found")
		return
	}
	respondOK(c)
}

// DeletePlan refuses while establishments still use the plan
// DELETE /api/superadmin/plans/:id
func (h *SuperadminHandler) DeletePlan(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	if err := h.superadminUsecase.DeletePlan(c.Request.Context(), id); err != nil {
		response.ErrorNotFound(c, err, "plan not found")
		return
	}
	respondOK(c)
}
