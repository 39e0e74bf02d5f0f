package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"maisquecardapio.backend/internal/domain/entities"
	domainerrors "maisquecardapio.backend/internal/domain/errors"
	"maisquecardapio.backend/internal/domain/repositories"
	"maisquecardapio.backend/internal/interfaces/http/response"
)

type TableService interface {
	OpenCommand(ctx context.Context, establishmentID, tableID int64, waiterName string) (*entities.Command, error)
	UpdateCommandStatus(ctx context.Context, establishmentID, id int64, status string) error
	CreateReservation(ctx context.Context, establishmentID int64, input *entities.CreateReservationInput) (*entities.Reservation, error)
	UpdateReservationStatus(ctx context.Context, establishmentID, id int64, status string) error
}

// TableHandler serves tables, commands and reservations
type TableHandler struct {
	tables          TableService
	tableRepo       repositories.TableRepository
	commandRepo     repositories.CommandRepository
	reservationRepo repositories.ReservationRepository
}

// NewTableHandler creates a new table handler
func NewTableHandler(
	tables TableService,
	tableRepo repositories.TableRepository,
	commandRepo repositories.CommandRepository,
	reservationRepo repositories.ReservationRepository,
) *TableHandler {
	return &TableHandler{
		tables:          tables,
		tableRepo:       tableRepo,
		commandRepo:     commandRepo,
		reservationRepo: reservationRepo,
	}
}

// ListTables returns the tenant's tables ordered by number
// GET /api/e/tables
func (h *TableHandler) ListTables(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	tables, err := h.tableRepo.List(c.Request.Context(), est.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, tables)
}

// CreateTable
// POST /api/e/tables
func (h *TableHandler) CreateTable(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	var input entities.TableInput
	if !bindJSON(c, &input) {
		return
	}

	table := &entities.Table{EstablishmentID: est.ID, Number: input.Number, Status: tableStatus(input.Status)}
	if err := h.tableRepo.Create(c.Request.Context(), table); err != nil {
		writeTableError(c, err)
		return
	}
	response.Created(c, table.ID)
}

// UpdateTable
// PUT /api/e/tables/:id
func (h *TableHandler) UpdateTable(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	var input entities.TableInput
	if !bindJSON(c, &input) {
		return
	}

	table := &entities.Table{ID: id, EstablishmentID: est.ID, Number: input.Number, Status: tableStatus(input.Status)}
	if err := h.tableRepo.Update(c.Request.Context(), table); err != nil {
		writeTableError(c, err)
		return
	}
	respondOK(c)
}

// DeleteTable
// DELETE /api/e/tables/:id
func (h *TableHandler) DeleteTable(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	if err := h.tableRepo.Delete(c.Request.Context(), est.ID, id); err != nil {
		response.ErrorNotFound(c, err, "table not found")
		return
	}
	respondOK(c)
}

// ListCommands returns open commands with their table number
// GET /api/e/commands
func (h *TableHandler) ListCommands(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	commands, err := h.commandRepo.ListOpen(c.Request.Context(), est.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, commands)
}

// OpenCommand
// POST /api/e/commands
func (h *TableHandler) OpenCommand(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	var input entities.CommandInput
	if !bindJSON(c, &input) {
		return
	}

	command, err := h.tables.OpenCommand(c.Request.Context(), est.ID, input.TableID, input.WaiterName)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, command.ID)
}

// UpdateCommand changes a command's status
// PUT /api/e/commands/:id
func (h *TableHandler) UpdateCommand(c *gin.Context) {
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

	if err := h.tables.UpdateCommandStatus(c.Request.Context(), est.ID, id, strings.TrimSpace(input.Status)); err != nil {
		response.ErrorNotFound(c, err, "command not found")
		return
	}
	respondOK(c)
}

// DeleteCommand
// DELETE /api/e/commands/:id
func (h *TableHandler) DeleteCommand(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	if err := h.commandRepo.Delete(c.Request.Context(), est.ID, id); err != nil {
		response.ErrorNotFound(c, err, "command not found")
		return
	}
	respondOK(c)
}

// ListReservations returns reservations by time with their table number
// GET /api/e/reservations
func (h *TableHandler) ListReservations(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	reservations, err := h.reservationRepo.List(c.Request.Context(), est.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, reservations)
}

// CreateReservation is open to customers
// POST /api/e/reservations
func (h *TableHandler) CreateReservation(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	var input entities.CreateReservationInput
	if !bindJSON(c, &input) {
		return
	}

	reservation, err := h.tables.CreateReservation(c.Request.Context(), est.ID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, reservation.ID)
}

// UpdateReservation changes a reservation's status
// PUT /api/e/reservations/:id
func (h *TableHandler) UpdateReservation(c *gin.Context) {
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

	if err := h.tables.UpdateReservationStatus(c.Request.Context(), est.ID, id, strings.TrimSpace(input.Status)); err != nil {
		response.ErrorNotFound(c, err, "reservation not found")
		return
	}
	respondOK(c)
}

// DeleteReservation
// DELETE /api/e/reservations/:id
func (h *TableHandler) DeleteReservation(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	if err := h.reservationRepo.Delete(c.Request.Context(), est.ID, id); err != nil {
		response.ErrorNotFound(c, err, "reservation not found")
		return
	}
	respondOK(c)
}

func tableStatus(status string) string {
	status = strings.TrimSpace(status)
	if status == "" {
		return entities.TableStatusAvailable
	}
	return status
}

func writeTableError(c *gin.Context, err error) {
	if errors.Is(err, domainerrors.ErrAlreadyExists) {
		response.Error(c, domainerrors.Conflict("table number already in use"))
		return
	}
	response.ErrorNotFound(c, err, "table not found")
}
