package usecases

import (
	"context"
	"strings"

	"github.com/volatiletech/null/v8"
	"maisquecardapio.backend/internal/domain/entities"
	domainerrors "maisquecardapio.backend/internal/domain/errors"
	"maisquecardapio.backend/internal/domain/repositories"
)

// TableUsecase handles commands and reservations, both of which point at a tenant table
type TableUsecase struct {
	tableRepo       repositories.TableRepository
	commandRepo     repositories.CommandRepository
	reservationRepo repositories.ReservationRepository
}

// NewTableUsecase creates a new table usecase
func NewTableUsecase(
	tableRepo repositories.TableRepository,
	commandRepo repositories.CommandRepository,
	reservationRepo repositories.ReservationRepository,
) *TableUsecase {
	return &TableUsecase{
		tableRepo:       tableRepo,
		commandRepo:     commandRepo,
		reservationRepo: reservationRepo,
	}
}

// OpenCommand opens a tab on one of the tenant's tables
func (u *TableUsecase) OpenCommand(ctx context.Context, establishmentID, tableID int64, waiterName string) (*entities.Command, error) {
	if err := u.requireTable(ctx, establishmentID, tableID); err != nil {
		return nil, err
	}

	command := &entities.Command{
		EstablishmentID: establishmentID,
		TableID:         tableID,
		WaiterName:      strings.TrimSpace(waiterName),
		Status:          entities.CommandStatusOpen,
	}
	if err := u.commandRepo.Create(ctx, command); err != nil {
		return nil, err
	}
	return command, nil
}

// UpdateCommandStatus opens or closes a command
func (u *TableUsecase) UpdateCommandStatus(ctx context.Context, establishmentID, id int64, status string) error {
	if status != entities.CommandStatusOpen && status != entities.CommandStatusClosed {
		return domainerrors.BadRequest("status must be open or closed")
	}
	return u.commandRepo.UpdateStatus(ctx, establishmentID, id, status)
}

// CreateReservation books a table, or leaves it unassigned when no table is given
func (u *TableUsecase) CreateReservation(ctx context.Context, establishmentID int64, input *entities.CreateReservationInput) (*entities.Reservation, error) {
	reservation := &entities.Reservation{
		EstablishmentID: establishmentID,
		CustomerName:    strings.TrimSpace(input.CustomerName),
		CustomerPhone:   strings.TrimSpace(input.CustomerPhone),
		ReservationTime: input.ReservationTime,
		Guests:          1,
		Status:          entities.ReservationStatusPending,
	}

	if input.Guests != nil {
		if *input.Guests < 1 {
			return nil, domainerrors.BadRequest("guests must be at least 1")
		}
		reservation.Guests = *input.Guests
	}
	if input.Status != "" {
		if !entities.ValidReservationStatus(input.Status) {
			return nil, domainerrors.BadRequest("invalid reservation status")
		}
		reservation.Status = input.Status
	}
	if input.TableID != nil {
		if err := u.requireTable(ctx, establishmentID, *input.TableID); err != nil {
			return nil, err
		}
		reservation.TableID = null.Int64From(*input.TableID)
	}

	if err := u.reservationRepo.Create(ctx, reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

// UpdateReservationStatus confirms or cancels a reservation
func (u *TableUsecase) UpdateReservationStatus(ctx context.Context, establishmentID, id int64, status string) error {
	if !entities.ValidReservationStatus(status) {
		return domainerrors.BadRequest("invalid reservation status")
	}
	return u.reservationRepo.UpdateStatus(ctx, establishmentID, id, status)
}

func (u *TableUsecase) requireTable(ctx context.Context, establishmentID, tableID int64) error {
	ok, err := u.tableRepo.Exists(ctx, establishmentID, tableID)
	if err != nil {
		return err
	}
	if !ok {
		return domainerrors.BadRequest("table not found for this establishment")
	}
	return nil
}
