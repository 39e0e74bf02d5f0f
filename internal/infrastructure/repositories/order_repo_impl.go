package repositories

import (
	"context"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"maisquecardapio.backend/internal/domain/entities"
	"maisquecardapio.backend/internal/domain/repositories"
	"maisquecardapio.backend/internal/infrastructure/models"
	"maisquecardapio.backend/pkg/utils"
)

// orderRepo implements repositories.OrderRepository
type orderRepo struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) repositories.OrderRepository {
	return &orderRepo{db: db}
}

// Create creates a new order
func (r *orderRepo) Create(ctx context.Context, order *entities.Order) error {
	if order.Status == "" {
		order.Status = entities.OrderStatusPending
	}
	m := &models.Order{
		EstablishmentID: order.EstablishmentID,
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		Address:         order.Address,
		NeighborhoodID:  order.NeighborhoodID.Ptr(),
		Total:           order.Total,
		PaymentMethod:   order.PaymentMethod,
		Status:          order.Status,
		Type:            string(order.Type),
		ItemsText:       order.ItemsText,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translateError(err)
	}
	order.ID = m.ID
	order.CreatedAt = m.CreatedAt
	return nil
}

// List lists orders newest first with the neighborhood name
func (r *orderRepo) List(ctx context.Context, establishmentID int64, params utils.PaginationParams) ([]*entities.Order, int64, error) {
	var total int64
	if err := GetDB(ctx, r.db).Model(&models.Order{}).Where("establishment_id = ?", establishmentID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.OrderRow
	if err := GetDB(ctx, r.db).
		Table("orders").
		Select("orders.*, neighborhoods.name AS neighborhood_name").
		Joins("LEFT JOIN neighborhoods ON neighborhoods.id = orders.neighborhood_id").
		Where("orders.establishment_id = ?", establishmentID).
		Order("orders.created_at DESC, orders.id DESC").
		Limit(params.Limit).
		Offset(params.CalculateOffset()).
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.Order, 0, len(rows))
	for i := range rows {
		o := &entities.Order{
			ID:              rows[i].ID,
			EstablishmentID: rows[i].EstablishmentID,
			CustomerName:    rows[i].CustomerName,
			CustomerPhone:   rows[i].CustomerPhone,
			Address:         rows[i].Address,
			NeighborhoodID:  null.Int64FromPtr(rows[i].NeighborhoodID),
			Total:           rows[i].Total,
			PaymentMethod:   rows[i].PaymentMethod,
			Status:          rows[i].Status,
			Type:            entities.OrderType(rows[i].Type),
			ItemsText:       rows[i].ItemsText,
			CreatedAt:       rows[i].CreatedAt,
		}
		if rows[i].NeighborhoodName != nil {
			o.NeighborhoodName = *rows[i].NeighborhoodName
		}
		items = append(items, o)
	}
	return items, total, nil
}

// UpdateStatus updates the status of an order
func (r *orderRepo) UpdateStatus(ctx context.Context, establishmentID, id int64, status string) error {
	result := GetDB(ctx, r.db).
		Model(&models.Order{}).
		Where("id = ? AND establishment_id = ?", id, establishmentID).
		Update("status", status)
	return affectedOrNotFound(result)
}

// reservationRepo implements repositories.ReservationRepository
type reservationRepo struct {
	db *gorm.DB
}

// NewReservationRepository creates a new reservation repository
func NewReservationRepository(db *gorm.DB) repositories.ReservationRepository {
	return &reservationRepo{db: db}
}

// List lists reservations by time with the table number
func (r *reservationRepo) List(ctx context.Context, establishmentID int64) ([]*entities.Reservation, error) {
	var rows []models.ReservationRow
	if err := GetDB(ctx, r.db).
		Table("reservations").
		Select("reservations.*, tables.number AS table_number").
		Joins("LEFT JOIN tables ON tables.id = reservations.table_id").
		Where("reservations.establishment_id = ?", establishmentID).
		Order("reservations.reservation_time ASC, reservations.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.Reservation, 0, len(rows))
	for i := range rows {
		res := &entities.Reservation{
			ID:              rows[i].ID,
			EstablishmentID: rows[i].EstablishmentID,
			CustomerName:    rows[i].CustomerName,
			CustomerPhone:   rows[i].CustomerPhone,
			TableID:         null.Int64FromPtr(rows[i].TableID),
			ReservationTime: rows[i].ReservationTime,
			Guests:          rows[i].Guests,
			Status:          rows[i].Status,
			CreatedAt:       rows[i].CreatedAt,
		}
		if rows[i].TableNumber != nil {
			res.TableNumber = null.IntFrom(*rows[i].TableNumber)
		}
		items = append(items, res)
	}
	return items, nil
}

// Create creates a new reservation
func (r *reservationRepo) Create(ctx context.Context, reservation *entities.Reservation) error {
	if reservation.Status == "" {
		reservation.Status = entities.ReservationStatusPending
	}
	if reservation.Guests < 1 {
		reservation.Guests = 1
	}
	m := &models.Reservation{
		EstablishmentID: reservation.EstablishmentID,
		CustomerName:    reservation.CustomerName,
		CustomerPhone:   reservation.CustomerPhone,
		TableID:         reservation.TableID.Ptr(),
		ReservationTime: reservation.ReservationTime.UTC(),
		Guests:          reservation.Guests,
		Status:          reservation.Status,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translateError(err)
	}
	reservation.ID = m.ID
	reservation.CreatedAt = m.CreatedAt
	return nil
}

// UpdateStatus updates the status of a reservation
func (r *reservationRepo) UpdateStatus(ctx context.Context, establishmentID, id int64, status string) error {
	result := GetDB(ctx, r.db).
		Model(&models.Reservation{}).
		Where("id = ? AND establishment_id = ?", id, establishmentID).
		Update("status", status)
	return affectedOrNotFound(result)
}

// Delete deletes a reservation
func (r *reservationRepo) Delete(ctx context.Context, establishmentID, id int64) error {
	return affectedOrNotFound(GetDB(ctx, r.db).Delete(&models.Reservation{}, "id = ? AND establishment_id = ?", id, establishmentID))
}
