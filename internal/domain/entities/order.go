package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// OrderType distinguishes dine-in from delivery orders
type OrderType string

const (
	OrderTypeTable    OrderType = "table"
	OrderTypeDelivery OrderType = "delivery"
)

// Valid reports whether t is a known order type
func (t OrderType) Valid() bool {
	return t == OrderTypeTable || t == OrderTypeDelivery
}

// Label is the customer facing name used in notifications
func (t OrderType) Label() string {
	if t == OrderTypeTable {
		return "Mesa"
	}
	return "Delivery"
}

// OrderStatus values
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// ValidOrderStatus reports whether s is a known order status
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is immutable after creation except for Status
type Order struct {
	ID               int64      `json:"id"`
	EstablishmentID  int64      `json:"establishment_id"`
	CustomerName     string     `json:"customer_name"`
	CustomerPhone    string     `json:"customer_phone"`
	Address          string     `json:"address"`
	NeighborhoodID   null.Int64 `json:"neighborhood_id"`
	NeighborhoodName string     `json:"neighborhood_name,omitempty"`
	Total            float64    `json:"total"`
	PaymentMethod    string     `json:"payment_method"`
	Status           string     `json:"status"`
	Type             OrderType  `json:"type"`
	ItemsText        string     `json:"items_text"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Reservation status values
const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCancelled = "cancelled"
)

// ValidReservationStatus reports whether s is a known reservation status
func ValidReservationStatus(s string) bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCancelled:
		return true
	}
	return false
}

// Reservation books a (possibly unassigned) table at a time
type Reservation struct {
	ID              int64      `json:"id"`
	EstablishmentID int64      `json:"establishment_id"`
	CustomerName    string     `json:"customer_name"`
	CustomerPhone   string     `json:"customer_phone"`
	TableID         null.Int64 `json:"table_id"`
	TableNumber     null.Int   `json:"table_number"`
	ReservationTime time.Time  `json:"reservation_time"`
	Guests          int        `json:"guests"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
}
