package models

import "time"

type Order struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	EstablishmentID int64     `gorm:"not null;index:idx_orders_establishment_created,priority:1"`
	CustomerName    string    `gorm:"type:varchar(160)"`
	CustomerPhone   string    `gorm:"type:varchar(30)"`
	Address         string    `gorm:"type:text"`
	NeighborhoodID  *int64    `gorm:"index"`
	Total           float64   `gorm:"type:decimal(10,2)"`
	PaymentMethod   string    `gorm:"type:varchar(40)"`
	Status          string    `gorm:"type:varchar(20);not null;default:'pending'"`
	Type            string    `gorm:"type:varchar(20);not null"`
	ItemsText       string    `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index:idx_orders_establishment_created,priority:2"`
}

// OrderRow is an order joined with its neighborhood name
type OrderRow struct {
	Order
	NeighborhoodName *string
}

type Reservation struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	EstablishmentID int64     `gorm:"not null;index"`
	CustomerName    string    `gorm:"type:varchar(160);not null"`
	CustomerPhone   string    `gorm:"type:varchar(30);not null"`
	TableID         *int64    `gorm:"index"`
	ReservationTime time.Time `gorm:"not null"`
	Guests          int       `gorm:"not null;default:1"`
	Status          string    `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

// ReservationRow is a reservation left joined with its table number
type ReservationRow struct {
	Reservation
	TableNumber *int
}
