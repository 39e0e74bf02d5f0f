package entities

import "time"

// TableStatusAvailable is the default table status
const TableStatusAvailable = "available"

// Command status values
const (
	CommandStatusOpen   = "open"
	CommandStatusClosed = "closed"
)

// Table is a physical table; Number is unique within an establishment
type Table struct {
	ID              int64  `json:"id"`
	EstablishmentID int64  `json:"establishment_id"`
	Number          int    `json:"number"`
	Status          string `json:"status"`
}

// Command is an open tab opened by a waiter for a table
type Command struct {
	ID              int64     `json:"id"`
	EstablishmentID int64     `json:"establishment_id"`
	TableID         int64     `json:"table_id"`
	TableNumber     int       `json:"table_number,omitempty"`
	WaiterName      string    `json:"waiter_name"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}
