package entities

import "github.com/volatiletech/null/v8"

// Category groups products on the menu
type Category struct {
	ID              int64  `json:"id"`
	EstablishmentID int64  `json:"establishment_id"`
	Name            string `json:"name"`
}

// Product is a menu item
type Product struct {
	ID              int64      `json:"id"`
	EstablishmentID int64      `json:"establishment_id"`
	CategoryID      null.Int64 `json:"category_id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Price           float64    `json:"price"`
	ImageURL        string     `json:"image_url"`
	IsAvailable     bool       `json:"is_available"`
}

// Neighborhood is a delivery zone with its fee
type Neighborhood struct {
	ID              int64   `json:"id"`
	EstablishmentID int64   `json:"establishment_id"`
	Name            string  `json:"name"`
	DeliveryFee     float64 `json:"delivery_fee"`
}
