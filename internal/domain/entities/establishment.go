package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Plan codes seeded at bootstrap
const (
	PlanCodeFree    = "free"
	PlanCodePremium = "premium"
)

// EstablishmentStatus represents the account state of a tenant
type EstablishmentStatus string

const (
	EstablishmentStatusActive    EstablishmentStatus = "active"
	EstablishmentStatusSuspended EstablishmentStatus = "suspended"
	EstablishmentStatusPending   EstablishmentStatus = "pending"
)

// Valid reports whether s is a known status
func (s EstablishmentStatus) Valid() bool {
	switch s {
	case EstablishmentStatusActive, EstablishmentStatusSuspended, EstablishmentStatusPending:
		return true
	}
	return false
}

// Plan is a subscription tier. A null MaxProducts means unlimited.
type Plan struct {
	ID                 int64     `json:"id"`
	Code               string    `json:"code"`
	Name               string    `json:"name"`
	Price              float64   `json:"price"`
	MaxProducts        null.Int  `json:"max_products"`
	EnableAI           bool      `json:"enable_ai"`
	EnableReservations bool      `json:"enable_reservations"`
	EnableAutomation   bool      `json:"enable_automation"`
	CreatedAt          time.Time `json:"created_at"`
}

// IsPremium reports whether the plan is the paid tier the lifecycle engine manages
func (p *Plan) IsPremium() bool {
	return p != nil && p.Code == PlanCodePremium
}

// Establishment is a tenant
type Establishment struct {
	ID            int64               `json:"id"`
	Name          string              `json:"name"`
	Slug          string              `json:"slug"`
	OwnerEmail    string              `json:"owner_email"`
	OwnerPhone    string              `json:"owner_phone,omitempty"`
	PasswordHash  string              `json:"-"`
	PlanID        int64               `json:"plan_id"`
	Plan          *Plan               `json:"plan,omitempty"`
	Status        EstablishmentStatus `json:"status"`
	PaidUntil     null.Time           `json:"paid_until"`
	TrialEndsAt   null.Time           `json:"trial_ends_at"`
	LastPaymentAt null.Time           `json:"last_payment_at"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// EstablishmentSummary is the superadmin listing row
type EstablishmentSummary struct {
	Establishment
	PlanName string `json:"plan_name"`
}

// PublicEstablishment is what anonymous callers may learn about a tenant
type PublicEstablishment struct {
	ID     int64               `json:"id"`
	Name   string              `json:"name"`
	Slug   string              `json:"slug"`
	Status EstablishmentStatus `json:"status"`
}

// Public strips owner contact, credentials and billing fields
func (e *Establishment) Public() PublicEstablishment {
	return PublicEstablishment{ID: e.ID, Name: e.Name, Slug: e.Slug, Status: e.Status}
}
