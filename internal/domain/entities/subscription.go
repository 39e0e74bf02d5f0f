package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/datatypes"
)

// SubscriptionStatus is the state of one billing record
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusPaused    SubscriptionStatus = "paused"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusPending   SubscriptionStatus = "pending"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
)

// Subscription sources
const (
	SubscriptionSourceExternalOrder = "external_order"
	SubscriptionSourcePayment       = "payment_webhook"
	SubscriptionSourceManual        = "manual"
	SubscriptionSourceUpgrade       = "upgrade_request"
)

// Subscription is one billing period (or a pending upgrade request) for an establishment
type Subscription struct {
	ID              int64              `json:"id"`
	EstablishmentID int64              `json:"establishment_id"`
	PlanID          int64              `json:"plan_id"`
	Price           float64            `json:"price"`
	Months          int                `json:"months"`
	Status          SubscriptionStatus `json:"status"`
	Source          string             `json:"source"`
	StartedAt       null.Time          `json:"started_at"`
	EndsAt          null.Time          `json:"ends_at"`
	NextPaymentAt   null.Time          `json:"next_payment_at"`
	Payload         datatypes.JSON     `json:"payload,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// SubscriptionActivation is the billing window granted when a pending request is paid
type SubscriptionActivation struct {
	PlanID    int64
	Price     float64
	Months    int
	StartedAt time.Time
	EndsAt    time.Time
}

// Reminder types written to the reminder log
const (
	ReminderExpiring7d = "expiring_7d"
	ReminderExpiring3d = "expiring_3d"
)

// SubscriptionReminder is an append-only record of a sent reminder
type SubscriptionReminder struct {
	ID              int64     `json:"id"`
	EstablishmentID int64     `json:"establishment_id"`
	Type            string    `json:"type"`
	SentAt          time.Time `json:"sent_at"`
}

// Lifecycle state names reported by the subscription status endpoint
const (
	LifecycleFree          = "free"
	LifecyclePremiumActive = "premium-active"
	LifecycleExpiring7d    = "premium-expiring-7d"
	LifecycleExpiring3d    = "premium-expiring-3d"
	LifecycleExpired       = "premium-expired"
)

// SubscriptionOverview is returned to the owner console
type SubscriptionOverview struct {
	PlanCode      string              `json:"plan_code"`
	PlanName      string              `json:"plan_name"`
	Status        EstablishmentStatus `json:"status"`
	State         string              `json:"state"`
	PaidUntil     null.Time           `json:"paid_until"`
	TrialEndsAt   null.Time           `json:"trial_ends_at"`
	DaysRemaining null.Int            `json:"days_remaining"`
	Pending       *Subscription       `json:"pending,omitempty"`
}

// SubscriptionCheckReport summarises one batch run
type SubscriptionCheckReport struct {
	Checked     int `json:"checked"`
	Reminders7d int `json:"reminders_7d"`
	Reminders3d int `json:"reminders_3d"`
	Downgraded  int `json:"downgraded"`
	Errors      int `json:"errors"`
}
