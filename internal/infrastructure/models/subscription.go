package models

import (
	"time"

	"gorm.io/datatypes"
)

type Subscription struct {
	ID              int64          `gorm:"primaryKey;autoIncrement"`
	EstablishmentID int64          `gorm:"not null;index"`
	PlanID          int64          `gorm:"not null"`
	Price           float64        `gorm:"type:decimal(10,2);not null"`
	Months          int            `gorm:"not null;default:1"`
	Status          string         `gorm:"type:varchar(20);not null;index"`
	Source          string         `gorm:"type:varchar(40)"`
	StartedAt       *time.Time
	EndsAt          *time.Time
	NextPaymentAt   *time.Time
	Payload         datatypes.JSON
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type SubscriptionReminder struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	EstablishmentID int64     `gorm:"not null;index:idx_reminders_lookup,priority:1"`
	Type            string    `gorm:"type:varchar(30);not null;index:idx_reminders_lookup,priority:2"`
	SentAt          time.Time `gorm:"not null;index:idx_reminders_lookup,priority:3"`
}
