package models

import "time"

type Plan struct {
	ID                 int64     `gorm:"primaryKey;autoIncrement"`
	Code               string    `gorm:"type:varchar(40);not null;uniqueIndex"`
	Name               string    `gorm:"type:varchar(120);not null"`
	Price              float64   `gorm:"type:decimal(10,2);not null"`
	MaxProducts        *int      `gorm:"column:max_products"`
	EnableAI           bool      `gorm:"column:enable_ai;not null"`
	EnableReservations bool      `gorm:"not null"`
	EnableAutomation   bool      `gorm:"not null"`
	CreatedAt          time.Time `gorm:"autoCreateTime"`
}

type Establishment struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	Name          string    `gorm:"type:varchar(160);not null"`
	Slug          string    `gorm:"type:varchar(60);not null;uniqueIndex"`
	OwnerEmail    string    `gorm:"type:varchar(255);not null;index"`
	OwnerPhone    string    `gorm:"type:varchar(30);index"`
	PasswordHash  string    `gorm:"type:varchar(255);not null"`
	PlanID        int64     `gorm:"not null;index"`
	Plan          *Plan     `gorm:"foreignKey:PlanID"`
	Status        string    `gorm:"type:varchar(20);not null;default:'active'"`
	PaidUntil     *time.Time
	TrialEndsAt   *time.Time
	LastPaymentAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
