package models

import "time"

type Table struct {
	ID              int64  `gorm:"primaryKey;autoIncrement"`
	EstablishmentID int64  `gorm:"not null;uniqueIndex:idx_tables_establishment_number"`
	Number          int    `gorm:"not null;uniqueIndex:idx_tables_establishment_number"`
	Status          string `gorm:"type:varchar(20);not null;default:'available'"`
}

type Command struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	EstablishmentID int64     `gorm:"not null;index"`
	TableID         int64     `gorm:"not null;index"`
	WaiterName      string    `gorm:"type:varchar(120)"`
	Status          string    `gorm:"type:varchar(20);not null;default:'open'"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

// CommandRow is a command joined with its table number
type CommandRow struct {
	Command
	TableNumber int
}
