package models

type Category struct {
	ID              int64  `gorm:"primaryKey;autoIncrement"`
	EstablishmentID int64  `gorm:"not null;index"`
	Name            string `gorm:"type:varchar(120);not null"`
}

type Product struct {
	ID              int64   `gorm:"primaryKey;autoIncrement"`
	EstablishmentID int64   `gorm:"not null;index"`
	CategoryID      *int64  `gorm:"index"`
	Name            string  `gorm:"type:varchar(160);not null"`
	Description     string  `gorm:"type:text"`
	Price           float64 `gorm:"type:decimal(10,2);not null"`
	ImageURL        string  `gorm:"column:image_url;type:text"`
	IsAvailable     bool    `gorm:"not null"`
}

type Neighborhood struct {
	ID              int64   `gorm:"primaryKey;autoIncrement"`
	EstablishmentID int64   `gorm:"not null;index"`
	Name            string  `gorm:"type:varchar(120);not null"`
	DeliveryFee     float64 `gorm:"type:decimal(10,2);not null"`
}
