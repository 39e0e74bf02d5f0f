package models

type Setting struct {
	EstablishmentID int64  `gorm:"primaryKey;autoIncrement:false"`
	Key             string `gorm:"primaryKey;type:varchar(80)"`
	Value           string `gorm:"type:text"`
}
