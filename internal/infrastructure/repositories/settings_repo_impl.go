package repositories

import (
	"context"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"maisquecardapio.backend/internal/domain/repositories"
	"maisquecardapio.backend/internal/infrastructure/models"
)

// settingsRepo implements repositories.SettingsRepository
type settingsRepo struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) repositories.SettingsRepository {
	return &settingsRepo{db: db}
}

// GetAll gets every setting of an establishment as key/value
func (r *settingsRepo) GetAll(ctx context.Context, establishmentID int64) (map[string]string, error) {
	var ms []models.Setting
	if err := GetDB(ctx, r.db).Where("establishment_id = ?", establishmentID).Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(ms))
	for _, m := range ms {
		out[m.Key] = m.Value
	}
	return out, nil
}

// Upsert inserts or replaces each key
func (r *settingsRepo) Upsert(ctx context.Context, establishmentID int64, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]models.Setting, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, models.Setting{EstablishmentID: establishmentID, Key: k, Value: values[k]})
	}

	return GetDB(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "establishment_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&rows).Error
}

// DeleteKeys deletes the given keys
func (r *settingsRepo) DeleteKeys(ctx context.Context, establishmentID int64, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).
		Where("establishment_id = ? AND key IN ?", establishmentID, keys).
		Delete(&models.Setting{}).Error
}
