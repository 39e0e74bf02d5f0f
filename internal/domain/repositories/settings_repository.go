package repositories

import "context"

// SettingsRepository stores free form key/value rows per establishment
type SettingsRepository interface {
	GetAll(ctx context.Context, establishmentID int64) (map[string]string, error)
	// Upsert overwrites each given key and leaves every other key untouched
	Upsert(ctx context.Context, establishmentID int64, values map[string]string) error
	DeleteKeys(ctx context.Context, establishmentID int64, keys []string) error
}
