package usecases

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"maisquecardapio.backend/internal/domain/entities"
	domainerrors "maisquecardapio.backend/internal/domain/errors"
	"maisquecardapio.backend/internal/domain/repositories"
)

const maxSettingKeyLength = 64

// SettingsUsecase reads and writes the per tenant key/value settings
type SettingsUsecase struct {
	settingsRepo repositories.SettingsRepository
	uow          repositories.UnitOfWork
	validate     *validator.Validate
}

// NewSettingsUsecase creates a new settings usecase
func NewSettingsUsecase(settingsRepo repositories.SettingsRepository, uow repositories.UnitOfWork) *SettingsUsecase {
	return &SettingsUsecase{
		settingsRepo: settingsRepo,
		uow:          uow,
		validate:     validator.New(),
	}
}

// GetAll returns the flat key/value map with legacy keys shown under their canonical name
func (u *SettingsUsecase) GetAll(ctx context.Context, establishmentID int64) (map[string]string, error) {
	raw, err := u.settingsRepo.GetAll(ctx, establishmentID)
	if err != nil {
		return nil, err
	}
	return entities.MigrateLegacyKeys(raw), nil
}

// GetStoreSettings returns the typed view used by other usecases
func (u *SettingsUsecase) GetStoreSettings(ctx context.Context, establishmentID int64) (entities.StoreSettings, error) {
	raw, err := u.settingsRepo.GetAll(ctx, establishmentID)
	if err != nil {
		return entities.StoreSettings{}, err
	}
	return entities.ParseSettings(raw), nil
}

// GetPublic returns what the customer menu may read
func (u *SettingsUsecase) GetPublic(ctx context.Context, establishmentID int64) (entities.PublicSettings, error) {
	s, err := u.GetStoreSettings(ctx, establishmentID)
	if err != nil {
		return entities.PublicSettings{}, err
	}
	return s.Public(), nil
}

// Save upserts every given key in one transaction. Keys not in values are kept.
// Legacy aliases are written under their canonical name and the stored alias rows are removed.
func (u *SettingsUsecase) Save(ctx context.Context, establishmentID int64, values map[string]interface{}) error {
	if len(values) == 0 {
		return domainerrors.BadRequest("no settings given")
	}

	incoming := make(map[string]string, len(values))
	for key, v := range values {
		key = strings.TrimSpace(key)
		if key == "" || len(key) > maxSettingKeyLength {
			return domainerrors.BadRequest(fmt.Sprintf("invalid setting key %q", key))
		}
		str, ok := entities.StringifySettingValue(v)
		if !ok {
			return domainerrors.BadRequest(fmt.Sprintf("setting %q must be a string, number, boolean or null", key))
		}
		incoming[key] = str
	}
	incoming = entities.MigrateLegacyKeys(incoming)

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		stored, err := u.settingsRepo.GetAll(txCtx, establishmentID)
		if err != nil {
			return err
		}

		merged := entities.MigrateLegacyKeys(stored)
		for k, v := range incoming {
			merged[k] = v
		}
		if err := u.validateSettings(entities.ParseSettings(merged)); err != nil {
			return err
		}

		var stale []string
		for _, a := range entities.LegacySettingAliases {
			if _, ok := stored[a.Legacy]; !ok {
				continue
			}
			stale = append(stale, a.Legacy)
			if _, ok := incoming[a.Canonical]; !ok {
				incoming[a.Canonical] = merged[a.Canonical]
			}
		}
		sort.Strings(stale)

		if err := u.settingsRepo.Upsert(txCtx, establishmentID, incoming); err != nil {
			return err
		}
		return u.settingsRepo.DeleteKeys(txCtx, establishmentID, stale)
	})
}

func (u *SettingsUsecase) validateSettings(s entities.StoreSettings) error {
	err := u.validate.Struct(s)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		return domainerrors.BadRequest(fmt.Sprintf("invalid value for %s", settingFieldKey(verrs[0].StructField())))
	}
	return domainerrors.BadRequest(err.Error())
}

var settingFieldKeys = map[string]string{
	"StoreName":         entities.SettingStoreName,
	"StoreLogo":         entities.SettingStoreLogo,
	"PrimaryColor":      entities.SettingPrimaryColor,
	"PixKey":            entities.SettingPixKey,
	"WhatsappKitchen":   entities.SettingWhatsappKitchen,
	"WhatsappCashier":   entities.SettingWhatsappCashier,
	"AIProvider":        entities.SettingAIProvider,
	"EvolutionAPIURL":   entities.SettingEvolutionAPIURL,
	"EvolutionInstance": entities.SettingEvolutionInstance,
}

func settingFieldKey(field string) string {
	if key, ok := settingFieldKeys[field]; ok {
		return key
	}
	return field
}
