package usecases_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"maisquecardapio.backend/internal/domain/entities"
	domainerrors "maisquecardapio.backend/internal/domain/errors"
	"maisquecardapio.backend/internal/usecases"
)

func TestSettingsUsecase_SaveUpsertsOnlyGivenKeys(t *testing.T) {
	repo := new(MockSettingsRepository)
	uow := new(MockUnitOfWork)
	uc := usecases.NewSettingsUsecase(repo, uow)
	ctx := context.Background()

	uow.On("Do", ctx, mock.Anything).Return(nil)
	repo.On("GetAll", ctx, int64(1)).Return(map[string]string{"store_name": "Old", "pix_key": "abc"}, nil)
	repo.On("Upsert", ctx, int64(1), map[string]string{"store_name": "New", "is_open": "0"}).Return(nil)
	repo.On("DeleteKeys", ctx, int64(1), []string(nil)).Return(nil)

	err := uc.Save(ctx, 1, map[string]interface{}{"store_name": "New", "is_open": false})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSettingsUsecase_SaveRewritesLegacyKeys(t *testing.T) {
	repo := new(MockSettingsRepository)
	uow := new(MockUnitOfWork)
	uc := usecases.NewSettingsUsecase(repo, uow)
	ctx := context.Background()

	uow.On("Do", ctx, mock.Anything).Return(nil)
	repo.On("GetAll", ctx, int64(1)).Return(map[string]string{"brand_color": "#112233", "logo_url": "https://cdn.example.com/a.png"}, nil)
	repo.On("Upsert", ctx, int64(1), map[string]string{
		entities.SettingStoreName:    "Joe",
		entities.SettingPrimaryColor: "#112233",
		entities.SettingStoreLogo:    "https://cdn.example.com/a.png",
	}).Return(nil)
	repo.On("DeleteKeys", ctx, int64(1), []string{"brand_color", "logo_url"}).Return(nil)

	require.NoError(t, uc.Save(ctx, 1, map[string]interface{}{"store_name": "Joe"}))
	repo.AssertExpectations(t)
}

func TestSettingsUsecase_SaveValidates(t *testing.T) {
	repo := new(MockSettingsRepository)
	uow := new(MockUnitOfWork)
	uc := usecases.NewSettingsUsecase(repo, uow)
	ctx := context.Background()

	uow.On("Do", ctx, mock.Anything).Return(nil)
	repo.On("GetAll", ctx, int64(1)).Return(map[string]string{}, nil)

	err := uc.Save(ctx, 1, map[string]interface{}{"primary_color": "orange"})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "invalid value for primary_color", appErr.Message)

	err = uc.Save(ctx, 1, map[string]interface{}{"evolution_api_url": "not a url"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "invalid value for evolution_api_url", appErr.Message)

	assert.Error(t, uc.Save(ctx, 1, map[string]interface{}{}))
	assert.Error(t, uc.Save(ctx, 1, map[string]interface{}{" ": "x"}))
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestSettingsUsecase_SaveRejectsStructuredValues(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]interface{}
		key    string
	}{
		{"object", map[string]interface{}{"opening_hours": map[string]interface{}{"mon": "18h-23h"}}, "opening_hours"},
		{"array", map[string]interface{}{"payment_methods": []interface{}{"pix", "card"}}, "payment_methods"},
		{"array next to a valid key", map[string]interface{}{"store_name": "Joe", "tags": []interface{}{}}, "tags"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockSettingsRepository)
			uc := usecases.NewSettingsUsecase(repo, new(MockUnitOfWork))

			err := uc.Save(context.Background(), 1, tt.values)
			var appErr *domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, http.StatusBadRequest, appErr.Status)
			assert.Contains(t, appErr.Message, tt.key)
			repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestSettingsUsecase_SaveWithBothColorAliasesKeepsBrandColor(t *testing.T) {
	for i := 0; i < 20; i++ {
		repo := new(MockSettingsRepository)
		uow := new(MockUnitOfWork)
		uc := usecases.NewSettingsUsecase(repo, uow)
		ctx := context.Background()

		uow.On("Do", ctx, mock.Anything).Return(nil)
		repo.On("GetAll", ctx, int64(1)).Return(map[string]string{"brand_color": "#111111", "theme_color": "#222222"}, nil)
		repo.On("Upsert", ctx, int64(1), map[string]string{
			entities.SettingStoreName:    "Joe",
			entities.SettingPrimaryColor: "#111111",
		}).Return(nil)
		repo.On("DeleteKeys", ctx, int64(1), []string{"brand_color", "theme_color"}).Return(nil)

		require.NoError(t, uc.Save(ctx, 1, map[string]interface{}{"store_name": "Joe"}))
		repo.AssertExpectations(t)
	}
}

func TestSettingsUsecase_Reads(t *testing.T) {
	repo := new(MockSettingsRepository)
	uc := usecases.NewSettingsUsecase(repo, new(MockUnitOfWork))
	ctx := context.Background()

	repo.On("GetAll", ctx, int64(1)).Return(map[string]string{
		"whatsapp_number":               "5511999990002",
		entities.SettingEvolutionAPIKey: "secret",
		entities.SettingStoreName:       "Joe",
	}, nil)

	all, err := uc.GetAll(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "5511999990002", all[entities.SettingWhatsappCashier])
	assert.NotContains(t, all, "whatsapp_number")

	pub, err := uc.GetPublic(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Joe", pub.StoreName)
	assert.Equal(t, "5511999990002", pub.WhatsappCashier)
	assert.True(t, pub.IsOpen)
}
