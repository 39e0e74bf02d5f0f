package postgres

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"maisquecardapio.backend/internal/domain/entities"
	"maisquecardapio.backend/internal/infrastructure/models"
	"maisquecardapio.backend/pkg/crypto"
	"maisquecardapio.backend/pkg/logger"
)

// Demo tenant credentials written by Seed
const (
	DemoSlug     = "demo"
	DemoEmail    = "admin@demo.com"
	DemoPassword = "admin123"
)

var hashPassword = crypto.HashPassword

// AutoMigrate creates any missing table, column or index
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// Seed inserts the plans and the demo establishment once, when plans is empty
func Seed(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Plan{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count plans: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := hashPassword(DemoPassword)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		freeMax, premiumMax := 10, 100
		free := &models.Plan{Code: entities.PlanCodeFree, Name: "Gratuito", Price: 0, MaxProducts: &freeMax}
		premium := &models.Plan{
			Code:               entities.PlanCodePremium,
			Name:               "Premium",
			Price:              49.90,
			MaxProducts:        &premiumMax,
			EnableAI:           true,
			EnableReservations: true,
			EnableAutomation:   true,
		}
		if err := tx.Create(free).Error; err != nil {
			return err
		}
		if err := tx.Create(premium).Error; err != nil {
			return err
		}

		paidUntil := time.Now().UTC().AddDate(1, 0, 0)
		demo := &models.Establishment{
			Name:         "MaisQueCardapio Demo",
			Slug:         DemoSlug,
			OwnerEmail:   DemoEmail,
			PasswordHash: hash,
			PlanID:       premium.ID,
			Status:       string(entities.EstablishmentStatusActive),
			PaidUntil:    &paidUntil,
		}
		if err := tx.Omit("Plan").Create(demo).Error; err != nil {
			return err
		}

		settings := map[string]string{
			entities.SettingPixKey:             "seu-pix@email.com",
			entities.SettingWhatsappKitchen:    "5511999999999",
			entities.SettingWhatsappCashier:    "5511999999999",
			entities.SettingStoreName:          demo.Name,
			entities.SettingStoreLogo:          "",
			entities.SettingPrimaryColor:       entities.DefaultPrimaryColor,
			entities.SettingIsOpen:             "1",
			entities.SettingEnableReservations: "1",
			entities.SettingEvolutionEnabled:   "0",
			entities.SettingEnableAI:           "1",
			entities.SettingAIProvider:         "gemini",
		}
		rows := make([]models.Setting, 0, len(settings))
		for k, v := range settings {
			rows = append(rows, models.Setting{EstablishmentID: demo.ID, Key: k, Value: v})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}

		burgers := &models.Category{EstablishmentID: demo.ID, Name: "Hambúrgueres"}
		drinks := &models.Category{EstablishmentID: demo.ID, Name: "Bebidas"}
		if err := tx.Create(burgers).Error; err != nil {
			return err
		}
		if err := tx.Create(drinks).Error; err != nil {
			return err
		}

		if err := tx.Create(&models.Product{
			EstablishmentID: demo.ID,
			CategoryID:      &burgers.ID,
			Name:            "X-Burger Clássico",
			Description:     "Pão, carne 150g, queijo e maionese da casa.",
			Price:           25.90,
			ImageURL:        "https://picsum.photos/seed/burger1/400/300",
			IsAvailable:     true,
		}).Error; err != nil {
			return err
		}

		if err := tx.Create(&models.Neighborhood{EstablishmentID: demo.ID, Name: "Centro", DeliveryFee: 5}).Error; err != nil {
			return err
		}

		for i := 1; i <= 5; i++ {
			if err := tx.Create(&models.Table{EstablishmentID: demo.ID, Number: i, Status: entities.TableStatusAvailable}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	logger.Info(ctx, "Seeded plans and demo establishment", zap.String("slug", DemoSlug))
	return nil
}
