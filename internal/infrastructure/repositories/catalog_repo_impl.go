package repositories

import (
	"context"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"maisquecardapio.backend/internal/domain/entities"
	"maisquecardapio.backend/internal/domain/repositories"
	"maisquecardapio.backend/internal/infrastructure/models"
)

// categoryRepo implements repositories.CategoryRepository
type categoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) repositories.CategoryRepository {
	return &categoryRepo{db: db}
}

// List lists the categories of an establishment
func (r *categoryRepo) List(ctx context.Context, establishmentID int64) ([]*entities.Category, error) {
	var ms []models.Category
	if err := GetDB(ctx, r.db).Where("establishment_id = ?", establishmentID).Order("id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.Category, 0, len(ms))
	for i := range ms {
		items = append(items, &entities.Category{ID: ms[i].ID, EstablishmentID: ms[i].EstablishmentID, Name: ms[i].Name})
	}
	return items, nil
}

// Exists checks the category belongs to the establishment
func (r *categoryRepo) Exists(ctx context.Context, establishmentID, id int64) (bool, error) {
	return exists(GetDB(ctx, r.db).Model(&models.Category{}).Where("id = ? AND establishment_id = ?", id, establishmentID))
}

// Create creates a new category
func (r *categoryRepo) Create(ctx context.Context, category *entities.Category) error {
	m := &models.Category{EstablishmentID: category.EstablishmentID, Name: category.Name}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translateError(err)
	}
	category.ID = m.ID
	return nil
}

// Update renames a category of the establishment
func (r *categoryRepo) Update(ctx context.Context, category *entities.Category) error {
	result := GetDB(ctx, r.db).
		Model(&models.Category{}).
		Where("id = ? AND establishment_id = ?", category.ID, category.EstablishmentID).
		Update("name", category.Name)
	return affectedOrNotFound(result)
}

// Delete detaches the category's products before removing it
func (r *categoryRepo) Delete(ctx context.Context, establishmentID, id int64) error {
	db := GetDB(ctx, r.db)
	if err := db.Model(&models.Product{}).
		Where("category_id = ? AND establishment_id = ?", id, establishmentID).
		Update("category_id", nil).Error; err != nil {
		return err
	}
	return affectedOrNotFound(db.Delete(&models.Category{}, "id = ? AND establishment_id = ?", id, establishmentID))
}

// productRepo implements repositories.ProductRepository
type productRepo struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) repositories.ProductRepository {
	return &productRepo{db: db}
}

// List lists products, optionally only the available ones
func (r *productRepo) List(ctx context.Context, establishmentID int64, onlyAvailable bool) ([]*entities.Product, error) {
	query := GetDB(ctx, r.db).Where("establishment_id = ?", establishmentID)
	if onlyAvailable {
		query = query.Where("is_available = ?", true)
	}

	var ms []models.Product
	if err := query.Order("id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.Product, 0, len(ms))
	for i := range ms {
		items = append(items, productToEntity(&ms[i]))
	}
	return items, nil
}

// Count counts the products of an establishment
func (r *productRepo) Count(ctx context.Context, establishmentID int64) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&models.Product{}).Where("establishment_id = ?", establishmentID).Count(&count).Error
	return count, err
}

// Create creates a new product
func (r *productRepo) Create(ctx context.Context, product *entities.Product) error {
	m := productToModel(product)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translateError(err)
	}
	product.ID = m.ID
	return nil
}

// Update updates a product of the establishment
func (r *productRepo) Update(ctx context.Context, product *entities.Product) error {
	m := productToModel(product)
	result := GetDB(ctx, r.db).
		Model(&models.Product{}).
		Where("id = ? AND establishment_id = ?", product.ID, product.EstablishmentID).
		Updates(map[string]interface{}{
			"category_id":  m.CategoryID,
			"name":         m.Name,
			"description":  m.Description,
			"price":        m.Price,
			"image_url":    m.ImageURL,
			"is_available": m.IsAvailable,
		})
	return affectedOrNotFound(result)
}

// Delete deletes a product of the establishment
func (r *productRepo) Delete(ctx context.Context, establishmentID, id int64) error {
	return affectedOrNotFound(GetDB(ctx, r.db).Delete(&models.Product{}, "id = ? AND establishment_id = ?", id, establishmentID))
}

func productToEntity(m *models.Product) *entities.Product {
	return &entities.Product{
		ID:              m.ID,
		EstablishmentID: m.EstablishmentID,
		CategoryID:      null.Int64FromPtr(m.CategoryID),
		Name:            m.Name,
		Description:     m.Description,
		Price:           m.Price,
		ImageURL:        m.ImageURL,
		IsAvailable:     m.IsAvailable,
	}
}

func productToModel(e *entities.Product) *models.Product {
	return &models.Product{
		ID:              e.ID,
		EstablishmentID: e.EstablishmentID,
		CategoryID:      e.CategoryID.Ptr(),
		Name:            e.Name,
		Description:     e.Description,
		Price:           e.Price,
		ImageURL:        e.ImageURL,
		IsAvailable:     e.IsAvailable,
	}
}

// neighborhoodRepo implements repositories.NeighborhoodRepository
type neighborhoodRepo struct {
	db *gorm.DB
}

// NewNeighborhoodRepository creates a new neighborhood repository
func NewNeighborhoodRepository(db *gorm.DB) repositories.NeighborhoodRepository {
	return &neighborhoodRepo{db: db}
}

// List lists delivery neighborhoods by name
func (r *neighborhoodRepo) List(ctx context.Context, establishmentID int64) ([]*entities.Neighborhood, error) {
	var ms []models.Neighborhood
	if err := GetDB(ctx, r.db).Where("establishment_id = ?", establishmentID).Order("name ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.Neighborhood, 0, len(ms))
	for i := range ms {
		items = append(items, &entities.Neighborhood{
			ID:              ms[i].ID,
			EstablishmentID: ms[i].EstablishmentID,
			Name:            ms[i].Name,
			DeliveryFee:     ms[i].DeliveryFee,
		})
	}
	return items, nil
}

// Exists checks the neighborhood belongs to the establishment
func (r *neighborhoodRepo) Exists(ctx context.Context, establishmentID, id int64) (bool, error) {
	return exists(GetDB(ctx, r.db).Model(&models.Neighborhood{}).Where("id = ? AND establishment_id = ?", id, establishmentID))
}

// Create creates a new neighborhood
func (r *neighborhoodRepo) Create(ctx context.Context, neighborhood *entities.Neighborhood) error {
	m := &models.Neighborhood{
		EstablishmentID: neighborhood.EstablishmentID,
		Name:            neighborhood.Name,
		DeliveryFee:     neighborhood.DeliveryFee,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translateError(err)
	}
	neighborhood.ID = m.ID
	return nil
}

// Update updates a neighborhood of the establishment
func (r *neighborhoodRepo) Update(ctx context.Context, neighborhood *entities.Neighborhood) error {
	result := GetDB(ctx, r.db).
		Model(&models.Neighborhood{}).
		Where("id = ? AND establishment_id = ?", neighborhood.ID, neighborhood.EstablishmentID).
		Updates(map[string]interface{}{
			"name":         neighborhood.Name,
			"delivery_fee": neighborhood.DeliveryFee,
		})
	return affectedOrNotFound(result)
}

// Delete deletes a neighborhood of the establishment
func (r *neighborhoodRepo) Delete(ctx context.Context, establishmentID, id int64) error {
	return affectedOrNotFound(GetDB(ctx, r.db).Delete(&models.Neighborhood{}, "id = ? AND establishment_id = ?", id, establishmentID))
}
