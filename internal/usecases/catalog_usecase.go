package usecases

import (
	"context"
	"strings"

	"maisquecardapio.backend/internal/domain/entities"
	domainerrors "maisquecardapio.backend/internal/domain/errors"
	"maisquecardapio.backend/internal/domain/repositories"
)

// CatalogUsecase enforces the product rules that plain CRUD cannot:
// categories must belong to the tenant and the plan caps the product count.
type CatalogUsecase struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
}

// NewCatalogUsecase creates a new catalog usecase
func NewCatalogUsecase(productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository) *CatalogUsecase {
	return &CatalogUsecase{productRepo: productRepo, categoryRepo: categoryRepo}
}

// ListProducts returns the tenant's products, optionally only the available ones
func (u *CatalogUsecase) ListProducts(ctx context.Context, establishmentID int64, onlyAvailable bool) ([]*entities.Product, error) {
	return u.productRepo.List(ctx, establishmentID, onlyAvailable)
}

// CreateProduct adds a product unless the plan limit is reached
func (u *CatalogUsecase) CreateProduct(ctx context.Context, establishment *entities.Establishment, product *entities.Product) error {
	product.EstablishmentID = establishment.ID
	if err := u.validateProduct(ctx, product); err != nil {
		return err
	}

	if establishment.Plan != nil && establishment.Plan.MaxProducts.Valid {
		count, err := u.productRepo.Count(ctx, establishment.ID)
		if err != nil {
			return err
		}
		if count >= int64(establishment.Plan.MaxProducts.Int) {
			return domainerrors.ErrPlanLimitReached
		}
	}

	return u.productRepo.Create(ctx, product)
}

// UpdateProduct replaces a product owned by the tenant
func (u *CatalogUsecase) UpdateProduct(ctx context.Context, establishmentID int64, product *entities.Product) error {
	product.EstablishmentID = establishmentID
	if err := u.validateProduct(ctx, product); err != nil {
		return err
	}
	return u.productRepo.Update(ctx, product)
}

// DeleteProduct removes a product owned by the tenant
func (u *CatalogUsecase) DeleteProduct(ctx context.Context, establishmentID, id int64) error {
	return u.productRepo.Delete(ctx, establishmentID, id)
}

func (u *CatalogUsecase) validateProduct(ctx context.Context, product *entities.Product) error {
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		return domainerrors.BadRequest("name is required")
	}
	if product.Price < 0 {
		return domainerrors.BadRequest("price must not be negative")
	}
	if !product.CategoryID.Valid {
		return nil
	}

	ok, err := u.categoryRepo.Exists(ctx, product.EstablishmentID, product.CategoryID.Int64)
	if err != nil {
		return err
	}
	if !ok {
		return domainerrors.BadRequest("category not found for this establishment")
	}
	return nil
}
