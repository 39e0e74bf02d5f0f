package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/volatiletech/null/v8"
	"maisquecardapio.backend/internal/domain/entities"
	domainerrors "maisquecardapio.backend/internal/domain/errors"
	"maisquecardapio.backend/internal/domain/repositories"
	"maisquecardapio.backend/internal/interfaces/http/response"
)

type ProductService interface {
	ListProducts(ctx context.Context, establishmentID int64, onlyAvailable bool) ([]*entities.Product, error)
	CreateProduct(ctx context.Context, establishment *entities.Establishment, product *entities.Product) error
	UpdateProduct(ctx context.Context, establishmentID int64, product *entities.Product) error
	DeleteProduct(ctx context.Context, establishmentID, id int64) error
}

// CatalogHandler serves categories, products and delivery neighborhoods
type CatalogHandler struct {
	products         ProductService
	categoryRepo     repositories.CategoryRepository
	neighborhoodRepo repositories.NeighborhoodRepository
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(
	products ProductService,
	categoryRepo repositories.CategoryRepository,
	neighborhoodRepo repositories.NeighborhoodRepository,
) *CatalogHandler {
	return &CatalogHandler{
		products:         products,
		categoryRepo:     categoryRepo,
		neighborhoodRepo: neighborhoodRepo,
	}
}

// ListCategories
// GET /api/e/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	categories, err := h.categoryRepo.List(c.Request.Context(), est.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, categories)
}

// CreateCategory
// POST /api/e/categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	var input entities.CategoryInput
	if !bindJSON(c, &input) {
		return
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		response.Error(c, domainerrors.BadRequest("name is required"))
		return
	}

	category := &entities.Category{EstablishmentID: est.ID, Name: name}
	if err := h.categoryRepo.Create(c.Request.Context(), category); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, category.ID)
}

// UpdateCategory
// PUT /api/e/categories/:id
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	var input entities.CategoryInput
	if !bindJSON(c, &input) {
		return
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		response.Error(c, domainerrors.BadRequest("name is required"))
		return
	}

	category := &entities.Category{ID: id, EstablishmentID: est.ID, Name: name}
	if err := h.categoryRepo.Update(c.Request.Context(), category); err != nil {
		response.ErrorNotFound(c, err, "category not found")
		return
	}
	respondOK(c)
}

// DeleteCategory
// DELETE /api/e/categories/:id
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	if err := h.categoryRepo.Delete(c.Request.Context(), est.ID, id); err != nil {
		response.ErrorNotFound(c, err, "category not found")
		return
	}
	respondOK(c)
}

// ListProducts returns the menu; ?available=1 hides unavailable items
// GET /api/e/products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	onlyAvailable := entities.ParseFlag(c.Query("available"))
	products, err := h.products.ListProducts(c.Request.Context(), est.ID, onlyAvailable)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, products)
}

// CreateProduct
// POST /api/e/products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	var input entities.ProductInput
	if !bindJSON(c, &input) {
		return
	}

	product := productFromInput(&input)
	if err := h.products.CreateProduct(c.Request.Context(), est, product); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, product.ID)
}

// UpdateProduct
// PUT /api/e/products/:id
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	var input entities.ProductInput
	if !bindJSON(c, &input) {
		return
	}

	product := productFromInput(&input)
	product.ID = id
	if err := h.products.UpdateProduct(c.Request.Context(), est.ID, product); err != nil {
		response.ErrorNotFound(c, err, "product not found")
		return
	}
	respondOK(c)
}

// DeleteProduct
// DELETE /api/e/products/:id
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	if err := h.products.DeleteProduct(c.Request.Context(), est.ID, id); err != nil {
		response.ErrorNotFound(c, err, "product not found")
		return
	}
	respondOK(c)
}

// ListNeighborhoods
// GET /api/e/neighborhoods
func (h *CatalogHandler) ListNeighborhoods(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	neighborhoods, err := h.neighborhoodRepo.List(c.Request.Context(), est.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, neighborhoods)
}

// CreateNeighborhood
// POST /api/e/neighborhoods
func (h *CatalogHandler) CreateNeighborhood(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	var input entities.NeighborhoodInput
	if !bindJSON(c, &input) {
		return
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		response.Error(c, domainerrors.BadRequest("name is required"))
		return
	}

	neighborhood := &entities.Neighborhood{EstablishmentID: est.ID, Name: name, DeliveryFee: input.DeliveryFee}
	if err := h.neighborhoodRepo.Create(c.Request.Context(), neighborhood); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, neighborhood.ID)
}

// UpdateNeighborhood
// PUT /api/e/neighborhoods/:id
func (h *CatalogHandler) UpdateNeighborhood(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	var input entities.NeighborhoodInput
	if !bindJSON(c, &input) {
		return
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		response.Error(c, domainerrors.BadRequest("name is required"))
		return
	}

	neighborhood := &entities.Neighborhood{ID: id, EstablishmentID: est.ID, Name: name, DeliveryFee: input.DeliveryFee}
	if err := h.neighborhoodRepo.Update(c.Request.Context(), neighborhood); err != nil {
		response.ErrorNotFound(c, err, "neighborhood not found")
		return
	}
	respondOK(c)
}

// DeleteNeighborhood
// DELETE /api/e/neighborhoods/:id
func (h *CatalogHandler) DeleteNeighborhood(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	if err := h.neighborhoodRepo.Delete(c.Request.Context(), est.ID, id); err != nil {
		response.ErrorNotFound(c, err, "neighborhood not found")
		return
	}
	respondOK(c)
}

func productFromInput(input *entities.ProductInput) *entities.Product {
	product := &entities.Product{
		Name:        input.Name,
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		ImageURL:    strings.TrimSpace(input.ImageURL),
		IsAvailable: true,
	}
	if input.CategoryID != nil {
		product.CategoryID = null.Int64From(*input.CategoryID)
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}
	return product
}
