package services

import (
	"kopipos/internal/models"
	"kopipos/internal/repositories"
)

// ProductService handles business logic related to the menu catalog.
type ProductService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// GetAllProducts retrieves active products, optionally by category.
func (s *ProductService) GetAllProducts(categoryID string) ([]models.Product, error) {
	return s.productRepo.GetAll(categoryID)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

// CreateProduct creates a new product after checking its category exists.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if _, err := s.categoryRepo.GetByID(product.CategoryID); err != nil {
		return err
	}
	return s.productRepo.Create(product)
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if product.CategoryID != "" {
		if _, err := s.categoryRepo.GetByID(product.CategoryID); err != nil {
			return err
		}
	}
	return s.productRepo.Update(product)
}

// DeactivateProduct hides a product from the menu. Past order items keep
// their snapshot of it.
func (s *ProductService) DeactivateProduct(id string) error {
	return s.productRepo.Deactivate(id)
}

// GetAllCategories retrieves the active categories.
func (s *ProductService) GetAllCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

// GetCategoryByID retrieves a single category by its ID.
func (s *ProductService) GetCategoryByID(id string) (*models.Category, error) {
	return s.categoryRepo.GetByID(id)
}

// CreateCategory creates a new category.
func (s *ProductService) CreateCategory(category *models.Category) error {
	return s.categoryRepo.Create(category)
}

// UpdateCategory updates an existing category.
func (s *ProductService) UpdateCategory(category *models.Category) error {
	return s.categoryRepo.Update(category)
}

// DeactivateCategory hides a category; its products stay in place.
func (s *ProductService) DeactivateCategory(id string) error {
	return s.categoryRepo.Deactivate(id)
}
