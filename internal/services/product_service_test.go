package services_test

import (
	"errors"
	"testing"

	"kopipos/internal/models"
	"kopipos/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(categoryID string) ([]models.Product, error) {
	args := m.Called(categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Deactivate(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of repositories.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetAll() ([]models.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(id string) (*models.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Deactivate(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, new(MockCategoryRepository))

	expected := []models.Product{
		{ID: "prod-1", Name: "Cafe Latte", Price: decimal.RequireFromString("3.50"), CategoryID: "cat-1"},
		{ID: "prod-2", Name: "Espresso", Price: decimal.RequireFromString("2.25"), CategoryID: "cat-1"},
	}
	mockRepo.On("GetAll", "").Return(expected, nil).Once()

	products, err := service.GetAllProducts("")
	assert.NoError(t, err)
	assert.Equal(t, expected, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetAllProducts_ByCategory(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, new(MockCategoryRepository))

	expected := []models.Product{
		{ID: "prod-3", Name: "Croissant", Price: decimal.RequireFromString("2.75"), CategoryID: "cat-2"},
	}
	mockRepo.On("GetAll", "cat-2").Return(expected, nil).Once()

	products, err := service.GetAllProducts("cat-2")
	assert.NoError(t, err)
	assert.Equal(t, expected, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, new(MockCategoryRepository))

	expected := &models.Product{ID: "prod-1", Name: "Cafe Latte", Price: decimal.RequireFromString("3.50")}
	mockRepo.On("GetByID", "prod-1").Return(expected, nil).Once()
	mockRepo.On("GetByID", "missing").Return(nil, errors.New("product not found")).Once()

	product, err := service.GetProductByID("prod-1")
	assert.NoError(t, err)
	assert.Equal(t, expected, product)

	_, err = service.GetProductByID("missing")
	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	service := services.NewProductService(mockRepo, mockCategories)

	product := &models.Product{Name: "Flat White", Price: decimal.RequireFromString("3.75"), CategoryID: "cat-1"}
	mockCategories.On("GetByID", "cat-1").Return(&models.Category{ID: "cat-1", Name: "Coffee"}, nil).Once()
	mockRepo.On("Create", product).Return(nil).Once()

	err := service.CreateProduct(product)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockCategories.AssertExpectations(t)
}

func TestProductService_CreateProduct_UnknownCategory(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	service := services.NewProductService(mockRepo, mockCategories)

	product := &models.Product{Name: "Flat White", Price: decimal.RequireFromString("3.75"), CategoryID: "nope"}
	mockCategories.On("GetByID", "nope").Return(nil, errors.New("category not found")).Once()

	err := service.CreateProduct(product)
	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockCategories.AssertExpectations(t)
}

func TestProductService_DeactivateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, new(MockCategoryRepository))

	mockRepo.On("Deactivate", "prod-1").Return(nil).Once()

	err := service.DeactivateProduct("prod-1")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_Categories(t *testing.T) {
	mockCategories := new(MockCategoryRepository)
	service := services.NewProductService(new(MockProductRepository), mockCategories)

	expected := []models.Category{{ID: "cat-1", Name: "Coffee"}}
	mockCategories.On("GetAll").Return(expected, nil).Once()

	categories, err := service.GetAllCategories()
	assert.NoError(t, err)
	assert.Equal(t, expected, categories)

	category := &models.Category{Name: "Tea"}
	mockCategories.On("Create", category).Return(nil).Once()
	assert.NoError(t, service.CreateCategory(category))

	mockCategories.On("Deactivate", "cat-1").Return(nil).Once()
	assert.NoError(t, service.DeactivateCategory("cat-1"))

	mockCategories.AssertExpectations(t)
}
