package services_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"coffeehub/internal/models"
	"coffeehub/internal/repositories"
	"coffeehub/internal/services"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Product, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishProductEvent(action string, payload map[string]interface{}) error {
	args := m.Called(action, payload)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func numPtr(f float64) *float64 { return &f }

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProducts := []models.Product{
		{ID: "1", Name: "Huila Reserve", Price: 18.99},
		{ID: "2", Name: "Yirgacheffe", Price: 22.50},
	}

	mockRepo.On("GetAll", mock.Anything).Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts(context.Background())

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct_AppliesDefaults(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	var created *models.Product
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Product")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*models.Product)
			created.ID = "assigned-by-store"
		}).
		Return(nil).Once()

	patch := &models.ProductPatch{Name: strPtr("X"), Price: numPtr(10)}
	product, err := service.CreateProduct(context.Background(), patch)

	assert.NoError(t, err)
	assert.Equal(t, "assigned-by-store", product.ID)
	assert.Equal(t, "X", product.Name)
	assert.Equal(t, 10.0, product.Price)
	assert.Equal(t, "Unknown", product.Origin)
	assert.Equal(t, "Unknown", product.Type)
	assert.Equal(t, "Medium", product.Roast)
	assert.Equal(t, 0.0, product.Rating)
	assert.Equal(t, "No description", product.Description)
	assert.False(t, product.CreatedAt.IsZero())
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct_PublishesEvent(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockEvents)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	mockEvents.On("PublishProductEvent", "product.created", mock.Anything).Return(nil).Once()

	_, err := service.CreateProduct(context.Background(), &models.ProductPatch{
		Name:  strPtr("Bourbon"),
		Price: numPtr(14),
	})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestProductService_CreateProduct_PublishFailureDoesNotFail(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockEvents)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	mockEvents.On("PublishProductEvent", "product.created", mock.Anything).
		Return(fmt.Errorf("broker unavailable")).Once()

	product, err := service.CreateProduct(context.Background(), &models.ProductPatch{
		Name:  strPtr("Bourbon"),
		Price: numPtr(14),
	})

	assert.NoError(t, err)
	assert.NotNil(t, product)
	mockEvents.AssertExpectations(t)
}

func TestProductService_UpdateProduct_PassesOnlySuppliedFields(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	merged := &models.Product{ID: "1", Name: "Huila Reserve", Price: 25}
	mockRepo.On("Update", mock.Anything, "1", map[string]interface{}{"price": 25.0}).
		Return(merged, nil).Once()

	updated, err := service.UpdateProduct(context.Background(), "1", &models.ProductPatch{
		Price: numPtr(25),
	})

	assert.NoError(t, err)
	assert.Equal(t, merged, updated)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct_NotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("Update", mock.Anything, "99", mock.Anything).
		Return(nil, fmt.Errorf("product with ID 99: %w", repositories.ErrNotFound)).Once()

	updated, err := service.UpdateProduct(context.Background(), "99", &models.ProductPatch{
		Price: numPtr(25),
	})

	assert.Nil(t, updated)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct_NotFoundEveryTime(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	notFound := fmt.Errorf("product with ID 99: %w", repositories.ErrNotFound)
	mockRepo.On("Delete", mock.Anything, "99").Return(notFound).Times(3)

	// Deleting a missing product is NotFound no matter how often retried.
	for i := 0; i < 3; i++ {
		err := service.DeleteProduct(context.Background(), "99")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	}
	mockRepo.AssertExpectations(t)
}

func TestProductService_Stats_EmptyStore(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("Count", mock.Anything).Return(int64(0), nil).Once()
	mockRepo.On("GetAll", mock.Anything).Return([]models.Product{}, nil).Once()

	stats, err := service.Stats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(0), stats.Total)
	assert.Equal(t, json.Number("0"), stats.AvgPrice)
	assert.Equal(t, "N/A", stats.PopularOrigin)
	mockRepo.AssertExpectations(t)
}

func TestProductService_Stats_PopularOriginAndAverage(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	products := []models.Product{
		{ID: "1", Name: "A", Origin: "Colombia", Price: 10},
		{ID: "2", Name: "B", Origin: "Brazil", Price: 20},
		{ID: "3", Name: "C", Origin: "Colombia", Price: 30},
	}
	mockRepo.On("Count", mock.Anything).Return(int64(3), nil).Once()
	mockRepo.On("GetAll", mock.Anything).Return(products, nil).Once()

	stats, err := service.Stats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, json.Number("20.00"), stats.AvgPrice)
	assert.Equal(t, "Colombia", stats.PopularOrigin)
	mockRepo.AssertExpectations(t)
}

func TestProductService_Stats_IgnoresEmptyOrigins(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	products := []models.Product{
		{ID: "1", Name: "A", Origin: "", Price: 12},
		{ID: "2", Name: "B", Origin: "", Price: 12},
	}
	mockRepo.On("Count", mock.Anything).Return(int64(2), nil).Once()
	mockRepo.On("GetAll", mock.Anything).Return(products, nil).Once()

	stats, err := service.Stats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "N/A", stats.PopularOrigin)
	assert.Equal(t, json.Number("12.00"), stats.AvgPrice)
	mockRepo.AssertExpectations(t)
}

func TestProductService_Stats_TieGoesToFirstToReachMax(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	products := []models.Product{
		{ID: "1", Name: "A", Origin: "Ethiopia", Price: 10},
		{ID: "2", Name: "B", Origin: "Kenya", Price: 10},
	}
	mockRepo.On("Count", mock.Anything).Return(int64(2), nil).Once()
	mockRepo.On("GetAll", mock.Anything).Return(products, nil).Once()

	stats, err := service.Stats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "Ethiopia", stats.PopularOrigin)
	mockRepo.AssertExpectations(t)
}
