package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/timbermart/backend/internal/domain/catalog"
	"github.com/timbermart/backend/internal/domain/shared"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func priceOf(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func storedProduct(t *testing.T) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct("Teak Plank", "Hardwood", "Kalyani",
		priceOf(250), "sq ft", "Premium teak planking", "https://img.example/teak.jpg",
		[]string{"premium"}, catalog.Specs{Origin: "Myanmar"})
	require.NoError(t, err)
	return product
}

func TestProductServiceCreate(t *testing.T) {
	t.Run("persists a valid product", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		repo.On("Create", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := service.Create(context.Background(), CreateProductRequest{
			Name: "Teak Plank", Category: "Hardwood", Brand: "Kalyani",
			Price: priceOf(250), Unit: "sq ft",
			Description: "Premium teak planking", ImageURL: "https://img.example/teak.jpg",
			Tags: []string{"premium"}, Specs: SpecsPayload{Origin: "Myanmar"},
		})

		require.NoError(t, err)
		assert.Equal(t, "Teak Plank", resp.Name)
		assert.Equal(t, "Myanmar", resp.Specs.Origin)
		assert.Equal(t, 1, resp.Version)
		repo.AssertExpectations(t)
	})

	t.Run("invalid input never reaches the repository", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		_, err := service.Create(context.Background(), CreateProductRequest{Name: "Te"})

		require.Error(t, err)
		var validationErr *shared.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("absent price is a validation failure, not a free product", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		_, err := service.Create(context.Background(), CreateProductRequest{
			Name: "Teak Plank", Category: "Hardwood", Unit: "sq ft",
			Description: "Premium teak planking", ImageURL: "https://img.example/teak.jpg",
		})

		require.Error(t, err)
		var validationErr *shared.ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Len(t, validationErr.Fields, 1)
		assert.Equal(t, "price", validationErr.Fields[0].Field)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestProductServiceList(t *testing.T) {
	t.Run("applies criteria to the stored catalog", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		teak := storedProduct(t)
		pine, err := catalog.NewProduct("Pine Board", "Softwood", "",
			priceOf(40), "sq ft", "d", "u", nil, catalog.Specs{})
		require.NoError(t, err)

		repo.On("FindAll", mock.Anything).Return([]catalog.Product{*teak, *pine}, nil)

		got, err := service.List(context.Background(), ListCriteria{Category: "Softwood"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Pine Board", got[0].Name)
	})

	t.Run("empty catalog lists as empty slice", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		repo.On("FindAll", mock.Anything).Return([]catalog.Product{}, nil)

		got, err := service.List(context.Background(), ListCriteria{})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestProductServiceUpdate(t *testing.T) {
	t.Run("patches and persists", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		product := storedProduct(t)
		repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		repo.On("Update", mock.Anything, product).Return(nil)

		price := decimal.NewFromInt(300)
		resp, err := service.Update(context.Background(), product.ID, UpdateProductRequest{Price: &price})

		require.NoError(t, err)
		assert.True(t, resp.Price.Equal(decimal.NewFromInt(300)))
		assert.Equal(t, 2, resp.Version)
		repo.AssertExpectations(t)
	})

	t.Run("missing product reports not found", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := service.Update(context.Background(), id, UpdateProductRequest{})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("conflicting write surfaces the conflict", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		product := storedProduct(t)
		repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		repo.On("Update", mock.Anything, product).Return(shared.ErrConcurrencyConflict)

		name := "Teak Plank Select"
		_, err := service.Update(context.Background(), product.ID, UpdateProductRequest{Name: &name})
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestProductServiceDelete(t *testing.T) {
	t.Run("verifies existence before deleting", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		product := storedProduct(t)
		repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		repo.On("Delete", mock.Anything, product.ID).Return(nil)

		require.NoError(t, service.Delete(context.Background(), product.ID))
		repo.AssertExpectations(t)
	})

	t.Run("deleting a missing product reports not found", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		err := service.Delete(context.Background(), id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
