package session

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/timbermart/backend/internal/domain/catalog"
	"github.com/timbermart/backend/internal/domain/session"
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
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// fakeStore is an in-test SessionStore backed by a map
type fakeStore struct {
	states map[string]*session.State
}

func newFakeStore() *fakeStore {
	return &fakeStore{states: make(map[string]*session.State)}
}

func (f *fakeStore) Load(_ context.Context, sessionID string) (*session.State, error) {
	if state, ok := f.states[sessionID]; ok {
		return state, nil
	}
	return session.NewState(), nil
}

func (f *fakeStore) Save(_ context.Context, sessionID string, state *session.State) error {
	f.states[sessionID] = state
	return nil
}

func catalogProduct(t *testing.T, name string) *catalog.Product {
	t.Helper()
	price := decimal.NewFromInt(100)
	product, err := catalog.NewProduct(name, "Hardwood", "Kalyani",
		&price, "sq ft", "d", "https://img.example/p.jpg", nil, catalog.Specs{})
	require.NoError(t, err)
	return product
}

func TestStoreServiceCart(t *testing.T) {
	const sid = "session-1"

	t.Run("add snapshots the product into the cart", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewStoreService(newFakeStore(), repo)

		teak := catalogProduct(t, "Teak Plank")
		repo.On("FindByID", mock.Anything, teak.ID).Return(teak, nil)

		cart, err := service.AddToCart(context.Background(), sid, teak.ID)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, "Teak Plank", cart.Items[0].Name)
		assert.Equal(t, "100", cart.Total)
	})

	t.Run("adding twice keeps two entries", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewStoreService(newFakeStore(), repo)

		teak := catalogProduct(t, "Teak Plank")
		repo.On("FindByID", mock.Anything, teak.ID).Return(teak, nil)

		_, err := service.AddToCart(context.Background(), sid, teak.ID)
		require.NoError(t, err)
		cart, err := service.AddToCart(context.Background(), sid, teak.ID)
		require.NoError(t, err)

		assert.Len(t, cart.Items, 2)
		assert.Equal(t, "200", cart.Total)
	})

	t.Run("remove drops every entry for the product", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewStoreService(newFakeStore(), repo)

		teak := catalogProduct(t, "Teak Plank")
		oak := catalogProduct(t, "Oak Beam")
		repo.On("FindByID", mock.Anything, teak.ID).Return(teak, nil)
		repo.On("FindByID", mock.Anything, oak.ID).Return(oak, nil)

		for _, id := range []uuid.UUID{teak.ID, oak.ID, teak.ID} {
			_, err := service.AddToCart(context.Background(), sid, id)
			require.NoError(t, err)
		}

		cart, err := service.RemoveFromCart(context.Background(), sid, teak.ID)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, "Oak Beam", cart.Items[0].Name)
	})

	t.Run("removing an absent product succeeds silently", func(t *testing.T) {
		service := NewStoreService(newFakeStore(), new(MockProductRepository))

		cart, err := service.RemoveFromCart(context.Background(), sid, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
	})

	t.Run("adding an unknown product reports not found", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewStoreService(newFakeStore(), repo)

		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := service.AddToCart(context.Background(), sid, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("cart entries survive product deletion", func(t *testing.T) {
		repo := new(MockProductRepository)
		store := newFakeStore()
		service := NewStoreService(store, repo)

		teak := catalogProduct(t, "Teak Plank")
		repo.On("FindByID", mock.Anything, teak.ID).Return(teak, nil).Once()

		_, err := service.AddToCart(context.Background(), sid, teak.ID)
		require.NoError(t, err)

		// Product disappears from the catalog afterwards
		repo.On("FindByID", mock.Anything, teak.ID).Return(nil, shared.ErrNotFound)

		cart, err := service.GetCart(context.Background(), sid)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, "Teak Plank", cart.Items[0].Name)
	})

	t.Run("empty session yields empty cart", func(t *testing.T) {
		service := NewStoreService(newFakeStore(), new(MockProductRepository))

		cart, err := service.GetCart(context.Background(), "fresh")
		require.NoError(t, err)
		assert.NotNil(t, cart.Items)
		assert.Empty(t, cart.Items)
		assert.Equal(t, "0", cart.Total)
	})
}

func TestStoreServiceFavorites(t *testing.T) {
	const sid = "session-1"

	t.Run("toggle marks then unmarks", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewStoreService(newFakeStore(), repo)

		teak := catalogProduct(t, "Teak Plank")
		repo.On("FindByID", mock.Anything, teak.ID).Return(teak, nil)

		favorites, err := service.ToggleFavorite(context.Background(), sid, teak.ID)
		require.NoError(t, err)
		require.Len(t, favorites.Items, 1)

		favorites, err = service.ToggleFavorite(context.Background(), sid, teak.ID)
		require.NoError(t, err)
		assert.Empty(t, favorites.Items)
	})

	t.Run("unmarking needs no catalog lookup", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewStoreService(newFakeStore(), repo)

		teak := catalogProduct(t, "Teak Plank")
		repo.On("FindByID", mock.Anything, teak.ID).Return(teak, nil).Once()

		_, err := service.ToggleFavorite(context.Background(), sid, teak.ID)
		require.NoError(t, err)
		_, err = service.ToggleFavorite(context.Background(), sid, teak.ID)
		require.NoError(t, err)

		repo.AssertNumberOfCalls(t, "FindByID", 1)
	})

	t.Run("favorites keep insertion order", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewStoreService(newFakeStore(), repo)

		teak := catalogProduct(t, "Teak Plank")
		oak := catalogProduct(t, "Oak Beam")
		repo.On("FindByID", mock.Anything, teak.ID).Return(teak, nil)
		repo.On("FindByID", mock.Anything, oak.ID).Return(oak, nil)

		_, err := service.ToggleFavorite(context.Background(), sid, teak.ID)
		require.NoError(t, err)
		favorites, err := service.ToggleFavorite(context.Background(), sid, oak.ID)
		require.NoError(t, err)

		require.Len(t, favorites.Items, 2)
		assert.Equal(t, "Teak Plank", favorites.Items[0].Name)
		assert.Equal(t, "Oak Beam", favorites.Items[1].Name)
	})

	t.Run("cart and favorites are independent", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewStoreService(newFakeStore(), repo)

		teak := catalogProduct(t, "Teak Plank")
		repo.On("FindByID", mock.Anything, teak.ID).Return(teak, nil)

		_, err := service.AddToCart(context.Background(), sid, teak.ID)
		require.NoError(t, err)
		_, err = service.ToggleFavorite(context.Background(), sid, teak.ID)
		require.NoError(t, err)

		cart, err := service.GetCart(context.Background(), sid)
		require.NoError(t, err)
		favorites, err := service.GetFavorites(context.Background(), sid)
		require.NoError(t, err)

		assert.Len(t, cart.Items, 1)
		require.Len(t, favorites.Items, 1)

		_, err = service.RemoveFromCart(context.Background(), sid, teak.ID)
		require.NoError(t, err)
		favorites, err = service.GetFavorites(context.Background(), sid)
		require.NoError(t, err)
		assert.Len(t, favorites.Items, 1, "cart removal must not touch favorites")
	})

	t.Run("sessions are isolated from each other", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewStoreService(newFakeStore(), repo)

		teak := catalogProduct(t, "Teak Plank")
		repo.On("FindByID", mock.Anything, teak.ID).Return(teak, nil)

		_, err := service.AddToCart(context.Background(), "shopper-a", teak.ID)
		require.NoError(t, err)

		cart, err := service.GetCart(context.Background(), "shopper-b")
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
	})
}
