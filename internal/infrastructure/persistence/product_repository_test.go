package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timbermart/backend/internal/domain/catalog"
	"github.com/timbermart/backend/internal/domain/shared"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupProductTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&catalog.Product{}))
	return db
}

func newTestProduct(t *testing.T, name string, price int64) *catalog.Product {
	t.Helper()
	unitPrice := decimal.NewFromInt(price)
	product, err := catalog.NewProduct(name, "Hardwood", "Kalyani",
		&unitPrice, "sq ft", "stock item", "https://img.example/p.jpg",
		[]string{"premium"}, catalog.Specs{Origin: "Myanmar"})
	require.NoError(t, err)
	return product
}

func TestGormProductRepository_CreateAndFind(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	t.Run("round-trips a product", func(t *testing.T) {
		product := newTestProduct(t, "Teak Plank", 250)
		require.NoError(t, repo.Create(ctx, product))

		found, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Teak Plank", found.Name)
		assert.True(t, found.Price.Equal(decimal.NewFromInt(250)))
		assert.Equal(t, catalog.TagList{"premium"}, found.Tags)
		assert.Equal(t, "Myanmar", found.Specs.Origin)
		assert.Equal(t, 1, found.Version)
	})

	t.Run("missing id reports not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_FindAll(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	names := []string{"Teak Plank", "Pine Board", "Oak Beam"}
	for i, name := range names {
		product := newTestProduct(t, name, 100)
		// Spread creation times so insertion order is unambiguous
		product.CreatedAt = time.Now().Add(time.Duration(i) * time.Second)
		require.NoError(t, repo.Create(ctx, product))
	}

	products, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	for i, name := range names {
		assert.Equal(t, name, products[i].Name)
	}
}

func TestGormProductRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("persists a patched product", func(t *testing.T) {
		db := setupProductTestDB(t)
		repo := NewGormProductRepository(db)

		product := newTestProduct(t, "Teak Plank", 250)
		require.NoError(t, repo.Create(ctx, product))

		price := decimal.NewFromInt(300)
		require.NoError(t, product.ApplyPatch(catalog.Patch{Price: &price}))
		require.NoError(t, repo.Update(ctx, product))

		found, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.True(t, found.Price.Equal(decimal.NewFromInt(300)))
		assert.Equal(t, 2, found.Version)
	})

	t.Run("stale version reports a conflict", func(t *testing.T) {
		db := setupProductTestDB(t)
		repo := NewGormProductRepository(db)

		product := newTestProduct(t, "Teak Plank", 250)
		require.NoError(t, repo.Create(ctx, product))

		// Two actors load the same version
		first, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		second, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)

		priceA := decimal.NewFromInt(300)
		require.NoError(t, first.ApplyPatch(catalog.Patch{Price: &priceA}))
		require.NoError(t, repo.Update(ctx, first))

		priceB := decimal.NewFromInt(320)
		require.NoError(t, second.ApplyPatch(catalog.Patch{Price: &priceB}))
		err = repo.Update(ctx, second)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		// First write wins
		found, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.True(t, found.Price.Equal(decimal.NewFromInt(300)))
	})

	t.Run("updating a deleted product reports not found", func(t *testing.T) {
		db := setupProductTestDB(t)
		repo := NewGormProductRepository(db)

		product := newTestProduct(t, "Teak Plank", 250)
		require.NoError(t, repo.Create(ctx, product))
		require.NoError(t, repo.Delete(ctx, product.ID))

		price := decimal.NewFromInt(300)
		require.NoError(t, product.ApplyPatch(catalog.Patch{Price: &price}))
		err := repo.Update(ctx, product)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_Delete(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product := newTestProduct(t, "Teak Plank", 250)
	require.NoError(t, repo.Create(ctx, product))

	require.NoError(t, repo.Delete(ctx, product.ID))
	_, err := repo.FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	t.Run("deleting twice reports not found", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, product.ID), shared.ErrNotFound)
	})
}
