package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines persistence operations for products.
// FindAll returns the store's insertion order (created_at ascending) so the
// query engine's default sort preserves it. Update performs an optimistic
// version check and returns shared.ErrConcurrencyConflict when the stored
// version no longer matches.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context) ([]Product, error)
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
