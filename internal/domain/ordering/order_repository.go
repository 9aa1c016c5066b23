package ordering

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines persistence operations for orders.
// FindAll returns orders newest first (created_at descending) with line
// items in insertion order. Update persists only the mutable columns
// (status and customer fields) under an optimistic version check; line
// items are immutable once the order exists.
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindAll(ctx context.Context) ([]Order, error)
	Create(ctx context.Context, order *Order) error
	Update(ctx context.Context, order *Order) error
}
