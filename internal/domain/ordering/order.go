package ordering

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/timbermart/backend/internal/domain/shared"
)

// OrderStatus represents the fulfillment status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// IsValid checks if the status is one of the four recognized values
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// TransitionPolicy decides whether a status change is allowed. Swapping the
// policy changes the lifecycle rules without touching any caller.
type TransitionPolicy interface {
	CanTransition(from, to OrderStatus) bool
}

// OpenTransitionPolicy permits any status to be set from any other status,
// including moves like Delivered back to Pending. This is the default.
type OpenTransitionPolicy struct{}

// CanTransition always allows the change
func (OpenTransitionPolicy) CanTransition(from, to OrderStatus) bool {
	return true
}

// StrictTransitionPolicy enforces a forward-only lifecycle: Pending may ship
// or cancel, Shipped may deliver or cancel, Delivered and Cancelled are
// terminal.
type StrictTransitionPolicy struct{}

// CanTransition consults the forward-only transition table
func (StrictTransitionPolicy) CanTransition(from, to OrderStatus) bool {
	switch from {
	case OrderStatusPending:
		return to == OrderStatusShipped || to == OrderStatusCancelled
	case OrderStatusShipped:
		return to == OrderStatusDelivered || to == OrderStatusCancelled
	default:
		return false
	}
}

// OrderItem is an immutable snapshot of a product at purchase time.
// ProductID is a weak reference: the product may change or disappear from
// the catalog without affecting the line item.
type OrderItem struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index;primaryKey" json:"-"`
	Line      int             `gorm:"not null;primaryKey" json:"-"` // Insertion position, for display ordering
	ProductID uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	Name      string          `gorm:"type:varchar(200);not null" json:"name"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Order represents a customer order. Line items are fixed at creation; only
// the status (and the customer contact fields) may change afterwards.
type Order struct {
	shared.BaseAggregateRoot
	CustomerName  string          `gorm:"type:varchar(200);not null"`
	CustomerEmail string          `gorm:"type:varchar(200);not null"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID;references:ID"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status        OrderStatus     `gorm:"type:varchar(20);not null;default:'Pending'"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// LineItemInput describes one line of a new order
type LineItemInput struct {
	ProductID uuid.UUID
	Name      string
	Quantity  int
	Price     decimal.Decimal
}

// NewOrder creates a new order in Pending status. The total price is
// computed once here and stored; it is never recomputed from the items.
func NewOrder(customerName, customerEmail string, items []LineItemInput) (*Order, error) {
	var b shared.ValidationBuilder

	if customerName == "" {
		b.Add("customerName", "customer name is required")
	}
	if customerEmail == "" {
		b.Add("customerEmail", "customer email is required")
	}
	if len(items) == 0 {
		b.Add("items", "at least one line item is required")
	}
	for i, item := range items {
		if item.Quantity < 1 {
			b.Add(fmt.Sprintf("items[%d].quantity", i), "quantity must be at least 1")
		}
		if item.Name == "" {
			b.Add(fmt.Sprintf("items[%d].name", i), "name snapshot is required")
		}
	}
	if err := b.Err(); err != nil {
		return nil, err
	}

	order := Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerName:      customerName,
		CustomerEmail:     customerEmail,
		Status:            OrderStatusPending,
		TotalPrice:        decimal.Zero,
	}

	order.Items = make([]OrderItem, len(items))
	for i, item := range items {
		order.Items[i] = OrderItem{
			OrderID:   order.ID,
			Line:      i + 1,
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
		order.TotalPrice = order.TotalPrice.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return &order, nil
}

// ChangeStatus validates the new status against the enum and the transition
// policy, then applies it and touches the update timestamp.
func (o *Order) ChangeStatus(to OrderStatus, policy TransitionPolicy) error {
	if !to.IsValid() {
		return shared.NewValidationError(shared.FieldError{
			Field:   "status",
			Message: fmt.Sprintf("%q is not a valid status", to),
		})
	}
	if policy != nil && !policy.CanTransition(o.Status, to) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot change order status from %s to %s", o.Status, to))
	}

	o.Status = to
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// Patch holds optional replacement values for an order's mutable fields
type Patch struct {
	CustomerName  *string
	CustomerEmail *string
	Status        *OrderStatus
}

// ApplyPatch merges the patch onto the order as one mutation: all fields are
// validated together, the version is bumped exactly once, and the order is
// left unchanged when anything fails.
func (o *Order) ApplyPatch(patch Patch, policy TransitionPolicy) error {
	var b shared.ValidationBuilder
	if patch.CustomerName != nil && *patch.CustomerName == "" {
		b.Add("customerName", "customer name is required")
	}
	if patch.CustomerEmail != nil && *patch.CustomerEmail == "" {
		b.Add("customerEmail", "customer email is required")
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		b.Add("status", fmt.Sprintf("%q is not a valid status", *patch.Status))
	}
	if err := b.Err(); err != nil {
		return err
	}

	if patch.Status != nil && policy != nil && !policy.CanTransition(o.Status, *patch.Status) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot change order status from %s to %s", o.Status, *patch.Status))
	}

	if patch.CustomerName != nil {
		o.CustomerName = *patch.CustomerName
	}
	if patch.CustomerEmail != nil {
		o.CustomerEmail = *patch.CustomerEmail
	}
	if patch.Status != nil {
		o.Status = *patch.Status
	}
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}
