package ordering

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/timbermart/backend/internal/domain/ordering"
	"github.com/timbermart/backend/internal/domain/shared"
)

// OrderService handles order lifecycle operations. The transition policy is
// injected so the lifecycle rules can be tightened without touching callers.
type OrderService struct {
	orderRepo ordering.OrderRepository
	policy    ordering.TransitionPolicy
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo ordering.OrderRepository, policy ordering.TransitionPolicy) *OrderService {
	if policy == nil {
		policy = ordering.OpenTransitionPolicy{}
	}
	return &OrderService{orderRepo: orderRepo, policy: policy}
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves all orders, newest first
func (s *OrderService) List(ctx context.Context) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return ToOrderResponses(orders), nil
}

// UpdateStatus moves an order to a new status. The status value is checked
// before the order is loaded so a bad value never costs a lookup.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	target := ordering.OrderStatus(req.Status)
	if err := validateStatus(target); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.ChangeStatus(target, s.policy); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// Update applies a partial update to an order's customer fields and status
func (s *OrderService) Update(ctx context.Context, orderID uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	if req.Status != nil {
		if err := validateStatus(ordering.OrderStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	patch := ordering.Patch{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
	}
	if req.Status != nil {
		status := ordering.OrderStatus(*req.Status)
		patch.Status = &status
	}
	if err := order.ApplyPatch(patch, s.policy); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

func validateStatus(status ordering.OrderStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError(shared.FieldError{
			Field:   "status",
			Message: fmt.Sprintf("%q is not a valid status", status),
		})
	}
	return nil
}
