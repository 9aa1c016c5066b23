package ordering

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timbermart/backend/internal/domain/shared"
)

func validOrder(t *testing.T) *Order {
	t.Helper()
	order, err := NewOrder("Asha Rao", "asha@example.com", []LineItemInput{
		{ProductID: uuid.New(), Name: "Teak Plank", Quantity: 2, Price: decimal.NewFromInt(100)},
		{ProductID: uuid.New(), Name: "Oak Beam", Quantity: 1, Price: decimal.NewFromFloat(49.50)},
	})
	require.NoError(t, err)
	return order
}

func TestNewOrder(t *testing.T) {
	t.Run("creates pending order with computed total", func(t *testing.T) {
		order := validOrder(t)

		assert.Equal(t, OrderStatusPending, order.Status)
		assert.True(t, order.TotalPrice.Equal(decimal.NewFromFloat(249.50)),
			"total = 2*100 + 1*49.50, got %s", order.TotalPrice)
		assert.Equal(t, 1, order.GetVersion())
		require.Len(t, order.Items, 2)
		assert.Equal(t, 1, order.Items[0].Line)
		assert.Equal(t, 2, order.Items[1].Line)
		assert.Equal(t, order.ID, order.Items[0].OrderID)
	})

	t.Run("rejects empty orders", func(t *testing.T) {
		_, err := NewOrder("Asha Rao", "asha@example.com", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one line item")
	})

	t.Run("rejects zero quantity lines", func(t *testing.T) {
		_, err := NewOrder("Asha Rao", "asha@example.com", []LineItemInput{
			{ProductID: uuid.New(), Name: "Teak Plank", Quantity: 0, Price: decimal.NewFromInt(100)},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quantity must be at least 1")
	})

	t.Run("enumerates every failing field", func(t *testing.T) {
		_, err := NewOrder("", "", nil)
		require.Error(t, err)

		var validationErr *shared.ValidationError
		require.ErrorAs(t, err, &validationErr)

		fields := make([]string, len(validationErr.Fields))
		for i, f := range validationErr.Fields {
			fields[i] = f.Field
		}
		assert.ElementsMatch(t, []string{"customerName", "customerEmail", "items"}, fields)
	})
}

func TestChangeStatus(t *testing.T) {
	policy := OpenTransitionPolicy{}

	t.Run("applies valid status and bumps version", func(t *testing.T) {
		order := validOrder(t)

		require.NoError(t, order.ChangeStatus(OrderStatusShipped, policy))
		assert.Equal(t, OrderStatusShipped, order.Status)
		assert.Equal(t, 2, order.GetVersion())
	})

	t.Run("open policy allows any move, including backwards", func(t *testing.T) {
		order := validOrder(t)

		require.NoError(t, order.ChangeStatus(OrderStatusDelivered, policy))
		require.NoError(t, order.ChangeStatus(OrderStatusPending, policy))
		assert.Equal(t, OrderStatusPending, order.Status)
	})

	t.Run("rejects unrecognized status values", func(t *testing.T) {
		order := validOrder(t)

		err := order.ChangeStatus("Teleported", policy)
		require.Error(t, err)

		var validationErr *shared.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, OrderStatusPending, order.Status, "rejected status must not be applied")
		assert.Equal(t, 1, order.GetVersion())
	})

	t.Run("setting the current status again is allowed", func(t *testing.T) {
		order := validOrder(t)

		require.NoError(t, order.ChangeStatus(OrderStatusPending, policy))
		assert.Equal(t, OrderStatusPending, order.Status)
	})
}

func TestStrictTransitionPolicy(t *testing.T) {
	policy := StrictTransitionPolicy{}

	cases := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{OrderStatusPending, OrderStatusShipped, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusShipped, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, policy.CanTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}

	t.Run("blocked transition surfaces INVALID_STATE", func(t *testing.T) {
		order := validOrder(t)
		require.NoError(t, order.ChangeStatus(OrderStatusDelivered, OpenTransitionPolicy{}))

		err := order.ChangeStatus(OrderStatusPending, policy)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestApplyPatch(t *testing.T) {
	policy := OpenTransitionPolicy{}

	strPtr := func(s string) *string { return &s }
	statusPtr := func(s OrderStatus) *OrderStatus { return &s }

	t.Run("replaces contact fields", func(t *testing.T) {
		order := validOrder(t)

		patch := Patch{CustomerName: strPtr("Ravi Iyer"), CustomerEmail: strPtr("ravi@example.com")}
		require.NoError(t, order.ApplyPatch(patch, policy))
		assert.Equal(t, "Ravi Iyer", order.CustomerName)
		assert.Equal(t, "ravi@example.com", order.CustomerEmail)
		assert.Equal(t, 2, order.GetVersion())
	})

	t.Run("contact and status together bump the version once", func(t *testing.T) {
		order := validOrder(t)

		patch := Patch{
			CustomerName: strPtr("Meera Pillai"),
			Status:       statusPtr(OrderStatusShipped),
		}
		require.NoError(t, order.ApplyPatch(patch, policy))
		assert.Equal(t, "Meera Pillai", order.CustomerName)
		assert.Equal(t, "asha@example.com", order.CustomerEmail, "omitted fields keep their values")
		assert.Equal(t, OrderStatusShipped, order.Status)
		assert.Equal(t, 2, order.GetVersion())
	})

	t.Run("empty patch still counts as a mutation", func(t *testing.T) {
		order := validOrder(t)

		require.NoError(t, order.ApplyPatch(Patch{}, policy))
		assert.Equal(t, "Asha Rao", order.CustomerName)
		assert.Equal(t, 2, order.GetVersion())
	})

	t.Run("rejects blank contact fields", func(t *testing.T) {
		order := validOrder(t)

		err := order.ApplyPatch(Patch{CustomerName: strPtr(""), CustomerEmail: strPtr("")}, policy)
		require.Error(t, err)

		var validationErr *shared.ValidationError
		require.ErrorAs(t, err, &validationErr)
		fields := make([]string, len(validationErr.Fields))
		for i, f := range validationErr.Fields {
			fields[i] = f.Field
		}
		assert.ElementsMatch(t, []string{"customerName", "customerEmail"}, fields)
		assert.Equal(t, "Asha Rao", order.CustomerName)
		assert.Equal(t, 1, order.GetVersion())
	})

	t.Run("rejects unrecognized status values", func(t *testing.T) {
		order := validOrder(t)

		err := order.ApplyPatch(Patch{Status: statusPtr("Teleported")}, policy)
		require.Error(t, err)

		var validationErr *shared.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, OrderStatusPending, order.Status)
	})

	t.Run("policy veto leaves the order untouched", func(t *testing.T) {
		order := validOrder(t)
		require.NoError(t, order.ChangeStatus(OrderStatusDelivered, policy))

		patch := Patch{
			CustomerName: strPtr("Ravi Iyer"),
			Status:       statusPtr(OrderStatusPending),
		}
		err := order.ApplyPatch(patch, StrictTransitionPolicy{})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		assert.Equal(t, "Asha Rao", order.CustomerName, "vetoed patch must not apply partially")
		assert.Equal(t, OrderStatusDelivered, order.Status)
		assert.Equal(t, 2, order.GetVersion())
	})
}
