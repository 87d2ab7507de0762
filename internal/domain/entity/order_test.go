package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/coolbreeze-api/internal/domain/entity"
)

func TestParseOrderStatus(t *testing.T) {
	for _, s := range entity.AllOrderStatuses {
		got, ok := entity.ParseOrderStatus(string(s))
		assert.True(t, ok)
		assert.Equal(t, s, got)
	}
	_, ok := entity.ParseOrderStatus("shipped") // case-sensitive
	assert.False(t, ok)
	_, ok = entity.ParseOrderStatus("Returned")
	assert.False(t, ok)
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, entity.StatusDelivered.Terminal())
	assert.True(t, entity.StatusUndelivered.Terminal())
	assert.True(t, entity.StatusCancelled.Terminal())

	assert.False(t, entity.StatusPending.Terminal())
	assert.False(t, entity.StatusProcessing.Terminal())
	assert.False(t, entity.StatusShipped.Terminal())
}

// El admin solo puede fijar Processing, Shipped o Cancelled.
func TestAdminCanSet(t *testing.T) {
	allowed := map[entity.OrderStatus]bool{
		entity.StatusProcessing: true,
		entity.StatusShipped:    true,
		entity.StatusCancelled:  true,
	}
	for _, s := range entity.AllOrderStatuses {
		assert.Equal(t, allowed[s], entity.AdminCanSet(s), "status %s", s)
	}
}

// El repartidor solo puede fijar Delivered o Undelivered.
func TestRiderCanSet(t *testing.T) {
	allowed := map[entity.OrderStatus]bool{
		entity.StatusDelivered:   true,
		entity.StatusUndelivered: true,
	}
	for _, s := range entity.AllOrderStatuses {
		assert.Equal(t, allowed[s], entity.RiderCanSet(s), "status %s", s)
	}
}

func TestOrderItemSubtotal(t *testing.T) {
	item := entity.OrderItem{
		Quantity:  3,
		UnitPrice: decimal.RequireFromString("19.99"),
	}
	assert.True(t, item.Subtotal().Equal(decimal.RequireFromString("59.97")))
}

func TestParseRole(t *testing.T) {
	for _, s := range []string{"customer", "admin", "rider"} {
		role, ok := entity.ParseRole(s)
		assert.True(t, ok)
		assert.Equal(t, s, role.String())
	}
	_, ok := entity.ParseRole("Admin")
	assert.False(t, ok)
	_, ok = entity.ParseRole("superuser")
	assert.False(t, ok)
}
