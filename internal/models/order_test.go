package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_AppendStatusKeepsHistory(t *testing.T) {
	o := &Order{}

	require.NoError(t, o.AppendStatus(OrderStatusPending, "brand-1", "order created"))
	require.NoError(t, o.AppendStatus(OrderStatusInProgress, "creator-1", "work started"))
	require.NoError(t, o.AppendStatus(OrderStatusDelivered, "creator-1", ""))

	assert.Equal(t, OrderStatusDelivered, o.Status)

	history, err := o.History()
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, OrderStatusPending, history[0].Status)
	assert.Equal(t, "brand-1", history[0].ChangedBy)
	assert.Equal(t, OrderStatusInProgress, history[1].Status)
	assert.Equal(t, OrderStatusDelivered, history[2].Status)
	assert.False(t, history[0].ChangedAt.IsZero())
}

func TestOrder_EmptyHistory(t *testing.T) {
	o := &Order{}
	history, err := o.History()
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.True(t, OrderStatusCompleted.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusInProgress.IsTerminal())
	assert.False(t, OrderStatusDelivered.IsTerminal())
}

func TestOrderPair_CanonicalOrder(t *testing.T) {
	a, b := OrderPair("user-b", "user-a")
	assert.Equal(t, "user-a", a)
	assert.Equal(t, "user-b", b)

	a2, b2 := OrderPair("user-a", "user-b")
	assert.Equal(t, a, a2)
	assert.Equal(t, b, b2)
}
