package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		ok       bool
	}{
		{StatusOrderReceived, StatusPreparing, true},
		{StatusOrderReceived, StatusCancelled, true},
		{StatusOrderReceived, StatusReady, false}, // no skipping
		{StatusPreparing, StatusReady, true},
		{StatusPreparing, StatusCancelled, true},
		{StatusPreparing, StatusOrderReceived, false}, // no backward moves
		{StatusReady, StatusOutForDelivery, true},
		{StatusReady, StatusDelivered, true}, // pickup skips the courier leg
		{StatusReady, StatusCancelled, false},
		{StatusOutForDelivery, StatusDelivered, true},
		{StatusOutForDelivery, StatusCancelled, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPreparing, false},
		{StatusDelivered, StatusDelivered, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.ok, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestIsTerminal(t *testing.T) {
	require.True(t, StatusDelivered.IsTerminal())
	require.True(t, StatusCancelled.IsTerminal())
	require.False(t, StatusOrderReceived.IsTerminal())
	require.False(t, StatusOutForDelivery.IsTerminal())
}

func TestCancellability(t *testing.T) {
	require.Equal(t, Cancellable, StatusOrderReceived.Cancellability())
	require.Equal(t, Cancellable, StatusPreparing.Cancellability())
	require.Equal(t, CancelTooLate, StatusReady.Cancellability())
	require.Equal(t, CancelTooLate, StatusOutForDelivery.Cancellability())
	require.Equal(t, CancelTerminal, StatusDelivered.Cancellability())
	require.Equal(t, CancelTerminal, StatusCancelled.Cancellability())
}

func TestValidOrderStatus(t *testing.T) {
	require.True(t, ValidOrderStatus(StatusPreparing))
	require.False(t, ValidOrderStatus(OrderStatus("unknown")))
}
