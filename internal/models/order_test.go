package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusNext(t *testing.T) {
	testCases := []struct {
		testName string
		status   OrderStatus
		expected OrderStatus
		ok       bool
	}{
		{testName: "Should move from PLACED to PREPARING", status: StatusPlaced, expected: StatusPreparing, ok: true},
		{testName: "Should move from PREPARING to READY", status: StatusPreparing, expected: StatusReady, ok: true},
		{testName: "Should move from READY to DELIVERED", status: StatusReady, expected: StatusDelivered, ok: true},
		{testName: "Should not move from DELIVERED", status: StatusDelivered, ok: false},
		{testName: "Should not move from CANCELLED", status: StatusCancelled, ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			next, ok := tc.status.Next()

			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, next)
			}
		})
	}
}

func TestOrderStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusPlaced.IsTerminal())
	assert.False(t, StatusPreparing.IsTerminal())
	assert.False(t, StatusReady.IsTerminal())
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestOrderStatusIsValid(t *testing.T) {
	assert.True(t, StatusPlaced.IsValid())
	assert.True(t, StatusCancelled.IsValid())
	assert.False(t, OrderStatus("SHIPPED").IsValid())
}
