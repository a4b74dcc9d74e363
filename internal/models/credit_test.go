package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierForScore(t *testing.T) {
	testCases := []struct {
		testName string
		score    int
		expected CreditTier
	}{
		{testName: "Should return TRUSTED for the maximum score", score: 100, expected: TierTrusted},
		{testName: "Should return TRUSTED on the lower boundary", score: 90, expected: TierTrusted},
		{testName: "Should return GOOD just below the trusted boundary", score: 89, expected: TierGood},
		{testName: "Should return GOOD on the lower boundary", score: 75, expected: TierGood},
		{testName: "Should return AVERAGE just below the good boundary", score: 74, expected: TierAverage},
		{testName: "Should return AVERAGE for the default score", score: DefaultCreditScore, expected: TierAverage},
		{testName: "Should return AVERAGE on the lower boundary", score: 50, expected: TierAverage},
		{testName: "Should return RISKY just below the average boundary", score: 49, expected: TierRisky},
		{testName: "Should return RISKY on the lower boundary", score: 30, expected: TierRisky},
		{testName: "Should return BLOCKED just below the risky boundary", score: 29, expected: TierBlocked},
		{testName: "Should return BLOCKED for the minimum score", score: 0, expected: TierBlocked},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			assert.Equal(t, tc.expected, TierForScore(tc.score))
		})
	}
}

func TestDiscountPercent(t *testing.T) {
	assert.Equal(t, 10, TierTrusted.DiscountPercent())
	assert.Equal(t, 5, TierGood.DiscountPercent())
	assert.Equal(t, 0, TierAverage.DiscountPercent())
	assert.Equal(t, 0, TierRisky.DiscountPercent())
	assert.Equal(t, 0, TierBlocked.DiscountPercent())
}

func TestDelta(t *testing.T) {
	testCases := []struct {
		testName string
		kind     CreditEventKind
		expected int
	}{
		{testName: "Should add two points for an on-time delivery", kind: EventOnTimeDelivery, expected: 2},
		{testName: "Should subtract ten points for a no-show", kind: EventNoShow, expected: -10},
		{testName: "Should subtract five points for a late cancellation", kind: EventLateCancellation, expected: -5},
		{testName: "Should subtract one point for an early cancellation", kind: EventEarlyCancellation, expected: -1},
		{testName: "Should add three points for positive feedback", kind: EventPositiveFeedback, expected: 3},
		{testName: "Should subtract three points for negative feedback", kind: EventNegativeFeedback, expected: -3},
		{testName: "Should not change the score when the student is not at fault", kind: EventNoFault, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			delta, ok := tc.kind.Delta()

			assert.True(t, ok)
			assert.Equal(t, tc.expected, delta)
		})
	}

	t.Run("Should have no delta for an admin override", func(t *testing.T) {
		_, ok := EventAdminOverride.Delta()

		assert.False(t, ok)
	})
}

func TestNextScore(t *testing.T) {
	override := 42

	testCases := []struct {
		testName string
		current  int
		event    CreditEvent
		expected int
		wantErr  bool
	}{
		{
			testName: "Should apply the delta to the current score",
			current:  70,
			event:    CreditEvent{Kind: EventOnTimeDelivery},
			expected: 72,
		},
		{
			testName: "Should clamp the score at the upper bound",
			current:  99,
			event:    CreditEvent{Kind: EventPositiveFeedback},
			expected: 100,
		},
		{
			testName: "Should clamp the score at the lower bound",
			current:  5,
			event:    CreditEvent{Kind: EventNoShow},
			expected: 0,
		},
		{
			testName: "Should set the score directly on admin override",
			current:  70,
			event:    CreditEvent{Kind: EventAdminOverride, Override: &override},
			expected: 42,
		},
		{
			testName: "Should fail on admin override without a value",
			current:  70,
			event:    CreditEvent{Kind: EventAdminOverride},
			wantErr:  true,
		},
		{
			testName: "Should fail on an unknown event kind",
			current:  70,
			event:    CreditEvent{Kind: "UNKNOWN"},
			wantErr:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			next, err := NextScore(tc.current, tc.event)

			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.expected, next)
		})
	}
}
