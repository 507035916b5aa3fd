package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedgerStatusTransitions(t *testing.T) {
	assert.True(t, LedgerStatusPending.CanTransition(LedgerStatusSuccess))
	assert.True(t, LedgerStatusPending.CanTransition(LedgerStatusApproved))
	assert.True(t, LedgerStatusPending.CanTransition(LedgerStatusRejected))

	// Terminal states are sinks.
	for _, terminal := range []LedgerStatus{LedgerStatusSuccess, LedgerStatusApproved, LedgerStatusRejected} {
		assert.True(t, terminal.Terminal(), string(terminal))
		for _, to := range []LedgerStatus{LedgerStatusPending, LedgerStatusSuccess, LedgerStatusApproved, LedgerStatusRejected} {
			assert.False(t, terminal.CanTransition(to), "%s -> %s", terminal, to)
		}
	}

	assert.False(t, LedgerStatusPending.Terminal())
	assert.False(t, LedgerStatusPending.CanTransition(LedgerStatusPending))
}

func TestLedgerStatusRealized(t *testing.T) {
	assert.True(t, LedgerStatusSuccess.Realized())
	assert.True(t, LedgerStatusApproved.Realized())
	assert.False(t, LedgerStatusPending.Realized())
	assert.False(t, LedgerStatusRejected.Realized())
}
