package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		assert.True(t, s.Valid(), "expected %s to be valid", s)
	}

	assert.False(t, Status("pending").Valid(), "english value is not part of the wire vocabulary")
	assert.False(t, Status("").Valid())
	assert.False(t, Status("despachado").Valid())
}

func TestStatusForwardChain(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusProcessing))
	assert.True(t, StatusProcessing.CanTransitionTo(StatusShipped))
	assert.True(t, StatusShipped.CanTransitionTo(StatusDelivered))

	// Skipping ahead is still forward.
	assert.True(t, StatusPending.CanTransitionTo(StatusDelivered))

	// Never backwards.
	assert.False(t, StatusProcessing.CanTransitionTo(StatusPending))
	assert.False(t, StatusShipped.CanTransitionTo(StatusProcessing))
}

func TestStatusCancellation(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusProcessing.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusShipped.CanTransitionTo(StatusCancelled))

	assert.False(t, StatusDelivered.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusPending))
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusPending.Terminal())

	// A delivered order stays delivered.
	assert.False(t, StatusDelivered.CanTransitionTo(StatusPending))
}

func TestStatusIdempotentUpdate(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		assert.True(t, s.CanTransitionTo(s), "repeating %s should be a no-op success", s)
	}
}
