package models

import (
	"testing"

	"github.com/HeroHarith/Tickets-sub001/src/types"

	"github.com/stretchr/testify/assert"
)

func TestRentalStatusTransitions(t *testing.T) {
	assert.True(t, CanTransitionRental(types.RENTAL_PENDING, types.RENTAL_CONFIRMED))
	assert.True(t, CanTransitionRental(types.RENTAL_PENDING, types.RENTAL_CANCELED))
	assert.True(t, CanTransitionRental(types.RENTAL_CONFIRMED, types.RENTAL_COMPLETED))
	assert.True(t, CanTransitionRental(types.RENTAL_CONFIRMED, types.RENTAL_CANCELED))

	assert.False(t, CanTransitionRental(types.RENTAL_PENDING, types.RENTAL_COMPLETED))
	assert.False(t, CanTransitionRental(types.RENTAL_COMPLETED, types.RENTAL_PENDING))
	assert.False(t, CanTransitionRental(types.RENTAL_CANCELED, types.RENTAL_CONFIRMED))
	assert.False(t, CanTransitionRental(types.RENTAL_COMPLETED, types.RENTAL_CANCELED))
}

func TestRentalPaymentTransitions(t *testing.T) {
	assert.True(t, CanTransitionRentalPayment(types.RENTAL_UNPAID, types.RENTAL_PAID))
	assert.True(t, CanTransitionRentalPayment(types.RENTAL_PAID, types.RENTAL_REFUNDED))

	assert.False(t, CanTransitionRentalPayment(types.RENTAL_UNPAID, types.RENTAL_REFUNDED))
	assert.False(t, CanTransitionRentalPayment(types.RENTAL_PAID, types.RENTAL_UNPAID))
	assert.False(t, CanTransitionRentalPayment(types.RENTAL_REFUNDED, types.RENTAL_PAID))
}
