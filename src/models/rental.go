package models

import (
	"time"

	"github.com/HeroHarith/Tickets-sub001/src/types"

	"github.com/shopspring/decimal"
)

type Rental struct {
	ID               uint                      `gorm:"primarykey" json:"id"`
	VenueID          uint                      `gorm:"index" json:"venue_id,omitempty"`
	UserID           uint                      `gorm:"index" json:"user_id,omitempty"`
	StartsAt         time.Time                 `json:"starts_at,omitempty"`
	EndsAt           time.Time                 `json:"ends_at,omitempty"`
	TotalPrice       decimal.Decimal           `gorm:"type:numeric" json:"total_price"`
	Status           types.RentalStatus        `gorm:"default:'pending'" json:"status,omitempty"`
	PaymentStatus    types.RentalPaymentStatus `gorm:"default:'unpaid'" json:"payment_status,omitempty"`
	PaymentSessionID *string                   `json:"payment_session_id,omitempty"`
	Notes            string                    `json:"notes,omitempty"`

	Venue Venue `json:"venue,omitempty"`
	User  User  `json:"user,omitempty"`

	types.Timestamps
}

// rentalTransitions is the only set of status moves the storage layer will
// apply. Everything else is rejected, completed and canceled are terminal.
var rentalTransitions = map[types.RentalStatus][]types.RentalStatus{
	types.RENTAL_PENDING:   {types.RENTAL_CONFIRMED, types.RENTAL_CANCELED},
	types.RENTAL_CONFIRMED: {types.RENTAL_COMPLETED, types.RENTAL_CANCELED},
}

var rentalPaymentTransitions = map[types.RentalPaymentStatus][]types.RentalPaymentStatus{
	types.RENTAL_UNPAID: {types.RENTAL_PAID},
	types.RENTAL_PAID:   {types.RENTAL_REFUNDED},
}

func CanTransitionRental(from, to types.RentalStatus) bool {
	for _, next := range rentalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func CanTransitionRentalPayment(from, to types.RentalPaymentStatus) bool {
	for _, next := range rentalPaymentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
