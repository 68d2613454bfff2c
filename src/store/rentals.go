package store

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/HeroHarith/Tickets-sub001/src/config"
	"github.com/HeroHarith/Tickets-sub001/src/models"
	"github.com/HeroHarith/Tickets-sub001/src/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateRental books a venue for a time range. Overlapping confirmed or
// pending rentals on the same venue are rejected.
func (s *Service) CreateRental(userID uint, body *types.CreateRentalRequestBody) (*models.Rental, error) {
	startsAt, err := time.Parse(config.TIME_PARSE_FORMAT, body.StartsAt)
	if err != nil {
		return nil, types.NewValidationError("could not parse starts_at: %s", err.Error())
	}
	endsAt, err := time.Parse(config.TIME_PARSE_FORMAT, body.EndsAt)
	if err != nil {
		return nil, types.NewValidationError("could not parse ends_at: %s", err.Error())
	}
	if !endsAt.After(startsAt) {
		return nil, types.NewValidationError("ends_at must be after starts_at")
	}

	var rental models.Rental
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var venue models.Venue
		if err := tx.Where(&models.Venue{ID: body.VenueID}).First(&venue).Error; err != nil {
			return wrapDBError(err, fmt.Sprintf("venue [%d] does not exist", body.VenueID))
		}
		if !venue.IsActive {
			return types.NewConflictError("venue [%d] is not accepting bookings", venue.ID)
		}

		var overlap int64
		if err := tx.
			Model(&models.Rental{}).
			Where("venue_id = ? AND status IN (?) AND starts_at < ? AND ends_at > ?",
				venue.ID,
				[]types.RentalStatus{types.RENTAL_PENDING, types.RENTAL_CONFIRMED},
				endsAt, startsAt,
			).
			Count(&overlap).
			Error; err != nil {
			return wrapDBError(err, "")
		}
		if overlap > 0 {
			return types.NewConflictError("venue [%d] is already booked for that time range", venue.ID)
		}

		rental = models.Rental{
			VenueID:       venue.ID,
			UserID:        userID,
			StartsAt:      startsAt,
			EndsAt:        endsAt,
			TotalPrice:    rentalPrice(&venue, startsAt, endsAt),
			Status:        types.RENTAL_PENDING,
			PaymentStatus: types.RENTAL_UNPAID,
			Notes:         body.Notes,
		}
		if err := tx.Create(&rental).Error; err != nil {
			return wrapDBError(err, "")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rental, nil
}

// rentalPrice bills whole hours; the daily rate wins once a booking covers
// full days and the venue has one.
func rentalPrice(venue *models.Venue, startsAt, endsAt time.Time) decimal.Decimal {
	hours := int64(math.Ceil(endsAt.Sub(startsAt).Hours()))
	if hours < 1 {
		hours = 1
	}
	if venue.DailyRate != nil && hours >= 24 {
		days := hours / 24
		rem := hours % 24
		total := venue.DailyRate.Mul(decimal.NewFromInt(days))
		return total.Add(venue.HourlyRate.Mul(decimal.NewFromInt(rem)))
	}
	return venue.HourlyRate.Mul(decimal.NewFromInt(hours))
}

func (s *Service) ListRentals(callerID uint, role types.Role) ([]models.Rental, error) {
	var rentals []models.Rental
	tx := s.db.Model(&models.Rental{}).Preload("Venue").Order("created_at desc")
	switch role {
	case types.ROLE_ADMIN:
	case types.ROLE_CENTER:
		tx = tx.Joins("JOIN venues ON venues.id = rentals.venue_id").Where("venues.owner_id = ?", callerID)
	default:
		tx = tx.Where(&models.Rental{UserID: callerID})
	}
	if err := tx.Find(&rentals).Error; err != nil {
		return nil, wrapDBError(err, "")
	}
	return rentals, nil
}

// TransitionRental applies a status or payment-status change through the
// transition tables; anything not listed there is rejected.
func (s *Service) TransitionRental(callerID uint, role types.Role, id uint, body *types.UpdateRentalStatusRequestBody) (*models.Rental, error) {
	if body.Status == nil && body.PaymentStatus == nil {
		return nil, types.NewValidationError("nothing to update")
	}
	var rental models.Rental
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where(&models.Rental{ID: id}).
			Preload("Venue").
			First(&rental).
			Error; err != nil {
			return wrapDBError(err, fmt.Sprintf("rental [%d] does not exist", id))
		}
		owner := rental.Venue.OwnerID == callerID
		renter := rental.UserID == callerID
		if role != types.ROLE_ADMIN && !owner && !renter {
			return types.NewForbiddenError("rental [%d] does not belong to the caller", id)
		}
		// A renter may only cancel.
		if renter && !owner && role != types.ROLE_ADMIN {
			if body.PaymentStatus != nil || (body.Status != nil && *body.Status != types.RENTAL_CANCELED) {
				return types.NewForbiddenError("customers may only cancel their own rentals")
			}
		}

		updates := map[string]any{}
		if body.Status != nil {
			if !models.CanTransitionRental(rental.Status, *body.Status) {
				return types.NewConflictError("cannot move rental from [%s] to [%s]", rental.Status, *body.Status)
			}
			updates["status"] = *body.Status
			rental.Status = *body.Status
		}
		if body.PaymentStatus != nil {
			if !models.CanTransitionRentalPayment(rental.PaymentStatus, *body.PaymentStatus) {
				return types.NewConflictError("cannot move payment from [%s] to [%s]", rental.PaymentStatus, *body.PaymentStatus)
			}
			updates["payment_status"] = *body.PaymentStatus
			rental.PaymentStatus = *body.PaymentStatus
		}
		if err := tx.
			Model(&models.Rental{}).
			Where(&models.Rental{ID: id}).
			Updates(updates).
			Error; err != nil {
			return wrapDBError(err, "")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rental, nil
}

// CompleteElapsedRentals marks confirmed rentals whose end time has passed
// as completed. Runs on a schedule.
func (s *Service) CompleteElapsedRentals() {
	res := s.db.
		Model(&models.Rental{}).
		Where("status = ? AND ends_at < ?", types.RENTAL_CONFIRMED, time.Now()).
		UpdateColumn("status", types.RENTAL_COMPLETED)
	if res.Error != nil {
		log.Printf("Error completing elapsed rentals: %s\n", res.Error.Error())
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("Marked %d rentals as completed\n", res.RowsAffected)
	}
}
