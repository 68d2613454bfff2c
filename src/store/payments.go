package store

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/HeroHarith/Tickets-sub001/src/lib"
	"github.com/HeroHarith/Tickets-sub001/src/models"
	"github.com/HeroHarith/Tickets-sub001/src/types"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

type PaymentSession struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// CreateTicketPaymentSession opens a hosted checkout for the selected
// ticket lines. No inventory is touched here; tickets are only issued once
// the purchase endpoint sees the session paid.
func (s *Service) CreateTicketPaymentSession(ctx context.Context, userID uint, body *types.CreatePaymentSessionRequestBody) (*PaymentSession, error) {
	if body.EventID == 0 || len(body.Selections) == 0 {
		return nil, types.NewValidationError("event_id and selections are required")
	}
	lines := []lib.CheckoutLine{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.Where(&models.Event{ID: body.EventID}).First(&event).Error; err != nil {
			return wrapDBError(err, fmt.Sprintf("event [%d] does not exist", body.EventID))
		}
		for _, sel := range body.Selections {
			var tt models.TicketType
			if err := tx.
				Where(&models.TicketType{ID: sel.TicketTypeID, EventID: event.ID}).
				First(&tt).
				Error; err != nil {
				return wrapDBError(err, fmt.Sprintf("ticket type [%d] does not exist for event [%d]", sel.TicketTypeID, event.ID))
			}
			if tt.AvailableQuantity < sel.Quantity {
				return types.NewConflictError("ticket type [%s] is sold out", tt.Name)
			}
			cents := tt.Price.Mul(decimal.NewFromInt(100)).IntPart()
			lines = append(lines, lib.CheckoutLine{
				Name:        fmt.Sprintf("%s - %s", event.Title, tt.Name),
				UnitAmount:  cents,
				Currency:    "usd",
				Quantity:    int64(sel.Quantity),
				ReferenceID: fmt.Sprint(tt.ID),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sessionID, url, err := s.payments.CreateSession(ctx, lines, map[string]string{
		"kind":     "tickets",
		"user_id":  fmt.Sprint(userID),
		"event_id": fmt.Sprint(body.EventID),
	})
	if err != nil {
		return nil, types.NewUpstreamError("could not create payment session", err)
	}
	return &PaymentSession{SessionID: sessionID, URL: url}, nil
}

// CreateRentalPaymentSession opens a checkout for an unpaid rental and
// remembers the session on the rental row.
func (s *Service) CreateRentalPaymentSession(ctx context.Context, userID uint, rentalID uint) (*PaymentSession, error) {
	var rental models.Rental
	if err := s.db.
		Where(&models.Rental{ID: rentalID}).
		Preload("Venue").
		First(&rental).
		Error; err != nil {
		return nil, wrapDBError(err, fmt.Sprintf("rental [%d] does not exist", rentalID))
	}
	if rental.UserID != userID {
		return nil, types.NewForbiddenError("rental [%d] does not belong to the caller", rentalID)
	}
	if rental.PaymentStatus != types.RENTAL_UNPAID {
		return nil, types.NewConflictError("rental [%d] is already paid", rentalID)
	}
	cents := rental.TotalPrice.Mul(decimal.NewFromInt(100)).IntPart()
	sessionID, url, err := s.payments.CreateSession(ctx, []lib.CheckoutLine{{
		Name:       fmt.Sprintf("Venue rental - %s", rental.Venue.Name),
		UnitAmount: cents,
		Currency:   "usd",
		Quantity:   1,
	}}, map[string]string{
		"kind":      "rental",
		"rental_id": fmt.Sprint(rental.ID),
		"user_id":   fmt.Sprint(userID),
	})
	if err != nil {
		return nil, types.NewUpstreamError("could not create payment session", err)
	}
	if err := s.db.
		Model(&models.Rental{}).
		Where(&models.Rental{ID: rental.ID}).
		UpdateColumn("payment_session_id", sessionID).
		Error; err != nil {
		return nil, wrapDBError(err, "")
	}
	return &PaymentSession{SessionID: sessionID, URL: url}, nil
}

// HandleCheckoutCompleted reacts to the provider's asynchronous
// confirmation. The raw event body is poked with gjson since only a couple
// of metadata fields matter here.
func (s *Service) HandleCheckoutCompleted(raw []byte) error {
	if !gjson.ValidBytes(raw) {
		return types.NewValidationError("invalid webhook payload")
	}
	kind := gjson.GetBytes(raw, "metadata.kind").String()
	switch kind {
	case "rental":
		rentalID := gjson.GetBytes(raw, "metadata.rental_id").String()
		id, err := strconv.Atoi(rentalID)
		if err != nil {
			return types.NewValidationError("missing rental_id in webhook metadata")
		}
		res := s.db.
			Model(&models.Rental{}).
			Where("id = ? AND payment_status = ?", uint(id), types.RENTAL_UNPAID).
			UpdateColumn("payment_status", types.RENTAL_PAID)
		if res.Error != nil {
			return wrapDBError(res.Error, "")
		}
		if res.RowsAffected == 0 {
			log.Printf("Webhook for Rental [%d] had nothing to update\n", id)
		}
	case "tickets":
		// Ticket issuance happens on the purchase endpoint after the
		// client returns from checkout; nothing to do here.
		log.Printf("Checkout completed for tickets session [%s]\n", gjson.GetBytes(raw, "id").String())
	default:
		log.Printf("Ignoring webhook with kind [%s]\n", kind)
	}
	return nil
}
