package store

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/HeroHarith/Tickets-sub001/src/lib"
	"github.com/HeroHarith/Tickets-sub001/src/models"
	"github.com/HeroHarith/Tickets-sub001/src/types"
	"github.com/HeroHarith/Tickets-sub001/src/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PurchaseTickets executes one checkout: one Ticket row per selection line,
// each line's inventory decremented by its quantity, all lines sharing one
// order id. The availability check and the decrement are a single
// conditional UPDATE, so two concurrent purchases of the same ticket type
// cannot both win the last units. The whole checkout is all-or-nothing: if
// any line cannot be satisfied the transaction rolls back and no tickets
// are issued.
//
// Confirmation mail (with QR code and wallet-pass links) is sent after
// commit and is best-effort; a failed send leaves email_sent=false and is
// never compensated by rolling back the purchase.
func (s *Service) PurchaseTickets(ctx context.Context, userID uint, body *types.PurchaseTicketsRequestBody) ([]models.Ticket, error) {
	for _, sel := range body.Selections {
		if sel.Quantity == 0 {
			return nil, types.NewValidationError("quantity must be a positive integer")
		}
		if uint(len(sel.Attendees)) != sel.Quantity {
			return nil, types.NewValidationError(
				"attendee details count [%d] does not match quantity [%d] for ticket type [%d]",
				len(sel.Attendees), sel.Quantity, sel.TicketTypeID,
			)
		}
	}

	// Payment is checked before any write happens.
	if body.PaymentSessionID != nil {
		paid, err := s.payments.SessionPaid(ctx, *body.PaymentSessionID)
		if err != nil {
			return nil, types.NewUpstreamError("could not verify payment session", err)
		}
		if !paid {
			return nil, types.NewValidationError("payment session [%s] is not paid", *body.PaymentSessionID)
		}
	}

	orderID := uuid.New()
	var tickets []models.Ticket
	var organizerID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.
			Where(&models.Event{ID: body.EventID}).
			First(&event).
			Error; err != nil {
			return wrapDBError(err, fmt.Sprintf("event [%d] does not exist", body.EventID))
		}
		organizerID = event.OrganizerID

		for _, sel := range body.Selections {
			var tt models.TicketType
			if err := tx.
				Where(&models.TicketType{ID: sel.TicketTypeID, EventID: event.ID}).
				First(&tt).
				Error; err != nil {
				return wrapDBError(err, fmt.Sprintf("ticket type [%d] does not exist for event [%d]", sel.TicketTypeID, event.ID))
			}

			// Check and decrement in one statement; rows affected tells us
			// whether inventory was still there at write time.
			res := tx.
				Model(&models.TicketType{}).
				Where("id = ? AND available_quantity >= ?", tt.ID, sel.Quantity).
				UpdateColumn("available_quantity", gorm.Expr("available_quantity - ?", sel.Quantity))
			if res.Error != nil {
				return wrapDBError(res.Error, "")
			}
			if res.RowsAffected == 0 {
				return types.NewConflictError("ticket type [%s] is sold out", tt.Name)
			}

			total := tt.Price.Mul(decimal.NewFromInt(int64(sel.Quantity)))
			ticket := models.Ticket{
				TicketTypeID:     tt.ID,
				EventID:          event.ID,
				UserID:           userID,
				OrderID:          orderID,
				Quantity:         sel.Quantity,
				TotalPrice:       total,
				Seat:             sel.Seat,
				PaymentSessionID: body.PaymentSessionID,
			}
			if err := tx.Create(&ticket).Error; err != nil {
				return wrapDBError(err, "")
			}

			payload, err := utils.TicketQRPayload(ticket.ID, orderID)
			if err != nil {
				log.Printf("Error building QR payload for Ticket [%d]: %s\n", ticket.ID, err.Error())
				return types.NewInternalError("could not generate ticket code", err)
			}
			if err := tx.
				Model(&models.Ticket{}).
				Where(&models.Ticket{ID: ticket.ID}).
				UpdateColumn("qr_payload", payload).
				Error; err != nil {
				return wrapDBError(err, "")
			}
			ticket.QRPayload = payload

			for _, a := range sel.Attendees {
				attendee := models.Attendee{
					TicketID: ticket.ID,
					Name:     a.Name,
					Email:    a.Email,
					Phone:    a.Phone,
				}
				if err := tx.Create(&attendee).Error; err != nil {
					return wrapDBError(err, "")
				}
				ticket.Attendees = append(ticket.Attendees, attendee)
			}
			tickets = append(tickets, ticket)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordTicketSales(organizerID, tickets)

	// Tickets exist at this point no matter what the mailer does.
	s.sendPurchaseConfirmations(body, tickets)

	return tickets, nil
}

// sendPurchaseConfirmations mails each attendee their ticket. Failures are
// logged and leave email_sent=false for a later resend.
func (s *Service) sendPurchaseConfirmations(body *types.PurchaseTicketsRequestBody, tickets []models.Ticket) {
	for i := range tickets {
		ticket := &tickets[i]
		if err := s.sendTicketMail(ticket, body.CustomerName); err != nil {
			log.Printf("Could not send confirmation for Ticket [%d]: %s\n", ticket.ID, err.Error())
			continue
		}
		if err := s.db.
			Model(&models.Ticket{}).
			Where(&models.Ticket{ID: ticket.ID}).
			UpdateColumn("email_sent", true).
			Error; err != nil {
			log.Printf("Error updating email_sent for Ticket [%d]: %s\n", ticket.ID, err.Error())
			continue
		}
		ticket.EmailSent = true
	}
}

func (s *Service) sendTicketMail(ticket *models.Ticket, purchaserName string) error {
	img, err := s.qr.Encode(ticket.QRPayload)
	if err != nil {
		return err
	}
	links := lib.WalletPassLinks(ticket.ID, ticket.QRPayload)
	to := make([]string, 0, len(ticket.Attendees))
	for _, a := range ticket.Attendees {
		to = append(to, a.Email)
	}
	body := fmt.Sprintf(`
	<p>Hi %s,</p>
	<p>Your tickets are confirmed. Order reference: %s</p>
	<p>Show the attached QR code at the entrance.</p>
	<p><a href="%s">Add to Google Wallet</a> | <a href="%s">Add to Apple Wallet</a></p>
	`, purchaserName, ticket.OrderID.String(), links.Google, links.Apple)
	return s.mailer.Send(&lib.SendMailInput{
		From:     os.Getenv("SMTP_FROM"),
		FromName: "noreply",
		To:       to,
		Subject:  "Your tickets are confirmed",
		Body:     body,
		Html:     true,
		Attachments: map[string][]byte{
			fmt.Sprintf("eticket_%d.jpeg", ticket.ID): img,
		},
	})
}

// ResendConfirmation retries the confirmation mail for a ticket whose
// initial send failed.
func (s *Service) ResendConfirmation(userID uint, ticketID uint) error {
	var ticket models.Ticket
	if err := s.db.
		Where(&models.Ticket{ID: ticketID, UserID: userID}).
		Preload("Attendees").
		First(&ticket).
		Error; err != nil {
		return wrapDBError(err, fmt.Sprintf("ticket [%d] does not exist", ticketID))
	}
	var user models.User
	if err := s.db.Where(&models.User{ID: userID}).First(&user).Error; err != nil {
		return wrapDBError(err, "user not found")
	}
	if err := s.sendTicketMail(&ticket, user.Name); err != nil {
		return types.NewUpstreamError("could not send confirmation email", err)
	}
	if err := s.db.
		Model(&models.Ticket{}).
		Where(&models.Ticket{ID: ticket.ID}).
		UpdateColumn("email_sent", true).
		Error; err != nil {
		return wrapDBError(err, "")
	}
	return nil
}

// CheckInTicket opens the QR payload and flips is_used exactly once.
func (s *Service) CheckInTicket(code string) (*models.Ticket, error) {
	ticketID, err := utils.OpenTicketQRPayload(code)
	if err != nil {
		return nil, types.NewValidationError("invalid ticket code")
	}
	var ticket models.Ticket
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where(&models.Ticket{ID: ticketID}).
			Preload("Event").
			First(&ticket).
			Error; err != nil {
			return wrapDBError(err, fmt.Sprintf("ticket [%d] does not exist", ticketID))
		}
		res := tx.
			Model(&models.Ticket{}).
			Where("id = ? AND is_used = false", ticketID).
			UpdateColumn("is_used", true)
		if res.Error != nil {
			return wrapDBError(res.Error, "")
		}
		if res.RowsAffected == 0 {
			return types.NewConflictError("ticket [%d] has already been used", ticketID)
		}
		ticket.IsUsed = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}
