package models

import (
	"github.com/HeroHarith/Tickets-sub001/src/types"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TicketType is a purchasable tier within an event. AvailableQuantity only
// ever moves down via the conditional decrement in the purchase workflow;
// 0 <= AvailableQuantity <= Quantity.
type TicketType struct {
	ID                uint            `gorm:"primarykey" json:"id"`
	EventID           uint            `gorm:"index" json:"event_id,omitempty"`
	Name              string          `json:"name,omitempty"`
	Price             decimal.Decimal `gorm:"type:numeric" json:"price"`
	Quantity          uint            `json:"quantity"`
	AvailableQuantity uint            `json:"available_quantity"`

	Event Event `json:"event,omitempty"`

	types.Timestamps
}

type Ticket struct {
	ID               uint            `gorm:"primarykey" json:"id"`
	TicketTypeID     uint            `gorm:"index" json:"ticket_type_id,omitempty"`
	EventID          uint            `gorm:"index" json:"event_id,omitempty"`
	UserID           uint            `gorm:"index" json:"user_id,omitempty"`
	OrderID          uuid.UUID       `gorm:"type:uuid;index" json:"order_id,omitempty"`
	Quantity         uint            `json:"quantity,omitempty"`
	TotalPrice       decimal.Decimal `gorm:"type:numeric" json:"total_price"`
	Seat             *string         `json:"seat,omitempty"`
	QRPayload        string          `json:"qr_payload,omitempty"`
	IsUsed           bool            `json:"is_used"`
	EmailSent        bool            `json:"email_sent"`
	PaymentSessionID *string         `json:"payment_session_id,omitempty"`

	TicketType TicketType `json:"ticket_type,omitempty"`
	Event      Event      `json:"event,omitempty"`
	User       User       `json:"user,omitempty"`
	Attendees  []Attendee `json:"attendees,omitempty"`

	types.Timestamps
}

type Attendee struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	TicketID uint   `gorm:"index" json:"ticket_id,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`

	types.Timestamps
}
