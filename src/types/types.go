package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

type JSONB map[string]any
type JSONBArray []any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

func (a JSONBArray) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONBArray) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type Metadata map[string]any

func (a Metadata) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *Metadata) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type Role string

const (
	ROLE_CUSTOMER      Role = "customer"
	ROLE_EVENT_MANAGER Role = "eventManager"
	ROLE_CENTER        Role = "center"
	ROLE_CASHIER       Role = "cashier"
	ROLE_ADMIN         Role = "admin"
)

type EventType string

const (
	EVENT_GENERAL    EventType = "general"
	EVENT_CONFERENCE EventType = "conference"
	EVENT_SEATED     EventType = "seated"
	EVENT_PRIVATE    EventType = "private"
)

type RentalStatus string

const (
	RENTAL_PENDING   RentalStatus = "pending"
	RENTAL_CONFIRMED RentalStatus = "confirmed"
	RENTAL_CANCELED  RentalStatus = "canceled"
	RENTAL_COMPLETED RentalStatus = "completed"
)

type RentalPaymentStatus string

const (
	RENTAL_UNPAID   RentalPaymentStatus = "unpaid"
	RENTAL_PAID     RentalPaymentStatus = "paid"
	RENTAL_REFUNDED RentalPaymentStatus = "refunded"
)

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type CreateTicketTypeRequestBody struct {
	Name     string `json:"name" binding:"required"`
	Price    string `json:"price" binding:"required"`
	Quantity uint   `json:"quantity" binding:"required,gt=0"`
}

type CreateEventRequestBody struct {
	Title       string                        `json:"title" binding:"required"`
	Description string                        `json:"description,omitempty"`
	Location    string                        `json:"location" binding:"required"`
	Category    string                        `json:"category,omitempty"`
	Type        EventType                     `json:"type,omitempty"`
	StartsAt    string                        `json:"starts_at" binding:"required,bookabledate" time_format:"2006-01-02 15:04:05 -07:00"`
	EndsAt      string                        `json:"ends_at" binding:"required,gtdate=StartsAt" time_format:"2006-01-02 15:04:05 -07:00"`
	Featured    bool                          `json:"featured,omitempty"`
	SeatingMap  *JSONB                        `json:"seating_map,omitempty"`
	TicketTypes []CreateTicketTypeRequestBody `json:"ticket_types" binding:"omitempty,dive"`
}

type UpdateEventRequestBody struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Type        *EventType `json:"type,omitempty"`
	Featured    *bool      `json:"featured,omitempty"`
}

type EventQueryFilters struct {
	Category  string  `form:"category"`
	From      string  `form:"from"`
	To        string  `form:"to"`
	PriceMin  *string `form:"price_min"`
	PriceMax  *string `form:"price_max"`
	Search    string  `form:"search"`
	Sort      string  `form:"sort"`
	Featured  *bool   `form:"featured"`
	Organizer *uint   `form:"organizer"`
}

type AttendeeDetails struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone,omitempty"`
}

type PurchaseSelection struct {
	TicketTypeID uint              `json:"ticket_type_id" binding:"required"`
	Quantity     uint              `json:"quantity" binding:"required,gt=0"`
	Attendees    []AttendeeDetails `json:"attendees" binding:"required,min=1,dive"`
	Seat         *string           `json:"seat,omitempty"`
}

type PurchaseTicketsRequestBody struct {
	EventID          uint                `json:"event_id" binding:"required"`
	Selections       []PurchaseSelection `json:"selections" binding:"required,min=1,dive"`
	CustomerName     string              `json:"customer_name" binding:"required"`
	CustomerEmail    string              `json:"customer_email" binding:"required,email"`
	CustomerPhone    string              `json:"customer_phone,omitempty"`
	PaymentSessionID *string             `json:"payment_session_id,omitempty"`
}

type CreateVenueRequestBody struct {
	Name       string     `json:"name" binding:"required"`
	Location   string     `json:"location,omitempty"`
	HourlyRate string     `json:"hourly_rate" binding:"required"`
	DailyRate  string     `json:"daily_rate,omitempty"`
	Capacity   uint       `json:"capacity,omitempty"`
	Facilities JSONBArray `json:"facilities,omitempty"`
}

type UpdateVenueRequestBody struct {
	Name       *string     `json:"name,omitempty"`
	Location   *string     `json:"location,omitempty"`
	HourlyRate *string     `json:"hourly_rate,omitempty"`
	DailyRate  *string     `json:"daily_rate,omitempty"`
	Capacity   *uint       `json:"capacity,omitempty"`
	Facilities *JSONBArray `json:"facilities,omitempty"`
	IsActive   *bool       `json:"is_active,omitempty"`
}

type CreateRentalRequestBody struct {
	VenueID  uint   `json:"venue_id" binding:"required"`
	StartsAt string `json:"starts_at" binding:"required,bookabledate" time_format:"2006-01-02 15:04:05 -07:00"`
	EndsAt   string `json:"ends_at" binding:"required,gtdate=StartsAt" time_format:"2006-01-02 15:04:05 -07:00"`
	Notes    string `json:"notes,omitempty"`
}

type UpdateRentalStatusRequestBody struct {
	Status        *RentalStatus        `json:"status,omitempty"`
	PaymentStatus *RentalPaymentStatus `json:"payment_status,omitempty"`
}

type CreateCashierRequestBody struct {
	Email       string          `json:"email" binding:"required,email"`
	Name        string          `json:"name,omitempty"`
	Permissions map[string]bool `json:"permissions,omitempty"`
	VenueIDs    []uint          `json:"venue_ids,omitempty"`
}

type UpdateCashierPermissionsRequestBody struct {
	Permissions map[string]bool `json:"permissions" binding:"required"`
}

type UpdateCashierVenuesRequestBody struct {
	VenueIDs []uint `json:"venue_ids" binding:"required"`
}

type SalesReportQuery struct {
	VenueID *uint  `form:"venue_id"`
	From    string `form:"from"`
	To      string `form:"to"`
	Bucket  string `form:"bucket"`
}

type CreatePaymentSessionRequestBody struct {
	EventID    uint                `json:"event_id,omitempty"`
	RentalID   uint                `json:"rental_id,omitempty"`
	Selections []PurchaseSelection `json:"selections,omitempty"`
}

type SubscribeRequestBody struct {
	PlanID uint `json:"plan_id" binding:"required"`
}

type CheckInRequestBody struct {
	Code string `json:"code" binding:"required"`
}
