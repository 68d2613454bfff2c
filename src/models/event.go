package models

import (
	"time"

	"github.com/HeroHarith/Tickets-sub001/src/types"
)

type Event struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	Title       string          `json:"title,omitempty"`
	Slug        string          `gorm:"index" json:"slug,omitempty"`
	Description *string         `json:"description,omitempty"`
	Location    string          `json:"location,omitempty"`
	Category    string          `gorm:"index" json:"category,omitempty"`
	Type        types.EventType `gorm:"default:'general'" json:"type,omitempty"`
	StartsAt    time.Time       `json:"starts_at,omitempty"`
	EndsAt      time.Time       `json:"ends_at,omitempty"`
	OrganizerID uint            `gorm:"index" json:"organizer,omitempty"`
	Featured    bool            `json:"featured,omitempty"`
	SeatingMap  *types.JSONB    `gorm:"type:jsonb" json:"seating_map,omitempty"`

	Organizer   User         `gorm:"foreignKey:organizer_id" json:"-"`
	TicketTypes []TicketType `json:"ticket_types,omitempty"`
	Speakers    []Speaker    `json:"speakers,omitempty"`
	Workshops   []Workshop   `json:"workshops,omitempty"`
	AddOns      []AddOn      `json:"add_ons,omitempty"`

	types.Timestamps
}

type Speaker struct {
	ID      uint    `gorm:"primarykey" json:"id"`
	EventID uint    `gorm:"index" json:"event_id,omitempty"`
	Name    string  `json:"name,omitempty"`
	Bio     *string `json:"bio,omitempty"`
	Photo   *string `json:"photo,omitempty"`

	types.Timestamps
}

type Workshop struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	EventID     uint       `gorm:"index" json:"event_id,omitempty"`
	Title       string     `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	Capacity    uint       `json:"capacity,omitempty"`

	types.Timestamps
}

type AddOn struct {
	ID      uint   `gorm:"primarykey" json:"id"`
	EventID uint   `gorm:"index" json:"event_id,omitempty"`
	Name    string `json:"name,omitempty"`
	Price   string `gorm:"type:numeric" json:"price,omitempty"`

	types.Timestamps
}
