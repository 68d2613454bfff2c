package models

import (
	"github.com/HeroHarith/Tickets-sub001/src/types"

	"github.com/shopspring/decimal"
)

type Venue struct {
	ID         uint             `gorm:"primarykey" json:"id"`
	OwnerID    uint             `gorm:"index" json:"owner_id,omitempty"`
	Name       string           `json:"name,omitempty"`
	Location   string           `json:"location,omitempty"`
	HourlyRate decimal.Decimal  `gorm:"type:numeric" json:"hourly_rate"`
	DailyRate  *decimal.Decimal `gorm:"type:numeric" json:"daily_rate,omitempty"`
	Capacity   uint             `json:"capacity,omitempty"`
	Facilities types.JSONBArray `gorm:"type:jsonb" json:"facilities,omitempty"`
	IsActive   bool             `gorm:"default:true" json:"is_active"`

	Owner   User     `gorm:"foreignKey:owner_id" json:"-"`
	Rentals []Rental `json:"rentals,omitempty"`

	types.Timestamps
}
