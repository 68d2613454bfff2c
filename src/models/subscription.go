package models

import (
	"time"

	"github.com/HeroHarith/Tickets-sub001/src/types"

	"github.com/shopspring/decimal"
)

type SubscriptionPlan struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	Name          string          `json:"name,omitempty"`
	Price         decimal.Decimal `gorm:"type:numeric" json:"price"`
	MaxEvents     uint            `json:"max_events,omitempty"`
	ServiceFeePct decimal.Decimal `gorm:"type:numeric" json:"service_fee_pct"`
	DurationDays  uint            `json:"duration_days,omitempty"`

	types.Timestamps
}

type Subscription struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	UserID    uint       `gorm:"index" json:"user_id,omitempty"`
	PlanID    uint       `gorm:"index" json:"plan_id,omitempty"`
	Status    string     `gorm:"default:'active'" json:"status,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	// cumulative usage counters
	EventsCreated uint            `json:"events_created"`
	TicketsSold   uint            `json:"tickets_sold"`
	FeesCollected decimal.Decimal `gorm:"type:numeric" json:"fees_collected"`

	Plan SubscriptionPlan `gorm:"foreignKey:plan_id" json:"plan,omitempty"`
	User User             `gorm:"foreignKey:user_id" json:"-"`

	types.Timestamps
}
