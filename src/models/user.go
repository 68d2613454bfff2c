package models

import (
	"github.com/HeroHarith/Tickets-sub001/src/types"
)

type User struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	Name          string     `json:"name,omitempty"`
	Email         string     `gorm:"uniqueIndex" json:"email,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	Role          types.Role `gorm:"default:'customer'" json:"role,omitempty"`
	EmailVerified bool       `json:"email_verified,omitempty"`

	types.Timestamps
}
