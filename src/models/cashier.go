package models

import (
	"github.com/HeroHarith/Tickets-sub001/src/config"
	"github.com/HeroHarith/Tickets-sub001/src/types"
)

// Cashier links a user account to an owning center. Permissions is stored
// as jsonb and has two historical shapes: the named-boolean map written by
// current code, and a legacy numeric array of 1-based indices into
// config.PermissionKeys. NormalizePermissions folds both into the map.
type Cashier struct {
	ID          uint             `gorm:"primarykey" json:"id"`
	UserID      uint             `gorm:"index" json:"user_id,omitempty"`
	OwnerID     uint             `gorm:"index" json:"owner_id,omitempty"`
	Permissions types.JSONB      `gorm:"type:jsonb" json:"permissions,omitempty"`
	VenueIDs    types.JSONBArray `gorm:"type:jsonb" json:"venue_ids,omitempty"`

	User  User  `gorm:"foreignKey:user_id" json:"user,omitempty"`
	Owner User  `gorm:"foreignKey:owner_id" json:"-"`

	types.Timestamps
}

func DefaultCashierPermissions() map[string]bool {
	perms := make(map[string]bool, len(config.PermissionKeys))
	for _, key := range config.PermissionKeys {
		perms[key] = false
	}
	perms["sellTickets"] = true
	perms["scanTickets"] = true
	return perms
}

// NormalizePermissions returns the canonical named-boolean map regardless
// of which representation the row carries.
func NormalizePermissions(raw types.JSONB) map[string]bool {
	perms := make(map[string]bool, len(config.PermissionKeys))
	for _, key := range config.PermissionKeys {
		perms[key] = false
	}
	if raw == nil {
		return perms
	}
	if legacy, ok := raw["legacy"].([]any); ok {
		for _, v := range legacy {
			idx, ok := v.(float64)
			if !ok {
				continue
			}
			i := int(idx) - 1
			if i >= 0 && i < len(config.PermissionKeys) {
				perms[config.PermissionKeys[i]] = true
			}
		}
		return perms
	}
	for key, v := range raw {
		b, ok := v.(bool)
		if !ok {
			continue
		}
		if _, known := perms[key]; known {
			perms[key] = b
		}
	}
	return perms
}

// PermissionsToJSONB converts a named map into the stored representation,
// dropping unknown keys.
func PermissionsToJSONB(perms map[string]bool) types.JSONB {
	out := types.JSONB{}
	known := make(map[string]struct{}, len(config.PermissionKeys))
	for _, key := range config.PermissionKeys {
		known[key] = struct{}{}
	}
	for key, v := range perms {
		if _, ok := known[key]; ok {
			out[key] = v
		}
	}
	return out
}

func (c *Cashier) VenueIDList() []uint {
	ids := make([]uint, 0, len(c.VenueIDs))
	for _, v := range c.VenueIDs {
		switch id := v.(type) {
		case float64:
			ids = append(ids, uint(id))
		case uint:
			ids = append(ids, id)
		case int:
			ids = append(ids, uint(id))
		}
	}
	return ids
}
