package store

import (
	"fmt"

	"github.com/HeroHarith/Tickets-sub001/src/models"
	"github.com/HeroHarith/Tickets-sub001/src/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func (s *Service) CreateVenue(ownerID uint, body *types.CreateVenueRequestBody) (*models.Venue, error) {
	hourly, err := decimal.NewFromString(body.HourlyRate)
	if err != nil {
		return nil, types.NewValidationError("invalid hourly_rate [%s]", body.HourlyRate)
	}
	venue := models.Venue{
		OwnerID:    ownerID,
		Name:       body.Name,
		Location:   body.Location,
		HourlyRate: hourly,
		Capacity:   body.Capacity,
		Facilities: body.Facilities,
		IsActive:   true,
	}
	if body.DailyRate != "" {
		daily, err := decimal.NewFromString(body.DailyRate)
		if err != nil {
			return nil, types.NewValidationError("invalid daily_rate [%s]", body.DailyRate)
		}
		venue.DailyRate = &daily
	}
	if err := s.db.Create(&venue).Error; err != nil {
		return nil, wrapDBError(err, "")
	}
	return &venue, nil
}

// ListVenues returns the caller's venues, or every venue for admins.
func (s *Service) ListVenues(callerID uint, role types.Role) ([]models.Venue, error) {
	var venues []models.Venue
	tx := s.db.Model(&models.Venue{}).Order("created_at desc")
	if role != types.ROLE_ADMIN {
		tx = tx.Where(&models.Venue{OwnerID: callerID})
	}
	if err := tx.Find(&venues).Error; err != nil {
		return nil, wrapDBError(err, "")
	}
	return venues, nil
}

func (s *Service) getOwnedVenue(tx *gorm.DB, callerID uint, role types.Role, id uint) (*models.Venue, error) {
	var venue models.Venue
	if err := tx.Where(&models.Venue{ID: id}).First(&venue).Error; err != nil {
		return nil, wrapDBError(err, fmt.Sprintf("venue [%d] does not exist", id))
	}
	if role != types.ROLE_ADMIN && venue.OwnerID != callerID {
		return nil, types.NewForbiddenError("venue [%d] does not belong to the caller", id)
	}
	return &venue, nil
}

func (s *Service) GetVenue(callerID uint, role types.Role, id uint) (*models.Venue, error) {
	return s.getOwnedVenue(s.db, callerID, role, id)
}

func (s *Service) UpdateVenue(callerID uint, role types.Role, id uint, body *types.UpdateVenueRequestBody) (*models.Venue, error) {
	var venue *models.Venue
	err := s.db.Transaction(func(tx *gorm.DB) error {
		v, err := s.getOwnedVenue(tx, callerID, role, id)
		if err != nil {
			return err
		}
		venue = v
		updates := map[string]any{}
		if body.Name != nil {
			updates["name"] = *body.Name
		}
		if body.Location != nil {
			updates["location"] = *body.Location
		}
		if body.HourlyRate != nil {
			rate, err := decimal.NewFromString(*body.HourlyRate)
			if err != nil {
				return types.NewValidationError("invalid hourly_rate [%s]", *body.HourlyRate)
			}
			updates["hourly_rate"] = rate
		}
		if body.DailyRate != nil {
			rate, err := decimal.NewFromString(*body.DailyRate)
			if err != nil {
				return types.NewValidationError("invalid daily_rate [%s]", *body.DailyRate)
			}
			updates["daily_rate"] = rate
		}
		if body.Capacity != nil {
			updates["capacity"] = *body.Capacity
		}
		if body.Facilities != nil {
			updates["facilities"] = *body.Facilities
		}
		if body.IsActive != nil {
			updates["is_active"] = *body.IsActive
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.
			Model(&models.Venue{}).
			Where(&models.Venue{ID: id}).
			Updates(updates).
			Error; err != nil {
			return wrapDBError(err, "")
		}
		return tx.Where(&models.Venue{ID: id}).First(venue).Error
	})
	if err != nil {
		return nil, err
	}
	return venue, nil
}

// DeleteVenue soft-deletes; history stays reachable for reporting.
func (s *Service) DeleteVenue(callerID uint, role types.Role, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		venue, err := s.getOwnedVenue(tx, callerID, role, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(venue).Error; err != nil {
			return wrapDBError(err, "")
		}
		return nil
	})
}
