package store

import (
	"fmt"

	"github.com/HeroHarith/Tickets-sub001/src/models"
	"github.com/HeroHarith/Tickets-sub001/src/types"

	"gorm.io/gorm"
)

// CreateCashier links a (possibly new) user account to the owning center
// with a permission set and a venue allowlist. One cashier row per user per
// owner.
func (s *Service) CreateCashier(ownerID uint, body *types.CreateCashierRequestBody) (*models.Cashier, error) {
	perms := body.Permissions
	if len(perms) == 0 {
		perms = models.DefaultCashierPermissions()
	}
	var cashier models.Cashier
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		err := tx.Where(&models.User{Email: body.Email}).First(&user).Error
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				return wrapDBError(err, "")
			}
			user = models.User{
				Email: body.Email,
				Name:  body.Name,
				Role:  types.ROLE_CASHIER,
			}
			if err := tx.Create(&user).Error; err != nil {
				return wrapDBError(err, "")
			}
		}

		var count int64
		if err := tx.
			Model(&models.Cashier{}).
			Where(&models.Cashier{UserID: user.ID, OwnerID: ownerID}).
			Count(&count).
			Error; err != nil {
			return wrapDBError(err, "")
		}
		if count > 0 {
			return types.NewConflictError("a cashier already exists for [%s]", body.Email)
		}

		venueIDs, err := s.checkOwnedVenues(tx, ownerID, body.VenueIDs)
		if err != nil {
			return err
		}

		cashier = models.Cashier{
			UserID:      user.ID,
			OwnerID:     ownerID,
			Permissions: models.PermissionsToJSONB(perms),
			VenueIDs:    venueIDs,
		}
		if err := tx.Create(&cashier).Error; err != nil {
			return wrapDBError(err, "")
		}
		cashier.User = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &cashier, nil
}

// checkOwnedVenues verifies every id belongs to the owner and returns the
// jsonb representation. A single foreign id fails the whole list.
func (s *Service) checkOwnedVenues(tx *gorm.DB, ownerID uint, ids []uint) (types.JSONBArray, error) {
	out := make(types.JSONBArray, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var owned int64
	if err := tx.
		Model(&models.Venue{}).
		Where("owner_id = ? AND id IN (?)", ownerID, ids).
		Count(&owned).
		Error; err != nil {
		return nil, wrapDBError(err, "")
	}
	if owned != int64(len(ids)) {
		return nil, types.NewForbiddenError("one or more venues do not belong to the caller")
	}
	for _, id := range ids {
		out = append(out, float64(id))
	}
	return out, nil
}

func (s *Service) ListCashiers(ownerID uint, role types.Role) ([]models.Cashier, error) {
	var cashiers []models.Cashier
	tx := s.db.Model(&models.Cashier{}).Preload("User").Order("created_at desc")
	if role != types.ROLE_ADMIN {
		tx = tx.Where(&models.Cashier{OwnerID: ownerID})
	}
	if err := tx.Find(&cashiers).Error; err != nil {
		return nil, wrapDBError(err, "")
	}
	// Old rows may still carry the numeric permission array.
	for i := range cashiers {
		normalized := models.NormalizePermissions(cashiers[i].Permissions)
		cashiers[i].Permissions = models.PermissionsToJSONB(normalized)
	}
	return cashiers, nil
}

func (s *Service) getOwnedCashier(tx *gorm.DB, ownerID uint, role types.Role, id uint) (*models.Cashier, error) {
	var cashier models.Cashier
	if err := tx.Where(&models.Cashier{ID: id}).First(&cashier).Error; err != nil {
		return nil, wrapDBError(err, fmt.Sprintf("cashier [%d] does not exist", id))
	}
	if role != types.ROLE_ADMIN && cashier.OwnerID != ownerID {
		return nil, types.NewForbiddenError("cashier [%d] does not belong to the caller", id)
	}
	return &cashier, nil
}

// UpdateCashierPermissions replaces the permission map wholesale.
func (s *Service) UpdateCashierPermissions(ownerID uint, role types.Role, id uint, perms map[string]bool) (*models.Cashier, error) {
	var cashier *models.Cashier
	err := s.db.Transaction(func(tx *gorm.DB) error {
		c, err := s.getOwnedCashier(tx, ownerID, role, id)
		if err != nil {
			return err
		}
		cashier = c
		stored := models.PermissionsToJSONB(perms)
		if err := tx.
			Model(&models.Cashier{}).
			Where(&models.Cashier{ID: id}).
			UpdateColumn("permissions", stored).
			Error; err != nil {
			return wrapDBError(err, "")
		}
		cashier.Permissions = stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cashier, nil
}

// UpdateCashierVenues replaces the venue allowlist wholesale; every id must
// be owned by the caller or the whole update is rejected.
func (s *Service) UpdateCashierVenues(ownerID uint, role types.Role, id uint, venueIDs []uint) (*models.Cashier, error) {
	var cashier *models.Cashier
	err := s.db.Transaction(func(tx *gorm.DB) error {
		c, err := s.getOwnedCashier(tx, ownerID, role, id)
		if err != nil {
			return err
		}
		cashier = c
		ids, err := s.checkOwnedVenues(tx, c.OwnerID, venueIDs)
		if err != nil {
			return err
		}
		if err := tx.
			Model(&models.Cashier{}).
			Where(&models.Cashier{ID: id}).
			UpdateColumn("venue_ids", ids).
			Error; err != nil {
			return wrapDBError(err, "")
		}
		cashier.VenueIDs = ids
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cashier, nil
}

// DeleteCashier removes the link; the underlying user account survives.
func (s *Service) DeleteCashier(ownerID uint, role types.Role, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		cashier, err := s.getOwnedCashier(tx, ownerID, role, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(cashier).Error; err != nil {
			return wrapDBError(err, "")
		}
		return nil
	})
}
