package store

import (
	"fmt"
	"log"
	"time"

	"github.com/HeroHarith/Tickets-sub001/src/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func (s *Service) ListPlans() ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	if err := s.db.Order("price asc").Find(&plans).Error; err != nil {
		return nil, wrapDBError(err, "")
	}
	return plans, nil
}

// Subscribe puts the caller on a plan; an existing active subscription is
// replaced, counters start from zero.
func (s *Service) Subscribe(userID uint, planID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var plan models.SubscriptionPlan
		if err := tx.Where(&models.SubscriptionPlan{ID: planID}).First(&plan).Error; err != nil {
			return wrapDBError(err, fmt.Sprintf("plan [%d] does not exist", planID))
		}
		if err := tx.
			Model(&models.Subscription{}).
			Where(&models.Subscription{UserID: userID, Status: "active"}).
			UpdateColumn("status", "replaced").
			Error; err != nil {
			return wrapDBError(err, "")
		}
		expiresAt := time.Now().AddDate(0, 0, int(plan.DurationDays))
		sub = models.Subscription{
			UserID:        userID,
			PlanID:        plan.ID,
			Status:        "active",
			ExpiresAt:     &expiresAt,
			FeesCollected: decimal.Zero,
		}
		if err := tx.Create(&sub).Error; err != nil {
			return wrapDBError(err, "")
		}
		sub.Plan = plan
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *Service) GetSubscription(userID uint) (*models.Subscription, error) {
	var sub models.Subscription
	if err := s.db.
		Where(&models.Subscription{UserID: userID, Status: "active"}).
		Preload("Plan").
		First(&sub).
		Error; err != nil {
		return nil, wrapDBError(err, "no active subscription")
	}
	return &sub, nil
}

// recordTicketSales bumps the organizer's usage counters after a completed
// checkout. Counter drift is tolerable, a failed update never touches the
// purchase itself.
func (s *Service) recordTicketSales(organizerID uint, tickets []models.Ticket) {
	var sub models.Subscription
	if err := s.db.
		Where(&models.Subscription{UserID: organizerID, Status: "active"}).
		Preload("Plan").
		First(&sub).
		Error; err != nil {
		return
	}
	var units uint
	gross := decimal.Zero
	for _, t := range tickets {
		units += t.Quantity
		gross = gross.Add(t.TotalPrice)
	}
	fee := gross.Mul(sub.Plan.ServiceFeePct).DivRound(decimal.NewFromInt(100), 2)
	if err := s.db.
		Model(&models.Subscription{}).
		Where(&models.Subscription{ID: sub.ID}).
		Updates(map[string]any{
			"tickets_sold":   gorm.Expr("tickets_sold + ?", units),
			"fees_collected": gorm.Expr("fees_collected + ?", fee),
		}).
		Error; err != nil {
		log.Printf("Error updating usage counters for Subscription [%d]: %s\n", sub.ID, err.Error())
	}
}
