package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/HeroHarith/Tickets-sub001/src/config"
	"github.com/HeroHarith/Tickets-sub001/src/models"
	"github.com/HeroHarith/Tickets-sub001/src/types"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateEvent persists the event together with its initial ticket types,
// every ticket type starting with available_quantity == quantity. An active
// subscription plan with an event limit is enforced for event managers.
func (s *Service) CreateEvent(userID uint, body *types.CreateEventRequestBody) (*models.Event, error) {
	startsAt, err := time.Parse(config.TIME_PARSE_FORMAT, body.StartsAt)
	if err != nil {
		return nil, types.NewValidationError("could not parse starts_at: %s", err.Error())
	}
	endsAt, err := time.Parse(config.TIME_PARSE_FORMAT, body.EndsAt)
	if err != nil {
		return nil, types.NewValidationError("could not parse ends_at: %s", err.Error())
	}

	eventType := body.Type
	if eventType == "" {
		eventType = types.EVENT_GENERAL
	}
	event := models.Event{
		Title:       body.Title,
		Slug:        slug.Make(body.Title),
		Description: &body.Description,
		Location:    body.Location,
		Category:    body.Category,
		Type:        eventType,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		OrganizerID: userID,
		Featured:    body.Featured,
		SeatingMap:  body.SeatingMap,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var sub models.Subscription
		if err := tx.
			Where(&models.Subscription{UserID: userID, Status: "active"}).
			Preload("Plan").
			First(&sub).
			Error; err == nil {
			if sub.Plan.MaxEvents > 0 && sub.EventsCreated >= sub.Plan.MaxEvents {
				return types.NewConflictError("event limit [%d] for the current plan has been reached", sub.Plan.MaxEvents)
			}
			if err := tx.
				Model(&models.Subscription{}).
				Where(&models.Subscription{ID: sub.ID}).
				UpdateColumn("events_created", gorm.Expr("events_created + 1")).
				Error; err != nil {
				return wrapDBError(err, "")
			}
		}

		if err := tx.Create(&event).Error; err != nil {
			return wrapDBError(err, "")
		}
		for _, t := range body.TicketTypes {
			price, err := decimal.NewFromString(t.Price)
			if err != nil {
				return types.NewValidationError("invalid price [%s] for ticket type [%s]", t.Price, t.Name)
			}
			tt := models.TicketType{
				EventID:           event.ID,
				Name:              t.Name,
				Price:             price,
				Quantity:          t.Quantity,
				AvailableQuantity: t.Quantity,
			}
			if err := tx.Create(&tt).Error; err != nil {
				return wrapDBError(err, "")
			}
			event.TicketTypes = append(event.TicketTypes, tt)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// ListEvents applies the public catalogue filters.
func (s *Service) ListEvents(filters *types.EventQueryFilters) ([]models.Event, error) {
	var events []models.Event
	tx := s.db.Model(&models.Event{})
	if filters.Category != "" {
		tx = tx.Where("category = ?", filters.Category)
	}
	if filters.From != "" {
		if from, err := time.Parse(config.TIME_PARSE_FORMAT, filters.From); err == nil {
			tx = tx.Where("starts_at >= ?", from)
		}
	}
	if filters.To != "" {
		if to, err := time.Parse(config.TIME_PARSE_FORMAT, filters.To); err == nil {
			tx = tx.Where("starts_at <= ?", to)
		}
	}
	if filters.Featured != nil {
		tx = tx.Where("featured = ?", *filters.Featured)
	}
	if filters.Organizer != nil {
		tx = tx.Where("organizer_id = ?", *filters.Organizer)
	}
	if filters.Search != "" {
		q := "%" + filters.Search + "%"
		tx = tx.Where("title ILIKE ? OR description ILIKE ?", q, q)
	}
	if filters.PriceMin != nil || filters.PriceMax != nil {
		sub := "SELECT 1 FROM ticket_types WHERE ticket_types.event_id = events.id"
		args := []any{}
		if filters.PriceMin != nil {
			sub += " AND price >= ?"
			args = append(args, *filters.PriceMin)
		}
		if filters.PriceMax != nil {
			sub += " AND price <= ?"
			args = append(args, *filters.PriceMax)
		}
		tx = tx.Where("EXISTS ("+sub+")", args...)
	}
	switch filters.Sort {
	case "date":
		tx = tx.Order("starts_at asc")
	case "newest":
		tx = tx.Order("created_at desc")
	default:
		tx = tx.Order("starts_at asc")
	}
	if err := tx.Limit(50).Find(&events).Error; err != nil {
		return nil, wrapDBError(err, "")
	}
	return events, nil
}

// GetEvent returns the event with its ticket types, through the TTL cache.
func (s *Service) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	cacheKey := fmt.Sprintf("event:%d", id)
	if s.cache != nil {
		if val, err := s.cache.Get(ctx, cacheKey).Result(); err == nil && val != "" {
			var cached models.Event
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return &cached, nil
			}
		}
	}
	var event models.Event
	if err := s.db.
		Where(&models.Event{ID: id}).
		Preload("TicketTypes").
		Preload("Speakers").
		Preload("Workshops").
		Preload("AddOns").
		First(&event).
		Error; err != nil {
		return nil, wrapDBError(err, fmt.Sprintf("event [%d] does not exist", id))
	}
	if s.cache != nil {
		if b, err := json.Marshal(&event); err == nil {
			if err := s.cache.SetEx(ctx, cacheKey, string(b), 2*time.Minute).Err(); err != nil {
				log.Printf("[redis] Error caching event [%d]: %s\n", id, err.Error())
			}
		}
	}
	return &event, nil
}

// UpdateEvent applies a partial update; only the organizer or an admin may
// mutate an event.
func (s *Service) UpdateEvent(ctx context.Context, callerID uint, role types.Role, id uint, body *types.UpdateEventRequestBody) (*models.Event, error) {
	var event models.Event
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&models.Event{ID: id}).First(&event).Error; err != nil {
			return wrapDBError(err, fmt.Sprintf("event [%d] does not exist", id))
		}
		if role != types.ROLE_ADMIN && event.OrganizerID != callerID {
			return types.NewForbiddenError("only the organizer may modify this event")
		}
		updates := map[string]any{}
		if body.Title != nil {
			updates["title"] = *body.Title
			updates["slug"] = slug.Make(*body.Title)
		}
		if body.Description != nil {
			updates["description"] = *body.Description
		}
		if body.Location != nil {
			updates["location"] = *body.Location
		}
		if body.Category != nil {
			updates["category"] = *body.Category
		}
		if body.Type != nil {
			updates["type"] = *body.Type
		}
		if body.Featured != nil {
			updates["featured"] = *body.Featured
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.
			Model(&models.Event{}).
			Where(&models.Event{ID: id}).
			Updates(updates).
			Error; err != nil {
			return wrapDBError(err, "")
		}
		return tx.Where(&models.Event{ID: id}).First(&event).Error
	})
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Del(ctx, fmt.Sprintf("event:%d", id))
	}
	return &event, nil
}
