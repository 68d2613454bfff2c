package store

import (
	"log"
	"time"

	"github.com/HeroHarith/Tickets-sub001/src/config"
	"github.com/HeroHarith/Tickets-sub001/src/models"
	"github.com/HeroHarith/Tickets-sub001/src/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReportBucket struct {
	Period  string          `json:"period"`
	Revenue decimal.Decimal `json:"revenue"`
	Count   int64           `json:"count"`
}

type SalesReport struct {
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	TotalRentals        int64           `json:"total_rentals"`
	CompletedCount      int64           `json:"completed_count"`
	CanceledCount       int64           `json:"canceled_count"`
	PendingPayments     int64           `json:"pending_payments"`
	PaidCount           int64           `json:"paid_count"`
	RefundedCount       int64           `json:"refunded_count"`
	AverageBookingValue decimal.Decimal `json:"average_booking_value"`
	Buckets             []ReportBucket  `json:"breakdown"`
	Message             string          `json:"message,omitempty"`
}

func zeroReport(message string) *SalesReport {
	return &SalesReport{
		TotalRevenue:        decimal.Zero,
		AverageBookingValue: decimal.Zero,
		Buckets:             []ReportBucket{},
		Message:             message,
	}
}

// VenueSalesReport aggregates rentals for one venue or for every venue the
// caller owns (all venues for admins). The dashboard never breaks: any
// resolution or query failure degrades to a zero-valued report carrying an
// explanatory message instead of an error.
func (s *Service) VenueSalesReport(callerID uint, role types.Role, q *types.SalesReportQuery) *SalesReport {
	var venueIDs []uint
	if q.VenueID != nil {
		var venue models.Venue
		if err := s.db.Where(&models.Venue{ID: *q.VenueID}).First(&venue).Error; err != nil {
			log.Printf("Sales report: could not resolve venue [%d]: %s\n", *q.VenueID, err.Error())
			return zeroReport("venue not found")
		}
		if role != types.ROLE_ADMIN && venue.OwnerID != callerID {
			return zeroReport("venue not found")
		}
		venueIDs = []uint{venue.ID}
	} else if role != types.ROLE_ADMIN {
		if err := s.db.
			Model(&models.Venue{}).
			Where(&models.Venue{OwnerID: callerID}).
			Pluck("id", &venueIDs).
			Error; err != nil {
			log.Printf("Sales report: could not list venues for owner [%d]: %s\n", callerID, err.Error())
			return zeroReport("could not resolve venues")
		}
		if len(venueIDs) == 0 {
			return zeroReport("no venues for this account")
		}
	}

	base := func() *gorm.DB {
		tx := s.db.Model(&models.Rental{})
		if len(venueIDs) > 0 {
			tx = tx.Where("venue_id IN (?)", venueIDs)
		}
		if q.From != "" {
			if from, err := time.Parse(config.TIME_PARSE_FORMAT, q.From); err == nil {
				tx = tx.Where("rentals.created_at >= ?", from)
			}
		}
		if q.To != "" {
			if to, err := time.Parse(config.TIME_PARSE_FORMAT, q.To); err == nil {
				tx = tx.Where("rentals.created_at <= ?", to)
			}
		}
		return tx
	}

	var agg struct {
		TotalRevenue decimal.Decimal
		TotalRentals int64
		Completed    int64
		Canceled     int64
		Unpaid       int64
		Paid         int64
		Refunded     int64
	}
	if err := base().
		Select(`
			COALESCE(SUM(total_price) FILTER (WHERE payment_status = 'paid'), 0) AS total_revenue,
			COUNT(*) AS total_rentals,
			COUNT(*) FILTER (WHERE status = 'completed') AS completed,
			COUNT(*) FILTER (WHERE status = 'canceled') AS canceled,
			COUNT(*) FILTER (WHERE payment_status = 'unpaid') AS unpaid,
			COUNT(*) FILTER (WHERE payment_status = 'paid') AS paid,
			COUNT(*) FILTER (WHERE payment_status = 'refunded') AS refunded
		`).
		Scan(&agg).
		Error; err != nil {
		log.Printf("Sales report: aggregation failed: %s\n", err.Error())
		return zeroReport("could not compute report")
	}

	report := &SalesReport{
		TotalRevenue:        agg.TotalRevenue,
		TotalRentals:        agg.TotalRentals,
		CompletedCount:      agg.Completed,
		CanceledCount:       agg.Canceled,
		PendingPayments:     agg.Unpaid,
		PaidCount:           agg.Paid,
		RefundedCount:       agg.Refunded,
		AverageBookingValue: decimal.Zero,
		Buckets:             []ReportBucket{},
	}
	if agg.Paid > 0 {
		report.AverageBookingValue = agg.TotalRevenue.DivRound(decimal.NewFromInt(agg.Paid), 2)
	}

	bucket := q.Bucket
	if bucket != "day" && bucket != "week" && bucket != "month" {
		bucket = "day"
	}
	rows := []struct {
		Period  time.Time
		Revenue decimal.Decimal
		Count   int64
	}{}
	if err := base().
		Select(
			"date_trunc(?, rentals.created_at) AS period, "+
				"COALESCE(SUM(total_price) FILTER (WHERE payment_status = 'paid'), 0) AS revenue, "+
				"COUNT(*) AS count",
			bucket,
		).
		Group("period").
		Order("period asc").
		Scan(&rows).
		Error; err != nil {
		log.Printf("Sales report: bucket query failed: %s\n", err.Error())
		return report
	}
	for _, row := range rows {
		report.Buckets = append(report.Buckets, ReportBucket{
			Period:  row.Period.Format("2006-01-02"),
			Revenue: row.Revenue,
			Count:   row.Count,
		})
	}
	return report
}
