package store

import (
	"errors"
	"testing"

	"github.com/HeroHarith/Tickets-sub001/src/types"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSalesReportDegradesOnMissingVenue(t *testing.T) {
	d, mock := NewMockDB()
	s := newTestService(d, &fakeMailer{})

	venueID := uint(77)
	mock.ExpectQuery(`SELECT \* FROM "venues"`).
		WillReturnError(errors.New("connection reset"))

	report := s.VenueSalesReport(9, types.ROLE_CENTER, &types.SalesReportQuery{VenueID: &venueID})

	assert.NotNil(t, report)
	assert.True(t, report.TotalRevenue.IsZero())
	assert.Zero(t, report.TotalRentals)
	assert.Empty(t, report.Buckets)
	assert.NotEmpty(t, report.Message)
}

func TestSalesReportHidesForeignVenue(t *testing.T) {
	d, mock := NewMockDB()
	s := newTestService(d, &fakeMailer{})

	venueID := uint(3)
	mock.ExpectQuery(`SELECT \* FROM "venues"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id"}).AddRow(3, 1234))

	report := s.VenueSalesReport(9, types.ROLE_CENTER, &types.SalesReportQuery{VenueID: &venueID})

	assert.True(t, report.TotalRevenue.IsZero())
	assert.Equal(t, "venue not found", report.Message)
}

func TestSalesReportNoVenuesForAccount(t *testing.T) {
	d, mock := NewMockDB()
	s := newTestService(d, &fakeMailer{})

	mock.ExpectQuery(`SELECT "id" FROM "venues"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	report := s.VenueSalesReport(9, types.ROLE_CENTER, &types.SalesReportQuery{})

	assert.True(t, report.TotalRevenue.IsZero())
	assert.Equal(t, "no venues for this account", report.Message)
}

func TestSalesReportAggregates(t *testing.T) {
	d, mock := NewMockDB()
	s := newTestService(d, &fakeMailer{})

	venueID := uint(3)
	mock.ExpectQuery(`SELECT \* FROM "venues"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id"}).AddRow(3, 9))
	mock.ExpectQuery(`SELECT(.|\n)*FILTER(.|\n)*FROM "rentals"`).
		WillReturnRows(sqlmock.NewRows([]string{
			"total_revenue", "total_rentals", "completed", "canceled", "unpaid", "paid", "refunded",
		}).AddRow("450.00", 4, 2, 1, 1, 3, 0))
	mock.ExpectQuery(`date_trunc`).
		WillReturnRows(sqlmock.NewRows([]string{"period", "revenue", "count"}))

	report := s.VenueSalesReport(9, types.ROLE_CENTER, &types.SalesReportQuery{VenueID: &venueID, Bucket: "day"})

	assert.True(t, report.TotalRevenue.Equal(decimal.NewFromInt(450)))
	assert.Equal(t, int64(4), report.TotalRentals)
	assert.Equal(t, int64(3), report.PaidCount)
	assert.True(t, report.AverageBookingValue.Equal(decimal.NewFromInt(150)))
	assert.Empty(t, report.Message)
}
