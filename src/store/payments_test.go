package store

import (
	"context"
	"testing"

	"github.com/HeroHarith/Tickets-sub001/src/types"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestHandleCheckoutCompletedMarksRentalPaid(t *testing.T) {
	d, mock := NewMockDB()
	s := newTestService(d, &fakeMailer{})

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "rentals" SET "payment_status"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	raw := []byte(`{"id":"cs_test_1","metadata":{"kind":"rental","rental_id":"12"}}`)
	assert.NoError(t, s.HandleCheckoutCompleted(raw))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleCheckoutCompletedIsIdempotent(t *testing.T) {
	d, mock := NewMockDB()
	s := newTestService(d, &fakeMailer{})

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "rentals" SET "payment_status"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	raw := []byte(`{"id":"cs_test_1","metadata":{"kind":"rental","rental_id":"12"}}`)
	assert.NoError(t, s.HandleCheckoutCompleted(raw))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleCheckoutCompletedRejectsBadPayload(t *testing.T) {
	d, _ := NewMockDB()
	s := newTestService(d, &fakeMailer{})

	err := s.HandleCheckoutCompleted([]byte(`{"metadata":{"kind":"rental"}}`))
	var de *types.DomainError
	assert.ErrorAs(t, err, &de)
	assert.Equal(t, types.ErrValidation, de.Kind)
}

func TestHandleCheckoutCompletedIgnoresTicketSessions(t *testing.T) {
	d, _ := NewMockDB()
	s := newTestService(d, &fakeMailer{})

	raw := []byte(`{"id":"cs_test_2","metadata":{"kind":"tickets"}}`)
	assert.NoError(t, s.HandleCheckoutCompleted(raw))
}

func TestCreateRentalPaymentSessionChecksOwnership(t *testing.T) {
	d, mock := NewMockDB()
	s := newTestService(d, &fakeMailer{})

	mock.ExpectQuery(`SELECT \* FROM "rentals"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "venue_id", "user_id", "total_price", "payment_status"}).
			AddRow(1, 3, 1234, "60.00", "unpaid"))
	mock.ExpectQuery(`SELECT \* FROM "venues"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "Hall A"))

	_, err := s.CreateRentalPaymentSession(context.Background(), 5, 1)
	var de *types.DomainError
	assert.ErrorAs(t, err, &de)
	assert.Equal(t, types.ErrForbidden, de.Kind)
}

func TestCreateRentalPaymentSessionRejectsPaidRental(t *testing.T) {
	d, mock := NewMockDB()
	s := newTestService(d, &fakeMailer{})

	mock.ExpectQuery(`SELECT \* FROM "rentals"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "venue_id", "user_id", "total_price", "payment_status"}).
			AddRow(1, 3, 5, "60.00", "paid"))
	mock.ExpectQuery(`SELECT \* FROM "venues"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "Hall A"))

	_, err := s.CreateRentalPaymentSession(context.Background(), 5, 1)
	var de *types.DomainError
	assert.ErrorAs(t, err, &de)
	assert.Equal(t, types.ErrConflict, de.Kind)
}
