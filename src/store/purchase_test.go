package store

import (
	"context"
	"testing"

	"github.com/HeroHarith/Tickets-sub001/src/types"
	"github.com/HeroHarith/Tickets-sub001/src/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func purchaseBody(qty uint) *types.PurchaseTicketsRequestBody {
	attendees := make([]types.AttendeeDetails, 0, qty)
	for i := uint(0); i < qty; i++ {
		attendees = append(attendees, types.AttendeeDetails{
			Name:  "Guest",
			Email: "guest@example.com",
		})
	}
	return &types.PurchaseTicketsRequestBody{
		EventID: 1,
		Selections: []types.PurchaseSelection{
			{TicketTypeID: 7, Quantity: qty, Attendees: attendees},
		},
		CustomerName:  "Jess Smith",
		CustomerEmail: "jess@example.com",
	}
}

func TestPurchaseRejectsAttendeeMismatch(t *testing.T) {
	d, _ := NewMockDB()
	s := newTestService(d, &fakeMailer{})

	body := purchaseBody(2)
	body.Selections[0].Attendees = body.Selections[0].Attendees[:1]

	_, err := s.PurchaseTickets(context.Background(), 1, body)
	assert.Error(t, err)
	var de *types.DomainError
	assert.ErrorAs(t, err, &de)
	assert.Equal(t, types.ErrValidation, de.Kind)
}

func TestPurchaseRejectsZeroQuantity(t *testing.T) {
	d, _ := NewMockDB()
	s := newTestService(d, &fakeMailer{})

	body := purchaseBody(1)
	body.Selections[0].Quantity = 0

	_, err := s.PurchaseTickets(context.Background(), 1, body)
	var de *types.DomainError
	assert.ErrorAs(t, err, &de)
	assert.Equal(t, types.ErrValidation, de.Kind)
}

func TestPurchaseRejectsUnpaidSession(t *testing.T) {
	d, _ := NewMockDB()
	s := NewService(d, nil, &fakeMailer{}, &fakeGateway{paid: false}, &fakeQR{})

	body := purchaseBody(1)
	sessionID := "cs_test_123"
	body.PaymentSessionID = &sessionID

	_, err := s.PurchaseTickets(context.Background(), 1, body)
	var de *types.DomainError
	assert.ErrorAs(t, err, &de)
	assert.Equal(t, types.ErrValidation, de.Kind)
}

func TestPurchaseSoldOutRollsBack(t *testing.T) {
	d, mock := NewMockDB()
	s := newTestService(d, &fakeMailer{})

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "organizer_id"}).
			AddRow(1, "Expo", 9))
	mock.ExpectQuery(`SELECT \* FROM "ticket_types"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "name", "price", "quantity", "available_quantity"}).
			AddRow(7, 1, "VIP", "150.00", 10, 1))
	// Only one unit left, the two requested cannot be taken.
	mock.ExpectExec(`UPDATE "ticket_types" SET "available_quantity"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := s.PurchaseTickets(context.Background(), 1, purchaseBody(2))
	var de *types.DomainError
	assert.ErrorAs(t, err, &de)
	assert.Equal(t, types.ErrConflict, de.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseMissingTicketType(t *testing.T) {
	d, mock := NewMockDB()
	s := newTestService(d, &fakeMailer{})

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "organizer_id"}).
			AddRow(1, "Expo", 9))
	mock.ExpectQuery(`SELECT \* FROM "ticket_types"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := s.PurchaseTickets(context.Background(), 1, purchaseBody(1))
	var de *types.DomainError
	assert.ErrorAs(t, err, &de)
	assert.Equal(t, types.ErrNotFound, de.Kind)
}

func expectHappyCheckout(mock sqlmock.Sqlmock, qty int) {
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "organizer_id"}).
			AddRow(1, "Expo", 9))
	mock.ExpectQuery(`SELECT \* FROM "ticket_types"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "name", "price", "quantity", "available_quantity"}).
			AddRow(7, 1, "VIP", "150.00", 10, 10))
	mock.ExpectExec(`UPDATE "ticket_types" SET "available_quantity"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectExec(`UPDATE "tickets" SET "qr_payload"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	for i := 0; i < qty; i++ {
		mock.ExpectQuery(`INSERT INTO "attendees"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(i + 1))
	}
	mock.ExpectCommit()
	// organizer without an active subscription, usage counters untouched
	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
}

func TestPurchaseIssuesTicketsAndMails(t *testing.T) {
	d, mock := NewMockDB()
	mailer := &fakeMailer{}
	s := newTestService(d, mailer)

	expectHappyCheckout(mock, 2)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tickets" SET "email_sent"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tickets, err := s.PurchaseTickets(context.Background(), 1, purchaseBody(2))
	assert.NoError(t, err)
	assert.Len(t, tickets, 1)
	assert.Equal(t, uint(2), tickets[0].Quantity)
	assert.True(t, tickets[0].TotalPrice.Equal(decimal.NewFromInt(300)))
	assert.Len(t, tickets[0].Attendees, 2)
	assert.True(t, tickets[0].EmailSent)
	assert.Len(t, mailer.sent, 1)
	assert.NotEmpty(t, tickets[0].QRPayload)
}

func TestPurchaseRecordsSubscriptionUsage(t *testing.T) {
	d, mock := NewMockDB()
	s := newTestService(d, &fakeMailer{})

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "organizer_id"}).
			AddRow(1, "Expo", 9))
	mock.ExpectQuery(`SELECT \* FROM "ticket_types"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "name", "price", "quantity", "available_quantity"}).
			AddRow(7, 1, "VIP", "150.00", 10, 10))
	mock.ExpectExec(`UPDATE "ticket_types" SET "available_quantity"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectExec(`UPDATE "tickets" SET "qr_payload"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "attendees"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	// organizer's counters are bumped before the purchase returns
	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "plan_id", "status"}).
			AddRow(3, 9, 2, "active"))
	mock.ExpectQuery(`SELECT \* FROM "subscription_plans"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "service_fee_pct"}).
			AddRow(2, "5"))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "subscriptions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tickets" SET "email_sent"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tickets, err := s.PurchaseTickets(context.Background(), 1, purchaseBody(1))
	assert.NoError(t, err)
	assert.Len(t, tickets, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseSurvivesMailerFailure(t *testing.T) {
	d, mock := NewMockDB()
	s := newTestService(d, &fakeMailer{err: errMailerDown})

	expectHappyCheckout(mock, 1)

	tickets, err := s.PurchaseTickets(context.Background(), 1, purchaseBody(1))
	assert.NoError(t, err)
	assert.Len(t, tickets, 1)
	assert.False(t, tickets[0].EmailSent)
}

func TestCheckInTicketOnlyOnce(t *testing.T) {
	d, mock := NewMockDB()
	s := newTestService(d, &fakeMailer{})

	code, err := utils.TicketQRPayload(42, uuid.New())
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "is_used"}).AddRow(42, 1, false))
	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE "tickets" SET "is_used"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ticket, err := s.CheckInTicket(code)
	assert.NoError(t, err)
	assert.True(t, ticket.IsUsed)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "is_used"}).AddRow(42, 1, true))
	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE "tickets" SET "is_used"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err = s.CheckInTicket(code)
	var de *types.DomainError
	assert.ErrorAs(t, err, &de)
	assert.Equal(t, types.ErrConflict, de.Kind)
}

func TestCheckInRejectsGarbageCode(t *testing.T) {
	d, _ := NewMockDB()
	s := newTestService(d, &fakeMailer{})

	_, err := s.CheckInTicket("not-a-real-code")
	var de *types.DomainError
	assert.ErrorAs(t, err, &de)
	assert.Equal(t, types.ErrValidation, de.Kind)
}
