package store

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"github.com/HeroHarith/Tickets-sub001/src/lib"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewMockDB() (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}

	return gormDB, mock
}

type fakeMailer struct {
	sent []*lib.SendMailInput
	err  error
}

func (m *fakeMailer) Send(input *lib.SendMailInput) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, input)
	return nil
}

type fakeGateway struct {
	paid       bool
	paidErr    error
	sessionID  string
	sessionURL string
	createErr  error
}

func (g *fakeGateway) CreateSession(ctx context.Context, lines []lib.CheckoutLine, metadata map[string]string) (string, string, error) {
	if g.createErr != nil {
		return "", "", g.createErr
	}
	return g.sessionID, g.sessionURL, nil
}

func (g *fakeGateway) SessionPaid(ctx context.Context, sessionID string) (bool, error) {
	return g.paid, g.paidErr
}

type fakeQR struct{ err error }

func (q *fakeQR) Encode(payload string) ([]byte, error) {
	if q.err != nil {
		return nil, q.err
	}
	return []byte("image-bytes"), nil
}

var errMailerDown = errors.New("smtp unreachable")

func newTestService(db *gorm.DB, mailer Mailer) *Service {
	return NewService(db, nil, mailer, &fakeGateway{paid: true}, &fakeQR{})
}

func TestMain(m *testing.M) {
	// 32-byte key for the QR payload cipher.
	os.Setenv("API_QRC_SECRET", "6368616e676520746869732070617373776f726420746f206120736563726574")
	os.Exit(m.Run())
}
