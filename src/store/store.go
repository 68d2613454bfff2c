package store

import (
	"context"
	"errors"
	"log"

	"github.com/HeroHarith/Tickets-sub001/src/lib"
	"github.com/HeroHarith/Tickets-sub001/src/types"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Mailer sends transactional mail. Failures never corrupt ticket or
// inventory state, only notification state.
type Mailer interface {
	Send(input *lib.SendMailInput) error
}

// PaymentGateway wraps the hosted-checkout provider.
type PaymentGateway interface {
	CreateSession(ctx context.Context, lines []lib.CheckoutLine, metadata map[string]string) (sessionID string, sessionURL string, err error)
	SessionPaid(ctx context.Context, sessionID string) (bool, error)
}

// QREncoder renders a payload into an image.
type QREncoder interface {
	Encode(payload string) ([]byte, error)
}

// Service mediates all reads and writes. Handlers never touch gorm
// directly; external adapters are injected here once at startup.
type Service struct {
	db       *gorm.DB
	cache    *redis.Client
	mailer   Mailer
	payments PaymentGateway
	qr       QREncoder
}

func NewService(db *gorm.DB, cache *redis.Client, mailer Mailer, payments PaymentGateway, qr QREncoder) *Service {
	return &Service{
		db:       db,
		cache:    cache,
		mailer:   mailer,
		payments: payments,
		qr:       qr,
	}
}

// wrapDBError folds gorm errors into the domain taxonomy.
func wrapDBError(err error, notFoundMsg string) error {
	var de *types.DomainError
	if errors.As(err, &de) {
		return de
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.NewNotFoundError("%s", notFoundMsg)
	}
	log.Printf("Unexpected database error: %s\n", err.Error())
	return types.NewInternalError("error while processing request", err)
}
