package lib

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/stripe/stripe-go/v82"
)

var stripeClient *stripe.Client

func GetStripeClient() *stripe.Client {
	if stripeClient != nil {
		return stripeClient
	}
	apiKey := os.Getenv("STRIPE_SECRET_KEY")
	sc := stripe.NewClient(apiKey)
	stripeClient = sc

	return sc
}

// NewStripeClient Replace stripe instance with custom client implementation
func NewStripeClient(c *stripe.Client) {
	stripeClient = c
}

// CheckoutLine is one priced line of a checkout session.
type CheckoutLine struct {
	Name        string
	UnitAmount  int64
	Currency    string
	Quantity    int64
	ReferenceID string
}

// StripeGateway wraps the hosted-checkout API surface the app needs. The
// store talks to it through the PaymentGateway interface so tests can swap
// it out.
type StripeGateway struct {
	client *stripe.Client
}

func NewStripeGateway() *StripeGateway {
	return &StripeGateway{client: GetStripeClient()}
}

func (g *StripeGateway) CreateSession(ctx context.Context, lines []CheckoutLine, metadata map[string]string) (sessionID string, sessionURL string, err error) {
	successUrl := fmt.Sprintf("%s/checkout/callback/success", os.Getenv("APP_HOST"))
	createParams := stripe.CheckoutSessionCreateParams{
		SuccessURL: stripe.String(successUrl),
		UIMode:     stripe.String("hosted"),
		Mode:       stripe.String("payment"),
		Metadata:   metadata,
	}
	lineItems := []*stripe.CheckoutSessionCreateLineItemParams{}
	for _, line := range lines {
		lineItems = append(lineItems, &stripe.CheckoutSessionCreateLineItemParams{
			Quantity: stripe.Int64(line.Quantity),
			PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
				Currency:   stripe.String(line.Currency),
				UnitAmount: stripe.Int64(line.UnitAmount),
				ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
					Name: stripe.String(line.Name),
				},
			},
		})
	}
	createParams.LineItems = lineItems
	checkoutSession, err := g.client.V1CheckoutSessions.Create(ctx, &createParams)
	if err != nil {
		log.Printf("Error creating checkout session: %s\n", err.Error())
		return "", "", err
	}
	log.Printf("CheckoutSessionID: %s\n", checkoutSession.ID)
	return checkoutSession.ID, checkoutSession.URL, nil
}

func (g *StripeGateway) SessionPaid(ctx context.Context, sessionID string) (bool, error) {
	sess, err := g.client.V1CheckoutSessions.Retrieve(ctx, sessionID, nil)
	if err != nil {
		log.Printf("Error retrieving checkout session [%s]: %s\n", sessionID, err.Error())
		return false, err
	}
	return sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid, nil
}
