package main

import (
	"io"
	"log"
	"net/http"
	"os"

	"github.com/HeroHarith/Tickets-sub001/src/middlewares"
	"github.com/HeroHarith/Tickets-sub001/src/types"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82/webhook"
)

func paymentHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/payments/tickets",
			middlewares.RequireRoles(types.ROLE_CUSTOMER, types.ROLE_ADMIN),
			func(ctx *gin.Context) {
				var body types.CreatePaymentSessionRequestBody
				if err := ctx.ShouldBindJSON(&body); err != nil {
					types.RespondValidation(ctx, err)
					return
				}
				userId := ctx.GetUint("id")
				session, err := svc.CreateTicketPaymentSession(ctx.Request.Context(), userId, &body)
				if err != nil {
					types.RespondError(ctx, err)
					return
				}
				types.RespondOK(ctx, http.StatusCreated, session)
			}).
		POST("/payments/rentals",
			middlewares.RequireRoles(types.ROLE_CUSTOMER, types.ROLE_ADMIN),
			func(ctx *gin.Context) {
				var body types.CreatePaymentSessionRequestBody
				if err := ctx.ShouldBindJSON(&body); err != nil {
					types.RespondValidation(ctx, err)
					return
				}
				userId := ctx.GetUint("id")
				session, err := svc.CreateRentalPaymentSession(ctx.Request.Context(), userId, body.RentalID)
				if err != nil {
					types.RespondError(ctx, err)
					return
				}
				types.RespondOK(ctx, http.StatusCreated, session)
			})
	return g
}

// paymentWebhookRoute is mounted outside the auth group. The provider signs
// the payload; the signature is the only authentication.
func paymentWebhookRoute(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.POST("/payments/webhook", func(ctx *gin.Context) {
		payload, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			log.Printf("Error reading request body: %s\n", err.Error())
			ctx.Status(http.StatusServiceUnavailable)
			return
		}
		whsecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
		event, err := webhook.ConstructEvent(payload, ctx.GetHeader("Stripe-Signature"), whsecret)
		if err != nil {
			log.Printf("Error verifying webhook signature: %s\n", err.Error())
			ctx.Status(http.StatusBadRequest)
			return
		}
		log.Printf("[StripeEvent] %s\n", event.Type)
		switch event.Type {
		case "checkout.session.completed":
			if err := svc.HandleCheckoutCompleted(event.Data.Raw); err != nil {
				log.Printf("Error handling checkout completion: %s\n", err.Error())
			}
		default:
			log.Printf("Unhandled event type: %s\n", event.Type)
		}
		ctx.Status(http.StatusOK)
	})
	return apiv1
}
