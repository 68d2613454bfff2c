package main

import (
	"net/http"

	"github.com/HeroHarith/Tickets-sub001/src/middlewares"
	"github.com/HeroHarith/Tickets-sub001/src/types"

	"github.com/gin-gonic/gin"
)

func ticketHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/tickets/purchase",
			middlewares.RequireRoles(types.ROLE_CUSTOMER, types.ROLE_ADMIN),
			func(ctx *gin.Context) {
				var body types.PurchaseTicketsRequestBody
				if err := ctx.ShouldBindJSON(&body); err != nil {
					types.RespondValidation(ctx, err)
					return
				}
				userId := ctx.GetUint("id")
				tickets, err := svc.PurchaseTickets(ctx.Request.Context(), userId, &body)
				if err != nil {
					types.RespondError(ctx, err)
					return
				}
				types.RespondOK(ctx, http.StatusCreated, tickets)
			}).
		POST("/tickets/check-in",
			middlewares.RequireRoles(types.ROLE_CASHIER, types.ROLE_CENTER, types.ROLE_ADMIN),
			func(ctx *gin.Context) {
				var body types.CheckInRequestBody
				if err := ctx.ShouldBindJSON(&body); err != nil {
					types.RespondValidation(ctx, err)
					return
				}
				ticket, err := svc.CheckInTicket(body.Code)
				if err != nil {
					types.RespondError(ctx, err)
					return
				}
				types.RespondOK(ctx, http.StatusOK, ticket)
			}).
		POST("/tickets/:id/resend", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				types.RespondValidation(ctx, err)
				return
			}
			userId := ctx.GetUint("id")
			if err := svc.ResendConfirmation(userId, params.ID); err != nil {
				types.RespondError(ctx, err)
				return
			}
			types.RespondOK(ctx, http.StatusOK, gin.H{"resent": true})
		})
	return g
}
