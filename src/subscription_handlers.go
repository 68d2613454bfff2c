package main

import (
	"net/http"

	"github.com/HeroHarith/Tickets-sub001/src/types"

	"github.com/gin-gonic/gin"
)

func subscriptionHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/subscriptions/plans", func(ctx *gin.Context) {
			plans, err := svc.ListPlans()
			if err != nil {
				types.RespondError(ctx, err)
				return
			}
			types.RespondOK(ctx, http.StatusOK, plans)
		}).
		GET("/subscriptions/me", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			sub, err := svc.GetSubscription(userId)
			if err != nil {
				types.RespondError(ctx, err)
				return
			}
			types.RespondOK(ctx, http.StatusOK, sub)
		}).
		POST("/subscriptions", func(ctx *gin.Context) {
			var body types.SubscribeRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				types.RespondValidation(ctx, err)
				return
			}
			userId := ctx.GetUint("id")
			sub, err := svc.Subscribe(userId, body.PlanID)
			if err != nil {
				types.RespondError(ctx, err)
				return
			}
			types.RespondOK(ctx, http.StatusCreated, sub)
		})
	return g
}
