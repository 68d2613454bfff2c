package main

import (
	"net/http"

	"github.com/HeroHarith/Tickets-sub001/src/types"

	"github.com/gin-gonic/gin"
)

func rentalHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/rentals", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			rentals, err := svc.ListRentals(userId, callerRole(ctx))
			if err != nil {
				types.RespondError(ctx, err)
				return
			}
			types.RespondOK(ctx, http.StatusOK, rentals)
		}).
		POST("/rentals", func(ctx *gin.Context) {
			var body types.CreateRentalRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				types.RespondValidation(ctx, err)
				return
			}
			userId := ctx.GetUint("id")
			rental, err := svc.CreateRental(userId, &body)
			if err != nil {
				types.RespondError(ctx, err)
				return
			}
			types.RespondOK(ctx, http.StatusCreated, rental)
		}).
		PATCH("/rentals/:id/status", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				types.RespondValidation(ctx, err)
				return
			}
			var body types.UpdateRentalStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				types.RespondValidation(ctx, err)
				return
			}
			userId := ctx.GetUint("id")
			rental, err := svc.TransitionRental(userId, callerRole(ctx), params.ID, &body)
			if err != nil {
				types.RespondError(ctx, err)
				return
			}
			types.RespondOK(ctx, http.StatusOK, rental)
		})
	return g
}
