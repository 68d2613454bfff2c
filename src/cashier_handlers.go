package main

import (
	"net/http"

	"github.com/HeroHarith/Tickets-sub001/src/types"

	"github.com/gin-gonic/gin"
)

func cashierHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/cashiers", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			cashiers, err := svc.ListCashiers(userId, callerRole(ctx))
			if err != nil {
				types.RespondError(ctx, err)
				return
			}
			types.RespondOK(ctx, http.StatusOK, cashiers)
		}).
		POST("/cashiers", func(ctx *gin.Context) {
			var body types.CreateCashierRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				types.RespondValidation(ctx, err)
				return
			}
			userId := ctx.GetUint("id")
			cashier, err := svc.CreateCashier(userId, &body)
			if err != nil {
				types.RespondError(ctx, err)
				return
			}
			types.RespondOK(ctx, http.StatusCreated, cashier)
		}).
		PATCH("/cashiers/:id/permissions", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				types.RespondValidation(ctx, err)
				return
			}
			var body types.UpdateCashierPermissionsRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				types.RespondValidation(ctx, err)
				return
			}
			userId := ctx.GetUint("id")
			cashier, err := svc.UpdateCashierPermissions(userId, callerRole(ctx), params.ID, body.Permissions)
			if err != nil {
				types.RespondError(ctx, err)
				return
			}
			types.RespondOK(ctx, http.StatusOK, cashier)
		}).
		PATCH("/cashiers/:id/venues", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				types.RespondValidation(ctx, err)
				return
			}
			var body types.UpdateCashierVenuesRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				types.RespondValidation(ctx, err)
				return
			}
			userId := ctx.GetUint("id")
			cashier, err := svc.UpdateCashierVenues(userId, callerRole(ctx), params.ID, body.VenueIDs)
			if err != nil {
				types.RespondError(ctx, err)
				return
			}
			types.RespondOK(ctx, http.StatusOK, cashier)
		}).
		DELETE("/cashiers/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				types.RespondValidation(ctx, err)
				return
			}
			userId := ctx.GetUint("id")
			if err := svc.DeleteCashier(userId, callerRole(ctx), params.ID); err != nil {
				types.RespondError(ctx, err)
				return
			}
			types.RespondOK(ctx, http.StatusOK, gin.H{"deleted": params.ID})
		})
	return g
}
