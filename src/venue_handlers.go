package main

import (
	"net/http"

	"github.com/HeroHarith/Tickets-sub001/src/types"

	"github.com/gin-gonic/gin"
)

func venueHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/venues", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			venues, err := svc.ListVenues(userId, callerRole(ctx))
			if err != nil {
				types.RespondError(ctx, err)
				return
			}
			types.RespondOK(ctx, http.StatusOK, venues)
		}).
		GET("/venues/sales-report", func(ctx *gin.Context) {
			var query types.SalesReportQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				types.RespondValidation(ctx, err)
				return
			}
			userId := ctx.GetUint("id")
			report := svc.VenueSalesReport(userId, callerRole(ctx), &query)
			types.RespondOK(ctx, http.StatusOK, report)
		}).
		GET("/venues/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				types.RespondValidation(ctx, err)
				return
			}
			userId := ctx.GetUint("id")
			venue, err := svc.GetVenue(userId, callerRole(ctx), params.ID)
			if err != nil {
				types.RespondError(ctx, err)
				return
			}
			types.RespondOK(ctx, http.StatusOK, venue)
		}).
		POST("/venues", func(ctx *gin.Context) {
			var body types.CreateVenueRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				types.RespondValidation(ctx, err)
				return
			}
			userId := ctx.GetUint("id")
			venue, err := svc.CreateVenue(userId, &body)
			if err != nil {
				types.RespondError(ctx, err)
				return
			}
			types.RespondOK(ctx, http.StatusCreated, venue)
		}).
		PATCH("/venues/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				types.RespondValidation(ctx, err)
				return
			}
			var body types.UpdateVenueRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				types.RespondValidation(ctx, err)
				return
			}
			userId := ctx.GetUint("id")
			venue, err := svc.UpdateVenue(userId, callerRole(ctx), params.ID, &body)
			if err != nil {
				types.RespondError(ctx, err)
				return
			}
			types.RespondOK(ctx, http.StatusOK, venue)
		}).
		DELETE("/venues/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				types.RespondValidation(ctx, err)
				return
			}
			userId := ctx.GetUint("id")
			if err := svc.DeleteVenue(userId, callerRole(ctx), params.ID); err != nil {
				types.RespondError(ctx, err)
				return
			}
			types.RespondOK(ctx, http.StatusOK, gin.H{"deleted": params.ID})
		})
	return g
}
