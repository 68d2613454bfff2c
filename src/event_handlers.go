package main

import (
	"net/http"

	"github.com/HeroHarith/Tickets-sub001/src/types"

	"github.com/gin-gonic/gin"
)

func callerRole(ctx *gin.Context) types.Role {
	if v, ok := ctx.Get("role"); ok {
		if role, ok := v.(types.Role); ok {
			return role
		}
	}
	return types.ROLE_CUSTOMER
}

func publicEventHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/events", func(ctx *gin.Context) {
			var filters types.EventQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				types.RespondValidation(ctx, err)
				return
			}
			events, err := svc.ListEvents(&filters)
			if err != nil {
				types.RespondError(ctx, err)
				return
			}
			types.RespondOK(ctx, http.StatusOK, events)
		}).
		GET("/events/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				types.RespondValidation(ctx, err)
				return
			}
			event, err := svc.GetEvent(ctx.Request.Context(), params.ID)
			if err != nil {
				types.RespondError(ctx, err)
				return
			}
			types.RespondOK(ctx, http.StatusOK, event)
		})
	return g
}

func eventHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/events", func(ctx *gin.Context) {
			var body types.CreateEventRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				types.RespondValidation(ctx, err)
				return
			}
			userId := ctx.GetUint("id")
			event, err := svc.CreateEvent(userId, &body)
			if err != nil {
				types.RespondError(ctx, err)
				return
			}
			types.RespondOK(ctx, http.StatusCreated, event)
		}).
		PATCH("/events/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				types.RespondValidation(ctx, err)
				return
			}
			var body types.UpdateEventRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				types.RespondValidation(ctx, err)
				return
			}
			userId := ctx.GetUint("id")
			event, err := svc.UpdateEvent(ctx.Request.Context(), userId, callerRole(ctx), params.ID, &body)
			if err != nil {
				types.RespondError(ctx, err)
				return
			}
			types.RespondOK(ctx, http.StatusOK, event)
		})
	return g
}
