package types

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every endpoint returns. Success and the HTTP
// status always agree: success=false implies status >= 400.
type APIResponse struct {
	Success     bool   `json:"success"`
	Code        int    `json:"code"`
	Data        any    `json:"data"`
	Description string `json:"description,omitempty"`
}

func RespondOK(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, APIResponse{
		Success: true,
		Code:    status,
		Data:    data,
	})
}

func RespondError(ctx *gin.Context, err error) {
	status := StatusForError(err)
	desc := err.Error()
	var de *DomainError
	if errors.As(err, &de) {
		desc = de.Message
	}
	ctx.JSON(status, APIResponse{
		Success:     false,
		Code:        status,
		Data:        nil,
		Description: desc,
	})
}

func RespondValidation(ctx *gin.Context, err error) {
	RespondError(ctx, NewValidationError("%s", err.Error()))
}
