package types

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func doRequest(handler gin.HandlerFunc) (*httptest.ResponseRecorder, APIResponse) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/t", handler)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/t", nil)
	router.ServeHTTP(w, req)

	var resp APIResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestRespondOKEnvelope(t *testing.T) {
	w, resp := doRequest(func(ctx *gin.Context) {
		RespondOK(ctx, http.StatusCreated, gin.H{"id": 1})
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Description)
}

func TestRespondErrorEnvelopeAgreesWithStatus(t *testing.T) {
	w, resp := doRequest(func(ctx *gin.Context) {
		RespondError(ctx, NewConflictError("ticket type [VIP] is sold out"))
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, w.Code, resp.Code)
	assert.Nil(t, resp.Data)
	assert.Equal(t, "ticket type [VIP] is sold out", resp.Description)
}

func TestRespondErrorHidesInternalCause(t *testing.T) {
	_, resp := doRequest(func(ctx *gin.Context) {
		RespondError(ctx, NewInternalError("error while processing request", assert.AnError))
	})

	assert.Equal(t, "error while processing request", resp.Description)
	assert.NotContains(t, resp.Description, assert.AnError.Error())
}
