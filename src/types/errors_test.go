package types

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusForError(NewValidationError("bad input")))
	assert.Equal(t, http.StatusNotFound, StatusForError(NewNotFoundError("missing")))
	assert.Equal(t, http.StatusForbidden, StatusForError(NewForbiddenError("not yours")))
	assert.Equal(t, http.StatusConflict, StatusForError(NewConflictError("sold out")))
	assert.Equal(t, http.StatusInternalServerError, StatusForError(NewUpstreamError("provider down", errors.New("timeout"))))
	assert.Equal(t, http.StatusInternalServerError, StatusForError(NewInternalError("boom", errors.New("nil deref"))))
	assert.Equal(t, http.StatusInternalServerError, StatusForError(errors.New("plain error")))
}

func TestDomainErrorUnwrap(t *testing.T) {
	inner := errors.New("timeout")
	err := NewUpstreamError("provider down", inner)
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "provider down")
	assert.Contains(t, err.Error(), "timeout")
}
