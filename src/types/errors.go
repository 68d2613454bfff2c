package types

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	ErrValidation ErrorKind = "validation"
	ErrNotFound   ErrorKind = "not_found"
	ErrForbidden  ErrorKind = "forbidden"
	ErrConflict   ErrorKind = "conflict"
	ErrUpstream   ErrorKind = "upstream"
	ErrInternal   ErrorKind = "internal"
)

// DomainError is what storage operations return instead of raw errors so
// that the route layer can map them onto the response envelope.
type DomainError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.Err }

func NewValidationError(format string, args ...any) *DomainError {
	return &DomainError{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}
func NewNotFoundError(format string, args ...any) *DomainError {
	return &DomainError{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}
func NewForbiddenError(format string, args ...any) *DomainError {
	return &DomainError{Kind: ErrForbidden, Message: fmt.Sprintf(format, args...)}
}
func NewConflictError(format string, args ...any) *DomainError {
	return &DomainError{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}
func NewUpstreamError(message string, err error) *DomainError {
	return &DomainError{Kind: ErrUpstream, Message: message, Err: err}
}
func NewInternalError(message string, err error) *DomainError {
	return &DomainError{Kind: ErrInternal, Message: message, Err: err}
}

// StatusForError maps the taxonomy to HTTP status codes. Unknown errors
// count as internal.
func StatusForError(err error) int {
	var de *DomainError
	if !errors.As(err, &de) {
		return http.StatusInternalServerError
	}
	switch de.Kind {
	case ErrValidation:
		return http.StatusBadRequest
	case ErrNotFound:
		return http.StatusNotFound
	case ErrForbidden:
		return http.StatusForbidden
	case ErrConflict:
		return http.StatusConflict
	case ErrUpstream, ErrInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
