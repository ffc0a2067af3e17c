package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Category string

const (
	CategoryUnauthorized   Category = "Unauthorized"
	CategoryForbidden      Category = "Forbidden"
	CategoryValidation     Category = "ValidationError"
	CategoryNotFound       Category = "NotFound"
	CategoryConflict       Category = "Conflict"
	CategoryPartialFailure Category = "PartialFailure"
	CategoryInternal       Category = "Internal"
)

// Error is the error type every service returns to the transport layer.
type Error struct {
	Category Category    `json:"category"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}

func New(category Category, message string) *Error {
	return &Error{Category: category, Message: message}
}

func Wrap(category Category, message string, err error) *Error {
	return &Error{Category: category, Message: message, Err: err}
}

func Unauthorized(message string) *Error { return New(CategoryUnauthorized, message) }
func Forbidden(message string) *Error    { return New(CategoryForbidden, message) }
func Validation(message string) *Error   { return New(CategoryValidation, message) }
func NotFound(message string) *Error     { return New(CategoryNotFound, message) }
func Conflict(message string) *Error     { return New(CategoryConflict, message) }

func Internal(message string, err error) *Error {
	return Wrap(CategoryInternal, message, err)
}

func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CategoryOf reports Internal for errors that are not *Error.
func CategoryOf(err error) Category {
	if appErr, ok := As(err); ok {
		return appErr.Category
	}
	return CategoryInternal
}

func Is(err error, category Category) bool {
	return err != nil && CategoryOf(err) == category
}

func HTTPStatus(category Category) int {
	switch category {
	case CategoryUnauthorized:
		return http.StatusUnauthorized
	case CategoryForbidden:
		return http.StatusForbidden
	case CategoryValidation:
		return http.StatusBadRequest
	case CategoryNotFound:
		return http.StatusNotFound
	case CategoryConflict:
		return http.StatusConflict
	case CategoryPartialFailure:
		return http.StatusMultiStatus
	default:
		return http.StatusInternalServerError
	}
}
