package helpers

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Rakhulsr/go-seller-ms/app/utils/apperror"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type contextKey string

const (
	ContextKeyUserID    contextKey = "userID"
	ContextKeyRole      contextKey = "role"
	ContextKeyRequestID contextKey = "requestID"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateStruct runs the validate tags on s and reports failures as a
// ValidationError keyed by JSON field name.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperror.Validation("request validation failed").WithDetails(FormatValidationErrors(verrs))
	}
	return apperror.Validation(err.Error())
}

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := fieldPath(err)
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s is required.", err.Field())
		case "uuid":
			errorMessages[field] = fmt.Sprintf("%s must be a valid id.", err.Field())
		case "min":
			errorMessages[field] = fmt.Sprintf("%s must be at least %s.", err.Field(), err.Param())
		case "max":
			errorMessages[field] = fmt.Sprintf("%s must be at most %s.", err.Field(), err.Param())
		case "unique":
			errorMessages[field] = fmt.Sprintf("%s must not contain duplicates.", err.Field())
		case "url":
			errorMessages[field] = fmt.Sprintf("%s must be a valid URL.", err.Field())
		default:
			errorMessages[field] = fmt.Sprintf("%s failed on the %s rule.", err.Field(), err.Tag())
		}
	}
	return errorMessages
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(err validator.FieldError) string {
	ns := err.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return err.Field()
}

func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// InvalidUUIDs returns the entries of ids that are not well-formed.
func InvalidUUIDs(ids ...string) []string {
	invalid := []string{}
	for _, id := range ids {
		if !IsUUID(id) {
			invalid = append(invalid, id)
		}
	}
	return invalid
}

func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ContextKeyUserID).(string)
	return id
}

func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(ContextKeyRole).(string)
	return role
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ContextKeyRequestID).(string)
	return id
}
