package helpers

import (
	"context"
	"testing"

	"github.com/Rakhulsr/go-seller-ms/app/utils/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleLine struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

type sampleRequest struct {
	Name  string       `json:"name" validate:"required"`
	Stock *int         `json:"stock" validate:"required,min=0"`
	Lines []sampleLine `json:"products" validate:"required,min=1,unique=ProductID,dive"`
}

func TestValidateStructReportsJSONFieldNames(t *testing.T) {
	negative := -1
	err := ValidateStruct(sampleRequest{
		Stock: &negative,
		Lines: []sampleLine{{ProductID: "nope", Quantity: 0}},
	})
	require.Error(t, err)

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CategoryValidation, appErr.Category)

	details, ok := appErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "stock")
	assert.Contains(t, details, "products[0].productId")
	assert.Contains(t, details, "products[0].quantity")
}

func TestValidateStructRejectsDuplicateLines(t *testing.T) {
	zero := 0
	id := "8b8f0d5e-9a55-4b59-9f0e-52d1f3a4c001"
	err := ValidateStruct(sampleRequest{
		Name:  "bundle",
		Stock: &zero,
		Lines: []sampleLine{{ProductID: id, Quantity: 1}, {ProductID: id, Quantity: 2}},
	})
	require.Error(t, err)
	appErr, _ := apperror.As(err)
	assert.Contains(t, appErr.Details.(map[string]string), "products")
}

func TestInvalidUUIDs(t *testing.T) {
	good := "8b8f0d5e-9a55-4b59-9f0e-52d1f3a4c001"
	assert.Equal(t, []string{"bad"}, InvalidUUIDs(good, "bad"))
	assert.Empty(t, InvalidUUIDs(good))
}

func TestContextAccessors(t *testing.T) {
	ctx := context.WithValue(context.Background(), ContextKeyUserID, "u1")
	ctx = context.WithValue(ctx, ContextKeyRole, "seller")
	assert.Equal(t, "u1", UserIDFromContext(ctx))
	assert.Equal(t, "seller", RoleFromContext(ctx))
	assert.Empty(t, RequestIDFromContext(ctx))
}
