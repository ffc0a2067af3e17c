package services

import (
	"testing"

	"github.com/Rakhulsr/go-seller-ms/app/models"
	"github.com/Rakhulsr/go-seller-ms/app/repositories"
	"github.com/Rakhulsr/go-seller-ms/app/utils/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCreateAppliesSellerDiscount(t *testing.T) {
	f := newFixture(t)

	p := f.createProduct(t, f.sellerID, "Kettle", "1000", 5, decPtr("10"))

	assert.Equal(t, f.sellerID, p.UserID)
	assert.True(t, p.IsActive)
	requireDecimal(t, "900", p.SellerDiscounted.Decimal)
	assert.False(t, p.AdminDiscountedPrice.Valid)
	require.NotNil(t, p.Category)
	assert.Equal(t, f.categoryID, p.Category.ID)

	stored := f.product(t, p.ID)
	requireDecimal(t, "900", stored.SellerDiscounted.Decimal)
}

func TestProductCreateWithoutSellerDiscount(t *testing.T) {
	f := newFixture(t)

	p := f.createProduct(t, f.sellerID, "Pan", "250", 1, nil)
	assert.False(t, p.SellerDiscounted.Valid)
}

func TestProductCreateRejections(t *testing.T) {
	f := newFixture(t)
	inactive := f.addUser(t, false)

	tests := []struct {
		name   string
		userID string
		in     CreateProductInput
		want   apperror.Category
	}{
		{"missing fields", f.sellerID, CreateProductInput{Name: "x"}, apperror.CategoryValidation},
		{"zero MRP", f.sellerID, CreateProductInput{
			Name: "x", Description: "x", MRP: decPtr("0"), Stock: intPtr(1), CategoryID: f.categoryID,
		}, apperror.CategoryValidation},
		{"discount above one hundred", f.sellerID, CreateProductInput{
			Name: "x", Description: "x", MRP: decPtr("10"), Stock: intPtr(1), CategoryID: f.categoryID,
			SellerDiscountApplied: decPtr("120"),
		}, apperror.CategoryValidation},
		{"unknown category", f.sellerID, CreateProductInput{
			Name: "x", Description: "x", MRP: decPtr("10"), Stock: intPtr(1),
			CategoryID: "2f1f6a4e-51b1-4a3e-9e2d-9f57a1c0c0de",
		}, apperror.CategoryNotFound},
		{"inactive user", inactive, CreateProductInput{
			Name: "x", Description: "x", MRP: decPtr("10"), Stock: intPtr(1), CategoryID: f.categoryID,
		}, apperror.CategoryForbidden},
		{"unknown user", "5b7c1f0e-0000-4000-8000-000000000000", CreateProductInput{
			Name: "x", Description: "x", MRP: decPtr("10"), Stock: intPtr(1), CategoryID: f.categoryID,
		}, apperror.CategoryNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.products.Create(f.ctx, tt.userID, tt.in)
			requireCategory(t, err, tt.want)
		})
	}
}

func TestProductUpdateReprices(t *testing.T) {
	f := newFixture(t)
	p := f.createProduct(t, f.sellerID, "Kettle", "1000", 5, decPtr("10"))

	updated, err := f.products.Update(f.ctx, f.sellerID, p.ID, UpdateProductInput{
		MRP:                   decPtr("2000"),
		SellerDiscountApplied: decPtr("25"),
		Name:                  strPtr("  Steel Kettle "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Steel Kettle", updated.Name)
	requireDecimal(t, "1500", updated.SellerDiscounted.Decimal)
	requireDecimal(t, "1500", f.product(t, p.ID).SellerDiscounted.Decimal)
}

func TestProductUpdateRejections(t *testing.T) {
	f := newFixture(t)
	p := f.createProduct(t, f.sellerID, "Kettle", "1000", 5, nil)
	blocked := f.createProduct(t, f.sellerID, "Blocked", "10", 1, nil)
	f.mutateProduct(t, blocked.ID, func(p *models.Product) { p.IsBlocked = true })
	inactiveCategory := f.addCategory(t, "Archive", false)

	_, err := f.products.Update(f.ctx, f.sellerID, p.ID, UpdateProductInput{})
	requireCategory(t, err, apperror.CategoryValidation)

	_, err = f.products.Update(f.ctx, f.sellerID, p.ID, UpdateProductInput{Name: strPtr("  ")})
	appErr := requireCategory(t, err, apperror.CategoryValidation)
	assert.Contains(t, appErr.Details, "name")

	_, err = f.products.Update(f.ctx, f.otherID, p.ID, UpdateProductInput{Stock: intPtr(1)})
	requireCategory(t, err, apperror.CategoryForbidden)

	_, err = f.products.Update(f.ctx, f.sellerID, blocked.ID, UpdateProductInput{Stock: intPtr(1)})
	requireCategory(t, err, apperror.CategoryForbidden)

	_, err = f.products.Update(f.ctx, f.sellerID, p.ID, UpdateProductInput{CategoryID: &inactiveCategory})
	requireCategory(t, err, apperror.CategoryValidation)

	_, err = f.products.Update(f.ctx, f.sellerID, "9d0e7f55-1111-4111-8111-111111111111", UpdateProductInput{Stock: intPtr(1)})
	requireCategory(t, err, apperror.CategoryNotFound)
}

func TestProductGetHidesDeleted(t *testing.T) {
	f := newFixture(t)
	p := f.createProduct(t, f.sellerID, "Kettle", "1000", 5, nil)

	got, err := f.products.Get(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = f.products.SoftDelete(f.ctx, f.sellerID, p.ID)
	require.NoError(t, err)

	_, err = f.products.Get(f.ctx, p.ID)
	requireCategory(t, err, apperror.CategoryNotFound)
}

func TestProductListReturnsOwnActiveProducts(t *testing.T) {
	f := newFixture(t)
	f.createProduct(t, f.sellerID, "Blue Mug", "100", 1, nil)
	f.createProduct(t, f.sellerID, "Red Mug", "300", 1, nil)
	gone := f.createProduct(t, f.sellerID, "Old Mug", "200", 1, nil)
	f.createProduct(t, f.otherID, "Foreign Mug", "150", 1, nil)
	_, err := f.products.SoftDelete(f.ctx, f.sellerID, gone.ID)
	require.NoError(t, err)

	page, err := f.products.List(f.ctx, f.sellerID, repositories.ListQuery{
		Search: "mug", SortBy: repositories.SortByMRP, SortOrder: "desc", Limit: 1,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Red Mug", page.Items[0].Name)
}

func TestProductSoftDeleteTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	p := f.createProduct(t, f.sellerID, "Kettle", "1000", 5, nil)

	res, err := f.products.SoftDelete(f.ctx, f.sellerID, p.ID)
	require.NoError(t, err)
	assert.False(t, res.Product.IsActive)
	assert.True(t, res.Product.IsUnavailable)
	assert.False(t, res.Cascade.Failed())

	_, err = f.products.SoftDelete(f.ctx, f.sellerID, p.ID)
	appErr := requireCategory(t, err, apperror.CategoryConflict)
	assert.Contains(t, appErr.Message, "AlreadyDeleted")
}
