package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Rakhulsr/go-seller-ms/app/models"
	"github.com/Rakhulsr/go-seller-ms/app/repositories"
	"github.com/Rakhulsr/go-seller-ms/app/utils/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleAddProductsPartialSuccess(t *testing.T) {
	f := newFixture(t)
	saleID := f.addSale(t, "20", time.Now().Add(24*time.Hour), f.categoryID)
	fresh := f.createProduct(t, f.sellerID, "Kettle", "500", 3, nil)
	taken := f.createProduct(t, f.sellerID, "Toaster", "800", 3, nil)
	f.mutateProduct(t, taken.ID, func(p *models.Product) { p.SaleApplied = true })
	missing := "7a1b2c3d-4444-4444-8444-444444444444"

	res, err := f.sales.AddProducts(f.ctx, f.sellerID, saleID, SaleProductsInput{
		ProductIDs: []string{fresh.ID, taken.ID, missing},
	})
	require.NoError(t, err)
	assert.True(t, res.Partial())
	assert.Equal(t, []string{fresh.ID}, res.Added)

	failed := map[string]apperror.Category{}
	for _, fail := range res.Failures {
		failed[fail.ProductID] = fail.Category
	}
	assert.Equal(t, map[string]apperror.Category{
		taken.ID: apperror.CategoryConflict,
		missing:  apperror.CategoryNotFound,
	}, failed)

	p := f.product(t, fresh.ID)
	assert.True(t, p.SaleApplied)
	requireDecimal(t, "400", p.FinalePrice.Decimal)

	sale, err := f.sales.Get(f.ctx, saleID)
	require.NoError(t, err)
	require.Len(t, sale.AffectedProducts, 1)
	assert.Equal(t, fresh.ID, sale.AffectedProducts[0].ProductID)
	requireDecimal(t, "400", sale.AffectedProducts[0].FinalePrice.Decimal)
	requireDecimal(t, "500", sale.AffectedProducts[0].ProductMRP)
}

func TestSaleAddProductsTwiceReportsConflict(t *testing.T) {
	f := newFixture(t)
	saleID := f.addSale(t, "10", time.Time{}, f.categoryID)
	p := f.createProduct(t, f.sellerID, "Kettle", "500", 3, nil)
	in := SaleProductsInput{ProductIDs: []string{p.ID}}

	_, err := f.sales.AddProducts(f.ctx, f.sellerID, saleID, in)
	require.NoError(t, err)

	res, err := f.sales.AddProducts(f.ctx, f.sellerID, saleID, in)
	require.NoError(t, err)
	assert.Empty(t, res.Added)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, apperror.CategoryConflict, res.Failures[0].Category)
}

func TestSaleAddProductsBatchFailures(t *testing.T) {
	f := newFixture(t)
	otherCategory := f.addCategory(t, "Garden", true)
	saleID := f.addSale(t, "20", time.Now().Add(time.Hour), otherCategory)
	expiredID := f.addSale(t, "20", time.Now().Add(-time.Hour), f.categoryID)
	openID := f.addSale(t, "20", time.Now().Add(time.Hour), f.categoryID)
	mine := f.createProduct(t, f.sellerID, "Kettle", "500", 3, nil)
	theirs := f.createProduct(t, f.otherID, "Vase", "500", 3, nil)
	gone := f.createProduct(t, f.sellerID, "Gone", "500", 3, nil)
	_, err := f.products.SoftDelete(f.ctx, f.sellerID, gone.ID)
	require.NoError(t, err)

	_, err = f.sales.AddProducts(f.ctx, f.sellerID, saleID, SaleProductsInput{ProductIDs: []string{mine.ID}})
	requireCategory(t, err, apperror.CategoryValidation)

	_, err = f.sales.AddProducts(f.ctx, f.sellerID, expiredID, SaleProductsInput{ProductIDs: []string{mine.ID}})
	requireCategory(t, err, apperror.CategoryValidation)

	_, err = f.sales.AddProducts(f.ctx, f.sellerID, openID, SaleProductsInput{ProductIDs: []string{mine.ID, theirs.ID}})
	appErr := requireCategory(t, err, apperror.CategoryForbidden)
	assert.Equal(t, map[string][]string{"productIds": {theirs.ID}}, appErr.Details)

	_, err = f.sales.AddProducts(f.ctx, f.sellerID, openID, SaleProductsInput{ProductIDs: []string{gone.ID}})
	requireCategory(t, err, apperror.CategoryNotFound)

	_, err = f.sales.AddProducts(f.ctx, f.sellerID, openID, SaleProductsInput{ProductIDs: []string{"not-a-uuid"}})
	appErr = requireCategory(t, err, apperror.CategoryValidation)
	assert.Equal(t, map[string][]string{"invalidIds": {"not-a-uuid"}}, appErr.Details)

	_, err = f.sales.AddProducts(f.ctx, f.sellerID, "1e2d3c4b-5555-4555-8555-555555555555", SaleProductsInput{ProductIDs: []string{mine.ID}})
	requireCategory(t, err, apperror.CategoryNotFound)

	assert.False(t, f.product(t, mine.ID).SaleApplied)
}

func TestSaleRemoveProducts(t *testing.T) {
	f := newFixture(t)
	saleID := f.addSale(t, "20", time.Now().Add(time.Hour), f.categoryID)
	in := f.createProduct(t, f.sellerID, "Kettle", "500", 3, nil)
	out := f.createProduct(t, f.sellerID, "Toaster", "800", 3, nil)
	_, err := f.sales.AddProducts(f.ctx, f.sellerID, saleID, SaleProductsInput{ProductIDs: []string{in.ID}})
	require.NoError(t, err)

	res, err := f.sales.RemoveProducts(f.ctx, f.sellerID, saleID, SaleProductsInput{ProductIDs: []string{in.ID, out.ID}})
	require.NoError(t, err)
	assert.Equal(t, []string{in.ID}, res.Removed)
	assert.Equal(t, []string{out.ID}, res.NotInSale)
	assert.Empty(t, res.Sale.AffectedProducts)

	p := f.product(t, in.ID)
	assert.False(t, p.SaleApplied)
	assert.False(t, p.FinalePrice.Valid)

	_, err = f.sales.RemoveProducts(f.ctx, f.otherID, saleID, SaleProductsInput{ProductIDs: []string{in.ID}})
	requireCategory(t, err, apperror.CategoryForbidden)
}

func TestSaleListReturnsActiveSales(t *testing.T) {
	f := newFixture(t)
	f.addSale(t, "10", time.Time{}, f.categoryID)
	f.addSale(t, "15", time.Time{}, f.categoryID)
	require.NoError(t, f.store.Sales.Create(f.ctx, &models.Sale{ID: "closed", Name: "Closed"}))

	page, err := f.sales.List(f.ctx, repositories.ListQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	assert.Len(t, page.Items, 2)

	_, err = f.sales.Get(f.ctx, "closed")
	requireCategory(t, err, apperror.CategoryNotFound)
}

// failingSales rejects every sale write.
type failingSales struct {
	repositories.SaleRepositoryImpl
}

func (failingSales) Update(ctx context.Context, sale *models.Sale) error {
	return errors.New("sale store unavailable")
}

func TestSaleAddProductsRestoresProductsWhenSaleWriteFails(t *testing.T) {
	f := newFixture(t)
	saleID := f.addSale(t, "20", time.Now().Add(time.Hour), f.categoryID)
	otherSaleID := f.addSale(t, "10", time.Now().Add(time.Hour), f.categoryID)
	p := f.createProduct(t, f.sellerID, "Kettle", "500", 3, nil)
	in := SaleProductsInput{ProductIDs: []string{p.ID}}

	working := f.store.Sales
	f.store.Sales = failingSales{working}
	_, err := f.sales.AddProducts(f.ctx, f.sellerID, saleID, in)
	requireCategory(t, err, apperror.CategoryInternal)
	f.store.Sales = working

	got := f.product(t, p.ID)
	assert.False(t, got.SaleApplied)
	assert.False(t, got.FinalePrice.Valid)

	res, err := f.sales.AddProducts(f.ctx, f.sellerID, otherSaleID, in)
	require.NoError(t, err)
	assert.Equal(t, []string{p.ID}, res.Added)
	requireDecimal(t, "450", f.product(t, p.ID).FinalePrice.Decimal)
}

func TestSaleRemoveProductsRestoresProductsWhenSaleWriteFails(t *testing.T) {
	f := newFixture(t)
	saleID := f.addSale(t, "20", time.Now().Add(time.Hour), f.categoryID)
	a := f.createProduct(t, f.sellerID, "Kettle", "500", 3, nil)
	b := f.createProduct(t, f.sellerID, "Toaster", "800", 3, nil)
	in := SaleProductsInput{ProductIDs: []string{a.ID, b.ID}}
	_, err := f.sales.AddProducts(f.ctx, f.sellerID, saleID, in)
	require.NoError(t, err)

	working := f.store.Sales
	f.store.Sales = failingSales{working}
	_, err = f.sales.RemoveProducts(f.ctx, f.sellerID, saleID, in)
	requireCategory(t, err, apperror.CategoryInternal)
	f.store.Sales = working

	for _, id := range []string{a.ID, b.ID} {
		got := f.product(t, id)
		assert.True(t, got.SaleApplied, id)
		assert.True(t, got.FinalePrice.Valid, id)
	}
	sale, err := f.sales.Get(f.ctx, saleID)
	require.NoError(t, err)
	assert.Len(t, sale.AffectedProducts, 2)

	res, err := f.sales.RemoveProducts(f.ctx, f.sellerID, saleID, in)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, res.Removed)
	assert.False(t, f.product(t, a.ID).SaleApplied)
}
