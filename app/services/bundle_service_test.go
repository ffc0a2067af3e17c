package services

import (
	"testing"

	"github.com/Rakhulsr/go-seller-ms/app/models"
	"github.com/Rakhulsr/go-seller-ms/app/utils/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) createBundle(t *testing.T, pct string, lines ...BundleLineInput) *models.Bundle {
	t.Helper()
	b, err := f.bundles.Create(f.ctx, f.sellerID, CreateBundleInput{
		Name:           "Starter Set",
		Description:    "everything to get going",
		Stock:          intPtr(3),
		SellerDiscount: decPtr(pct),
		Products:       lines,
	})
	require.NoError(t, err)
	return b
}

func TestBundleCreateComputesMRPAndDiscount(t *testing.T) {
	f := newFixture(t)
	a := f.createProduct(t, f.sellerID, "Cup", "100", 10, nil)
	b := f.createProduct(t, f.sellerID, "Pot", "200", 10, nil)

	bundle := f.createBundle(t, "25",
		BundleLineInput{ProductID: a.ID, Quantity: 2},
		BundleLineInput{ProductID: b.ID, Quantity: 1},
	)

	requireDecimal(t, "400", bundle.MRP)
	requireDecimal(t, "300", bundle.SellerDiscounted.Decimal)
	assert.Equal(t, f.sellerID, bundle.SellerID)
	require.Len(t, bundle.Products, 2)
	assert.Equal(t, "Cup", bundle.Products[0].Name)
	assert.Equal(t, 2, bundle.Products[0].Quantity)
	assert.False(t, bundle.AdminDiscountedPrice.Valid)
}

func TestBundleCreateDefaultsSellerDiscountToZero(t *testing.T) {
	f := newFixture(t)
	a := f.createProduct(t, f.sellerID, "Cup", "100", 10, nil)

	bundle, err := f.bundles.Create(f.ctx, f.sellerID, CreateBundleInput{
		Name:        "Cups",
		Description: "cups",
		Stock:       intPtr(1),
		Products:    []BundleLineInput{{ProductID: a.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	requireDecimal(t, "300", bundle.MRP)
	requireDecimal(t, "300", bundle.SellerDiscounted.Decimal)
}

func TestBundleCreateMemberChecksRunInOrder(t *testing.T) {
	f := newFixture(t)
	ok := f.createProduct(t, f.sellerID, "Cup", "100", 10, nil)
	blocked := f.createProduct(t, f.sellerID, "Blocked", "100", 10, nil)
	f.mutateProduct(t, blocked.ID, func(p *models.Product) { p.IsBlocked = true })
	foreign := f.createProduct(t, f.otherID, "Foreign", "100", 10, nil)
	scarce := f.createProduct(t, f.sellerID, "Scarce", "100", 1, nil)
	missing := "0c7e4a8f-2222-4222-8222-222222222222"

	line := func(id string, qty int) BundleLineInput { return BundleLineInput{ProductID: id, Quantity: qty} }
	tests := []struct {
		name  string
		lines []BundleLineInput
		want  apperror.Category
		ids   []string
	}{
		{"missing wins over blocked", []BundleLineInput{line(blocked.ID, 1), line(missing, 1)}, apperror.CategoryNotFound, []string{missing}},
		{"blocked wins over foreign", []BundleLineInput{line(foreign.ID, 1), line(blocked.ID, 1)}, apperror.CategoryForbidden, []string{blocked.ID}},
		{"foreign owner", []BundleLineInput{line(ok.ID, 1), line(foreign.ID, 1)}, apperror.CategoryForbidden, []string{foreign.ID}},
		{"out of stock", []BundleLineInput{line(ok.ID, 1), line(scarce.ID, 2)}, apperror.CategoryValidation, []string{scarce.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.bundles.Create(f.ctx, f.sellerID, CreateBundleInput{
				Name: "Set", Description: "set", Stock: intPtr(1), Products: tt.lines,
			})
			appErr := requireCategory(t, err, tt.want)
			assert.Equal(t, map[string][]string{"productIds": tt.ids}, appErr.Details)
		})
	}
}

func TestBundleCreateRejectsDuplicateLines(t *testing.T) {
	f := newFixture(t)
	a := f.createProduct(t, f.sellerID, "Cup", "100", 10, nil)

	_, err := f.bundles.Create(f.ctx, f.sellerID, CreateBundleInput{
		Name: "Set", Description: "set", Stock: intPtr(1),
		Products: []BundleLineInput{{ProductID: a.ID, Quantity: 1}, {ProductID: a.ID, Quantity: 2}},
	})
	requireCategory(t, err, apperror.CategoryValidation)
}

func TestBundleUpdateKeepsPricesWithoutPositiveDiscount(t *testing.T) {
	f := newFixture(t)
	a := f.createProduct(t, f.sellerID, "Cup", "100", 10, nil)
	bundle := f.createBundle(t, "25", BundleLineInput{ProductID: a.ID, Quantity: 4})
	f.mutateProduct(t, a.ID, func(p *models.Product) { p.MRP = dec("150") })

	updated, err := f.bundles.Update(f.ctx, f.sellerID, bundle.ID, UpdateBundleInput{
		Name: "Renamed", Description: "same", Products: []BundleLineInput{{ProductID: a.ID, Quantity: 4}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	requireDecimal(t, "400", updated.MRP)
	requireDecimal(t, "300", updated.SellerDiscounted.Decimal)
	requireDecimal(t, "150", updated.Products[0].MRP)

	updated, err = f.bundles.Update(f.ctx, f.sellerID, bundle.ID, UpdateBundleInput{
		Name: "Renamed", Description: "same", SellerDiscount: decPtr("50"),
		Products: []BundleLineInput{{ProductID: a.ID, Quantity: 4}},
	})
	require.NoError(t, err)
	requireDecimal(t, "600", updated.MRP)
	requireDecimal(t, "300", updated.SellerDiscounted.Decimal)
}

func TestBundleUpdateAlwaysRepriceOption(t *testing.T) {
	f := newFixture(t)
	f.bundles.opts.AlwaysReprice = true
	a := f.createProduct(t, f.sellerID, "Cup", "100", 10, nil)
	bundle := f.createBundle(t, "25", BundleLineInput{ProductID: a.ID, Quantity: 4})
	f.mutateProduct(t, a.ID, func(p *models.Product) { p.MRP = dec("150") })

	updated, err := f.bundles.Update(f.ctx, f.sellerID, bundle.ID, UpdateBundleInput{
		Name: "Set", Description: "set", Products: []BundleLineInput{{ProductID: a.ID, Quantity: 4}},
	})
	require.NoError(t, err)
	requireDecimal(t, "600", updated.MRP)
	requireDecimal(t, "450", updated.SellerDiscounted.Decimal)
}

func TestBundleUpdateRejections(t *testing.T) {
	f := newFixture(t)
	a := f.createProduct(t, f.sellerID, "Cup", "100", 10, nil)
	bundle := f.createBundle(t, "0", BundleLineInput{ProductID: a.ID, Quantity: 1})
	in := UpdateBundleInput{Name: "Set", Description: "set", Products: []BundleLineInput{{ProductID: a.ID, Quantity: 1}}}

	_, err := f.bundles.Update(f.ctx, f.otherID, bundle.ID, in)
	requireCategory(t, err, apperror.CategoryForbidden)

	_, err = f.bundles.Update(f.ctx, f.sellerID, "4d7b2c1a-3333-4333-8333-333333333333", in)
	requireCategory(t, err, apperror.CategoryNotFound)

	_, err = f.bundles.SoftDelete(f.ctx, f.sellerID, bundle.ID)
	require.NoError(t, err)
	_, err = f.bundles.Update(f.ctx, f.sellerID, bundle.ID, in)
	requireCategory(t, err, apperror.CategoryConflict)
}

func TestBundleSoftDeleteTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	a := f.createProduct(t, f.sellerID, "Cup", "100", 10, nil)
	bundle := f.createBundle(t, "10", BundleLineInput{ProductID: a.ID, Quantity: 1})

	res, err := f.bundles.SoftDelete(f.ctx, f.sellerID, bundle.ID)
	require.NoError(t, err)
	assert.False(t, res.Bundle.IsActive)
	assert.Equal(t, models.ItemKindBundle, res.Cascade.Kind)

	_, err = f.bundles.SoftDelete(f.ctx, f.sellerID, bundle.ID)
	requireCategory(t, err, apperror.CategoryConflict)

	_, err = f.bundles.Get(f.ctx, bundle.ID)
	requireCategory(t, err, apperror.CategoryNotFound)
}
