package services

import (
	"testing"
	"time"

	"github.com/Rakhulsr/go-seller-ms/app/models"
	"github.com/Rakhulsr/go-seller-ms/app/utils/calc"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) addCartAndWishlist(t *testing.T, kind models.ItemKind, id string) {
	t.Helper()
	ref := func() (*string, *string) {
		if kind == models.ItemKindBundle {
			return nil, &id
		}
		return &id, nil
	}
	productID, bundleID := ref()
	require.NoError(t, f.store.Carts.Create(f.ctx, &models.Cart{
		ID:     uuid.New().String(),
		UserID: f.otherID,
		Items:  []models.CartItem{{ProductID: productID, BundleID: bundleID, Quantity: 1}},
	}))
	require.NoError(t, f.store.Wishlists.Create(f.ctx, &models.Wishlist{
		ID:     uuid.New().String(),
		UserID: f.otherID,
		Items:  []models.WishlistItem{{ProductID: productID, BundleID: bundleID, Quantity: 1}},
	}))
}

func matchedBy(report SweepReport) map[string]int64 {
	out := map[string]int64{}
	for _, step := range report.Steps {
		out[step.Collection] = step.Matched
	}
	return out
}

func TestProductDeleteCascades(t *testing.T) {
	f := newFixture(t)
	cup := f.createProduct(t, f.sellerID, "Cup", "100", 10, nil)
	pot := f.createProduct(t, f.sellerID, "Pot", "200", 10, nil)
	bundle := f.createBundle(t, "25",
		BundleLineInput{ProductID: cup.ID, Quantity: 2},
		BundleLineInput{ProductID: pot.ID, Quantity: 1},
	)
	saleID := f.addSale(t, "10", time.Now().Add(time.Hour), f.categoryID)
	_, err := f.sales.AddProducts(f.ctx, f.sellerID, saleID, SaleProductsInput{ProductIDs: []string{pot.ID}})
	require.NoError(t, err)
	f.addCartAndWishlist(t, models.ItemKindProduct, pot.ID)

	res, err := f.products.SoftDelete(f.ctx, f.sellerID, pot.ID)
	require.NoError(t, err)
	assert.False(t, res.Cascade.Failed())
	assert.Equal(t, map[string]int64{"bundles": 1, "wishlists": 1, "carts": 1, "sales": 1}, matchedBy(res.Cascade))
	assert.Equal(t, "bundles", res.Cascade.Steps[0].Collection)

	b := f.bundle(t, bundle.ID)
	assert.Equal(t, []string{cup.ID}, b.ProductIDs())
	requireDecimal(t, "200", b.MRP)
	requireDecimal(t, "150", b.SellerDiscounted.Decimal)

	cart, err := f.store.Carts.GetByUserID(f.ctx, f.otherID)
	require.NoError(t, err)
	assert.True(t, cart.Items[0].IsUnavailable)
	wishlist, err := f.store.Wishlists.GetByUserID(f.ctx, f.otherID)
	require.NoError(t, err)
	assert.True(t, wishlist.Items[0].IsUnavailable)

	sale, err := f.sales.Get(f.ctx, saleID)
	require.NoError(t, err)
	assert.True(t, sale.AffectedProducts[0].IsUnavailable)
}

func TestDetachProductUsesCurrentMemberPrices(t *testing.T) {
	f := newFixture(t)
	cup := f.createProduct(t, f.sellerID, "Cup", "100", 10, nil)
	pot := f.createProduct(t, f.sellerID, "Pot", "200", 10, nil)
	bundle := f.createBundle(t, "50",
		BundleLineInput{ProductID: cup.ID, Quantity: 2},
		BundleLineInput{ProductID: pot.ID, Quantity: 1},
	)
	f.mutateProduct(t, cup.ID, func(p *models.Product) { p.MRP = dec("120") })

	b := f.bundle(t, bundle.ID)
	ok, err := f.invalidator.DetachProduct(f.ctx, b, pot.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	requireDecimal(t, "240", b.MRP)
	requireDecimal(t, "120", b.SellerDiscounted.Decimal)
	requireDecimal(t, "120", b.Products[0].MRP)

	ok, err = f.invalidator.DetachProduct(f.ctx, b, pot.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBundleDeleteCascades(t *testing.T) {
	f := newFixture(t)
	cup := f.createProduct(t, f.sellerID, "Cup", "100", 10, nil)
	bundle := f.createBundle(t, "0", BundleLineInput{ProductID: cup.ID, Quantity: 1})
	f.addCartAndWishlist(t, models.ItemKindBundle, bundle.ID)

	res, err := f.bundles.SoftDelete(f.ctx, f.sellerID, bundle.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"wishlists": 1, "carts": 1, "sales": 0}, matchedBy(res.Cascade))
}

func TestReconcileIsIdempotent(t *testing.T) {
	f := newFixture(t)
	cup := f.createProduct(t, f.sellerID, "Cup", "100", 10, nil)
	pot := f.createProduct(t, f.sellerID, "Pot", "200", 10, nil)
	bundle := f.createBundle(t, "0",
		BundleLineInput{ProductID: cup.ID, Quantity: 1},
		BundleLineInput{ProductID: pot.ID, Quantity: 1},
	)
	f.addCartAndWishlist(t, models.ItemKindProduct, pot.ID)

	// Soft-delete without sweeping, as if the process died mid-cascade.
	f.mutateProduct(t, pot.ID, func(p *models.Product) {
		p.IsActive = false
		p.IsUnavailable = true
	})

	report, err := f.invalidator.Reconcile(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Products)
	assert.Equal(t, 0, report.Failed)
	require.Len(t, report.Sweeps, 1)
	assert.Equal(t, map[string]int64{"bundles": 1, "wishlists": 1, "carts": 1, "sales": 0}, matchedBy(report.Sweeps[0]))
	assert.Equal(t, []string{cup.ID}, f.bundle(t, bundle.ID).ProductIDs())

	report, err = f.invalidator.Reconcile(f.ctx)
	require.NoError(t, err)
	require.Len(t, report.Sweeps, 1)
	for _, step := range report.Sweeps[0].Steps {
		assert.Zero(t, step.Matched, step.Collection)
	}
}

func TestProductDeleteClearsAdminPriceOfEmptiedBundle(t *testing.T) {
	f := newFixture(t)
	cup := f.createProduct(t, f.sellerID, "Cup", "100", 10, nil)
	bundle := f.createBundle(t, "10", BundleLineInput{ProductID: cup.ID, Quantity: 2})
	_, err := f.discounts.ApplyEvent(f.ctx, applyEvent(calc.BasisMRP, "20", nil, []string{bundle.ID}))
	require.NoError(t, err)

	b := f.bundle(t, bundle.ID)
	requireDecimal(t, "180", b.SellerDiscounted.Decimal)
	requireDecimal(t, "160", b.AdminDiscountedPrice.Decimal)

	_, err = f.products.SoftDelete(f.ctx, f.sellerID, cup.ID)
	require.NoError(t, err)

	b = f.bundle(t, bundle.ID)
	assert.Empty(t, b.Products)
	assert.True(t, b.MRP.IsZero())
	assert.False(t, b.AdminDiscountedPrice.Valid)
	assert.False(t, b.AdminDiscountApplied.Valid)
}
