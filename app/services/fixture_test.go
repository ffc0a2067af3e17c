package services

import (
	"context"
	"testing"
	"time"

	"github.com/Rakhulsr/go-seller-ms/app/models"
	"github.com/Rakhulsr/go-seller-ms/app/repositories"
	"github.com/Rakhulsr/go-seller-ms/app/repositories/memstore"
	"github.com/Rakhulsr/go-seller-ms/app/utils/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ctx         context.Context
	store       *repositories.Store
	hook        *test.Hook
	invalidator *InvalidationService
	products    *ProductService
	bundles     *BundleService
	sales       *SaleService
	sellers     *SellerService
	categories  *CategoryService
	discounts   *DiscountService

	sellerID   string
	otherID    string
	categoryID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log, hook := test.NewNullLogger()
	store := memstore.New()
	invalidator := NewInvalidationService(store, log)

	f := &fixture{
		ctx:         context.Background(),
		store:       store,
		hook:        hook,
		invalidator: invalidator,
		products:    NewProductService(store, invalidator, log),
		bundles:     NewBundleService(store, invalidator, BundleOptions{}, log),
		sales:       NewSaleService(store, log),
		sellers:     NewSellerService(store, log),
		categories:  NewCategoryService(store.Categories),
		discounts:   NewDiscountService(store, log),
	}
	f.sellerID = f.addUser(t, true)
	f.otherID = f.addUser(t, true)
	f.categoryID = f.addCategory(t, "Kitchen", true)
	return f
}

func (f *fixture) addUser(t *testing.T, active bool) string {
	t.Helper()
	id := uuid.New().String()
	require.NoError(t, f.store.Users.Create(f.ctx, &models.User{
		ID:       id,
		Name:     "seller " + id[:8],
		Email:    id[:8] + "@example.com",
		Role:     models.RoleSeller,
		IsActive: active,
	}))
	return id
}

func (f *fixture) addCategory(t *testing.T, name string, active bool) string {
	t.Helper()
	id := uuid.New().String()
	require.NoError(t, f.store.Categories.Create(f.ctx, &models.Category{
		ID:       id,
		Name:     name,
		Slug:     name,
		Category: name,
		IsActive: active,
	}))
	return id
}

func (f *fixture) addSale(t *testing.T, pct string, end time.Time, categories ...string) string {
	t.Helper()
	id := uuid.New().String()
	require.NoError(t, f.store.Sales.Create(f.ctx, &models.Sale{
		ID:                  id,
		Name:                "Summer " + id[:4],
		StartDate:           time.Now().Add(-time.Hour),
		EndDate:             end,
		SaleDiscountApplied: dec(pct),
		Categories:          categories,
		IsActive:            true,
	}))
	return id
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func intPtr(n int) *int {
	return &n
}

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}

// createProduct adds an active product through the service.
func (f *fixture) createProduct(t *testing.T, owner, name, mrp string, stock int, sellerPct *decimal.Decimal) *models.Product {
	t.Helper()
	p, err := f.products.Create(f.ctx, owner, CreateProductInput{
		Name:                  name,
		Description:           name + " description",
		MRP:                   decPtr(mrp),
		Stock:                 intPtr(stock),
		CategoryID:            f.categoryID,
		SellerDiscountApplied: sellerPct,
	})
	require.NoError(t, err)
	return p
}

// mutateProduct edits a stored product directly, bypassing the service.
func (f *fixture) mutateProduct(t *testing.T, id string, fn func(p *models.Product)) {
	t.Helper()
	p, err := f.store.Products.GetByID(f.ctx, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	fn(p)
	require.NoError(t, f.store.Products.Update(f.ctx, p))
}

func (f *fixture) product(t *testing.T, id string) *models.Product {
	t.Helper()
	p, err := f.store.Products.GetByID(f.ctx, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

func (f *fixture) bundle(t *testing.T, id string) *models.Bundle {
	t.Helper()
	b, err := f.store.Bundles.GetByID(f.ctx, id)
	require.NoError(t, err)
	require.NotNil(t, b)
	return b
}

func requireCategory(t *testing.T, err error, want apperror.Category) *apperror.Error {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok, "expected *apperror.Error, got %T", err)
	require.Equal(t, want, appErr.Category, appErr.Error())
	return appErr
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}
