package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Rakhulsr/go-seller-ms/app/models"
	"github.com/Rakhulsr/go-seller-ms/app/repositories"
	"github.com/Rakhulsr/go-seller-ms/app/utils/apperror"
	"github.com/Rakhulsr/go-seller-ms/app/utils/calc"
	"github.com/shopspring/decimal"
)

// Page is the envelope returned by list reads.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func newPage[T any](items []T, total int64, q repositories.ListQuery) Page[T] {
	q = q.Normalize()
	if items == nil {
		items = []T{}
	}
	pages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return Page[T]{Items: items, Total: total, Page: q.Page, Limit: q.Limit, TotalPages: pages}
}

// requireActiveUser loads the user and rejects missing or deactivated accounts.
func requireActiveUser(ctx context.Context, users repositories.UserRepositoryImpl, userID string) (*models.User, error) {
	user, err := users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("failed to load user", err)
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}
	if !user.IsActive {
		return nil, apperror.Forbidden("user account is inactive")
	}
	return user, nil
}

func validatePercent(field string, pct *decimal.Decimal) error {
	if pct == nil {
		return nil
	}
	if err := calc.ValidatePercent(*pct); err != nil {
		return apperror.Validation("invalid discount").WithDetails(map[string]string{
			field: fmt.Sprintf("%s must be between 0 and 100.", field),
		})
	}
	return nil
}

func nullable(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func now() time.Time {
	return time.Now().UTC()
}

// pricer applies the seller and admin layers to stored entities.
type pricer struct {
	discounts repositories.DiscountRepositoryImpl
}

// basis resolves the admin discount basis; it is empty unless the linked
// discount exists and is active.
func (p pricer) basis(ctx context.Context, discountID *string) (calc.Basis, error) {
	if discountID == nil || *discountID == "" {
		return "", nil
	}
	discount, err := p.discounts.GetByID(ctx, *discountID)
	if err != nil {
		return "", apperror.Internal("failed to load discount", err)
	}
	if !discount.IsActive() {
		return "", nil
	}
	return calc.Basis(discount.Type), nil
}

func (p pricer) priceProduct(ctx context.Context, product *models.Product) error {
	basis, err := p.basis(ctx, product.DiscountID)
	if err != nil {
		return err
	}
	out, err := calc.Compute(calc.PriceInput{
		MRP:           product.MRP,
		SellerPercent: product.SellerDiscountApplied,
		AdminPercent:  product.AdminDiscountApplied,
		Basis:         basis,
	})
	if err != nil {
		return apperror.Wrap(apperror.CategoryValidation, "invalid price", err)
	}
	product.SellerDiscounted = out.SellerDiscounted
	if out.AdminApplied {
		product.AdminDiscountedPrice = out.AdminDiscountedPrice
	}
	return nil
}

// priceBundle re-applies the admin layer and, when repriceSeller is set, the
// seller layer against the bundle's current MRP.
func (p pricer) priceBundle(ctx context.Context, bundle *models.Bundle, repriceSeller bool) error {
	basis, err := p.basis(ctx, bundle.DiscountID)
	if err != nil {
		return err
	}
	in := calc.PriceInput{
		MRP:              bundle.MRP,
		SellerDiscounted: bundle.SellerDiscounted,
		AdminPercent:     bundle.AdminDiscount,
		Basis:            basis,
	}
	if repriceSeller {
		in.SellerPercent = decimal.NewNullDecimal(bundle.SellerDiscount)
	}
	out, err := calc.Compute(in)
	if err != nil {
		return apperror.Wrap(apperror.CategoryValidation, "invalid price", err)
	}
	bundle.SellerDiscounted = out.SellerDiscounted
	if out.AdminApplied {
		bundle.AdminDiscountedPrice = out.AdminDiscountedPrice
		bundle.AdminDiscountApplied = bundle.AdminDiscount
	}
	return nil
}
