package calc

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidDiscount = errors.New("discount percentage must be between 0 and 100")
	ErrInvalidPrice    = errors.New("price must not be negative")
)

var hundred = decimal.NewFromInt(100)

// Basis selects which price the admin discount is taken from.
type Basis string

const (
	BasisMRP              Basis = "MRP"
	BasisSellerDiscounted Basis = "sellerDiscounted"
)

func (b Basis) Valid() bool {
	return b == BasisMRP || b == BasisSellerDiscounted
}

func CalculateDiscount(baseTotal, discountPercent decimal.Decimal) decimal.Decimal {
	return baseTotal.Mul(discountPercent).Div(hundred)
}

// Round is the single rounding rule for every stored price.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}

func ValidatePercent(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return fmt.Errorf("%w: got %s", ErrInvalidDiscount, pct.String())
	}
	return nil
}

func applyPercent(base, pct decimal.Decimal) (decimal.Decimal, error) {
	if base.IsNegative() {
		return decimal.Zero, ErrInvalidPrice
	}
	if err := ValidatePercent(pct); err != nil {
		return decimal.Zero, err
	}
	return Round(base.Sub(CalculateDiscount(base, pct))), nil
}

func ApplySellerDiscount(mrp, pct decimal.Decimal) (decimal.Decimal, error) {
	return applyPercent(mrp, pct)
}

func ApplyAdminDiscount(base, pct decimal.Decimal) (decimal.Decimal, error) {
	return applyPercent(base, pct)
}

func ApplySaleDiscount(mrp, pct decimal.Decimal) (decimal.Decimal, error) {
	return applyPercent(mrp, pct)
}

// BundleMRP sums price×quantity over the given lines.
func BundleMRP(prices []decimal.Decimal, quantities []int) decimal.Decimal {
	total := decimal.Zero
	for i, p := range prices {
		total = total.Add(p.Mul(decimal.NewFromInt(int64(quantities[i]))))
	}
	return Round(total)
}

type PriceInput struct {
	MRP           decimal.Decimal
	SellerPercent decimal.NullDecimal
	// SellerDiscounted is used as the seller layer when SellerPercent is unset.
	SellerDiscounted decimal.NullDecimal
	AdminPercent     decimal.NullDecimal
	// Basis is empty unless an active discount record is linked.
	Basis Basis
}

type PriceBreakdown struct {
	SellerDiscounted     decimal.NullDecimal
	AdminDiscountedPrice decimal.NullDecimal
	AdminApplied         bool
}

// Compute runs the seller layer and then the guarded admin layer. When
// AdminApplied is false the caller keeps whatever admin price it already had.
func Compute(in PriceInput) (PriceBreakdown, error) {
	var out PriceBreakdown
	if in.MRP.IsNegative() {
		return out, ErrInvalidPrice
	}

	if in.SellerPercent.Valid {
		sd, err := ApplySellerDiscount(in.MRP, in.SellerPercent.Decimal)
		if err != nil {
			return out, err
		}
		out.SellerDiscounted = decimal.NewNullDecimal(sd)
	} else {
		out.SellerDiscounted = in.SellerDiscounted
	}

	if !out.SellerDiscounted.Valid || !out.SellerDiscounted.Decimal.IsPositive() {
		return out, nil
	}
	if !in.AdminPercent.Valid || !in.AdminPercent.Decimal.IsPositive() || !in.Basis.Valid() {
		return out, nil
	}

	base := in.MRP
	if in.Basis == BasisSellerDiscounted {
		base = out.SellerDiscounted.Decimal
	}
	adp, err := ApplyAdminDiscount(base, in.AdminPercent.Decimal)
	if err != nil {
		return out, err
	}
	out.AdminDiscountedPrice = decimal.NewNullDecimal(adp)
	out.AdminApplied = true
	return out, nil
}
