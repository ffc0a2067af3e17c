package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

// PriceFormatter renders prices as human readable money labels.
type PriceFormatter struct {
	ac accounting.Accounting
}

func NewPriceFormatter(symbol string) *PriceFormatter {
	return &PriceFormatter{ac: accounting.Accounting{Symbol: symbol, Precision: 2, Thousand: ",", Decimal: "."}}
}

func (f *PriceFormatter) Money(d decimal.Decimal) string {
	return f.ac.FormatMoneyDecimal(d)
}

// Nullable renders "-" for an unset price.
func (f *PriceFormatter) Nullable(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	return f.Money(d.Decimal)
}
