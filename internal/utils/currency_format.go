package utils

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount in the display format of the given ISO 4217
// currency code, e.g. "$1,234.50" for USD or "1.234,50 €" for EUR.
// Unknown codes fall back to a plain two-decimal rendering.
func FormatMoney(amount decimal.Decimal, currencyCode string) string {
	cur := money.GetCurrency(currencyCode)
	if cur == nil {
		return amount.Round(2).String()
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

// FormatWithPrecision rounds an amount to the given number of decimal places
// and renders it without a currency symbol.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}
