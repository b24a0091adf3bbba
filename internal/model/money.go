package model

import "github.com/shopspring/decimal"

// MoneyScale is the number of fractional digits kept for every monetary amount.
const MoneyScale = 2

// MaxPrice is the largest unit price a product column can hold.
var MaxPrice = decimal.RequireFromString("99999999.99")

// RoundMoney rounds d to MoneyScale digits, half away from zero. Amounts handled here are never
// negative, so this is the usual half-up currency rounding.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// FormatMoney renders d with exactly MoneyScale fractional digits, e.g. "7.00".
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(MoneyScale)
}

// LineTotal is unitPrice x quantity rounded to MoneyScale.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return RoundMoney(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
}
