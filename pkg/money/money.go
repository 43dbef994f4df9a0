package money

import (
	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// USD converts a decimal dollar amount into a go-money value in cents.
// Amounts are rounded half away from zero to the cent.
func USD(amount decimal.Decimal) *gomoney.Money {
	cents := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return gomoney.New(cents, gomoney.USD)
}

// FormatUSD renders amount like "$1,234.50" or "-$1,234.50".
func FormatUSD(amount decimal.Decimal) string {
	return USD(amount).Display()
}

// FormatSignedUSD is FormatUSD with an explicit "+" on positive amounts.
func FormatSignedUSD(amount decimal.Decimal) string {
	m := USD(amount)
	if m.IsPositive() {
		return "+" + m.Display()
	}
	return m.Display()
}
