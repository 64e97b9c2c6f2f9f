// internal/pkg/money/money.go
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amounts are carried internally as int64 paise. The back office speaks
// decimal rupees on the wire (JSON numbers or quoted strings), so conversion
// happens only at the gateway and display boundaries.

// ToPaise converts a wire decimal rupee amount to paise.
func ToPaise(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

// FromPaise converts paise to a decimal rupee amount for the wire.
func FromPaise(paise int64) decimal.Decimal {
	return decimal.New(paise, -2)
}

// ParsePaise parses a decimal rupee string (e.g. "50.00") into paise.
func ParsePaise(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return ToPaise(d), nil
}

// Format renders paise as a rupee string for receipts and logs, e.g. "₹50.00".
func Format(paise int64) string {
	return "₹" + FromPaise(paise).StringFixed(2)
}
