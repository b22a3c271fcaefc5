// Package format provides shared presentation helpers for money amounts and
// rates used by the markdown, SVG, and terminal renderers.
package format

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PnL renders a money amount with a leading sign, e.g. "+$125.50".
func PnL(v decimal.Decimal) string {
	if v.IsNegative() {
		return "-$" + v.Abs().StringFixed(2)
	}
	return "+$" + v.StringFixed(2)
}

// Money renders an unsigned money amount, e.g. "$125.50".
func Money(v decimal.Decimal) string {
	if v.IsNegative() {
		return "-$" + v.Abs().StringFixed(2)
	}
	return "$" + v.StringFixed(2)
}

// Rate renders a 0..1 rate as a percentage, e.g. "66.7%".
func Rate(r float64) string {
	return fmt.Sprintf("%.1f%%", r*100)
}

// Count renders an integer count.
func Count(n int) string {
	return fmt.Sprintf("%d", n)
}
