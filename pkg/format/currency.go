// Package format renders numbers for display in the fixed ja-JP locale.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// YenSymbol is the full-width yen sign used by the ja-JP currency format.
const YenSymbol = "￥"

var printer = message.NewPrinter(language.Japanese)

// Currency returns a JPY string with zero fraction digits and thousands
// separators (e.g., "￥244,452", "-￥1,235"). Halves round away from zero.
// Infinities render as "￥∞" and "-￥∞", NaN as "￥NaN".
func Currency(amount float64) string {
	switch {
	case math.IsNaN(amount):
		return YenSymbol + "NaN"
	case math.IsInf(amount, 1):
		return YenSymbol + infinity
	case math.IsInf(amount, -1):
		return "-" + YenSymbol + infinity
	}

	rounded := decimal.NewFromFloat(amount).Round(0)
	if rounded.IsNegative() {
		return "-" + YenSymbol + grouped(rounded.Neg())
	}
	return YenSymbol + grouped(rounded)
}

// Hours returns an hour figure with one decimal place (e.g., "62.9").
func Hours(hours float64) string {
	switch {
	case math.IsNaN(hours):
		return "NaN"
	case math.IsInf(hours, 1):
		return infinity
	case math.IsInf(hours, -1):
		return "-" + infinity
	}
	return fmt.Sprintf("%.1f", hours)
}

const infinity = "∞"

// grouped inserts separators into a non-negative whole amount. Amounts beyond
// int64 are grouped from their decimal digits.
func grouped(amount decimal.Decimal) string {
	n := amount.BigInt()
	if n.IsInt64() {
		return printer.Sprintf("%d", n.Int64())
	}

	digits := n.String()
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
