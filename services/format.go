package services

import (
	"fmt"
	"math"
	"strings"
)

// FormatTRY formats a float64 amount into Turkish lira notation: dots
// group thousands, a comma separates the decimals and the lira sign
// follows the number (e.g. 1.234.567,89 ₺). The result always carries
// exactly 2 decimal places.
func FormatTRY(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)

	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := applyTurkishGrouping(intPart) + "," + decPart + " ₺"
	if negative {
		result = "-" + result
	}
	return result
}

// applyTurkishGrouping inserts dots into an integer string, grouping
// digits in threes from the right.
func applyTurkishGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]

	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "." + result
		remaining = remaining[:len(remaining)-3]
	}
	if len(remaining) > 0 {
		result = remaining + "." + result
	}

	return result
}

// formatQty returns a string representation of a quantity value.
// Whole numbers are formatted without decimals; fractional values get 2 decimal places.
func formatQty(qty float64) string {
	if qty == math.Trunc(qty) {
		return fmt.Sprintf("%.0f", qty)
	}
	return fmt.Sprintf("%.2f", qty)
}
