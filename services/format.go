package services

import (
	"fmt"
	"strings"
)

// FormatIDR formats an amount into Indonesian Rupiah notation, grouping the
// integer part with dots and using a comma before decimals
// (e.g., Rp1.234.567,50). Whole amounts omit the decimal part.
func FormatIDR(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)

	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := "Rp" + groupThousands(intPart)
	if decPart != "00" {
		result += "," + decPart
	}
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts dots between every group of three digits,
// counting from the right.
func groupThousands(s string) string {
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
	return remaining + "." + result
}

// FormatDimensions renders a length/width pair in meters with two decimals,
// as embedded in area line item names.
func FormatDimensions(lengthM, widthM float64) string {
	return fmt.Sprintf("%.2fm x %.2fm", lengthM, widthM)
}
