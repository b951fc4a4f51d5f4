package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrencyINR formats an amount using Indian digit grouping.
// Example: 1234567.50 -> "Rs 12,34,567.50"
func FormatCurrencyINR(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = strings.TrimPrefix(fixed, "-")
	}

	parts := strings.Split(fixed, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	// Indian grouping: last three digits, then groups of two.
	var grouped string
	if len(integerPart) <= 3 {
		grouped = integerPart
	} else {
		grouped = integerPart[len(integerPart)-3:]
		rest := integerPart[:len(integerPart)-3]
		for len(rest) > 2 {
			grouped = rest[len(rest)-2:] + "," + grouped
			rest = rest[:len(rest)-2]
		}
		grouped = rest + "," + grouped
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%sRs %s.%s", sign, grouped, decimalPart)
}
