// Package billing computes vendor bills: it prices heterogeneous line items
// under a frozen payout-configuration snapshot, aggregates base/GST/total
// amounts and derives the vendor/company revenue split. The package is pure:
// no database, no HTTP, fully deterministic for a given input.
package billing

import "github.com/shopspring/decimal"

var (
	defaultServiceSplit = decimal.NewFromInt(70)
	defaultPartsSplit   = decimal.NewFromInt(10)
	defaultServiceGST   = decimal.NewFromInt(18)
	defaultPartsGST     = decimal.NewFromInt(18)

	hundred = decimal.NewFromInt(100)
)

// PayoutConfig is the snapshot of the four percentages governing the split.
// It is captured once per bill generation and stored inside the bill, so a
// later settings change never mutates an already generated bill.
type PayoutConfig struct {
	ServiceSplitPercentage decimal.Decimal `json:"service_split_percentage"`
	PartsSplitPercentage   decimal.Decimal `json:"parts_split_percentage"`
	ServiceGSTPercentage   decimal.Decimal `json:"service_gst_percentage"`
	PartsGSTPercentage     decimal.Decimal `json:"parts_gst_percentage"`
}

// DefaultPayoutConfig returns the documented defaults: 70% service split,
// 10% parts split, 18% GST on both categories.
func DefaultPayoutConfig() PayoutConfig {
	return PayoutConfig{
		ServiceSplitPercentage: defaultServiceSplit,
		PartsSplitPercentage:   defaultPartsSplit,
		ServiceGSTPercentage:   defaultServiceGST,
		PartsGSTPercentage:     defaultPartsGST,
	}
}

// ConfigFromSettings builds a snapshot from stored settings values. An unset
// (zero) field falls back to its default rather than failing; every value is
// clamped into [0, 100]. A stored zero is indistinguishable from unset, which
// matches the settings document this system replaces.
func ConfigFromSettings(serviceSplit, partsSplit, serviceGST, partsGST decimal.Decimal) PayoutConfig {
	return PayoutConfig{
		ServiceSplitPercentage: fieldOrDefault(serviceSplit, defaultServiceSplit),
		PartsSplitPercentage:   fieldOrDefault(partsSplit, defaultPartsSplit),
		ServiceGSTPercentage:   fieldOrDefault(serviceGST, defaultServiceGST),
		PartsGSTPercentage:     fieldOrDefault(partsGST, defaultPartsGST),
	}
}

func fieldOrDefault(v, def decimal.Decimal) decimal.Decimal {
	if v.IsZero() {
		return def
	}
	return clampPercentage(v)
}

func clampPercentage(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	if v.GreaterThan(hundred) {
		return hundred
	}
	return v
}
