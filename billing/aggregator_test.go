package billing

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func baseCharge() BookingCharge {
	return BookingCharge{
		ServiceName:     "AC Service",
		BasePrice:       dec("1000"),
		VisitingCharges: dec("50"),
	}
}

func TestGenerateBookingOnly(t *testing.T) {
	bd := Generate(baseCharge(), nil, nil, nil, DefaultPayoutConfig())

	assert.Len(t, bd.Services, 1)
	assert.True(t, bd.Services[0].IsOriginal)
	assert.True(t, bd.OriginalServiceBase.Equal(dec("1000")))
	assert.True(t, bd.OriginalGST.Equal(dec("180")))
	assert.True(t, bd.TotalServiceBase.Equal(dec("1000")))
	assert.True(t, bd.TotalPartsBase.IsZero())
	assert.True(t, bd.TotalGST.Equal(dec("180")))
	assert.True(t, bd.GrandTotal.Equal(dec("1230")))
	assert.True(t, bd.VendorServiceEarning.Equal(dec("700")))
	assert.True(t, bd.VendorPartsEarning.IsZero())
	assert.True(t, bd.VendorTotalEarning.Equal(dec("700")))
	assert.True(t, bd.CompanyRevenue.Equal(dec("530")))
}

func TestGenerateWithVendorService(t *testing.T) {
	services := []ResolvedItem{
		{Raw: RawItem{Name: "Extra wiring", Price: dec("200"), Quantity: 1}},
	}

	bd := Generate(baseCharge(), services, nil, nil, DefaultPayoutConfig())

	assert.True(t, bd.VendorServiceBase.Equal(dec("200")))
	assert.True(t, bd.TotalServiceBase.Equal(dec("1200")))
	assert.True(t, bd.VendorServiceGST.Equal(dec("36")))
	assert.True(t, bd.TotalGST.Equal(dec("216")))
	assert.True(t, bd.GrandTotal.Equal(dec("1466")))
	assert.True(t, bd.VendorServiceEarning.Equal(dec("840")))
	assert.True(t, bd.CompanyRevenue.Equal(dec("626")))
	assert.True(t, bd.VendorTotalEarning.Add(bd.CompanyRevenue).Equal(bd.GrandTotal))
}

func TestGenerateWithPartOverride(t *testing.T) {
	services := []ResolvedItem{
		{Raw: RawItem{Name: "Extra wiring", Price: dec("200"), Quantity: 1}},
	}
	parts := []ResolvedItem{
		{Raw: RawItem{Name: "Filter", Price: dec("100"), Quantity: 2, GSTPercentage: decPtr("12")}},
	}

	bd := Generate(baseCharge(), services, parts, nil, DefaultPayoutConfig())

	assert.True(t, bd.TotalPartsBase.Equal(dec("200")))
	assert.True(t, bd.PartsGST.Equal(dec("24")))
	// 1200 + 200 + (180+36+24) + 50
	assert.True(t, bd.GrandTotal.Equal(dec("1690")))
	assert.True(t, bd.VendorPartsEarning.Equal(dec("20")))
	assert.True(t, bd.VendorTotalEarning.Equal(dec("860")))
	assert.True(t, bd.CompanyRevenue.Equal(dec("830")))
	assert.True(t, bd.VendorTotalEarning.Add(bd.CompanyRevenue).Equal(bd.GrandTotal))
}

// Custom items must fold into the parts bucket, never the service bucket.
func TestGenerateCustomItemsRouteToPartsBucket(t *testing.T) {
	custom := []ResolvedItem{
		{Raw: RawItem{Name: "Copper pipe", Price: dec("150"), Quantity: 1}},
	}

	bd := Generate(baseCharge(), nil, nil, custom, DefaultPayoutConfig())

	assert.True(t, bd.TotalServiceBase.Equal(dec("1000")))
	assert.True(t, bd.TotalPartsBase.Equal(dec("150")))
	assert.True(t, bd.PartsGST.Equal(dec("27")))
	assert.Len(t, bd.CustomItems, 1)
	// Paid out at the parts split rate.
	assert.True(t, bd.VendorPartsEarning.Equal(dec("15")))
}

// Changing GST rates while holding bases constant must not move the vendor's
// earnings: the split applies to base amounts only.
func TestGenerateGSTNeverReachesVendorEarnings(t *testing.T) {
	parts := []ResolvedItem{
		{Raw: RawItem{Name: "Filter", Price: dec("100"), Quantity: 2, GSTPercentage: decPtr("12")}},
	}
	bd1 := Generate(baseCharge(), nil, parts, nil, DefaultPayoutConfig())

	parts[0].Raw.GSTPercentage = decPtr("28")
	bd2 := Generate(baseCharge(), nil, parts, nil, DefaultPayoutConfig())

	assert.False(t, bd1.PartsGST.Equal(bd2.PartsGST))
	assert.True(t, bd1.VendorServiceEarning.Equal(bd2.VendorServiceEarning))
	assert.True(t, bd1.VendorPartsEarning.Equal(bd2.VendorPartsEarning))
	assert.True(t, bd1.VendorTotalEarning.Equal(bd2.VendorTotalEarning))
}

func TestGenerateDeterministic(t *testing.T) {
	services := []ResolvedItem{
		{Raw: RawItem{Name: "Extra wiring", Price: dec("200"), Quantity: 1}},
	}
	parts := []ResolvedItem{
		{Raw: RawItem{Name: "Filter", Price: dec("100"), Quantity: 2, GSTPercentage: decPtr("12")}},
	}

	bd1 := Generate(baseCharge(), services, parts, nil, DefaultPayoutConfig())
	bd2 := Generate(baseCharge(), services, parts, nil, DefaultPayoutConfig())

	j1, err := json.Marshal(bd1)
	assert.NoError(t, err)
	j2, err := json.Marshal(bd2)
	assert.NoError(t, err)
	assert.Equal(t, string(j1), string(j2))
}

// The residual definition of company revenue must absorb rounding drift from
// awkward split percentages.
func TestGenerateSplitInvariantUnderRoundingDrift(t *testing.T) {
	cfg := ConfigFromSettings(dec("33.33"), dec("7.77"), dec("18"), dec("12"))

	cases := []struct {
		base     string
		visiting string
		part     string
		qty      int
	}{
		{"999.99", "49.50", "33.33", 3},
		{"0.01", "0", "0.01", 1},
		{"123.45", "67.89", "11.11", 7},
		{"1000", "50", "99.99", 9},
	}

	for _, tc := range cases {
		charge := BookingCharge{
			ServiceName:     "Job",
			BasePrice:       dec(tc.base),
			VisitingCharges: dec(tc.visiting),
		}
		parts := []ResolvedItem{
			{Raw: RawItem{Name: "Part", Price: dec(tc.part), Quantity: tc.qty}},
		}

		bd := Generate(charge, nil, parts, nil, cfg)

		sum := bd.VendorTotalEarning.Add(bd.CompanyRevenue)
		assert.True(t, sum.Equal(bd.GrandTotal),
			"base=%s: %s + %s != %s", tc.base, bd.VendorTotalEarning, bd.CompanyRevenue, bd.GrandTotal)
	}
}

func TestGenerateNegativeInputsNeverGoNegative(t *testing.T) {
	charge := BookingCharge{
		ServiceName:     "Job",
		BasePrice:       dec("-100"),
		VisitingCharges: dec("-20"),
	}
	parts := []ResolvedItem{
		{Raw: RawItem{Name: "Part", Price: dec("-5"), Quantity: -2}},
	}

	bd := Generate(charge, nil, parts, nil, DefaultPayoutConfig())

	assert.False(t, bd.GrandTotal.IsNegative())
	assert.True(t, bd.GrandTotal.IsZero())
	assert.True(t, bd.VisitingCharges.IsZero())
}

func TestGenerateZeroSplitSendsEverythingToCompany(t *testing.T) {
	// Percentages inside the engine are taken as-is; a zero split is legal.
	cfg := DefaultPayoutConfig()
	cfg.ServiceSplitPercentage = decimal.Zero
	cfg.PartsSplitPercentage = decimal.Zero

	bd := Generate(baseCharge(), nil, nil, nil, cfg)

	assert.True(t, bd.VendorTotalEarning.IsZero())
	assert.True(t, bd.CompanyRevenue.Equal(bd.GrandTotal))
}
