package billing

import "github.com/shopspring/decimal"

// BookingCharge carries the original booking's frozen pricing into the bill.
// VisitingCharges are GST-exempt and pass straight through to the grand total.
type BookingCharge struct {
	ServiceName     string
	BasePrice       decimal.Decimal
	VisitingCharges decimal.Decimal
}

// Breakdown is the fully computed bill: processed line items, category
// aggregates, grand total and the two-party revenue split, together with the
// config snapshot they were computed under.
type Breakdown struct {
	Services    []ProcessedItem `json:"services"`
	Parts       []ProcessedItem `json:"parts"`
	CustomItems []ProcessedItem `json:"custom_items"`

	OriginalServiceBase decimal.Decimal `json:"original_service_base"`
	VendorServiceBase   decimal.Decimal `json:"vendor_service_base"`
	TotalServiceBase    decimal.Decimal `json:"total_service_base"`
	TotalPartsBase      decimal.Decimal `json:"total_parts_base"`
	VisitingCharges     decimal.Decimal `json:"visiting_charges"`

	OriginalGST      decimal.Decimal `json:"original_gst"`
	VendorServiceGST decimal.Decimal `json:"vendor_service_gst"`
	PartsGST         decimal.Decimal `json:"parts_gst"`
	TotalGST         decimal.Decimal `json:"total_gst"`

	GrandTotal decimal.Decimal `json:"grand_total"`

	Config PayoutConfig `json:"payout_config"`

	VendorServiceEarning decimal.Decimal `json:"vendor_service_earning"`
	VendorPartsEarning   decimal.Decimal `json:"vendor_parts_earning"`
	VendorTotalEarning   decimal.Decimal `json:"vendor_total_earning"`
	CompanyRevenue       decimal.Decimal `json:"company_revenue"`
}

// Generate folds the original booking charge and the vendor-submitted line
// items into a complete Breakdown.
//
// The split percentages apply to base amounts only, so all GST stays on the
// company side by construction. CompanyRevenue is the residual of the grand
// total rather than an independently derived figure; any sub-cent rounding
// drift lands on the company side and the split always reconciles exactly:
//
//	VendorTotalEarning + CompanyRevenue == GrandTotal
func Generate(charge BookingCharge, services, parts, customItems []ResolvedItem, cfg PayoutConfig) Breakdown {
	bd := Breakdown{Config: cfg}

	// The original service line is priced from the booking snapshot, never
	// from client input.
	original := ProcessItem(ResolvedItem{Raw: RawItem{
		Name:     charge.ServiceName,
		Price:    charge.BasePrice,
		Quantity: 1,
	}}, CategoryService, cfg)
	original.IsOriginal = true
	bd.Services = append(bd.Services, original)
	bd.OriginalServiceBase = original.Base
	bd.OriginalGST = original.GSTAmount

	bd.VendorServiceBase = decimal.Zero
	bd.VendorServiceGST = decimal.Zero
	for _, item := range services {
		processed := ProcessItem(item, CategoryService, cfg)
		bd.Services = append(bd.Services, processed)
		bd.VendorServiceBase = bd.VendorServiceBase.Add(processed.Base)
		bd.VendorServiceGST = bd.VendorServiceGST.Add(processed.GSTAmount)
	}

	// Parts and custom items share one aggregate bucket.
	bd.TotalPartsBase = decimal.Zero
	bd.PartsGST = decimal.Zero
	for _, item := range parts {
		processed := ProcessItem(item, CategoryPart, cfg)
		bd.Parts = append(bd.Parts, processed)
		bd.TotalPartsBase = bd.TotalPartsBase.Add(processed.Base)
		bd.PartsGST = bd.PartsGST.Add(processed.GSTAmount)
	}
	for _, item := range customItems {
		processed := ProcessItem(item, CategoryCustom, cfg)
		bd.CustomItems = append(bd.CustomItems, processed)
		bd.TotalPartsBase = bd.TotalPartsBase.Add(processed.Base)
		bd.PartsGST = bd.PartsGST.Add(processed.GSTAmount)
	}

	visiting := charge.VisitingCharges
	if visiting.IsNegative() {
		visiting = decimal.Zero
	}
	bd.VisitingCharges = round2(visiting)

	bd.TotalServiceBase = bd.OriginalServiceBase.Add(bd.VendorServiceBase)
	bd.TotalGST = bd.OriginalGST.Add(bd.VendorServiceGST).Add(bd.PartsGST)
	bd.GrandTotal = round2(bd.TotalServiceBase.
		Add(bd.TotalPartsBase).
		Add(bd.TotalGST).
		Add(bd.VisitingCharges))

	bd.VendorServiceEarning = round2(bd.TotalServiceBase.Mul(cfg.ServiceSplitPercentage).Div(hundred))
	bd.VendorPartsEarning = round2(bd.TotalPartsBase.Mul(cfg.PartsSplitPercentage).Div(hundred))
	bd.VendorTotalEarning = bd.VendorServiceEarning.Add(bd.VendorPartsEarning)
	bd.CompanyRevenue = bd.GrandTotal.Sub(bd.VendorTotalEarning)

	return bd
}
