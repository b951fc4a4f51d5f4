package billing

import "github.com/shopspring/decimal"

// ItemCategory routes a line item to its default GST rate and its payout
// bucket. Custom items deliberately share the parts rate: ad-hoc vendor
// materials are settled like parts, not like labour.
type ItemCategory string

const (
	CategoryService ItemCategory = "service"
	CategoryPart    ItemCategory = "part"
	CategoryCustom  ItemCategory = "custom"
)

// DefaultGST returns the category's GST rate from the config snapshot.
func (c ItemCategory) DefaultGST(cfg PayoutConfig) decimal.Decimal {
	if c == CategoryService {
		return cfg.ServiceGSTPercentage
	}
	return cfg.PartsGSTPercentage
}

// AllowsGSTOverride reports whether a per-item GST rate may replace the
// category default. Services always bill at the service rate.
func (c ItemCategory) AllowsGSTOverride() bool {
	return c != CategoryService
}

// RawItem is an untrusted, client-submitted line item.
type RawItem struct {
	CatalogID     *uint
	Name          string
	Price         decimal.Decimal
	Quantity      int
	GSTPercentage *decimal.Decimal
}

// CatalogEntry is the resolved catalog row for a RawItem that references one.
// Its stored price always overrides the client-supplied price.
type CatalogEntry struct {
	Name          string
	Price         decimal.Decimal
	GSTPercentage *decimal.Decimal
}

// ResolvedItem pairs a raw item with its catalog row, if any. Lookups are
// batched by the caller before the engine runs.
type ResolvedItem struct {
	Raw   RawItem
	Entry *CatalogEntry
}

// ProcessedItem is a priced line: base, GST amount and inclusive total, each
// rounded to two decimals at the step it is computed.
type ProcessedItem struct {
	CatalogID     *uint           `json:"catalog_id,omitempty"`
	Name          string          `json:"name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      int             `json:"quantity"`
	GSTPercentage decimal.Decimal `json:"gst_percentage"`
	IsOriginal    bool            `json:"is_original"`
	Base          decimal.Decimal `json:"base"`
	GSTAmount     decimal.Decimal `json:"gst_amount"`
	Total         decimal.Decimal `json:"total"`
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ProcessItem normalizes one line item into a priced line.
//
// Resolution rules:
//   - a catalog entry's price and name override whatever the client sent
//   - negative prices clamp to zero, quantities below one clamp to one
//   - GST rate: catalog override, then client override (parts and custom items
//     only), then the category default from the config snapshot
func ProcessItem(item ResolvedItem, category ItemCategory, cfg PayoutConfig) ProcessedItem {
	raw := item.Raw

	name := raw.Name
	price := raw.Price
	var catalogGST *decimal.Decimal
	if item.Entry != nil {
		price = item.Entry.Price
		catalogGST = item.Entry.GSTPercentage
		if item.Entry.Name != "" {
			name = item.Entry.Name
		}
	}
	if price.IsNegative() {
		price = decimal.Zero
	}

	quantity := raw.Quantity
	if quantity < 1 {
		quantity = 1
	}

	gst := category.DefaultGST(cfg)
	if category.AllowsGSTOverride() {
		if catalogGST != nil {
			gst = clampPercentage(*catalogGST)
		} else if raw.GSTPercentage != nil {
			gst = clampPercentage(*raw.GSTPercentage)
		}
	}

	base := round2(price.Mul(decimal.NewFromInt(int64(quantity))))
	gstAmount := round2(base.Mul(gst).Div(hundred))
	total := round2(base.Add(gstAmount))

	return ProcessedItem{
		CatalogID:     raw.CatalogID,
		Name:          name,
		UnitPrice:     price,
		Quantity:      quantity,
		GSTPercentage: gst,
		Base:          base,
		GSTAmount:     gstAmount,
		Total:         total,
	}
}
