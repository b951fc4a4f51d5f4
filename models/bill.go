package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Money fields serialize as JSON numbers, never quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Bill statuses. A bill is recomputed in full on every generation and frozen
// once paid.
const (
	BillDraft     = "draft"
	BillGenerated = "generated"
	BillPaid      = "paid"
)

// Bill line-item categories. Custom items share the parts payout rate, so they
// aggregate into the parts bucket.
const (
	BillItemService = "service"
	BillItemPart    = "part"
	BillItemCustom  = "custom"
)

// Bill is the itemized settlement document for one booking. At most one bill
// exists per booking; regeneration replaces the whole record.
type Bill struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	BookingID uint    `gorm:"uniqueIndex;not null" json:"booking_id"`
	Booking   Booking `gorm:"foreignKey:BookingID" json:"-"`
	VendorID  uint    `gorm:"not null;index" json:"vendor_id"`
	Vendor    User    `gorm:"foreignKey:VendorID" json:"-"`

	Items []BillItem `gorm:"foreignKey:BillID" json:"items"`

	// Base aggregates (all GST-exclusive).
	OriginalServiceBase decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"original_service_base"`
	VendorServiceBase   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"vendor_service_base"`
	TotalServiceBase    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_service_base"`
	TotalPartsBase      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_parts_base"`
	VisitingCharges     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"visiting_charges"`

	// GST aggregates.
	OriginalGST      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"original_gst"`
	VendorServiceGST decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"vendor_service_gst"`
	PartsGST         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"parts_gst"`
	TotalGST         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_gst"`

	GrandTotal decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"grand_total"`

	// Payout configuration frozen at generation time.
	ServiceSplitPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"service_split_percentage"`
	PartsSplitPercentage   decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"parts_split_percentage"`
	ServiceGSTPercentage   decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"service_gst_percentage"`
	PartsGSTPercentage     decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"parts_gst_percentage"`

	// Revenue split. CompanyRevenue is the residual of the grand total, so the
	// two sides always reconcile exactly.
	VendorServiceEarning decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"vendor_service_earning"`
	VendorPartsEarning   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"vendor_parts_earning"`
	VendorTotalEarning   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"vendor_total_earning"`
	CompanyRevenue       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"company_revenue"`

	Status      string     `gorm:"type:varchar(20);not null;default:'generated'" json:"status"`
	GeneratedAt time.Time  `gorm:"not null" json:"generated_at"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

type BillItem struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	BillID uint `gorm:"not null;index" json:"bill_id"`
	Bill   Bill `gorm:"-" json:"-"`

	Category      string          `gorm:"type:varchar(10);not null" json:"category"`
	CatalogID     *uint           `json:"catalog_id,omitempty"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	GSTPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"gst_percentage"`
	IsOriginal    bool            `gorm:"not null;default:false" json:"is_original"`

	Base      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"base"`
	GSTAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"gst_amount"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
