package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayoutSetting is the single global settings row governing the vendor revenue
// split and GST rates. A missing row, or an unset field, falls back to the
// documented defaults (70 / 10 / 18 / 18) at bill-generation time.
type PayoutSetting struct {
	ID                     uint            `gorm:"primaryKey" json:"id"`
	ServiceSplitPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null;default:70.00" json:"service_split_percentage"`
	PartsSplitPercentage   decimal.Decimal `gorm:"type:decimal(5,2);not null;default:10.00" json:"parts_split_percentage"`
	ServiceGSTPercentage   decimal.Decimal `gorm:"type:decimal(5,2);not null;default:18.00" json:"service_gst_percentage"`
	PartsGSTPercentage     decimal.Decimal `gorm:"type:decimal(5,2);not null;default:18.00" json:"parts_gst_percentage"`
	UpdatedBy              *uint           `json:"updated_by,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
