package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part is a vendor catalog entry for spare parts used during a job. The stored
// price is authoritative when a bill line references the part.
type Part struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	VendorID      uint             `gorm:"not null;index" json:"vendor_id"`
	Vendor        User             `gorm:"foreignKey:VendorID" json:"-"`
	Name          string           `gorm:"type:varchar(255);not null" json:"name"`
	Price         decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"price"`
	GSTPercentage *decimal.Decimal `gorm:"type:decimal(5,2)" json:"gst_percentage,omitempty"`
	IsActive      bool             `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
