package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Booking statuses. A bill may only be generated while the job is running or
// after it has finished.
const (
	BookingPending    = "pending"
	BookingAccepted   = "accepted"
	BookingInProgress = "in_progress"
	BookingCompleted  = "completed"
	BookingCancelled  = "cancelled"
)

type Booking struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	ReferenceNo string `gorm:"type:varchar(40);unique;not null" json:"reference_no"`
	CustomerID  uint   `gorm:"not null;index" json:"customer_id"`
	Customer    User   `gorm:"foreignKey:CustomerID" json:"customer"`
	VendorID    *uint  `gorm:"index" json:"vendor_id,omitempty"`
	Vendor      *User  `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	ServiceID   uint   `gorm:"not null" json:"service_id"`

	// Snapshot of the catalog entry at booking time; later catalog edits must
	// not change what the customer agreed to pay.
	ServiceName     string          `gorm:"type:varchar(255);not null" json:"service_name"`
	BasePrice       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"base_price"`
	VisitingCharges decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0.00" json:"visiting_charges"`

	Address       string     `gorm:"type:text" json:"address"`
	ScheduledDate string     `gorm:"type:varchar(10)" json:"scheduled_date"`
	TimeSlot      string     `gorm:"type:varchar(20)" json:"time_slot"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// GenerateReferenceNo builds a booking reference like BKG-20240131-9F3A21C4.
func GenerateReferenceNo() string {
	fragment := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	return fmt.Sprintf("BKG-%s-%s", time.Now().Format("20060102"), fragment)
}

// Billable reports whether a bill may be generated for the booking's state.
func (b *Booking) Billable() bool {
	return b.Status == BookingInProgress || b.Status == BookingCompleted
}
