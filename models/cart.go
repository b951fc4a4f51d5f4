package models

import "time"

type CartItem struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	CustomerID    uint    `gorm:"not null;index" json:"customer_id"`
	Customer      User    `gorm:"foreignKey:CustomerID" json:"-"`
	ServiceID     uint    `gorm:"not null" json:"service_id"`
	Service       Service `gorm:"foreignKey:ServiceID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"service"`
	Quantity      int     `gorm:"not null;default:1" json:"quantity"`
	ScheduledDate string  `gorm:"type:varchar(10)" json:"scheduled_date"` // YYYY-MM-DD
	TimeSlot      string  `gorm:"type:varchar(20)" json:"time_slot"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
