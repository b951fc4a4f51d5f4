package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Service is a catalog entry for a bookable home service. BasePrice is
// GST-exclusive; GSTPercentage, when set, overrides the global service rate.
type Service struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	CategoryID      uint             `gorm:"not null;index" json:"category_id"`
	Category        Category         `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category"`
	BrandID         *uint            `gorm:"index" json:"brand_id,omitempty"`
	Brand           *Brand           `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Name            string           `gorm:"type:varchar(255);not null" json:"name"`
	Description     string           `gorm:"type:text" json:"description"`
	BasePrice       decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"base_price"`
	VisitingCharges decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0.00" json:"visiting_charges"`
	GSTPercentage   *decimal.Decimal `gorm:"type:decimal(5,2)" json:"gst_percentage,omitempty"`
	DurationMinutes int              `json:"duration_minutes"`
	ImageUrls       string           `gorm:"type:text" json:"image_urls"` // JSON array of URLs
	IsActive        bool             `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (s *Service) SetImageUrls(urls []string) error {
	data, err := json.Marshal(urls)
	if err != nil {
		return err
	}
	s.ImageUrls = string(data)
	return nil
}

func (s *Service) GetImageUrls() []string {
	var urls []string
	if s.ImageUrls == "" {
		return urls
	}
	_ = json.Unmarshal([]byte(s.ImageUrls), &urls)
	return urls
}
