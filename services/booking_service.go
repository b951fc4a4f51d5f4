package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/urbanserve/homeservice-app/events"
	"github.com/urbanserve/homeservice-app/models"
	"github.com/urbanserve/homeservice-app/utils"
)

// BookingService handles background housekeeping of the booking lifecycle.
type BookingService struct {
	db *gorm.DB

	// Pending bookings older than this are cancelled automatically.
	staleAfter time.Duration
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{
		db:         db,
		staleAfter: 48 * time.Hour,
	}
}

// StartStaleChecker runs the stale-booking sweep periodically. Intended to be
// launched as a goroutine at startup.
func (s *BookingService) StartStaleChecker() {
	ticker := time.NewTicker(15 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.CancelStaleBookings()
	}
}

// CancelStaleBookings cancels pending bookings that no vendor picked up within
// the cutoff and tells the customer.
func (s *BookingService) CancelStaleBookings() {
	cutoff := time.Now().Add(-s.staleAfter)

	var stale []models.Booking
	if err := s.db.Where("status = ? AND created_at < ?", models.BookingPending, cutoff).Find(&stale).Error; err != nil {
		utils.ErrorLogger.Printf("Error checking stale bookings: %v", err)
		return
	}

	for _, booking := range stale {
		booking.Status = models.BookingCancelled
		booking.UpdatedAt = time.Now()
		if err := s.db.Save(&booking).Error; err != nil {
			utils.ErrorLogger.Printf("Error cancelling stale booking %d: %v", booking.ID, err)
			continue
		}

		notification := models.Notification{
			UserID:    booking.CustomerID,
			Title:     "Booking cancelled",
			Message:   "Booking " + booking.ReferenceNo + " was cancelled because no vendor was available.",
			CreatedAt: time.Now(),
		}
		s.db.Create(&notification)

		events.BroadcastBookingUpdate(booking)
		utils.InfoLogger.Printf("Stale booking %d (%s) cancelled", booking.ID, booking.ReferenceNo)
	}
}
