package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/urbanserve/homeservice-app/events"
	"github.com/urbanserve/homeservice-app/models"
	"github.com/urbanserve/homeservice-app/utils"
)

type BookingController struct {
	DB *gorm.DB
}

func NewBookingController(db *gorm.DB) *BookingController {
	return &BookingController{DB: db}
}

// CreateBooking books a single service directly. Pricing is frozen from the
// catalog at booking time.
func (bkc *BookingController) CreateBooking(c *gin.Context) {
	customerID := c.GetUint("user_id")

	type reqBody struct {
		ServiceID     uint   `json:"service_id" binding:"required"`
		Address       string `json:"address" binding:"required"`
		ScheduledDate string `json:"scheduled_date"`
		TimeSlot      string `json:"time_slot"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var service models.Service
	if err := bkc.DB.Where("id = ? AND is_active = ?", body.ServiceID, true).First(&service).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("service not found"))
		return
	}

	booking := models.Booking{
		ReferenceNo:     models.GenerateReferenceNo(),
		CustomerID:      customerID,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		BasePrice:       service.BasePrice,
		VisitingCharges: service.VisitingCharges,
		Address:         body.Address,
		ScheduledDate:   body.ScheduledDate,
		TimeSlot:        body.TimeSlot,
		Status:          models.BookingPending,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := bkc.DB.Create(&booking).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastBookingUpdate(booking)

	utils.RespondJSON(c, http.StatusCreated, "Booking created", booking)
}

// Checkout converts every cart item into a booking and clears the cart.
func (bkc *BookingController) Checkout(c *gin.Context) {
	customerID := c.GetUint("user_id")

	type reqBody struct {
		Address string `json:"address" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var items []models.CartItem
	if err := bkc.DB.Preload("Service").Where("customer_id = ?", customerID).Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if len(items) == 0 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("cart is empty"))
		return
	}

	tx := bkc.DB.Begin()
	var bookings []models.Booking
	for _, item := range items {
		booking := models.Booking{
			ReferenceNo:     models.GenerateReferenceNo(),
			CustomerID:      customerID,
			ServiceID:       item.ServiceID,
			ServiceName:     item.Service.Name,
			BasePrice:       item.Service.BasePrice,
			VisitingCharges: item.Service.VisitingCharges,
			Address:         body.Address,
			ScheduledDate:   item.ScheduledDate,
			TimeSlot:        item.TimeSlot,
			Status:          models.BookingPending,
			CreatedAt:       time.Now(),
			UpdatedAt:       time.Now(),
		}
		if err := tx.Create(&booking).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		bookings = append(bookings, booking)
	}
	if err := tx.Where("customer_id = ?", customerID).Delete(&models.CartItem{}).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	tx.Commit()

	for _, booking := range bookings {
		events.BroadcastBookingUpdate(booking)
	}

	utils.RespondJSON(c, http.StatusCreated, "Bookings created", bookings)
}

// GetMyBookings lists the caller's bookings: the customer's own, or the
// vendor's assigned jobs.
func (bkc *BookingController) GetMyBookings(c *gin.Context) {
	userID := c.GetUint("user_id")
	role := c.GetString("role")

	query := bkc.DB.Order("created_at desc")
	switch role {
	case "vendor":
		query = query.Where("vendor_id = ?", userID)
	default:
		query = query.Where("customer_id = ?", userID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of bookings", bookings)
}

// GetAllBookings lists every booking (admin).
func (bkc *BookingController) GetAllBookings(c *gin.Context) {
	query := bkc.DB.Preload("Customer").Preload("Vendor").Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of bookings", bookings)
}

// GetBookingByID returns one booking for its customer, its vendor or an admin.
func (bkc *BookingController) GetBookingByID(c *gin.Context) {
	userID := c.GetUint("user_id")
	role := c.GetString("role")

	var booking models.Booking
	if err := bkc.DB.First(&booking, c.Param("booking_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	isVendor := booking.VendorID != nil && *booking.VendorID == userID
	if role != "admin" && booking.CustomerID != userID && !isVendor {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Booking detail", booking)
}

// AssignVendor attaches a vendor to a pending booking (admin).
func (bkc *BookingController) AssignVendor(c *gin.Context) {
	var body struct {
		VendorID uint `json:"vendor_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var booking models.Booking
	if err := bkc.DB.First(&booking, c.Param("booking_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var vendor models.User
	if err := bkc.DB.Where("id = ? AND role = ?", body.VendorID, "vendor").First(&vendor).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("vendor not found"))
		return
	}

	booking.VendorID = &vendor.ID
	booking.UpdatedAt = time.Now()
	if err := bkc.DB.Save(&booking).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	notification := models.Notification{
		UserID:    vendor.ID,
		Title:     "New job assigned",
		Message:   fmt.Sprintf("Booking %s (%s) has been assigned to you", booking.ReferenceNo, booking.ServiceName),
		CreatedAt: time.Now(),
	}
	bkc.DB.Create(&notification)

	events.BroadcastBookingAssigned(booking)

	utils.RespondJSON(c, http.StatusOK, "Vendor assigned", booking)
}

// AcceptBooking -> vendor accepts an assigned pending booking.
func (bkc *BookingController) AcceptBooking(c *gin.Context) {
	bkc.transition(c, models.BookingPending, models.BookingAccepted, "Booking accepted")
}

// StartJob -> vendor marks an accepted booking in progress.
func (bkc *BookingController) StartJob(c *gin.Context) {
	bkc.transition(c, models.BookingAccepted, models.BookingInProgress, "Job started")
}

// CompleteJob -> vendor finishes a running job.
func (bkc *BookingController) CompleteJob(c *gin.Context) {
	booking := bkc.transition(c, models.BookingInProgress, models.BookingCompleted, "Job completed")
	if booking != nil {
		now := time.Now()
		booking.CompletedAt = &now
		bkc.DB.Save(booking)
	}
}

// transition moves a booking between lifecycle states after checking the
// vendor owns it and it is in the expected state.
func (bkc *BookingController) transition(c *gin.Context, from, to, message string) *models.Booking {
	vendorID := c.GetUint("user_id")

	var booking models.Booking
	if err := bkc.DB.First(&booking, c.Param("booking_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return nil
	}

	if booking.VendorID == nil || *booking.VendorID != vendorID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return nil
	}

	if booking.Status != from {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("booking not in %s status", from))
		return nil
	}

	booking.Status = to
	booking.UpdatedAt = time.Now()
	if err := bkc.DB.Save(&booking).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return nil
	}

	events.BroadcastBookingUpdate(booking)
	utils.RespondJSON(c, http.StatusOK, message, booking)
	return &booking
}

// CancelBooking cancels a booking that has not started yet. Customers may
// cancel their own; admins may cancel any.
func (bkc *BookingController) CancelBooking(c *gin.Context) {
	userID := c.GetUint("user_id")
	role := c.GetString("role")

	var booking models.Booking
	if err := bkc.DB.First(&booking, c.Param("booking_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if role != "admin" && booking.CustomerID != userID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	if booking.Status != models.BookingPending && booking.Status != models.BookingAccepted {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("booking can no longer be cancelled"))
		return
	}

	booking.Status = models.BookingCancelled
	booking.UpdatedAt = time.Now()
	if err := bkc.DB.Save(&booking).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastBookingUpdate(booking)
	utils.RespondJSON(c, http.StatusOK, "Booking cancelled", booking)
}
