package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urbanserve/homeservice-app/models"
	"github.com/urbanserve/homeservice-app/services"
	"github.com/urbanserve/homeservice-app/utils"
)

// DownloadBillPDF streams the booking's bill as a PDF attachment. Same access
// rules as GetBill.
func (bc *BillController) DownloadBillPDF(c *gin.Context) {
	userID := c.GetUint("user_id")
	role := c.GetString("role")

	var booking models.Booking
	if err := bc.DB.First(&booking, c.Param("booking_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("booking not found"))
		return
	}

	isVendor := booking.VendorID != nil && *booking.VendorID == userID
	isCustomer := booking.CustomerID == userID
	if role != "admin" && !isVendor && !isCustomer {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var bill models.Bill
	if err := bc.DB.Preload("Items").Where("booking_id = ?", booking.ID).First(&bill).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("no bill generated for this booking yet"))
		return
	}

	pdfBytes, err := services.NewBillPDFService().RenderBillPDF(&bill, &booking)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	filename := fmt.Sprintf("bill-%s.pdf", booking.ReferenceNo)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
