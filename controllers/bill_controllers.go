package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/urbanserve/homeservice-app/billing"
	"github.com/urbanserve/homeservice-app/events"
	"github.com/urbanserve/homeservice-app/models"
	"github.com/urbanserve/homeservice-app/utils"
)

type BillController struct {
	DB *gorm.DB
}

func NewBillController(db *gorm.DB) *BillController {
	return &BillController{DB: db}
}

// BillItemRequest is the raw client shape of one line item. Prices and
// quantities are untrusted; the engine clamps them.
type BillItemRequest struct {
	CatalogID     *uint            `json:"catalog_id,omitempty"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	Quantity      int              `json:"quantity"`
	GSTPercentage *decimal.Decimal `json:"gst_percentage,omitempty"`
}

// CreateOrUpdateBill generates the bill for a booking from the vendor's
// submitted line items. Regeneration replaces the previous bill in full;
// there is no merging of line items.
func (bc *BillController) CreateOrUpdateBill(c *gin.Context) {
	vendorID := c.GetUint("user_id")
	bookingID := c.Param("booking_id")

	var booking models.Booking
	if err := bc.DB.First(&booking, bookingID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("booking not found"))
		return
	}

	if booking.VendorID == nil || *booking.VendorID != vendorID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	if !booking.Billable() {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("booking is %s, bill can only be generated for a running or finished job", booking.Status))
		return
	}

	var existing models.Bill
	hasExisting := bc.DB.Where("booking_id = ?", booking.ID).First(&existing).Error == nil
	if hasExisting && existing.Status == models.BillPaid {
		utils.RespondError(c, http.StatusConflict, errors.New("bill is already settled and cannot be regenerated"))
		return
	}

	type reqBody struct {
		Services    []BillItemRequest `json:"services"`
		Parts       []BillItemRequest `json:"parts"`
		CustomItems []BillItemRequest `json:"custom_items"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// Batch-fetch every referenced catalog entry up front. Unknown catalog
	// IDs are rejected rather than silently falling back to client prices.
	serviceEntries, err := bc.lookupServiceEntries(body.Services)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	partEntries, err := bc.lookupPartEntries(body.Parts)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	cfg := bc.payoutConfig()

	breakdown := billing.Generate(
		billing.BookingCharge{
			ServiceName:     booking.ServiceName,
			BasePrice:       booking.BasePrice,
			VisitingCharges: booking.VisitingCharges,
		},
		resolveItems(body.Services, serviceEntries),
		resolveItems(body.Parts, partEntries),
		resolveItems(body.CustomItems, nil), // custom items never reference a catalog
		cfg,
	)

	bill := billToModel(booking, vendorID, breakdown)

	// Full replace keyed by booking ID. Either the whole new bill lands or
	// nothing changes.
	tx := bc.DB.Begin()
	if hasExisting {
		if err := tx.Where("bill_id = ?", existing.ID).Delete(&models.BillItem{}).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		if err := tx.Delete(&models.Bill{}, existing.ID).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}
	if err := tx.Create(&bill).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	notification := models.Notification{
		UserID:    booking.CustomerID,
		Title:     "Bill generated",
		Message:   fmt.Sprintf("Bill for booking %s: %s", booking.ReferenceNo, utils.FormatCurrencyINR(bill.GrandTotal)),
		CreatedAt: time.Now(),
	}
	bc.DB.Create(&notification)

	events.BroadcastBillGenerated(bill)

	utils.RespondJSON(c, http.StatusOK, "Bill generated", gin.H{
		"bill":       bill,
		"financials": billFinancials(bill),
	})
}

// GetBill returns the last generated bill for a booking.
func (bc *BillController) GetBill(c *gin.Context) {
	userID := c.GetUint("user_id")
	role := c.GetString("role")
	bookingID := c.Param("booking_id")

	var booking models.Booking
	if err := bc.DB.First(&booking, bookingID).Error; err != nil {
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

	utils.RespondJSON(c, http.StatusOK, "Bill detail", gin.H{
		"bill":       bill,
		"financials": billFinancials(bill),
	})
}

// MarkBillPaid settles a bill. Paid bills are frozen.
func (bc *BillController) MarkBillPaid(c *gin.Context) {
	bookingID := c.Param("booking_id")

	var bill models.Bill
	if err := bc.DB.Where("booking_id = ?", bookingID).First(&bill).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("no bill found for booking"))
		return
	}

	if bill.Status == models.BillPaid {
		utils.RespondError(c, http.StatusBadRequest, errors.New("bill is already paid"))
		return
	}

	now := time.Now()
	bill.Status = models.BillPaid
	bill.PaidAt = &now
	bill.UpdatedAt = now
	if err := bc.DB.Save(&bill).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastBillPaid(bill)

	utils.RespondJSON(c, http.StatusOK, "Bill marked as paid", bill)
}

// GetAllBills lists bills for the admin, newest first.
func (bc *BillController) GetAllBills(c *gin.Context) {
	query := bc.DB.Preload("Items").Order("generated_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var bills []models.Bill
	if err := query.Find(&bills).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of bills", bills)
}

// payoutConfig reads the global settings row once and freezes it into a
// snapshot. A missing row yields the documented defaults.
func (bc *BillController) payoutConfig() billing.PayoutConfig {
	var setting models.PayoutSetting
	if err := bc.DB.First(&setting).Error; err != nil {
		return billing.DefaultPayoutConfig()
	}
	return billing.ConfigFromSettings(
		setting.ServiceSplitPercentage,
		setting.PartsSplitPercentage,
		setting.ServiceGSTPercentage,
		setting.PartsGSTPercentage,
	)
}

func (bc *BillController) lookupServiceEntries(items []BillItemRequest) (map[uint]*billing.CatalogEntry, error) {
	ids := catalogIDs(items)
	if len(ids) == 0 {
		return nil, nil
	}

	var services []models.Service
	if err := bc.DB.Where("id IN ?", ids).Find(&services).Error; err != nil {
		return nil, err
	}

	entries := make(map[uint]*billing.CatalogEntry, len(services))
	for _, s := range services {
		entries[s.ID] = &billing.CatalogEntry{
			Name:          s.Name,
			Price:         s.BasePrice,
			GSTPercentage: s.GSTPercentage,
		}
	}
	for _, id := range ids {
		if _, ok := entries[id]; !ok {
			return nil, fmt.Errorf("service catalog entry %d not found", id)
		}
	}
	return entries, nil
}

func (bc *BillController) lookupPartEntries(items []BillItemRequest) (map[uint]*billing.CatalogEntry, error) {
	ids := catalogIDs(items)
	if len(ids) == 0 {
		return nil, nil
	}

	var parts []models.Part
	if err := bc.DB.Where("id IN ?", ids).Find(&parts).Error; err != nil {
		return nil, err
	}

	entries := make(map[uint]*billing.CatalogEntry, len(parts))
	for _, p := range parts {
		entries[p.ID] = &billing.CatalogEntry{
			Name:          p.Name,
			Price:         p.Price,
			GSTPercentage: p.GSTPercentage,
		}
	}
	for _, id := range ids {
		if _, ok := entries[id]; !ok {
			return nil, fmt.Errorf("part catalog entry %d not found", id)
		}
	}
	return entries, nil
}

func catalogIDs(items []BillItemRequest) []uint {
	var ids []uint
	for _, item := range items {
		if item.CatalogID != nil {
			ids = append(ids, *item.CatalogID)
		}
	}
	return ids
}

func resolveItems(items []BillItemRequest, entries map[uint]*billing.CatalogEntry) []billing.ResolvedItem {
	resolved := make([]billing.ResolvedItem, 0, len(items))
	for _, item := range items {
		ri := billing.ResolvedItem{Raw: billing.RawItem{
			CatalogID:     item.CatalogID,
			Name:          item.Name,
			Price:         item.Price,
			Quantity:      item.Quantity,
			GSTPercentage: item.GSTPercentage,
		}}
		if entries != nil && item.CatalogID != nil {
			ri.Entry = entries[*item.CatalogID]
		}
		resolved = append(resolved, ri)
	}
	return resolved
}

// billToModel maps an engine breakdown onto the persisted bill record.
func billToModel(booking models.Booking, vendorID uint, bd billing.Breakdown) models.Bill {
	now := time.Now()

	bill := models.Bill{
		BookingID: booking.ID,
		VendorID:  vendorID,

		OriginalServiceBase: bd.OriginalServiceBase,
		VendorServiceBase:   bd.VendorServiceBase,
		TotalServiceBase:    bd.TotalServiceBase,
		TotalPartsBase:      bd.TotalPartsBase,
		VisitingCharges:     bd.VisitingCharges,

		OriginalGST:      bd.OriginalGST,
		VendorServiceGST: bd.VendorServiceGST,
		PartsGST:         bd.PartsGST,
		TotalGST:         bd.TotalGST,

		GrandTotal: bd.GrandTotal,

		ServiceSplitPercentage: bd.Config.ServiceSplitPercentage,
		PartsSplitPercentage:   bd.Config.PartsSplitPercentage,
		ServiceGSTPercentage:   bd.Config.ServiceGSTPercentage,
		PartsGSTPercentage:     bd.Config.PartsGSTPercentage,

		VendorServiceEarning: bd.VendorServiceEarning,
		VendorPartsEarning:   bd.VendorPartsEarning,
		VendorTotalEarning:   bd.VendorTotalEarning,
		CompanyRevenue:       bd.CompanyRevenue,

		Status:      models.BillGenerated,
		GeneratedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	appendItems := func(category string, items []billing.ProcessedItem) {
		for _, item := range items {
			bill.Items = append(bill.Items, models.BillItem{
				Category:      category,
				CatalogID:     item.CatalogID,
				Name:          item.Name,
				UnitPrice:     item.UnitPrice,
				Quantity:      item.Quantity,
				GSTPercentage: item.GSTPercentage,
				IsOriginal:    item.IsOriginal,
				Base:          item.Base,
				GSTAmount:     item.GSTAmount,
				Total:         item.Total,
				CreatedAt:     now,
				UpdatedAt:     now,
			})
		}
	}
	appendItems(models.BillItemService, bd.Services)
	appendItems(models.BillItemPart, bd.Parts)
	appendItems(models.BillItemCustom, bd.CustomItems)

	return bill
}

// billFinancials is the display summary block returned beside the bill.
func billFinancials(bill models.Bill) gin.H {
	return gin.H{
		"total_service_base":   bill.TotalServiceBase,
		"total_parts_base":     bill.TotalPartsBase,
		"visiting_charges":     bill.VisitingCharges,
		"total_gst":            bill.TotalGST,
		"grand_total":          bill.GrandTotal,
		"vendor_total_earning": bill.VendorTotalEarning,
		"company_revenue":      bill.CompanyRevenue,
		"grand_total_display":  utils.FormatCurrencyINR(bill.GrandTotal),
	}
}
