package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/urbanserve/homeservice-app/events"
	"github.com/urbanserve/homeservice-app/models"
	"github.com/urbanserve/homeservice-app/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats aggregates platform counters for the admin dashboard.
// Revenue figures are the company's residual share of paid bills, not gross
// billing volume.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	today := time.Now().Format("2006-01-02")

	var stats struct {
		TotalBookings int64 `json:"total_bookings"`
		TodayBookings int64 `json:"today_bookings"`
		BookingStats  struct {
			Pending    int64 `json:"pending"`
			Accepted   int64 `json:"accepted"`
			InProgress int64 `json:"in_progress"`
			Completed  int64 `json:"completed"`
			Cancelled  int64 `json:"cancelled"`
		} `json:"booking_stats"`
		UserStats struct {
			Customers int64 `json:"customers"`
			Vendors   int64 `json:"vendors"`
		} `json:"user_stats"`
		BillStats struct {
			Generated int64 `json:"generated"`
			Paid      int64 `json:"paid"`
		} `json:"bill_stats"`
		TotalRevenue   decimal.Decimal `json:"total_revenue"`
		TodayRevenue   decimal.Decimal `json:"today_revenue"`
		VendorPayouts  decimal.Decimal `json:"vendor_payouts"`
		GrossBilled    decimal.Decimal `json:"gross_billed"`
		RevenueDisplay string          `json:"revenue_display"`
	}

	ac.DB.Model(&models.Booking{}).Count(&stats.TotalBookings)
	ac.DB.Model(&models.Booking{}).Where("DATE(created_at) = ?", today).Count(&stats.TodayBookings)

	ac.DB.Model(&models.Booking{}).Where("status = ?", models.BookingPending).Count(&stats.BookingStats.Pending)
	ac.DB.Model(&models.Booking{}).Where("status = ?", models.BookingAccepted).Count(&stats.BookingStats.Accepted)
	ac.DB.Model(&models.Booking{}).Where("status = ?", models.BookingInProgress).Count(&stats.BookingStats.InProgress)
	ac.DB.Model(&models.Booking{}).Where("status = ?", models.BookingCompleted).Count(&stats.BookingStats.Completed)
	ac.DB.Model(&models.Booking{}).Where("status = ?", models.BookingCancelled).Count(&stats.BookingStats.Cancelled)

	ac.DB.Model(&models.User{}).Where("role = ?", "customer").Count(&stats.UserStats.Customers)
	ac.DB.Model(&models.User{}).Where("role = ?", "vendor").Count(&stats.UserStats.Vendors)

	ac.DB.Model(&models.Bill{}).Where("status = ?", models.BillGenerated).Count(&stats.BillStats.Generated)
	ac.DB.Model(&models.Bill{}).Where("status = ?", models.BillPaid).Count(&stats.BillStats.Paid)

	stats.TotalRevenue = ac.sumPaidBills("company_revenue", "")
	stats.TodayRevenue = ac.sumPaidBills("company_revenue", today)
	stats.VendorPayouts = ac.sumPaidBills("vendor_total_earning", "")
	stats.GrossBilled = ac.sumPaidBills("grand_total", "")
	stats.RevenueDisplay = utils.FormatCurrencyINR(stats.TotalRevenue)

	events.BroadcastDashboardUpdate(stats)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved successfully", gin.H{
		"data": stats,
	})
}

// sumPaidBills totals one money column across paid bills. Sums are read as
// strings so no precision is lost on the way out of the database.
func (ac *AdminController) sumPaidBills(column, day string) decimal.Decimal {
	query := ac.DB.Model(&models.Bill{}).Where("status = ?", models.BillPaid)
	if day != "" {
		query = query.Where("DATE(paid_at) = ?", day)
	}

	var raw string
	query.Select("COALESCE(SUM(" + column + "), 0)").Row().Scan(&raw)

	total, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return total
}

// GetRevenueReport breaks company revenue down per day over a trailing window.
// Endpoint: GET /admin/reports/revenue?days=30
func (ac *AdminController) GetRevenueReport(c *gin.Context) {
	days := 30
	if d := c.Query("days"); d != "" {
		if parsed, err := strconv.Atoi(d); err == nil && parsed > 0 {
			days = parsed
		}
	}
	since := time.Now().AddDate(0, 0, -days).Format("2006-01-02")

	type dailyRow struct {
		Day            string          `json:"day"`
		Bills          int64           `json:"bills"`
		CompanyRevenue decimal.Decimal `json:"company_revenue"`
		VendorPayouts  decimal.Decimal `json:"vendor_payouts"`
		GrossBilled    decimal.Decimal `json:"gross_billed"`
	}

	var rows []dailyRow
	err := ac.DB.Model(&models.Bill{}).
		Select("DATE(paid_at) as day, COUNT(*) as bills, "+
			"COALESCE(SUM(company_revenue), 0) as company_revenue, "+
			"COALESCE(SUM(vendor_total_earning), 0) as vendor_payouts, "+
			"COALESCE(SUM(grand_total), 0) as gross_billed").
		Where("status = ? AND DATE(paid_at) >= ?", models.BillPaid, since).
		Group("DATE(paid_at)").
		Order("day").
		Scan(&rows).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Revenue report", gin.H{
		"since": since,
		"days":  days,
		"rows":  rows,
	})
}

// GetVendorEarningsReport totals each vendor's earnings from paid bills.
func (ac *AdminController) GetVendorEarningsReport(c *gin.Context) {
	type vendorRow struct {
		VendorID       uint            `json:"vendor_id"`
		VendorName     string          `json:"vendor_name"`
		Bills          int64           `json:"bills"`
		ServiceEarning decimal.Decimal `json:"service_earning"`
		PartsEarning   decimal.Decimal `json:"parts_earning"`
		TotalEarning   decimal.Decimal `json:"total_earning"`
	}

	var rows []vendorRow
	err := ac.DB.Model(&models.Bill{}).
		Select("bills.vendor_id, users.name as vendor_name, COUNT(*) as bills, "+
			"COALESCE(SUM(bills.vendor_service_earning), 0) as service_earning, "+
			"COALESCE(SUM(bills.vendor_parts_earning), 0) as parts_earning, "+
			"COALESCE(SUM(bills.vendor_total_earning), 0) as total_earning").
		Joins("JOIN users ON users.id = bills.vendor_id").
		Where("bills.status = ?", models.BillPaid).
		Group("bills.vendor_id, users.name").
		Order("total_earning desc").
		Scan(&rows).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Vendor earnings report", gin.H{
		"rows": rows,
	})
}

// GetTopServicesReport ranks catalog services by completed bookings and the
// revenue their paid bills produced.
func (ac *AdminController) GetTopServicesReport(c *gin.Context) {
	limit := 10
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	type serviceRow struct {
		ServiceID      uint            `json:"service_id"`
		ServiceName    string          `json:"service_name"`
		Bookings       int64           `json:"bookings"`
		CompanyRevenue decimal.Decimal `json:"company_revenue"`
	}

	var rows []serviceRow
	err := ac.DB.Model(&models.Booking{}).
		Select("bookings.service_id, bookings.service_name, COUNT(*) as bookings, "+
			"COALESCE(SUM(bills.company_revenue), 0) as company_revenue").
		Joins("LEFT JOIN bills ON bills.booking_id = bookings.id AND bills.status = ?", models.BillPaid).
		Where("bookings.status = ?", models.BookingCompleted).
		Group("bookings.service_id, bookings.service_name").
		Order("bookings desc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Top services report", gin.H{
		"rows": rows,
	})
}

// GetRecentBookings returns the latest bookings for the dashboard feed.
func (ac *AdminController) GetRecentBookings(c *gin.Context) {
	var bookings []models.Booking
	if err := ac.DB.Preload("Customer").Preload("Vendor").
		Order("created_at DESC").
		Limit(10).
		Find(&bookings).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	type recentRow struct {
		BookingID   uint      `json:"booking_id"`
		ReferenceNo string    `json:"reference_no"`
		ServiceName string    `json:"service_name"`
		Customer    string    `json:"customer"`
		Vendor      string    `json:"vendor,omitempty"`
		Status      string    `json:"status"`
		CreatedAt   time.Time `json:"created_at"`
	}

	var recent []recentRow
	for _, booking := range bookings {
		row := recentRow{
			BookingID:   booking.ID,
			ReferenceNo: booking.ReferenceNo,
			ServiceName: booking.ServiceName,
			Customer:    booking.Customer.Name,
			Status:      booking.Status,
			CreatedAt:   booking.CreatedAt,
		}
		if booking.Vendor != nil {
			row.Vendor = booking.Vendor.Name
		}
		recent = append(recent, row)
	}

	utils.RespondJSON(c, http.StatusOK, "Recent bookings retrieved successfully", gin.H{
		"recent_bookings": recent,
	})
}
