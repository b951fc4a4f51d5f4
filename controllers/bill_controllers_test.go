package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/urbanserve/homeservice-app/controllers"
	"github.com/urbanserve/homeservice-app/models"
	"github.com/urbanserve/homeservice-app/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Brand{},
		&models.Service{},
		&models.Part{},
		&models.CartItem{},
		&models.Booking{},
		&models.PayoutSetting{},
		&models.Bill{},
		&models.BillItem{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// asUser stands in for the auth middleware in tests.
func asUser(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func mustDec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// seedBillFixtures creates a customer, a vendor, a catalog service, a vendor
// part and an in-progress booking priced 1000 + 50 visiting.
func seedBillFixtures(db *gorm.DB) (customer, vendor models.User, service models.Service, part models.Part, booking models.Booking) {
	customer = models.User{Name: "Asha", Email: "asha@example.com", Password: "x", Role: "customer"}
	vendor = models.User{Name: "Ravi", Email: "ravi@example.com", Password: "x", Role: "vendor"}
	db.Create(&customer)
	db.Create(&vendor)

	category := models.Category{Name: "Appliance Repair", IsActive: true}
	db.Create(&category)

	service = models.Service{
		CategoryID:      category.ID,
		Name:            "AC Repair",
		BasePrice:       mustDec("1000"),
		VisitingCharges: mustDec("50"),
		IsActive:        true,
	}
	db.Create(&service)

	part = models.Part{
		VendorID: vendor.ID,
		Name:     "Capacitor",
		Price:    mustDec("100"),
		IsActive: true,
	}
	db.Create(&part)

	booking = models.Booking{
		ReferenceNo:     models.GenerateReferenceNo(),
		CustomerID:      customer.ID,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		BasePrice:       service.BasePrice,
		VisitingCharges: service.VisitingCharges,
		VendorID:        &vendor.ID,
		Status:          models.BookingInProgress,
	}
	db.Create(&booking)
	return
}

func setupBillRouter(db *gorm.DB, userID uint, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	billCtrl := controllers.NewBillController(db)
	router.Use(asUser(userID, role))
	router.POST("/bookings/:booking_id/bill", billCtrl.CreateOrUpdateBill)
	router.GET("/bookings/:booking_id/bill", billCtrl.GetBill)
	router.POST("/bookings/:booking_id/bill/pay", billCtrl.MarkBillPaid)
	return router
}

func postBill(t *testing.T, router *gin.Engine, bookingID uint, payload map[string]interface{}) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", "/bookings/"+itoa(bookingID)+"/bill", bytes.NewBuffer(body))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func TestGenerateBillBookingOnly(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	_, vendor, _, _, booking := seedBillFixtures(db)
	router := setupBillRouter(db, vendor.ID, "vendor")

	w := postBill(t, router, booking.ID, map[string]interface{}{})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	financials := data["financials"].(map[string]interface{})

	// 1000 base + 180 GST + 50 visiting with default 70/10/18/18 config.
	assert.Equal(t, 1230.0, financials["grand_total"])
	assert.Equal(t, 180.0, financials["total_gst"])
	assert.Equal(t, 700.0, financials["vendor_total_earning"])
	assert.Equal(t, 530.0, financials["company_revenue"])

	bill := data["bill"].(map[string]interface{})
	items := bill["items"].([]interface{})
	assert.Len(t, items, 1)
	original := items[0].(map[string]interface{})
	assert.Equal(t, true, original["is_original"])
	assert.Equal(t, "AC Repair", original["name"])
}

func TestGenerateBillWithCatalogPart(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	_, vendor, _, part, booking := seedBillFixtures(db)
	router := setupBillRouter(db, vendor.ID, "vendor")

	w := postBill(t, router, booking.ID, map[string]interface{}{
		"parts": []map[string]interface{}{
			// Client price 5 must lose to the stored catalog price 100.
			{"catalog_id": part.ID, "price": 5, "quantity": 2},
		},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	financials := data["financials"].(map[string]interface{})

	// Parts: 200 base + 36 GST. Vendor: 700 + 20. Grand: 1466.
	assert.Equal(t, 1466.0, financials["grand_total"])
	assert.Equal(t, 200.0, financials["total_parts_base"])
	assert.Equal(t, 720.0, financials["vendor_total_earning"])
	assert.Equal(t, 746.0, financials["company_revenue"])
}

func TestRegenerateBillReplacesPrevious(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	_, vendor, _, part, booking := seedBillFixtures(db)
	router := setupBillRouter(db, vendor.ID, "vendor")

	w := postBill(t, router, booking.ID, map[string]interface{}{
		"parts": []map[string]interface{}{
			{"catalog_id": part.ID, "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postBill(t, router, booking.ID, map[string]interface{}{
		"custom_items": []map[string]interface{}{
			{"name": "Gas refill", "price": 500, "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// Exactly one bill survives and it reflects only the second submission.
	var billCount, itemCount int64
	db.Model(&models.Bill{}).Where("booking_id = ?", booking.ID).Count(&billCount)
	assert.Equal(t, int64(1), billCount)

	var bill models.Bill
	assert.NoError(t, db.Preload("Items").Where("booking_id = ?", booking.ID).First(&bill).Error)
	db.Model(&models.BillItem{}).Count(&itemCount)
	assert.Equal(t, int64(2), itemCount) // original line + custom item
	assert.Len(t, bill.Items, 2)
	assert.True(t, bill.TotalPartsBase.Equal(mustDec("500")))
}

func TestGenerateBillForbiddenForOtherVendor(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	_, _, _, _, booking := seedBillFixtures(db)

	intruder := models.User{Name: "Mallory", Email: "mallory@example.com", Password: "x", Role: "vendor"}
	db.Create(&intruder)

	router := setupBillRouter(db, intruder.ID, "vendor")
	w := postBill(t, router, booking.ID, map[string]interface{}{})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGenerateBillUnknownCatalogID(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	_, vendor, _, _, booking := seedBillFixtures(db)
	router := setupBillRouter(db, vendor.ID, "vendor")

	w := postBill(t, router, booking.ID, map[string]interface{}{
		"parts": []map[string]interface{}{
			{"catalog_id": 9999, "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var billCount int64
	db.Model(&models.Bill{}).Count(&billCount)
	assert.Equal(t, int64(0), billCount)
}

func TestGenerateBillRequiresBillableBooking(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	_, vendor, _, _, booking := seedBillFixtures(db)

	db.Model(&models.Booking{}).Where("id = ?", booking.ID).Update("status", models.BookingPending)

	router := setupBillRouter(db, vendor.ID, "vendor")
	w := postBill(t, router, booking.ID, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaidBillCannotBeRegenerated(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	_, vendor, _, _, booking := seedBillFixtures(db)
	router := setupBillRouter(db, vendor.ID, "vendor")

	w := postBill(t, router, booking.ID, map[string]interface{}{})
	assert.Equal(t, http.StatusOK, w.Code)

	// Settle it.
	req, _ := http.NewRequest("POST", "/bookings/"+itoa(booking.ID)+"/bill/pay", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Regeneration is refused and the stored totals stay frozen.
	w = postBill(t, router, booking.ID, map[string]interface{}{
		"custom_items": []map[string]interface{}{
			{"name": "Extra", "price": 999, "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	var bill models.Bill
	assert.NoError(t, db.Where("booking_id = ?", booking.ID).First(&bill).Error)
	assert.Equal(t, models.BillPaid, bill.Status)
	assert.True(t, bill.GrandTotal.Equal(mustDec("1230")))
	assert.NotNil(t, bill.PaidAt)
}

func TestMarkBillPaidTwiceFails(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	_, vendor, _, _, booking := seedBillFixtures(db)
	router := setupBillRouter(db, vendor.ID, "vendor")

	w := postBill(t, router, booking.ID, map[string]interface{}{})
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ := http.NewRequest("POST", "/bookings/"+itoa(booking.ID)+"/bill/pay", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest("POST", "/bookings/"+itoa(booking.ID)+"/bill/pay", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBillAccessControl(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	customer, vendor, _, _, booking := seedBillFixtures(db)

	vendorRouter := setupBillRouter(db, vendor.ID, "vendor")
	w := postBill(t, vendorRouter, booking.ID, map[string]interface{}{})
	assert.Equal(t, http.StatusOK, w.Code)

	// The booking's customer may read the bill.
	customerRouter := setupBillRouter(db, customer.ID, "customer")
	req, _ := http.NewRequest("GET", "/bookings/"+itoa(booking.ID)+"/bill", nil)
	w = httptest.NewRecorder()
	customerRouter.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// A stranger may not.
	stranger := models.User{Name: "Noor", Email: "noor@example.com", Password: "x", Role: "customer"}
	db.Create(&stranger)
	strangerRouter := setupBillRouter(db, stranger.ID, "customer")
	req, _ = http.NewRequest("GET", "/bookings/"+itoa(booking.ID)+"/bill", nil)
	w = httptest.NewRecorder()
	strangerRouter.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBillSnapshotsPayoutSettings(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	_, vendor, _, _, booking := seedBillFixtures(db)

	db.Create(&models.PayoutSetting{
		ServiceSplitPercentage: mustDec("60"),
		PartsSplitPercentage:   mustDec("15"),
		ServiceGSTPercentage:   mustDec("18"),
		PartsGSTPercentage:     mustDec("18"),
	})

	router := setupBillRouter(db, vendor.ID, "vendor")
	w := postBill(t, router, booking.ID, map[string]interface{}{})
	assert.Equal(t, http.StatusOK, w.Code)

	var bill models.Bill
	assert.NoError(t, db.Where("booking_id = ?", booking.ID).First(&bill).Error)
	assert.True(t, bill.ServiceSplitPercentage.Equal(mustDec("60")))
	assert.True(t, bill.VendorServiceEarning.Equal(mustDec("600")))
	// Residual: 1230 - 600.
	assert.True(t, bill.CompanyRevenue.Equal(mustDec("630")))
}
