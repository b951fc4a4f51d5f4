package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/urbanserve/homeservice-app/controllers"
	"github.com/urbanserve/homeservice-app/models"
	"github.com/urbanserve/homeservice-app/utils"
)

func setupCartRouter(db *gorm.DB, customerID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	cartCtrl := controllers.NewCartController(db)
	router.Use(asUser(customerID, "customer"))
	router.GET("/cart", cartCtrl.GetCart)
	router.POST("/cart", cartCtrl.AddCartItem)
	router.DELETE("/cart/:item_id", cartCtrl.DeleteCartItem)
	router.DELETE("/cart", cartCtrl.ClearCart)
	return router
}

func TestAddCartItemMergesDuplicates(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	customer, _, service, _, _ := seedBillFixtures(db)
	router := setupCartRouter(db, customer.ID)

	w := postJSON(t, router, "/cart", map[string]interface{}{
		"service_id": service.ID,
		"quantity":   1,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, router, "/cart", map[string]interface{}{
		"service_id": service.ID,
		"quantity":   2,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var items []models.CartItem
	db.Where("customer_id = ?", customer.ID).Find(&items)
	assert.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddCartItemUnknownService(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	customer, _, _, _, _ := seedBillFixtures(db)
	router := setupCartRouter(db, customer.ID)

	w := postJSON(t, router, "/cart", map[string]interface{}{
		"service_id": 4242,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartIsolationBetweenCustomers(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	customer, _, service, _, _ := seedBillFixtures(db)

	other := models.User{Name: "Noor", Email: "noor2@example.com", Password: "x", Role: "customer"}
	db.Create(&other)

	router := setupCartRouter(db, customer.ID)
	w := postJSON(t, router, "/cart", map[string]interface{}{
		"service_id": service.ID,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// The other customer cannot delete someone else's item.
	otherRouter := setupCartRouter(db, other.ID)
	req, _ := http.NewRequest("DELETE", "/cart/1", nil)
	rec := httptest.NewRecorder()
	otherRouter.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var count int64
	db.Model(&models.CartItem{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
