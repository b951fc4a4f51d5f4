package controllers_test

import (
	"encoding/json"
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

func setupCatalogRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	categoryCtrl := controllers.NewCategoryController(db)
	brandCtrl := controllers.NewBrandController(db)
	serviceCtrl := controllers.NewServiceController(db)
	router.GET("/categories", categoryCtrl.GetAllCategories)
	router.GET("/brands", brandCtrl.GetAllBrands)
	router.GET("/services", serviceCtrl.GetAllServices)
	router.Use(asUser(1, "admin"))
	router.POST("/categories", categoryCtrl.CreateCategory)
	router.DELETE("/categories/:category_id", categoryCtrl.DeleteCategory)
	router.DELETE("/services/:service_id", serviceCtrl.DeleteService)
	return router
}

func getJSON(t *testing.T, router *gin.Engine, url string) (int, map[string]interface{}) {
	req, err := http.NewRequest("GET", url, nil)
	assert.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestCategoryCreateAndSoftDelete(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupCatalogRouter(db)

	w := postJSON(t, router, "/categories", map[string]interface{}{
		"name": "Plumbing",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	code, resp := getJSON(t, router, "/categories")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, resp["data"].([]interface{}), 1)

	req, _ := http.NewRequest("DELETE", "/categories/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Deactivated categories drop out of the public listing but keep the row.
	code, resp = getJSON(t, router, "/categories")
	assert.Equal(t, http.StatusOK, code)
	assert.Nil(t, resp["data"])

	var count int64
	db.Model(&models.Category{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestServiceListingFilters(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	_, _, service, _, _ := seedBillFixtures(db)
	router := setupCatalogRouter(db)

	other := models.Category{Name: "Plumbing", IsActive: true}
	db.Create(&other)
	db.Create(&models.Service{
		CategoryID: other.ID,
		Name:       "Tap Fix",
		BasePrice:  mustDec("300"),
		IsActive:   true,
	})

	code, resp := getJSON(t, router, "/services")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, resp["data"].([]interface{}), 2)

	code, resp = getJSON(t, router, "/services?category="+itoa(service.CategoryID))
	assert.Equal(t, http.StatusOK, code)
	services := resp["data"].([]interface{})
	assert.Len(t, services, 1)
	assert.Equal(t, "AC Repair", services[0].(map[string]interface{})["name"])

	code, _ = getJSON(t, router, "/services?category=notanumber")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestDeactivatedServiceHiddenFromListing(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	_, _, service, _, _ := seedBillFixtures(db)
	router := setupCatalogRouter(db)

	req, _ := http.NewRequest("DELETE", "/services/"+itoa(service.ID), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	code, resp := getJSON(t, router, "/services")
	assert.Equal(t, http.StatusOK, code)
	assert.Nil(t, resp["data"])
}
