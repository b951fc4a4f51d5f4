package controllers_test

import (
	"bytes"
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

func setupSettingsRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	settingsCtrl := controllers.NewSettingsController(db)
	router.Use(asUser(1, "admin"))
	router.GET("/settings/payout", settingsCtrl.GetPayoutSettings)
	router.PUT("/settings/payout", settingsCtrl.UpdatePayoutSettings)
	return router
}

func putJSON(t *testing.T, router *gin.Engine, url string, payload interface{}) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	assert.NoError(t, err)
	req, err := http.NewRequest("PUT", url, bytes.NewBuffer(body))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetPayoutSettingsDefaults(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupSettingsRouter(db)

	req, _ := http.NewRequest("GET", "/settings/payout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	effective := data["effective"].(map[string]interface{})

	// No settings row yet, defaults apply.
	assert.Equal(t, 70.0, effective["service_split_percentage"])
	assert.Equal(t, 10.0, effective["parts_split_percentage"])
	assert.Equal(t, 18.0, effective["service_gst_percentage"])
	assert.Equal(t, 18.0, effective["parts_gst_percentage"])
}

func TestUpdatePayoutSettings(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupSettingsRouter(db)

	w := putJSON(t, router, "/settings/payout", map[string]interface{}{
		"service_split_percentage": 65,
		"parts_split_percentage":   12.5,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var setting models.PayoutSetting
	assert.NoError(t, db.First(&setting).Error)
	assert.True(t, setting.ServiceSplitPercentage.Equal(mustDec("65")))
	assert.True(t, setting.PartsSplitPercentage.Equal(mustDec("12.5")))
	assert.NotNil(t, setting.UpdatedBy)

	// Second update keeps the same single row.
	w = putJSON(t, router, "/settings/payout", map[string]interface{}{
		"service_split_percentage": 75,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.PayoutSetting{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpdatePayoutSettingsRejectsOutOfRange(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupSettingsRouter(db)

	w := putJSON(t, router, "/settings/payout", map[string]interface{}{
		"service_split_percentage": 150,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = putJSON(t, router, "/settings/payout", map[string]interface{}{
		"parts_gst_percentage": -5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
