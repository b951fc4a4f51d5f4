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
	"github.com/urbanserve/homeservice-app/utils"
)

func setupUserRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	userCtrl := controllers.NewUserController(db)
	router.POST("/register", userCtrl.Register)
	router.POST("/login", userCtrl.Login)
	return router
}

func TestRegisterAndLogin(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupUserRouter(db)

	w := postJSON(t, router, "/register", map[string]interface{}{
		"name":     "Priya",
		"email":    "priya@example.com",
		"password": "sup3rsecret",
		"role":     "customer",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, router, "/login", map[string]interface{}{
		"email":    "priya@example.com",
		"password": "sup3rsecret",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, "customer", data["user_role"])

	claims, err := utils.ParseToken(data["token"].(string))
	assert.NoError(t, err)
	assert.Equal(t, "customer", claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupUserRouter(db)

	w := postJSON(t, router, "/register", map[string]interface{}{
		"name":     "Priya",
		"email":    "priya@example.com",
		"password": "sup3rsecret",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, router, "/login", map[string]interface{}{
		"email":    "priya@example.com",
		"password": "wrongwrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupUserRouter(db)

	w := postJSON(t, router, "/register", map[string]interface{}{
		"name":     "Eve",
		"email":    "eve@example.com",
		"password": "sup3rsecret",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupUserRouter(db)

	payload := map[string]interface{}{
		"name":     "Priya",
		"email":    "priya@example.com",
		"password": "sup3rsecret",
	}
	w := postJSON(t, router, "/register", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, router, "/register", payload)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogoutBlacklistsToken(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)

	token, err := utils.GenerateToken(42, "customer")
	assert.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	userCtrl := controllers.NewUserController(db)
	router.POST("/logout", userCtrl.Logout)

	req, _ := http.NewRequest("POST", "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	_, err = utils.ParseToken(token)
	assert.Error(t, err)
}
