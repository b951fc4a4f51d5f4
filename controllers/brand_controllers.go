package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/urbanserve/homeservice-app/models"
	"github.com/urbanserve/homeservice-app/utils"
)

type BrandController struct {
	DB *gorm.DB
}

func NewBrandController(db *gorm.DB) *BrandController {
	return &BrandController{DB: db}
}

// GetAllBrands lists active brands, optionally for one category.
// Endpoint: GET /brands?category=<id>
func (bc *BrandController) GetAllBrands(c *gin.Context) {
	query := bc.DB.Preload("Category").Where("is_active = ?", true)

	if categoryIDStr := c.Query("category"); categoryIDStr != "" {
		categoryID, err := strconv.Atoi(categoryIDStr)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category ID"))
			return
		}
		query = query.Where("category_id = ?", categoryID)
	}

	var brands []models.Brand
	if err := query.Order("name").Find(&brands).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of brands", brands)
}

// CreateBrand
func (bc *BrandController) CreateBrand(c *gin.Context) {
	var body struct {
		CategoryID uint   `json:"category_id" binding:"required"`
		Name       string `json:"name" binding:"required"`
		LogoURL    string `json:"logo_url"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var category models.Category
	if err := bc.DB.First(&category, body.CategoryID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("category not found"))
		return
	}

	brand := models.Brand{
		CategoryID: body.CategoryID,
		Name:       body.Name,
		LogoURL:    body.LogoURL,
		IsActive:   true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := bc.DB.Create(&brand).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Brand created", brand)
}

// UpdateBrand
func (bc *BrandController) UpdateBrand(c *gin.Context) {
	idStr := c.Param("brand_id")
	id, _ := strconv.Atoi(idStr)

	var brand models.Brand
	if err := bc.DB.First(&brand, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("brand not found"))
		return
	}

	var body struct {
		CategoryID uint   `json:"category_id"`
		Name       string `json:"name"`
		LogoURL    string `json:"logo_url"`
		IsActive   *bool  `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.CategoryID != 0 {
		brand.CategoryID = body.CategoryID
	}
	if body.Name != "" {
		brand.Name = body.Name
	}
	if body.LogoURL != "" {
		brand.LogoURL = body.LogoURL
	}
	if body.IsActive != nil {
		brand.IsActive = *body.IsActive
	}
	brand.UpdatedAt = time.Now()

	if err := bc.DB.Save(&brand).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Brand updated", brand)
}

// DeleteBrand
func (bc *BrandController) DeleteBrand(c *gin.Context) {
	idStr := c.Param("brand_id")
	id, _ := strconv.Atoi(idStr)

	result := bc.DB.Model(&models.Brand{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("brand not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Brand deactivated", gin.H{"brand_id": id})
}
