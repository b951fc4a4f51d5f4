package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/urbanserve/homeservice-app/models"
	"github.com/urbanserve/homeservice-app/utils"
)

type PartController struct {
	DB *gorm.DB
}

func NewPartController(db *gorm.DB) *PartController {
	return &PartController{DB: db}
}

// GetMyParts lists the calling vendor's active parts catalog.
func (pc *PartController) GetMyParts(c *gin.Context) {
	vendorID := c.GetUint("user_id")

	var parts []models.Part
	if err := pc.DB.Where("vendor_id = ? AND is_active = ?", vendorID, true).Order("name").Find(&parts).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of parts", parts)
}

// CreatePart adds a part to the vendor's catalog.
func (pc *PartController) CreatePart(c *gin.Context) {
	vendorID := c.GetUint("user_id")

	var body struct {
		Name          string           `json:"name" binding:"required"`
		Price         decimal.Decimal  `json:"price"`
		GSTPercentage *decimal.Decimal `json:"gst_percentage"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if body.Price.IsNegative() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("price must not be negative"))
		return
	}

	part := models.Part{
		VendorID:      vendorID,
		Name:          body.Name,
		Price:         body.Price,
		GSTPercentage: body.GSTPercentage,
		IsActive:      true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := pc.DB.Create(&part).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Part created", part)
}

// UpdatePart edits a part owned by the calling vendor.
func (pc *PartController) UpdatePart(c *gin.Context) {
	vendorID := c.GetUint("user_id")

	var part models.Part
	if err := pc.DB.Where("id = ? AND vendor_id = ?", c.Param("part_id"), vendorID).First(&part).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("part not found"))
		return
	}

	var body struct {
		Name          string           `json:"name"`
		Price         *decimal.Decimal `json:"price"`
		GSTPercentage *decimal.Decimal `json:"gst_percentage"`
		IsActive      *bool            `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Name != "" {
		part.Name = body.Name
	}
	if body.Price != nil {
		if body.Price.IsNegative() {
			utils.RespondError(c, http.StatusBadRequest, errors.New("price must not be negative"))
			return
		}
		part.Price = *body.Price
	}
	if body.GSTPercentage != nil {
		part.GSTPercentage = body.GSTPercentage
	}
	if body.IsActive != nil {
		part.IsActive = *body.IsActive
	}
	part.UpdatedAt = time.Now()

	if err := pc.DB.Save(&part).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Part updated", part)
}

// DeletePart deactivates a vendor part; bills that already reference it keep
// their frozen line items.
func (pc *PartController) DeletePart(c *gin.Context) {
	vendorID := c.GetUint("user_id")

	result := pc.DB.Model(&models.Part{}).
		Where("id = ? AND vendor_id = ?", c.Param("part_id"), vendorID).
		Update("is_active", false)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("part not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Part deactivated", nil)
}
