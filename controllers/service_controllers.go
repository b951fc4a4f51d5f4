package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/urbanserve/homeservice-app/models"
	"github.com/urbanserve/homeservice-app/utils"
)

type ServiceController struct {
	DB *gorm.DB
}

func NewServiceController(db *gorm.DB) *ServiceController {
	return &ServiceController{DB: db}
}

// GetAllServices lists active catalog services, optionally filtered by
// category or brand.
// Endpoint: GET /services?category=<id>&brand=<id>
func (sc *ServiceController) GetAllServices(c *gin.Context) {
	query := sc.DB.Preload("Category").Preload("Brand").Where("is_active = ?", true)

	if categoryIDStr := c.Query("category"); categoryIDStr != "" {
		categoryID, err := strconv.Atoi(categoryIDStr)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category ID"))
			return
		}
		query = query.Where("category_id = ?", categoryID)
	}
	if brandIDStr := c.Query("brand"); brandIDStr != "" {
		brandID, err := strconv.Atoi(brandIDStr)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid brand ID"))
			return
		}
		query = query.Where("brand_id = ?", brandID)
	}

	var services []models.Service
	if err := query.Find(&services).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of services", services)
}

// GetServiceByID
func (sc *ServiceController) GetServiceByID(c *gin.Context) {
	idStr := c.Param("service_id")
	id, _ := strconv.Atoi(idStr)

	var service models.Service
	if err := sc.DB.Preload("Category").Preload("Brand").First(&service, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Service detail", service)
}

// CreateService adds a catalog entry (admin). Accepts multipart form data so
// service images can be uploaded in the same request.
func (sc *ServiceController) CreateService(c *gin.Context) {
	c.Request.ParseMultipartForm(10 << 20)

	categoryID, err := strconv.ParseUint(c.PostForm("category_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category_id"))
		return
	}

	basePrice, err := decimal.NewFromString(c.PostForm("base_price"))
	if err != nil || basePrice.IsNegative() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid base_price"))
		return
	}

	service := models.Service{
		CategoryID:      uint(categoryID),
		Name:            c.PostForm("name"),
		Description:     c.PostForm("description"),
		BasePrice:       basePrice,
		VisitingCharges: decimal.Zero,
		IsActive:        true,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if brandIDStr := c.PostForm("brand_id"); brandIDStr != "" {
		brandID, err := strconv.ParseUint(brandIDStr, 10, 32)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid brand_id"))
			return
		}
		id := uint(brandID)
		service.BrandID = &id
	}
	if visitingStr := c.PostForm("visiting_charges"); visitingStr != "" {
		visiting, err := decimal.NewFromString(visitingStr)
		if err != nil || visiting.IsNegative() {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid visiting_charges"))
			return
		}
		service.VisitingCharges = visiting
	}
	if gstStr := c.PostForm("gst_percentage"); gstStr != "" {
		gst, err := decimal.NewFromString(gstStr)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid gst_percentage"))
			return
		}
		service.GSTPercentage = &gst
	}
	if durationStr := c.PostForm("duration_minutes"); durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid duration_minutes"))
			return
		}
		service.DurationMinutes = duration
	}

	imageUrls, err := sc.saveImages(c)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := service.SetImageUrls(imageUrls); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("error processing image urls"))
		return
	}

	if err := sc.DB.Create(&service).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Service created", service)
}

// UpdateService edits a catalog entry (admin). Only submitted fields change.
func (sc *ServiceController) UpdateService(c *gin.Context) {
	idStr := c.Param("service_id")
	id, _ := strconv.Atoi(idStr)

	var service models.Service
	if err := sc.DB.First(&service, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("service not found"))
		return
	}

	c.Request.ParseMultipartForm(10 << 20)

	if name := c.PostForm("name"); name != "" {
		service.Name = name
	}
	if description := c.PostForm("description"); description != "" {
		service.Description = description
	}
	if categoryIDStr := c.PostForm("category_id"); categoryIDStr != "" {
		categoryID, err := strconv.ParseUint(categoryIDStr, 10, 32)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category_id"))
			return
		}
		service.CategoryID = uint(categoryID)
	}
	if basePriceStr := c.PostForm("base_price"); basePriceStr != "" {
		basePrice, err := decimal.NewFromString(basePriceStr)
		if err != nil || basePrice.IsNegative() {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid base_price"))
			return
		}
		service.BasePrice = basePrice
	}
	if visitingStr := c.PostForm("visiting_charges"); visitingStr != "" {
		visiting, err := decimal.NewFromString(visitingStr)
		if err != nil || visiting.IsNegative() {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid visiting_charges"))
			return
		}
		service.VisitingCharges = visiting
	}
	if gstStr := c.PostForm("gst_percentage"); gstStr != "" {
		gst, err := decimal.NewFromString(gstStr)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid gst_percentage"))
			return
		}
		service.GSTPercentage = &gst
	}
	if durationStr := c.PostForm("duration_minutes"); durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid duration_minutes"))
			return
		}
		service.DurationMinutes = duration
	}

	newImages, err := sc.saveImages(c)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if len(newImages) > 0 {
		all := append(service.GetImageUrls(), newImages...)
		if err := service.SetImageUrls(all); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, errors.New("error processing image urls"))
			return
		}
	}

	service.UpdatedAt = time.Now()
	if err := sc.DB.Save(&service).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Service updated successfully", service)
}

// DeleteService deactivates a service instead of removing it, so existing
// bookings keep their snapshot intact.
func (sc *ServiceController) DeleteService(c *gin.Context) {
	idStr := c.Param("service_id")
	id, _ := strconv.Atoi(idStr)

	result := sc.DB.Model(&models.Service{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("service not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Service deactivated", gin.H{"service_id": id})
}

func (sc *ServiceController) saveImages(c *gin.Context) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}
	files := form.File["images"]
	if len(files) == 0 {
		return nil, nil
	}

	uploadDir := "public/uploads/service_images"
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, errors.New("error creating upload directory")
	}

	baseURL := os.Getenv("PUBLIC_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	var imageUrls []string
	for _, file := range files {
		filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), file.Filename)
		filepath := fmt.Sprintf("%s/%s", uploadDir, filename)
		if err := c.SaveUploadedFile(file, filepath); err != nil {
			return nil, errors.New("error saving image")
		}
		imageUrls = append(imageUrls, fmt.Sprintf("%s/uploads/service_images/%s", baseURL, filename))
	}
	return imageUrls, nil
}
