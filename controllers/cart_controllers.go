package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/urbanserve/homeservice-app/models"
	"github.com/urbanserve/homeservice-app/utils"
)

type CartController struct {
	DB *gorm.DB
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{DB: db}
}

func (cc *CartController) GetCart(c *gin.Context) {
	customerID := c.GetUint("user_id")

	var items []models.CartItem
	if err := cc.DB.Preload("Service").Where("customer_id = ?", customerID).Order("created_at").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart contents", items)
}

func (cc *CartController) AddCartItem(c *gin.Context) {
	customerID := c.GetUint("user_id")

	var body struct {
		ServiceID     uint   `json:"service_id" binding:"required"`
		Quantity      int    `json:"quantity"`
		ScheduledDate string `json:"scheduled_date"`
		TimeSlot      string `json:"time_slot"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if body.Quantity < 1 {
		body.Quantity = 1
	}

	var service models.Service
	if err := cc.DB.Where("id = ? AND is_active = ?", body.ServiceID, true).First(&service).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("service not found"))
		return
	}

	// Adding an already-carted service bumps its quantity instead.
	var existing models.CartItem
	err := cc.DB.Where("customer_id = ? AND service_id = ?", customerID, body.ServiceID).First(&existing).Error
	if err == nil {
		existing.Quantity += body.Quantity
		existing.UpdatedAt = time.Now()
		if err := cc.DB.Save(&existing).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Cart item updated", existing)
		return
	}

	item := models.CartItem{
		CustomerID:    customerID,
		ServiceID:     body.ServiceID,
		Quantity:      body.Quantity,
		ScheduledDate: body.ScheduledDate,
		TimeSlot:      body.TimeSlot,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := cc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Item added to cart", item)
}

func (cc *CartController) UpdateCartItem(c *gin.Context) {
	customerID := c.GetUint("user_id")

	var body struct {
		Quantity      int    `json:"quantity"`
		ScheduledDate string `json:"scheduled_date"`
		TimeSlot      string `json:"time_slot"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.CartItem
	if err := cc.DB.Where("id = ? AND customer_id = ?", c.Param("item_id"), customerID).First(&item).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Quantity > 0 {
		item.Quantity = body.Quantity
	}
	if body.ScheduledDate != "" {
		item.ScheduledDate = body.ScheduledDate
	}
	if body.TimeSlot != "" {
		item.TimeSlot = body.TimeSlot
	}
	item.UpdatedAt = time.Now()

	if err := cc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart item updated", item)
}

func (cc *CartController) DeleteCartItem(c *gin.Context) {
	customerID := c.GetUint("user_id")

	result := cc.DB.Where("id = ? AND customer_id = ?", c.Param("item_id"), customerID).Delete(&models.CartItem{})
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("cart item not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart item removed", nil)
}

func (cc *CartController) ClearCart(c *gin.Context) {
	customerID := c.GetUint("user_id")

	if err := cc.DB.Where("customer_id = ?", customerID).Delete(&models.CartItem{}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart cleared", nil)
}
