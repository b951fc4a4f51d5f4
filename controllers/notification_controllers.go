package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/urbanserve/homeservice-app/models"
	"github.com/urbanserve/homeservice-app/utils"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetMyNotifications lists the caller's notifications, newest first.
// Endpoint: GET /notifications?unread=true
func (nc *NotificationController) GetMyNotifications(c *gin.Context) {
	userID := c.GetUint("user_id")

	query := nc.DB.Where("user_id = ?", userID).Order("created_at desc")
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Limit(100).Find(&notifications).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of notifications", notifications)
}

// MarkNotificationRead
func (nc *NotificationController) MarkNotificationRead(c *gin.Context) {
	userID := c.GetUint("user_id")

	result := nc.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", c.Param("notification_id"), userID).
		Update("is_read", true)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("notification not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notification marked as read", nil)
}

// MarkAllNotificationsRead
func (nc *NotificationController) MarkAllNotificationsRead(c *gin.Context) {
	userID := c.GetUint("user_id")

	if err := nc.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All notifications marked as read", nil)
}

// DeleteNotification
func (nc *NotificationController) DeleteNotification(c *gin.Context) {
	userID := c.GetUint("user_id")

	result := nc.DB.Where("id = ? AND user_id = ?", c.Param("notification_id"), userID).
		Delete(&models.Notification{})
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("notification not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notification deleted", nil)
}
