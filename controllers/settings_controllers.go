package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/urbanserve/homeservice-app/billing"
	"github.com/urbanserve/homeservice-app/models"
	"github.com/urbanserve/homeservice-app/utils"
)

type SettingsController struct {
	DB *gorm.DB
}

func NewSettingsController(db *gorm.DB) *SettingsController {
	return &SettingsController{DB: db}
}

// GetPayoutSettings returns the stored settings row together with the
// effective configuration new bills would snapshot right now.
func (stc *SettingsController) GetPayoutSettings(c *gin.Context) {
	var setting models.PayoutSetting
	err := stc.DB.Order("id").First(&setting).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	effective := billing.DefaultPayoutConfig()
	if err == nil {
		effective = billing.ConfigFromSettings(
			setting.ServiceSplitPercentage,
			setting.PartsSplitPercentage,
			setting.ServiceGSTPercentage,
			setting.PartsGSTPercentage,
		)
	}

	utils.RespondJSON(c, http.StatusOK, "Payout settings", gin.H{
		"setting":   setting,
		"effective": effective,
	})
}

// UpdatePayoutSettings upserts the single settings row (admin). Existing
// bills keep the percentages they snapshotted at generation time.
func (stc *SettingsController) UpdatePayoutSettings(c *gin.Context) {
	adminID := c.GetUint("user_id")

	var body struct {
		ServiceSplitPercentage *decimal.Decimal `json:"service_split_percentage"`
		PartsSplitPercentage   *decimal.Decimal `json:"parts_split_percentage"`
		ServiceGSTPercentage   *decimal.Decimal `json:"service_gst_percentage"`
		PartsGSTPercentage     *decimal.Decimal `json:"parts_gst_percentage"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hundred := decimal.NewFromInt(100)
	for _, field := range []*decimal.Decimal{
		body.ServiceSplitPercentage,
		body.PartsSplitPercentage,
		body.ServiceGSTPercentage,
		body.PartsGSTPercentage,
	} {
		if field != nil && (field.IsNegative() || field.GreaterThan(hundred)) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("percentages must be between 0 and 100"))
			return
		}
	}

	var setting models.PayoutSetting
	err := stc.DB.Order("id").First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		setting = models.PayoutSetting{CreatedAt: time.Now()}
	} else if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if body.ServiceSplitPercentage != nil {
		setting.ServiceSplitPercentage = *body.ServiceSplitPercentage
	}
	if body.PartsSplitPercentage != nil {
		setting.PartsSplitPercentage = *body.PartsSplitPercentage
	}
	if body.ServiceGSTPercentage != nil {
		setting.ServiceGSTPercentage = *body.ServiceGSTPercentage
	}
	if body.PartsGSTPercentage != nil {
		setting.PartsGSTPercentage = *body.PartsGSTPercentage
	}
	setting.UpdatedBy = &adminID
	setting.UpdatedAt = time.Now()

	if err := stc.DB.Save(&setting).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Payout settings updated by admin %d", adminID)
	utils.RespondJSON(c, http.StatusOK, "Payout settings updated", setting)
}
