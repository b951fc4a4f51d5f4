package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/urbanserve/homeservice-app/utils"
)

// BillLoggerMiddleware wraps bill generation with before/after log lines.
func BillLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.InfoLogger.Printf("Generating bill for booking ID: %s", c.Param("booking_id"))

		c.Next()

		if c.Writer.Status() == 200 {
			utils.InfoLogger.Printf("Bill generated successfully for booking ID: %s", c.Param("booking_id"))
		} else {
			utils.ErrorLogger.Printf("Failed to generate bill for booking ID: %s (status %d)", c.Param("booking_id"), c.Writer.Status())
		}
	}
}
