package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/urbanserve/homeservice-app/controllers"
	"github.com/urbanserve/homeservice-app/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Global per-IP limit. Must be registered before any route; gin middleware
	// added after route registration never wraps those routes.
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	// Uploaded service images.
	r.Static("/uploads", "public/uploads")

	userCtrl := controllers.NewUserController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	brandCtrl := controllers.NewBrandController(db)
	serviceCtrl := controllers.NewServiceController(db)
	partCtrl := controllers.NewPartController(db)
	cartCtrl := controllers.NewCartController(db)
	bookingCtrl := controllers.NewBookingController(db)
	billCtrl := controllers.NewBillController(db)
	settingsCtrl := controllers.NewSettingsController(db)
	notificationCtrl := controllers.NewNotificationController(db)
	adminCtrl := controllers.NewAdminController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Catalog browsing needs no account.
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/brands", brandCtrl.GetAllBrands)
	r.GET("/services", serviceCtrl.GetAllServices)
	r.GET("/services/:service_id", serviceCtrl.GetServiceByID)

	// Dashboard WebSocket (admin/vendor, token via query param).
	r.GET("/ws", middlewares.WebSocketAuthMiddleware(), controllers.DashboardSocketHandler)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)
	auth.PATCH("/profile", userCtrl.UpdateProfile)
	auth.POST("/logout", userCtrl.Logout)

	auth.GET("/notifications", notificationCtrl.GetMyNotifications)
	auth.PATCH("/notifications/read-all", notificationCtrl.MarkAllNotificationsRead)
	auth.PATCH("/notifications/:notification_id/read", notificationCtrl.MarkNotificationRead)
	auth.DELETE("/notifications/:notification_id", notificationCtrl.DeleteNotification)

	// Bill viewing is shared: the booking's customer, its vendor and admins.
	auth.GET("/bookings/:booking_id/bill", billCtrl.GetBill)
	auth.GET("/bookings/:booking_id/bill/pdf", billCtrl.DownloadBillPDF)
	auth.GET("/bookings/:booking_id", bookingCtrl.GetBookingByID)

	// -- CUSTOMER --
	customer := auth.Group("/")
	customer.Use(middlewares.RequireRoles("customer"))
	{
		customer.GET("/cart", cartCtrl.GetCart)
		customer.POST("/cart", cartCtrl.AddCartItem)
		customer.PATCH("/cart/:item_id", cartCtrl.UpdateCartItem)
		customer.DELETE("/cart/:item_id", cartCtrl.DeleteCartItem)
		customer.DELETE("/cart", cartCtrl.ClearCart)

		customer.POST("/bookings", bookingCtrl.CreateBooking)
		customer.POST("/checkout", bookingCtrl.Checkout)
		customer.GET("/bookings", bookingCtrl.GetMyBookings)
		customer.POST("/bookings/:booking_id/cancel", bookingCtrl.CancelBooking)
	}

	// -- VENDOR --
	vendor := auth.Group("/vendor")
	vendor.Use(middlewares.RequireRoles("vendor"))
	{
		vendor.GET("/bookings", bookingCtrl.GetMyBookings)
		vendor.POST("/bookings/:booking_id/accept", bookingCtrl.AcceptBooking)
		vendor.POST("/bookings/:booking_id/start", bookingCtrl.StartJob)
		vendor.POST("/bookings/:booking_id/complete", bookingCtrl.CompleteJob)

		vendor.GET("/parts", partCtrl.GetMyParts)
		vendor.POST("/parts", partCtrl.CreatePart)
		vendor.PATCH("/parts/:part_id", partCtrl.UpdatePart)
		vendor.DELETE("/parts/:part_id", partCtrl.DeletePart)

		// Bill generation with request/response logging.
		billGroup := vendor.Group("/bookings")
		billGroup.Use(middlewares.BillLoggerMiddleware())
		{
			billGroup.POST("/:booking_id/bill", billCtrl.CreateOrUpdateBill)
		}
	}

	// -- ADMIN --
	admin := auth.Group("/admin")
	admin.Use(middlewares.RequireRoles("admin"))
	{
		admin.GET("/users", userCtrl.GetAllUsers)

		admin.POST("/categories", categoryCtrl.CreateCategory)
		admin.PATCH("/categories/:category_id", categoryCtrl.UpdateCategory)
		admin.DELETE("/categories/:category_id", categoryCtrl.DeleteCategory)

		admin.POST("/brands", brandCtrl.CreateBrand)
		admin.PATCH("/brands/:brand_id", brandCtrl.UpdateBrand)
		admin.DELETE("/brands/:brand_id", brandCtrl.DeleteBrand)

		admin.POST("/services", serviceCtrl.CreateService)
		admin.PATCH("/services/:service_id", serviceCtrl.UpdateService)
		admin.DELETE("/services/:service_id", serviceCtrl.DeleteService)

		admin.GET("/bookings", bookingCtrl.GetAllBookings)
		admin.POST("/bookings/:booking_id/assign", bookingCtrl.AssignVendor)
		admin.POST("/bookings/:booking_id/cancel", bookingCtrl.CancelBooking)

		admin.GET("/bills", billCtrl.GetAllBills)
		admin.POST("/bookings/:booking_id/bill/pay", billCtrl.MarkBillPaid)

		admin.GET("/settings/payout", settingsCtrl.GetPayoutSettings)
		admin.PUT("/settings/payout", settingsCtrl.UpdatePayoutSettings)

		admin.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
		admin.GET("/dashboard/recent-bookings", adminCtrl.GetRecentBookings)
		admin.GET("/reports/revenue", adminCtrl.GetRevenueReport)
		admin.GET("/reports/top-services", adminCtrl.GetTopServicesReport)
		admin.GET("/reports/vendor-earnings", adminCtrl.GetVendorEarningsReport)
	}

	return r
}
