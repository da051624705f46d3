package routes

import (
	"net/http"
	"time"

	"smarthub/handlers"
	"smarthub/middleware"
	"smarthub/models"
	"smarthub/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Options carries the route-level settings read from config.
type Options struct {
	AllowOrigins   []string
	AdminTokenHash string
}

// RegisterHealthRoute registers a health-check endpoint with the last component snapshot.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		state := "ok"
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
			state = "degraded"
		}
		c.JSON(code, gin.H{"status": state, "health": status})
	})
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("", middleware.JWTAuthMiddleware(models.RoleUser), hb.Booking.CreateBookingHandler)

		authed := api.Group("")
		authed.Use(middleware.JWTAuthMiddleware())
		authed.GET("/:id", hb.Booking.GetBookingHandler)
		authed.GET("/user/:userId", hb.Booking.ListUserBookingsHandler)
		authed.GET("/provider/:providerId", hb.Booking.ListProviderBookingsHandler)
		authed.PATCH("/:id/status", hb.Booking.UpdateStatusHandler)
		authed.PUT("/:id/status", hb.Booking.UpdateStatusHandler)
	}
}

// RegisterNotificationRoutes registers the inbox endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/:id", hb.Notification.ListHandler)
		api.GET("/:id/unread-count", hb.Notification.UnreadCountHandler)
		api.PATCH("/:id/read", hb.Notification.MarkReadHandler)
		api.PATCH("/:id/read-all", hb.Notification.MarkAllReadHandler)
	}
}

// RegisterProviderRoutes registers the provider directory endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/provider")
	{
		api.GET("/search", hb.Provider.SearchHandler)
		api.GET("/profile/:id", hb.Provider.GetProfileHandler)
		api.GET("/reviews/:id", hb.Provider.ListReviewsHandler)
		api.PUT("/profile/:id", middleware.JWTAuthMiddleware(models.RoleProvider), hb.Provider.UpdateProfileHandler)
	}
}

// RegisterFeedbackRoutes registers the user-only review, complaint and payment endpoints.
func RegisterFeedbackRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.Use(middleware.JWTAuthMiddleware(models.RoleUser))
		api.POST("/reviews", hb.Feedback.CreateReviewHandler)
		api.POST("/complaints", hb.Feedback.CreateComplaintHandler)
		api.POST("/payments/charge", hb.Feedback.ChargeHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle, adminTokenHash string) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.AdminAuthMiddleware(adminTokenHash))
		adminGroup.GET("/users", hb.Admin.GetAllUsersHandler)
		adminGroup.GET("/providers", hb.Admin.GetAllProvidersHandler)
		adminGroup.GET("/bookings", hb.Admin.GetAllBookingsHandler)
		adminGroup.GET("/complaints", hb.Admin.GetAllComplaintsHandler)
		adminGroup.PATCH("/bookings/:id/complete", hb.Admin.CompleteBookingHandler)
		adminGroup.PATCH("/complaints/:id/respond", hb.Admin.RespondComplaintHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	origins := opts.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterFeedbackRoutes(r, hb)
	RegisterAdminRoutes(r, hb, opts.AdminTokenHash)
}
