package routes

import (
	"net/http"
	"time"

	"eventbook/handlers"
	"eventbook/middleware"
	"eventbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint backed by the
// background dependency monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.OK() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "message": "eventbook"})
	})
}

// RegisterAvailabilityRoutes registers the public calendar and pricing endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/availability", hb.GetAvailabilityHandler)
	r.POST("/api/pricing/quote", hb.QuoteHandler)
}

// RegisterPaymentRoutes registers split, intent and cash-bond endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.POST("/split", hb.SplitPaymentHandler)

		// Protected routes (Require Authentication)
		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.POST("/intent", hb.CreateIntentHandler)
		protected.POST("/bonds", hb.CreateBondHandler)
		protected.GET("/bonds/:id", hb.GetBondHandler)
		protected.PUT("/bonds/:id/status", hb.UpdateBondStatusHandler)
	}
}

// RegisterTimelineRoutes registers the booking-session timeline endpoints.
func RegisterTimelineRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/timeline/sessions")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.StartTimelineHandler)
		api.GET("/:id", hb.GetTimelineHandler)
		api.DELETE("/:id", hb.EndTimelineHandler)
		api.POST("/:id/activities", hb.AddActivityHandler)
		api.PATCH("/:id/activities/:activityId", hb.UpdateActivityHandler)
		api.DELETE("/:id/activities/:activityId", hb.RemoveActivityHandler)
		api.PUT("/:id/activities/:activityId/status", hb.TransitionActivityHandler)
		api.PUT("/:id/reorder", hb.ReorderActivitiesHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAvailabilityRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterTimelineRoutes(r, hb)
}
