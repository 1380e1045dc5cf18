package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"slotify/handlers"
	"slotify/middleware"
)

// RegisterCalendarRoutes registers the provider calendar endpoints.
func RegisterCalendarRoutes(r *gin.Engine, h *handlers.CalendarHandler) {
	api := r.Group("/api/calendar")
	{
		// All calendar management requires provider authentication.
		api.Use(middleware.JWTAuthProviderMiddleware())

		api.GET("", h.GetCalendarHandler)
		api.GET("/slots", h.GetAvailableSlotsHandler)

		api.POST("/availability", h.CreateAvailabilityHandler)
		api.GET("/availability", h.ListAvailabilityHandler)
		api.GET("/availability/:id", h.GetAvailabilityRuleHandler)
		api.PATCH("/availability/:id", h.UpdateAvailabilityHandler)
		api.DELETE("/availability/:id", h.DeleteAvailabilityHandler)
		api.POST("/availability/bulk", h.BulkAvailabilityHandler)

		api.POST("/exceptions", h.CreateExceptionHandler)
		api.GET("/exceptions", h.ListExceptionsHandler)
		api.DELETE("/exceptions/:id", h.DeleteExceptionHandler)
	}
}

// RegisterPublicRoutes registers client-facing endpoints.
func RegisterPublicRoutes(r *gin.Engine, h *handlers.CalendarHandler) {
	api := r.Group("/api/providers")
	{
		api.GET("/:id/slots", h.PublicSlotsHandler)
	}
	r.GET("/health", handlers.HealthHandler)
}

// SetupCORS applies the CORS policy shared by all route groups.
func SetupCORS(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
}
