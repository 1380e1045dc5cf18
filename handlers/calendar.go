package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotify/models"
	"slotify/services/calendar"
	"slotify/utils"
)

// CalendarHandler exposes the provider calendar over HTTP.
type CalendarHandler struct {
	Service calendar.CalendarService
}

// providerIDFromContext reads the provider identity set by the auth middleware.
func providerIDFromContext(c *gin.Context) (string, bool) {
	v, exists := c.Get("providerID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Provider not authenticated"})
		return "", false
	}
	providerID, ok := v.(string)
	if !ok || providerID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid provider ID in context"})
		return "", false
	}
	return providerID, true
}

// respondServiceError maps typed calendar rejections to HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	var svcErr *calendar.Error
	if errors.As(err, &svcErr) {
		status := http.StatusInternalServerError
		switch svcErr.Code {
		case calendar.CodeValidation:
			status = http.StatusBadRequest
		case calendar.CodeNotFound:
			status = http.StatusNotFound
		case calendar.CodeConflict, calendar.CodeImpact:
			status = http.StatusConflict
		case calendar.CodeForbidden:
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{
			"error":             svcErr.Code,
			"message":           svcErr.Message,
			"conflicts":         svcErr.Conflicts,
			"affected_bookings": svcErr.Affected,
		})
		return
	}

	utils.GetLogger().Error("Calendar operation failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "message": err.Error()})
}

// GetCalendarHandler answers "what does my calendar look like".
func (h *CalendarHandler) GetCalendarHandler(c *gin.Context) {
	providerID, ok := providerIDFromContext(c)
	if !ok {
		return
	}

	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" || endDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date and end_date query parameters are required"})
		return
	}
	serviceID := c.Query("service_id")
	view := c.DefaultQuery("view", "week")

	result, err := h.Service.GetCalendar(c.Request.Context(), providerID, startDate, endDate, serviceID, view)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateAvailabilityHandler creates a single availability rule.
func (h *CalendarHandler) CreateAvailabilityHandler(c *gin.Context) {
	providerID, ok := providerIDFromContext(c)
	if !ok {
		return
	}

	var req models.CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.GetLogger().Error("Invalid availability payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	rule, err := h.Service.CreateAvailability(c.Request.Context(), providerID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"rule": rule})
}

// ListAvailabilityHandler lists the provider's rules, inactive included.
func (h *CalendarHandler) ListAvailabilityHandler(c *gin.Context) {
	providerID, ok := providerIDFromContext(c)
	if !ok {
		return
	}

	rules, err := h.Service.ListAvailability(c.Request.Context(), providerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

// GetAvailabilityRuleHandler returns one owned rule.
func (h *CalendarHandler) GetAvailabilityRuleHandler(c *gin.Context) {
	providerID, ok := providerIDFromContext(c)
	if !ok {
		return
	}

	rule, err := h.Service.GetAvailabilityRule(c.Request.Context(), providerID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rule": rule})
}

// UpdateAvailabilityHandler applies a partial update to a rule.
func (h *CalendarHandler) UpdateAvailabilityHandler(c *gin.Context) {
	providerID, ok := providerIDFromContext(c)
	if !ok {
		return
	}

	var req models.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	rule, err := h.Service.UpdateAvailability(c.Request.Context(), providerID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rule": rule})
}

// DeleteAvailabilityHandler removes a rule when no bookings depend on it.
func (h *CalendarHandler) DeleteAvailabilityHandler(c *gin.Context) {
	providerID, ok := providerIDFromContext(c)
	if !ok {
		return
	}

	if err := h.Service.DeleteAvailability(c.Request.Context(), providerID, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability rule deleted"})
}

// BulkAvailabilityHandler expands a weekly pattern into one-time rules.
func (h *CalendarHandler) BulkAvailabilityHandler(c *gin.Context) {
	providerID, ok := providerIDFromContext(c)
	if !ok {
		return
	}

	var req models.BulkAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	result, err := h.Service.CreateBulkAvailability(c.Request.Context(), providerID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetAvailableSlotsHandler materializes slots for the authenticated provider.
func (h *CalendarHandler) GetAvailableSlotsHandler(c *gin.Context) {
	providerID, ok := providerIDFromContext(c)
	if !ok {
		return
	}
	h.respondSlots(c, providerID)
}

// PublicSlotsHandler is the client-facing slot lookup; no auth, the provider
// is addressed by path.
func (h *CalendarHandler) PublicSlotsHandler(c *gin.Context) {
	providerID := c.Param("id")
	if providerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing provider id"})
		return
	}
	h.respondSlots(c, providerID)
}

func (h *CalendarHandler) respondSlots(c *gin.Context, providerID string) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}
	serviceID := c.Query("service_id")

	duration := 0
	if raw := c.Query("duration"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "duration must be a positive integer"})
			return
		}
		duration = v
	}

	slots, err := h.Service.GetAvailableSlots(c.Request.Context(), providerID, serviceID, date, duration)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}
