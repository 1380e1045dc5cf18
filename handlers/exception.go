package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slotify/models"
)

// CreateExceptionHandler records a date-scoped schedule override.
func (h *CalendarHandler) CreateExceptionHandler(c *gin.Context) {
	providerID, ok := providerIDFromContext(c)
	if !ok {
		return
	}

	var req models.CreateExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	ex, err := h.Service.CreateException(c.Request.Context(), providerID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"exception": ex})
}

// ListExceptionsHandler lists exceptions inside a date window.
func (h *CalendarHandler) ListExceptionsHandler(c *gin.Context) {
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

	exceptions, err := h.Service.ListExceptions(c.Request.Context(), providerID, startDate, endDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exceptions": exceptions})
}

// DeleteExceptionHandler removes a future exception.
func (h *CalendarHandler) DeleteExceptionHandler(c *gin.Context) {
	providerID, ok := providerIDFromContext(c)
	if !ok {
		return
	}

	if err := h.Service.DeleteException(c.Request.Context(), providerID, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Exception deleted"})
}
