package calendar

import (
	"context"
	"time"

	auditRepo "slotify/database/repository/audit"
	availabilityRepo "slotify/database/repository/availability"
	bookingRepo "slotify/database/repository/booking"
	exceptionRepo "slotify/database/repository/exception"
	"slotify/models"
	"slotify/services/catalog"
	"slotify/services/notification"
)

// CalendarService answers "what does my calendar look like" queries and
// applies availability mutations for a single provider.
type CalendarService interface {
	GetCalendar(ctx context.Context, providerID, startDate, endDate, serviceID, view string) (*models.CalendarView, error)
	GetAvailableSlots(ctx context.Context, providerID, serviceID, date string, durationOverride int) ([]models.Slot, error)

	CreateAvailability(ctx context.Context, providerID string, req models.CreateAvailabilityRequest) (*models.AvailabilityRule, error)
	UpdateAvailability(ctx context.Context, providerID, ruleID string, req models.UpdateAvailabilityRequest) (*models.AvailabilityRule, error)
	DeleteAvailability(ctx context.Context, providerID, ruleID string) error
	ListAvailability(ctx context.Context, providerID string) ([]models.AvailabilityRule, error)
	GetAvailabilityRule(ctx context.Context, providerID, ruleID string) (*models.AvailabilityRule, error)
	CreateBulkAvailability(ctx context.Context, providerID string, req models.BulkAvailabilityRequest) (*models.BulkAvailabilityResult, error)

	CreateException(ctx context.Context, providerID string, req models.CreateExceptionRequest) (*models.Exception, error)
	ListExceptions(ctx context.Context, providerID, startDate, endDate string) ([]models.Exception, error)
	DeleteException(ctx context.Context, providerID, exceptionID string) error
}

// DefaultCalendarService is the production implementation.
type DefaultCalendarService struct {
	Rules      availabilityRepo.AvailabilityRepository
	Exceptions exceptionRepo.ExceptionRepository
	Bookings   bookingRepo.BookingRepository
	Audit      auditRepo.AuditRepository
	Catalog    catalog.CatalogService
	Notifier   notification.NotificationService
	Cache      ViewCache

	// Now is injectable so that minimum-notice filtering is testable.
	// Defaults to time.Now when nil.
	Now func() time.Time
}

func (s *DefaultCalendarService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
