package calendar

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	exceptionRepo "slotify/database/repository/exception"
	"slotify/models"
	"slotify/utils"
)

// CreateException records a date-scoped schedule override. At most one
// exception may exist per date; the unique index backs this up against
// concurrent creates. When requested, clients with bookings on that date are
// notified once each, best-effort, after the write commits.
func (s *DefaultCalendarService) CreateException(ctx context.Context, providerID string, req models.CreateExceptionRequest) (*models.Exception, error) {
	ex, err := s.buildException(ctx, providerID, req)
	if err != nil {
		return nil, err
	}

	if existing, err := s.Exceptions.GetByDate(ctx, providerID, ex.Date); err == nil && existing != nil {
		return nil, &Error{
			Code:    CodeConflict,
			Message: "an exception already exists for " + ex.Date,
		}
	}

	if err := s.Exceptions.Create(ctx, ex); err != nil {
		if errors.Is(err, exceptionRepo.ErrDuplicateDate) {
			return nil, &Error{
				Code:    CodeConflict,
				Message: "an exception already exists for " + ex.Date,
			}
		}
		return nil, NewInternalError(err)
	}

	s.audit(ctx, providerID, models.AuditExceptionCreated, ex.ID, map[string]any{
		"date": ex.Date,
		"type": ex.Type,
	})
	s.invalidate(ctx, providerID)

	if ex.NotifyClients {
		s.fanOutExceptionNotices(ctx, ex)
	}
	return ex, nil
}

// ListExceptions returns the provider's exceptions inside a date window.
func (s *DefaultCalendarService) ListExceptions(ctx context.Context, providerID, startDate, endDate string) ([]models.Exception, error) {
	if _, err := ParseDate(startDate); err != nil {
		return nil, NewValidationError("%v", err)
	}
	if _, err := ParseDate(endDate); err != nil {
		return nil, NewValidationError("%v", err)
	}
	exceptions, err := s.Exceptions.ListInWindow(ctx, providerID, startDate, endDate)
	if err != nil {
		return nil, NewInternalError(err)
	}
	return exceptions, nil
}

// DeleteException removes a future exception. Past exceptions stay on record.
func (s *DefaultCalendarService) DeleteException(ctx context.Context, providerID, exceptionID string) error {
	ex, err := s.Exceptions.GetByID(ctx, providerID, exceptionID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return NewNotFoundError("exception %s not found", exceptionID)
		}
		return NewInternalError(err)
	}

	today := s.now().Format(dateLayout)
	if ex.Date < today {
		return NewValidationError("exception %s is in the past and cannot be deleted", exceptionID)
	}

	if err := s.Exceptions.DeleteByID(ctx, providerID, exceptionID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return NewNotFoundError("exception %s not found", exceptionID)
		}
		return NewInternalError(err)
	}

	s.audit(ctx, providerID, models.AuditExceptionDeleted, exceptionID, map[string]any{"date": ex.Date})
	s.invalidate(ctx, providerID)
	return nil
}

func (s *DefaultCalendarService) buildException(ctx context.Context, providerID string, req models.CreateExceptionRequest) (*models.Exception, error) {
	if _, err := ParseDate(req.Date); err != nil {
		return nil, NewValidationError("%v", err)
	}

	ex := &models.Exception{
		ID:                  uuid.New().String(),
		ProviderID:          providerID,
		Date:                req.Date,
		Type:                req.Type,
		AffectsAllServices:  req.AffectsAllServices,
		ServiceIDs:          req.ServiceIDs,
		NotifyClients:       req.NotifyClients,
		NotificationMessage: req.NotificationMessage,
		CreatedAt:           s.now(),
	}

	hasTimes := req.StartTime != "" || req.EndTime != ""
	if req.Type == models.ExceptionSpecialHours && !hasTimes {
		return nil, NewValidationError("special_hours exceptions require start_time and end_time")
	}
	if hasTimes {
		if req.StartTime == "" || req.EndTime == "" {
			return nil, NewValidationError("both start_time and end_time are required")
		}
		start, err := ParseClock(req.StartTime)
		if err != nil {
			return nil, NewValidationError("%v", err)
		}
		end, err := ParseClock(req.EndTime)
		if err != nil {
			return nil, NewValidationError("%v", err)
		}
		if start >= end {
			return nil, NewValidationError("start time %s must be before end time %s", req.StartTime, req.EndTime)
		}
		ex.Start = &start
		ex.End = &end
	}

	if !req.AffectsAllServices && len(req.ServiceIDs) > 0 {
		if err := s.Catalog.ValidateOwnership(ctx, providerID, req.ServiceIDs); err != nil {
			return nil, NewValidationError("%v", err)
		}
	}
	return ex, nil
}

// fanOutExceptionNotices queues one notice per distinct client with active
// bookings on the exception date. Fan-out failures are logged and swallowed;
// the exception itself is already committed.
func (s *DefaultCalendarService) fanOutExceptionNotices(ctx context.Context, ex *models.Exception) {
	if s.Notifier == nil {
		return
	}
	logger := utils.GetLogger()

	bookings, err := s.Bookings.ListActiveOnDate(ctx, ex.ProviderID, ex.Date)
	if err != nil {
		logger.Error("Failed to load bookings for exception fan-out",
			zap.String("providerId", ex.ProviderID),
			zap.String("date", ex.Date),
			zap.Error(err))
		return
	}

	byClient := make(map[string][]string)
	for _, b := range bookings {
		if !ex.AffectsAllServices && len(ex.ServiceIDs) > 0 && !containsString(ex.ServiceIDs, b.ServiceID) {
			continue
		}
		byClient[b.ClientID] = append(byClient[b.ClientID], b.ID)
	}

	for clientID, bookingIDs := range byClient {
		payload := models.ExceptionNoticePayload{
			ProviderID: ex.ProviderID,
			ClientID:   clientID,
			Date:       ex.Date,
			Type:       ex.Type,
			Message:    ex.NotificationMessage,
			BookingIDs: bookingIDs,
		}
		if err := s.Notifier.NotifyExceptionCreated(ctx, payload); err != nil {
			logger.Error("Failed to queue exception notice",
				zap.String("clientId", clientID),
				zap.Error(err))
		}
	}
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
