package calendar

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"slotify/models"
	"slotify/utils"
)

// maxCalendarWindowDays caps the size of a single calendar query.
const maxCalendarWindowDays = 92

// GetCalendar assembles the provider's rules, bookings, exceptions and
// materialized slots for a date window. Reads are cached briefly; any
// mutation invalidates the provider's cache.
func (s *DefaultCalendarService) GetCalendar(ctx context.Context, providerID, startDate, endDate, serviceID, view string) (*models.CalendarView, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, NewValidationError("%v", err)
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return nil, NewValidationError("%v", err)
	}
	if end.Before(start) {
		return nil, NewValidationError("end date %s is before start date %s", endDate, startDate)
	}
	if end.Sub(start) > maxCalendarWindowDays*24*time.Hour {
		return nil, NewValidationError("calendar window exceeds %d days", maxCalendarWindowDays)
	}

	key := viewKey(providerID, startDate, endDate, serviceID, view)
	if s.Cache != nil {
		if cached, ok := s.Cache.GetView(ctx, key); ok {
			return cached, nil
		}
	}

	rules, err := s.Rules.ListByProvider(ctx, providerID, true)
	if err != nil {
		return nil, NewInternalError(err)
	}
	bookings, err := s.Bookings.ListInWindow(ctx, providerID, startDate, endDate)
	if err != nil {
		return nil, NewInternalError(err)
	}
	exceptions, err := s.Exceptions.ListInWindow(ctx, providerID, startDate, endDate)
	if err != nil {
		return nil, NewInternalError(err)
	}

	slots := GenerateSlots(providerID, start, end, rules, bookings, exceptions, serviceID, 0, s.now())

	booked := 0
	for _, b := range bookings {
		if b.IsActive() {
			booked++
		}
	}

	result := &models.CalendarView{
		ProviderID: providerID,
		StartDate:  startDate,
		EndDate:    endDate,
		View:       view,
		Rules:      rules,
		Bookings:   bookings,
		Exceptions: exceptions,
		Slots:      slots,
		Summary: models.CalendarSummary{
			TotalSlots:     len(slots) + booked,
			AvailableSlots: len(slots),
			BookedSlots:    booked,
			ExceptionDays:  len(exceptions),
		},
	}

	if s.Cache != nil {
		s.Cache.SetView(ctx, key, result)
	}
	return result, nil
}

// GetAvailableSlots materializes the bookable slots for a single date. When
// no duration override is given and a service is specified, the service's
// default duration applies.
func (s *DefaultCalendarService) GetAvailableSlots(ctx context.Context, providerID, serviceID, date string, durationOverride int) ([]models.Slot, error) {
	day, err := ParseDate(date)
	if err != nil {
		return nil, NewValidationError("%v", err)
	}
	if durationOverride < 0 {
		return nil, NewValidationError("duration override must be positive")
	}

	if serviceID != "" {
		svc, err := s.Catalog.GetService(ctx, serviceID)
		if err != nil {
			return nil, NewNotFoundError("service %s not found", serviceID)
		}
		if durationOverride == 0 && svc.Duration > 0 {
			durationOverride = svc.Duration
		}
	}

	key := slotsKey(providerID, serviceID, date, durationOverride)
	if s.Cache != nil {
		if cached, ok := s.Cache.GetSlots(ctx, key); ok {
			return cached, nil
		}
	}

	rules, err := s.Rules.ListByProvider(ctx, providerID, true)
	if err != nil {
		return nil, NewInternalError(err)
	}
	bookings, err := s.Bookings.ListActiveOnDate(ctx, providerID, date)
	if err != nil {
		return nil, NewInternalError(err)
	}
	exceptions, err := s.Exceptions.ListInWindow(ctx, providerID, date, date)
	if err != nil {
		return nil, NewInternalError(err)
	}

	slots := GenerateSlots(providerID, day, day, rules, bookings, exceptions, serviceID, durationOverride, s.now())

	if s.Cache != nil {
		s.Cache.SetSlots(ctx, key, slots)
	}
	return slots, nil
}

// CreateAvailability validates, conflict-checks and persists a new rule.
// The conflict check runs again inside the transaction so two concurrent
// creates cannot both commit.
func (s *DefaultCalendarService) CreateAvailability(ctx context.Context, providerID string, req models.CreateAvailabilityRequest) (*models.AvailabilityRule, error) {
	rule, err := s.buildRule(ctx, providerID, req)
	if err != nil {
		return nil, err
	}

	err = s.Rules.InTransaction(ctx, func(txCtx context.Context) error {
		conflicts, err := s.CheckConflicts(txCtx, rule, "")
		if err != nil {
			return NewInternalError(err)
		}
		if len(conflicts) > 0 {
			return NewConflictError(conflicts)
		}
		if err := s.Rules.Create(txCtx, rule); err != nil {
			return NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, providerID, models.AuditRuleCreated, rule.ID, map[string]any{
		"kind":  rule.Kind,
		"start": FormatClock(rule.Start),
		"end":   FormatClock(rule.End),
	})
	s.invalidate(ctx, providerID)
	return rule, nil
}

// UpdateAvailability applies a partial update after impact and conflict
// checks. Edits that would orphan existing bookings are refused.
func (s *DefaultCalendarService) UpdateAvailability(ctx context.Context, providerID, ruleID string, req models.UpdateAvailabilityRequest) (*models.AvailabilityRule, error) {
	existing, err := s.Rules.GetByID(ctx, providerID, ruleID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, NewNotFoundError("availability rule %s not found", ruleID)
		}
		return nil, NewInternalError(err)
	}

	change, err := s.parseChange(existing, req)
	if err != nil {
		return nil, err
	}

	if change.Start != nil || change.End != nil || change.DayOfWeek != nil || change.Deactivate {
		affected, err := s.FindAffectedBookings(ctx, existing, change)
		if err != nil {
			return nil, NewInternalError(err)
		}
		if len(affected) > 0 {
			return nil, NewImpactError(affected)
		}
	}

	updated, err := s.mergeUpdate(ctx, existing, req, change)
	if err != nil {
		return nil, err
	}

	err = s.Rules.InTransaction(ctx, func(txCtx context.Context) error {
		conflicts, err := s.checkRuleConflicts(txCtx, updated, updated.ID)
		if err != nil {
			return NewInternalError(err)
		}
		if change.DayOfWeek != nil {
			// The impact scan covered the old weekday only; legacy
			// bookings on the new weekday must not be double-booked.
			bookingConflicts, err := s.checkBookingConflicts(txCtx, updated)
			if err != nil {
				return NewInternalError(err)
			}
			conflicts = append(conflicts, bookingConflicts...)
		}
		if len(conflicts) > 0 {
			return NewConflictError(conflicts)
		}
		if err := s.Rules.Update(txCtx, updated); err != nil {
			return NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, providerID, models.AuditRuleUpdated, updated.ID, map[string]any{
		"start":     FormatClock(updated.Start),
		"end":       FormatClock(updated.End),
		"is_active": updated.IsActive,
	})
	s.invalidate(ctx, providerID)
	return updated, nil
}

// DeleteAvailability removes a rule unless future active bookings depend on
// it. Deletion is blocked outright rather than cascading cancellations.
func (s *DefaultCalendarService) DeleteAvailability(ctx context.Context, providerID, ruleID string) error {
	existing, err := s.Rules.GetByID(ctx, providerID, ruleID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return NewNotFoundError("availability rule %s not found", ruleID)
		}
		return NewInternalError(err)
	}

	affected, err := s.FindAffectedBookings(ctx, existing, proposedChange{Delete: true})
	if err != nil {
		return NewInternalError(err)
	}
	if len(affected) > 0 {
		return NewImpactError(affected)
	}

	err = s.Rules.InTransaction(ctx, func(txCtx context.Context) error {
		if err := s.Rules.DeleteByID(txCtx, providerID, ruleID); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return NewNotFoundError("availability rule %s not found", ruleID)
			}
			return NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.audit(ctx, providerID, models.AuditRuleDeleted, ruleID, nil)
	s.invalidate(ctx, providerID)
	return nil
}

// ListAvailability returns all of the provider's rules, inactive included.
func (s *DefaultCalendarService) ListAvailability(ctx context.Context, providerID string) ([]models.AvailabilityRule, error) {
	rules, err := s.Rules.ListByProvider(ctx, providerID, false)
	if err != nil {
		return nil, NewInternalError(err)
	}
	return rules, nil
}

// GetAvailabilityRule returns a single owned rule.
func (s *DefaultCalendarService) GetAvailabilityRule(ctx context.Context, providerID, ruleID string) (*models.AvailabilityRule, error) {
	rule, err := s.Rules.GetByID(ctx, providerID, ruleID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, NewNotFoundError("availability rule %s not found", ruleID)
		}
		return nil, NewInternalError(err)
	}
	return rule, nil
}

// buildRule validates a create request and fills defaults.
func (s *DefaultCalendarService) buildRule(ctx context.Context, providerID string, req models.CreateAvailabilityRequest) (*models.AvailabilityRule, error) {
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

	rule := &models.AvailabilityRule{
		ID:                 uuid.New().String(),
		ProviderID:         providerID,
		Kind:               req.Kind,
		Start:              start,
		End:                end,
		SlotDuration:       req.SlotDuration,
		BufferTime:         models.DefaultBufferTime,
		MaxBookingsPerSlot: req.MaxBookingsPerSlot,
		MinimumNoticeHours: models.DefaultMinimumNoticeHours,
		MaximumAdvanceDays: req.MaximumAdvanceDays,
		ServiceIDs:         req.ServiceIDs,
		PriceMultiplier:    req.PriceMultiplier,
		IsActive:           true,
		CreatedAt:          s.now(),
		UpdatedAt:          s.now(),
	}

	switch req.Kind {
	case models.RuleKindRecurring:
		if req.DayOfWeek == nil || *req.DayOfWeek < 0 || *req.DayOfWeek > 6 {
			return nil, NewValidationError("recurring rules require a day_of_week between 0 and 6")
		}
		rule.DayOfWeek = time.Weekday(*req.DayOfWeek)
	case models.RuleKindOneTime:
		if _, err := ParseDate(req.SpecificDate); err != nil {
			return nil, NewValidationError("one-time rules require a valid specific_date: %v", err)
		}
		rule.SpecificDate = req.SpecificDate
	default:
		return nil, NewValidationError("unknown rule kind %q", req.Kind)
	}

	if rule.SlotDuration <= 0 {
		rule.SlotDuration = models.DefaultSlotDuration
	}
	if req.BufferTime != nil {
		if *req.BufferTime < 0 {
			return nil, NewValidationError("buffer time cannot be negative")
		}
		rule.BufferTime = *req.BufferTime
	}
	if rule.MaxBookingsPerSlot <= 0 {
		rule.MaxBookingsPerSlot = 1
	}
	if req.MinimumNoticeHours != nil {
		if *req.MinimumNoticeHours < 0 {
			return nil, NewValidationError("minimum notice cannot be negative")
		}
		rule.MinimumNoticeHours = *req.MinimumNoticeHours
	}
	if rule.MaximumAdvanceDays <= 0 {
		rule.MaximumAdvanceDays = models.DefaultMaximumAdvanceDays
	}
	if rule.PriceMultiplier == 0 {
		rule.PriceMultiplier = 1.0
	}
	if rule.PriceMultiplier < 0.5 || rule.PriceMultiplier > 3.0 {
		return nil, NewValidationError("price multiplier must be between 0.5 and 3.0")
	}

	if err := s.Catalog.ValidateOwnership(ctx, providerID, rule.ServiceIDs); err != nil {
		return nil, NewValidationError("%v", err)
	}
	return rule, nil
}

// parseChange extracts the impact-relevant part of an update.
func (s *DefaultCalendarService) parseChange(existing *models.AvailabilityRule, req models.UpdateAvailabilityRequest) (proposedChange, error) {
	var change proposedChange

	if req.StartTime != nil {
		v, err := ParseClock(*req.StartTime)
		if err != nil {
			return change, NewValidationError("%v", err)
		}
		if v != existing.Start {
			change.Start = &v
		}
	}
	if req.EndTime != nil {
		v, err := ParseClock(*req.EndTime)
		if err != nil {
			return change, NewValidationError("%v", err)
		}
		if v != existing.End {
			change.End = &v
		}
	}
	if req.DayOfWeek != nil {
		if *req.DayOfWeek < 0 || *req.DayOfWeek > 6 {
			return change, NewValidationError("day_of_week must be between 0 and 6")
		}
		if existing.Kind != models.RuleKindRecurring {
			return change, NewValidationError("day_of_week only applies to recurring rules")
		}
		if *req.DayOfWeek != int(existing.DayOfWeek) {
			change.DayOfWeek = req.DayOfWeek
		}
	}
	if req.IsActive != nil && !*req.IsActive && existing.IsActive {
		change.Deactivate = true
	}
	return change, nil
}

// mergeUpdate produces the rule as it would look after the update.
func (s *DefaultCalendarService) mergeUpdate(ctx context.Context, existing *models.AvailabilityRule, req models.UpdateAvailabilityRequest, change proposedChange) (*models.AvailabilityRule, error) {
	updated := *existing

	if change.Start != nil {
		updated.Start = *change.Start
	}
	if change.End != nil {
		updated.End = *change.End
	}
	if change.DayOfWeek != nil {
		updated.DayOfWeek = time.Weekday(*change.DayOfWeek)
	}
	if updated.Start >= updated.End {
		return nil, NewValidationError("start time %s must be before end time %s",
			FormatClock(updated.Start), FormatClock(updated.End))
	}

	if req.SlotDuration != nil {
		if *req.SlotDuration <= 0 {
			return nil, NewValidationError("slot duration must be positive")
		}
		updated.SlotDuration = *req.SlotDuration
	}
	if req.BufferTime != nil {
		if *req.BufferTime < 0 {
			return nil, NewValidationError("buffer time cannot be negative")
		}
		updated.BufferTime = *req.BufferTime
	}
	if req.MaxBookingsPerSlot != nil {
		if *req.MaxBookingsPerSlot < 1 {
			return nil, NewValidationError("max bookings per slot must be at least 1")
		}
		updated.MaxBookingsPerSlot = *req.MaxBookingsPerSlot
	}
	if req.MinimumNoticeHours != nil {
		if *req.MinimumNoticeHours < 0 {
			return nil, NewValidationError("minimum notice cannot be negative")
		}
		updated.MinimumNoticeHours = *req.MinimumNoticeHours
	}
	if req.MaximumAdvanceDays != nil {
		if *req.MaximumAdvanceDays < 1 {
			return nil, NewValidationError("maximum advance days must be at least 1")
		}
		updated.MaximumAdvanceDays = *req.MaximumAdvanceDays
	}
	if req.PriceMultiplier != nil {
		if *req.PriceMultiplier < 0.5 || *req.PriceMultiplier > 3.0 {
			return nil, NewValidationError("price multiplier must be between 0.5 and 3.0")
		}
		updated.PriceMultiplier = *req.PriceMultiplier
	}
	if req.ServiceIDs != nil {
		if err := s.Catalog.ValidateOwnership(ctx, existing.ProviderID, req.ServiceIDs); err != nil {
			return nil, NewValidationError("%v", err)
		}
		updated.ServiceIDs = req.ServiceIDs
	}
	if req.IsActive != nil {
		updated.IsActive = *req.IsActive
	}

	updated.UpdatedAt = s.now()
	return &updated, nil
}

// audit records a schedule mutation; audit failures are logged, never fatal.
func (s *DefaultCalendarService) audit(ctx context.Context, providerID, action, entityID string, detail map[string]any) {
	if s.Audit == nil {
		return
	}
	entry := &models.AuditEntry{
		ID:         uuid.New().String(),
		ProviderID: providerID,
		Action:     action,
		EntityID:   entityID,
		Detail:     detail,
		CreatedAt:  s.now(),
	}
	if err := s.Audit.Insert(ctx, entry); err != nil {
		utils.GetLogger().Warn("Failed to write audit entry",
			zap.String("providerId", providerID),
			zap.String("action", action),
			zap.Error(err))
	}
}

func (s *DefaultCalendarService) invalidate(ctx context.Context, providerID string) {
	if s.Cache != nil {
		s.Cache.InvalidateProvider(ctx, providerID)
	}
}
