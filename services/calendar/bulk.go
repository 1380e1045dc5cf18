package calendar

import (
	"context"
	"time"

	"slotify/models"
)

// maxBulkRules caps how many one-time rules a single bulk request may create.
const maxBulkRules = 100

// CreateBulkAvailability expands a weekly pattern over a date range into
// one-time rules, minus excluded dates. Dates that conflict with existing
// rules or bookings are skipped and reported individually rather than
// failing the whole request.
func (s *DefaultCalendarService) CreateBulkAvailability(ctx context.Context, providerID string, req models.BulkAvailabilityRequest) (*models.BulkAvailabilityResult, error) {
	dates, err := expandPattern(req)
	if err != nil {
		return nil, err
	}
	if len(dates) > maxBulkRules {
		return nil, NewValidationError("pattern expands to %d rules, the maximum is %d", len(dates), maxBulkRules)
	}
	if len(dates) == 0 {
		return nil, NewValidationError("pattern produces no dates in the given range")
	}

	template := models.CreateAvailabilityRequest{
		Kind:               models.RuleKindOneTime,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		SlotDuration:       req.SlotDuration,
		BufferTime:         req.BufferTime,
		MaxBookingsPerSlot: req.MaxBookingsPerSlot,
		MinimumNoticeHours: req.MinimumNoticeHours,
		ServiceIDs:         req.ServiceIDs,
		PriceMultiplier:    req.PriceMultiplier,
	}

	result := &models.BulkAvailabilityResult{}

	err = s.Rules.InTransaction(ctx, func(txCtx context.Context) error {
		for _, date := range dates {
			template.SpecificDate = date
			rule, err := s.buildRule(txCtx, providerID, template)
			if err != nil {
				return err
			}

			conflicts, err := s.CheckConflicts(txCtx, rule, "")
			if err != nil {
				return NewInternalError(err)
			}
			if len(conflicts) > 0 {
				result.SkippedCount++
				result.Dates = append(result.Dates, models.BulkDateResult{
					Date:   date,
					Reason: conflicts[0].Message,
				})
				continue
			}

			if err := s.Rules.Create(txCtx, rule); err != nil {
				return NewInternalError(err)
			}
			result.CreatedCount++
			result.Dates = append(result.Dates, models.BulkDateResult{
				Date:    date,
				Created: true,
				RuleID:  rule.ID,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, providerID, models.AuditRuleCreated, "bulk", map[string]any{
		"created": result.CreatedCount,
		"skipped": result.SkippedCount,
	})
	s.invalidate(ctx, providerID)
	return result, nil
}

// expandPattern lists the matching dates in [StartDate, EndDate], excluding
// the explicitly excluded ones.
func expandPattern(req models.BulkAvailabilityRequest) ([]string, error) {
	start, err := ParseDate(req.StartDate)
	if err != nil {
		return nil, NewValidationError("%v", err)
	}
	end, err := ParseDate(req.EndDate)
	if err != nil {
		return nil, NewValidationError("%v", err)
	}
	if end.Before(start) {
		return nil, NewValidationError("end date %s is before start date %s", req.EndDate, req.StartDate)
	}

	wanted := make(map[time.Weekday]bool, len(req.DaysOfWeek))
	for _, d := range req.DaysOfWeek {
		if d < 0 || d > 6 {
			return nil, NewValidationError("day_of_week %d is out of range", d)
		}
		wanted[time.Weekday(d)] = true
	}
	excluded := make(map[string]bool, len(req.ExcludedDates))
	for _, d := range req.ExcludedDates {
		excluded[d] = true
	}

	var dates []string
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if !wanted[day.Weekday()] {
			continue
		}
		dateStr := day.Format(dateLayout)
		if excluded[dateStr] {
			continue
		}
		dates = append(dates, dateStr)
	}
	return dates, nil
}
