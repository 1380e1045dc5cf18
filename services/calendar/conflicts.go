package calendar

import (
	"context"
	"fmt"

	"slotify/models"
)

// impactHorizonMonths bounds how far ahead the engine scans bookings when
// checking a recurring rule for conflicts or edit impact.
const impactHorizonMonths = 6

// CheckConflicts determines whether a candidate rule overlaps an existing
// rule or an active booking of the same provider. excludeRuleID skips the
// rule itself when re-validating an update. An empty result means the
// candidate can be persisted.
func (s *DefaultCalendarService) CheckConflicts(ctx context.Context, candidate *models.AvailabilityRule, excludeRuleID string) ([]models.Conflict, error) {
	conflicts, err := s.checkRuleConflicts(ctx, candidate, excludeRuleID)
	if err != nil {
		return nil, err
	}

	bookingConflicts, err := s.checkBookingConflicts(ctx, candidate)
	if err != nil {
		return nil, err
	}
	return append(conflicts, bookingConflicts...), nil
}

// checkRuleConflicts covers rule-vs-rule overlaps only. Updates re-validate
// with this instead of CheckConflicts: bookings already placed under the rule
// sit inside its window and are the impact analyzer's concern, not a
// double-booking.
func (s *DefaultCalendarService) checkRuleConflicts(ctx context.Context, candidate *models.AvailabilityRule, excludeRuleID string) ([]models.Conflict, error) {
	var conflicts []models.Conflict

	switch candidate.Kind {
	case models.RuleKindRecurring:
		existing, err := s.Rules.ListForWeekday(ctx, candidate.ProviderID, candidate.DayOfWeek)
		if err != nil {
			return nil, fmt.Errorf("failed to load recurring rules: %w", err)
		}
		for _, rule := range existing {
			if rule.ID == excludeRuleID {
				continue
			}
			if Overlaps(candidate.Start, candidate.End, rule.Start, rule.End) {
				conflicts = append(conflicts, models.Conflict{
					Type:    models.ConflictTimeOverlap,
					RuleID:  rule.ID,
					Start:   rule.Start,
					End:     rule.End,
					Message: fmt.Sprintf("overlaps recurring rule %s (%s-%s on %s)", rule.ID, FormatClock(rule.Start), FormatClock(rule.End), candidate.DayOfWeek),
				})
			}
		}

	case models.RuleKindOneTime:
		day, err := ParseDate(candidate.SpecificDate)
		if err != nil {
			return nil, err
		}

		recurring, err := s.Rules.ListForWeekday(ctx, candidate.ProviderID, day.Weekday())
		if err != nil {
			return nil, fmt.Errorf("failed to load recurring rules: %w", err)
		}
		for _, rule := range recurring {
			if rule.ID == excludeRuleID {
				continue
			}
			if Overlaps(candidate.Start, candidate.End, rule.Start, rule.End) {
				conflicts = append(conflicts, models.Conflict{
					Type:    models.ConflictRecurring,
					RuleID:  rule.ID,
					Date:    candidate.SpecificDate,
					Start:   rule.Start,
					End:     rule.End,
					Message: fmt.Sprintf("overlaps recurring rule %s on %s", rule.ID, candidate.SpecificDate),
				})
			}
		}

		sameDay, err := s.Rules.ListForDate(ctx, candidate.ProviderID, candidate.SpecificDate)
		if err != nil {
			return nil, fmt.Errorf("failed to load one-time rules: %w", err)
		}
		for _, rule := range sameDay {
			if rule.ID == excludeRuleID {
				continue
			}
			if Overlaps(candidate.Start, candidate.End, rule.Start, rule.End) {
				conflicts = append(conflicts, models.Conflict{
					Type:    models.ConflictSpecific,
					RuleID:  rule.ID,
					Date:    candidate.SpecificDate,
					Start:   rule.Start,
					End:     rule.End,
					Message: fmt.Sprintf("overlaps one-time rule %s on %s", rule.ID, candidate.SpecificDate),
				})
			}
		}
	}

	return conflicts, nil
}

// checkBookingConflicts scans active bookings in the candidate's scope. A
// booking only conflicts when it overlaps the rule's time range on a day the
// rule applies to.
func (s *DefaultCalendarService) checkBookingConflicts(ctx context.Context, candidate *models.AvailabilityRule) ([]models.Conflict, error) {
	now := s.now()
	var bookings []models.Booking
	var err error

	switch candidate.Kind {
	case models.RuleKindOneTime:
		bookings, err = s.Bookings.ListActiveOnDate(ctx, candidate.ProviderID, candidate.SpecificDate)
	default:
		horizon := now.AddDate(0, impactHorizonMonths, 0)
		bookings, err = s.Bookings.ListActiveInWindow(ctx, candidate.ProviderID, now.Format(dateLayout), horizon.Format(dateLayout))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	var conflicts []models.Conflict
	for _, b := range bookings {
		if candidate.Kind == models.RuleKindRecurring {
			day, err := ParseDate(b.Date)
			if err != nil || day.Weekday() != candidate.DayOfWeek {
				continue
			}
		}
		if Overlaps(candidate.Start, candidate.End, b.Start, b.End) {
			conflicts = append(conflicts, models.Conflict{
				Type:      models.ConflictBooking,
				BookingID: b.ID,
				Date:      b.Date,
				Start:     b.Start,
				End:       b.End,
				Message:   fmt.Sprintf("overlaps booking %s on %s (%s-%s)", b.ID, b.Date, FormatClock(b.Start), FormatClock(b.End)),
			})
		}
	}
	return conflicts, nil
}
