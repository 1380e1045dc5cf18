package calendar

import (
	"context"
	"fmt"

	"slotify/models"
)

// proposedChange is the subset of an update that can affect bookings.
type proposedChange struct {
	Start      *int
	End        *int
	DayOfWeek  *int
	Deactivate bool
	Delete     bool
}

// FindAffectedBookings determines which active bookings a proposed rule edit
// or deletion would orphan. The engine tolerates legacy bookings that already
// sit outside the rule's window: it reports impact, it does not enforce
// database constraints.
func (s *DefaultCalendarService) FindAffectedBookings(ctx context.Context, rule *models.AvailabilityRule, change proposedChange) ([]models.AffectedBooking, error) {
	bookings, err := s.bookingsInRuleScope(ctx, rule)
	if err != nil {
		return nil, err
	}

	newStart := rule.Start
	if change.Start != nil {
		newStart = *change.Start
	}
	newEnd := rule.End
	if change.End != nil {
		newEnd = *change.End
	}
	dayChanged := change.DayOfWeek != nil && *change.DayOfWeek != int(rule.DayOfWeek)

	var affected []models.AffectedBooking
	for _, b := range bookings {
		switch {
		case change.Delete, change.Deactivate:
			affected = append(affected, models.AffectedBooking{
				Booking:           b,
				ImpactType:        models.ImpactCancellationRequired,
				RecommendedAction: fmt.Sprintf("cancel or move booking %s on %s before removing this availability", b.ID, b.Date),
			})
		case dayChanged:
			affected = append(affected, models.AffectedBooking{
				Booking:           b,
				ImpactType:        models.ImpactRescheduleRequired,
				RecommendedAction: fmt.Sprintf("reschedule booking %s: the availability moves to a different weekday", b.ID),
			})
		case b.Start < newStart || b.End > newEnd:
			affected = append(affected, models.AffectedBooking{
				Booking:    b,
				ImpactType: models.ImpactRescheduleRequired,
				RecommendedAction: fmt.Sprintf("reschedule booking %s to fit the new %s-%s window",
					b.ID, FormatClock(newStart), FormatClock(newEnd)),
			})
		}
	}
	return affected, nil
}

// bookingsInRuleScope loads the active bookings a rule governs: the specific
// date for one-time rules, matching weekdays up to six months ahead for
// recurring rules.
func (s *DefaultCalendarService) bookingsInRuleScope(ctx context.Context, rule *models.AvailabilityRule) ([]models.Booking, error) {
	if rule.Kind == models.RuleKindOneTime {
		// Deletion safety covers future bookings only; a rule whose date
		// has passed is history and blocks nothing.
		if rule.SpecificDate < s.now().Format(dateLayout) {
			return nil, nil
		}
		bookings, err := s.Bookings.ListActiveOnDate(ctx, rule.ProviderID, rule.SpecificDate)
		if err != nil {
			return nil, fmt.Errorf("failed to load bookings for %s: %w", rule.SpecificDate, err)
		}
		return s.filterByRuleWindow(bookings, rule), nil
	}

	now := s.now()
	horizon := now.AddDate(0, impactHorizonMonths, 0)
	bookings, err := s.Bookings.ListActiveInWindow(ctx, rule.ProviderID, now.Format(dateLayout), horizon.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	var scoped []models.Booking
	for _, b := range bookings {
		day, err := ParseDate(b.Date)
		if err != nil || day.Weekday() != rule.DayOfWeek {
			continue
		}
		scoped = append(scoped, b)
	}
	return s.filterByRuleWindow(scoped, rule), nil
}

// filterByRuleWindow keeps bookings whose time range intersects the rule's
// current window; bookings placed under a different rule are not this rule's
// concern.
func (s *DefaultCalendarService) filterByRuleWindow(bookings []models.Booking, rule *models.AvailabilityRule) []models.Booking {
	var out []models.Booking
	for _, b := range bookings {
		if Overlaps(b.Start, b.End, rule.Start, rule.End) {
			out = append(out, b)
		}
	}
	return out
}
