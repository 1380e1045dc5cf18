package calendar

import (
	"sort"
	"time"

	"slotify/models"
)

// GenerateSlots materializes the bookable slots for a provider over
// [windowStart, windowEnd] (inclusive calendar days). It is a pure function
// of its inputs; now is only used for minimum-notice and advance-window
// filtering.
func GenerateSlots(
	providerID string,
	windowStart, windowEnd time.Time,
	rules []models.AvailabilityRule,
	bookings []models.Booking,
	exceptions []models.Exception,
	serviceID string,
	durationOverride int,
	now time.Time,
) []models.Slot {
	exceptionsByDate := make(map[string][]models.Exception, len(exceptions))
	for _, ex := range exceptions {
		exceptionsByDate[ex.Date] = append(exceptionsByDate[ex.Date], ex)
	}
	bookingsByDate := make(map[string][]models.Booking, len(bookings))
	for _, b := range bookings {
		if b.IsActive() {
			bookingsByDate[b.Date] = append(bookingsByDate[b.Date], b)
		}
	}

	var slots []models.Slot
	for day := windowStart; !day.After(windowEnd); day = day.AddDate(0, 0, 1) {
		dateStr := day.Format(dateLayout)

		for i := range rules {
			rule := &rules[i]
			if !rule.IsActive || !rule.AppliesToDate(day) {
				continue
			}
			if serviceID != "" && !rule.AppliesToService(serviceID) {
				continue
			}
			if rule.MaximumAdvanceDays > 0 && day.After(now.AddDate(0, 0, rule.MaximumAdvanceDays)) {
				continue
			}

			windowStartMin, windowEndMin, blocked, skip := applyExceptions(rule, exceptionsByDate[dateStr], serviceID)
			if skip {
				continue
			}

			slots = append(slots, walkRule(rule, providerID, serviceID, day, dateStr,
				windowStartMin, windowEndMin, blocked, bookingsByDate[dateStr], durationOverride, now)...)
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartsAt.Before(slots[j].StartsAt)
	})
	return slots
}

// applyExceptions narrows or removes a rule's daily window according to the
// day's exceptions. It returns the effective window, any blocked sub-ranges,
// and whether the rule is skipped entirely for the day.
func applyExceptions(rule *models.AvailabilityRule, dayExceptions []models.Exception, serviceID string) (start, end int, blocked [][2]int, skip bool) {
	start, end = rule.Start, rule.End

	for _, ex := range dayExceptions {
		if !exceptionCovers(&ex, serviceID) {
			continue
		}
		switch {
		case ex.BlocksWholeDay():
			return 0, 0, nil, true
		case ex.Type == models.ExceptionSpecialHours && ex.Start != nil && ex.End != nil:
			// Special hours clamp the rule window to their intersection.
			if *ex.Start > start {
				start = *ex.Start
			}
			if *ex.End < end {
				end = *ex.End
			}
			if start >= end {
				return 0, 0, nil, true
			}
		case ex.Start != nil && ex.End != nil:
			// Partial unavailability blocks a sub-range of the day.
			blocked = append(blocked, [2]int{*ex.Start, *ex.End})
		}
	}
	return start, end, blocked, false
}

func exceptionCovers(ex *models.Exception, serviceID string) bool {
	if ex.AffectsAllServices || len(ex.ServiceIDs) == 0 {
		return true
	}
	if serviceID == "" {
		return true
	}
	for _, id := range ex.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// walkRule steps through a rule's daily window emitting bookable slots.
// Buffer time is dead time between slots, never bookable.
func walkRule(
	rule *models.AvailabilityRule,
	providerID, serviceID string,
	day time.Time,
	dateStr string,
	windowStartMin, windowEndMin int,
	blocked [][2]int,
	dayBookings []models.Booking,
	durationOverride int,
	now time.Time,
) []models.Slot {
	duration := rule.SlotDuration
	if durationOverride > 0 {
		duration = durationOverride
	}
	if duration <= 0 {
		return nil
	}

	earliestStart := now.Add(time.Duration(rule.MinimumNoticeHours) * time.Hour)

	var slots []models.Slot
	for slotStart := windowStartMin; slotStart+duration <= windowEndMin; slotStart += duration + rule.BufferTime {
		slotEnd := slotStart + duration

		conflict := false
		for _, b := range dayBookings {
			if Overlaps(slotStart, slotEnd, b.Start, b.End) {
				conflict = true
				break
			}
		}
		if !conflict {
			for _, br := range blocked {
				if Overlaps(slotStart, slotEnd, br[0], br[1]) {
					conflict = true
					break
				}
			}
		}
		if conflict {
			continue
		}

		startsAt := AtMinute(day, slotStart)
		if startsAt.Before(earliestStart) {
			continue
		}

		slots = append(slots, models.Slot{
			ProviderID:      providerID,
			ServiceID:       serviceID,
			Date:            dateStr,
			Start:           slotStart,
			End:             slotEnd,
			StartsAt:        startsAt,
			EndsAt:          AtMinute(day, slotEnd),
			IsAvailable:     true,
			MaxBookings:     rule.MaxBookingsPerSlot,
			CurrentBookings: 0,
			PriceMultiplier: rule.PriceMultiplier,
			RuleID:          rule.ID,
		})
	}
	return slots
}
