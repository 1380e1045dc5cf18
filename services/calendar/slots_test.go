package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotify/models"
)

func mondayRule() models.AvailabilityRule {
	return models.AvailabilityRule{
		ID:                 "rule-a",
		ProviderID:         "prov-1",
		Kind:               models.RuleKindRecurring,
		DayOfWeek:          time.Monday,
		Start:              540, // 09:00
		End:                720, // 12:00
		SlotDuration:       60,
		BufferTime:         15,
		MaxBookingsPerSlot: 1,
		MinimumNoticeHours: 24,
		MaximumAdvanceDays: 60,
		PriceMultiplier:    1.0,
		IsActive:           true,
	}
}

func TestGenerateSlotsMondayWindow(t *testing.T) {
	// Monday ten days after fixedNow.
	day, err := ParseDate("2026-03-16")
	require.NoError(t, err)

	slots := GenerateSlots("prov-1", day, day,
		[]models.AvailabilityRule{mondayRule()}, nil, nil, "", 0, fixedNow)

	// 09:00-10:00 and 10:15-11:15; the 11:30-12:00 remainder is shorter
	// than a slot and not emitted.
	require.Len(t, slots, 2)
	assert.Equal(t, 540, slots[0].Start)
	assert.Equal(t, 600, slots[0].End)
	assert.Equal(t, 615, slots[1].Start)
	assert.Equal(t, 675, slots[1].End)
	for _, s := range slots {
		assert.True(t, s.IsAvailable)
		assert.Equal(t, 1, s.MaxBookings)
		assert.Equal(t, 0, s.CurrentBookings)
		assert.Equal(t, 1.0, s.PriceMultiplier)
		assert.Equal(t, "rule-a", s.RuleID)
	}
}

func TestGenerateSlotsSkipsNonMatchingDays(t *testing.T) {
	// A Tuesday: the Monday rule produces nothing.
	day, err := ParseDate("2026-03-17")
	require.NoError(t, err)

	slots := GenerateSlots("prov-1", day, day,
		[]models.AvailabilityRule{mondayRule()}, nil, nil, "", 0, fixedNow)
	assert.Empty(t, slots)
}

func TestGenerateSlotsFullDayExceptionRemovesEverything(t *testing.T) {
	day, err := ParseDate("2026-03-16")
	require.NoError(t, err)

	exceptions := []models.Exception{{
		ID:                 "ex-1",
		ProviderID:         "prov-1",
		Date:               "2026-03-16",
		Type:               models.ExceptionUnavailable,
		AffectsAllServices: true,
	}}

	slots := GenerateSlots("prov-1", day, day,
		[]models.AvailabilityRule{mondayRule()}, nil, exceptions, "", 0, fixedNow)
	assert.Empty(t, slots)
}

func TestGenerateSlotsSpecialHoursClampWindow(t *testing.T) {
	day, err := ParseDate("2026-03-16")
	require.NoError(t, err)

	start, end := 600, 720 // special hours 10:00-12:00
	exceptions := []models.Exception{{
		ID:                 "ex-2",
		ProviderID:         "prov-1",
		Date:               "2026-03-16",
		Type:               models.ExceptionSpecialHours,
		Start:              &start,
		End:                &end,
		AffectsAllServices: true,
	}}

	slots := GenerateSlots("prov-1", day, day,
		[]models.AvailabilityRule{mondayRule()}, nil, exceptions, "", 0, fixedNow)

	// Only 10:00-11:00 fits the clamped window with a 60-minute slot.
	require.Len(t, slots, 1)
	assert.Equal(t, 600, slots[0].Start)
	assert.Equal(t, 660, slots[0].End)
}

func TestGenerateSlotsBookingConflictNotEmitted(t *testing.T) {
	day, err := ParseDate("2026-03-16")
	require.NoError(t, err)

	bookings := []models.Booking{{
		ID:         "bk-1",
		ProviderID: "prov-1",
		Date:       "2026-03-16",
		Start:      630, // 10:30
		End:        660, // 11:00
		Status:     models.BookingConfirmed,
	}}

	slots := GenerateSlots("prov-1", day, day,
		[]models.AvailabilityRule{mondayRule()}, bookings, nil, "", 0, fixedNow)

	// 10:15-11:15 overlaps the booking and is dropped; 09:00-10:00 survives.
	require.Len(t, slots, 1)
	assert.Equal(t, 540, slots[0].Start)
}

func TestGenerateSlotsCancelledBookingDoesNotBlock(t *testing.T) {
	day, err := ParseDate("2026-03-16")
	require.NoError(t, err)

	bookings := []models.Booking{{
		ID:         "bk-2",
		ProviderID: "prov-1",
		Date:       "2026-03-16",
		Start:      630,
		End:        660,
		Status:     models.BookingCancelled,
	}}

	slots := GenerateSlots("prov-1", day, day,
		[]models.AvailabilityRule{mondayRule()}, bookings, nil, "", 0, fixedNow)
	assert.Len(t, slots, 2)
}

func TestGenerateSlotsMinimumNotice(t *testing.T) {
	// The rule's own Monday: fixedNow is Monday noon, so the whole
	// morning window is inside the 24h notice period.
	day, err := ParseDate("2026-03-02")
	require.NoError(t, err)

	slots := GenerateSlots("prov-1", day, day,
		[]models.AvailabilityRule{mondayRule()}, nil, nil, "", 0, fixedNow)
	assert.Empty(t, slots)

	// Zero notice still means no slot starts before now, so the morning
	// stays empty on the current day.
	rule := mondayRule()
	rule.MinimumNoticeHours = 0
	slots = GenerateSlots("prov-1", day, day,
		[]models.AvailabilityRule{rule}, nil, nil, "", 0, fixedNow)
	assert.Empty(t, slots)

	// A same-day afternoon window past now is emitted.
	afternoon := mondayRule()
	afternoon.ID = "rule-pm"
	afternoon.Start = 780 // 13:00
	afternoon.End = 900   // 15:00
	afternoon.MinimumNoticeHours = 0
	slots = GenerateSlots("prov-1", day, day,
		[]models.AvailabilityRule{afternoon}, nil, nil, "", 0, fixedNow)
	require.Len(t, slots, 1)
	assert.Equal(t, 780, slots[0].Start)

	// On a future Monday the zero-notice morning is fully bookable.
	nextWeek, err := ParseDate("2026-03-09")
	require.NoError(t, err)
	slots = GenerateSlots("prov-1", nextWeek, nextWeek,
		[]models.AvailabilityRule{rule}, nil, nil, "", 0, fixedNow)
	assert.Len(t, slots, 2)
}

func TestGenerateSlotsMaximumAdvanceDays(t *testing.T) {
	rule := mondayRule()
	rule.MaximumAdvanceDays = 7

	// A Monday three weeks out is beyond the advance window.
	day, err := ParseDate("2026-03-23")
	require.NoError(t, err)

	slots := GenerateSlots("prov-1", day, day,
		[]models.AvailabilityRule{rule}, nil, nil, "", 0, fixedNow)
	assert.Empty(t, slots)
}

func TestGenerateSlotsDurationOverride(t *testing.T) {
	day, err := ParseDate("2026-03-16")
	require.NoError(t, err)

	slots := GenerateSlots("prov-1", day, day,
		[]models.AvailabilityRule{mondayRule()}, nil, nil, "", 90, fixedNow)

	// 90-minute slots with a 15-minute buffer: 09:00-10:30, then 10:45
	// start + 90 = 12:15 > 12:00, so only one slot.
	require.Len(t, slots, 1)
	assert.Equal(t, 540, slots[0].Start)
	assert.Equal(t, 630, slots[0].End)
}

func TestGenerateSlotsServiceScoping(t *testing.T) {
	rule := mondayRule()
	rule.ServiceIDs = []string{"svc-1"}

	day, err := ParseDate("2026-03-16")
	require.NoError(t, err)

	slots := GenerateSlots("prov-1", day, day,
		[]models.AvailabilityRule{rule}, nil, nil, "svc-2", 0, fixedNow)
	assert.Empty(t, slots)

	slots = GenerateSlots("prov-1", day, day,
		[]models.AvailabilityRule{rule}, nil, nil, "svc-1", 0, fixedNow)
	assert.Len(t, slots, 2)
}

func TestGenerateSlotsSortedAcrossRulesAndDays(t *testing.T) {
	oneTime := models.AvailabilityRule{
		ID:                 "rule-b",
		ProviderID:         "prov-1",
		Kind:               models.RuleKindOneTime,
		SpecificDate:       "2026-03-16",
		Start:              780, // 13:00
		End:                900, // 15:00
		SlotDuration:       60,
		BufferTime:         0,
		MaxBookingsPerSlot: 2,
		MinimumNoticeHours: 24,
		MaximumAdvanceDays: 60,
		PriceMultiplier:    1.5,
		IsActive:           true,
	}

	start, err := ParseDate("2026-03-16")
	require.NoError(t, err)
	end, err := ParseDate("2026-03-17")
	require.NoError(t, err)

	slots := GenerateSlots("prov-1", start, end,
		[]models.AvailabilityRule{oneTime, mondayRule()}, nil, nil, "", 0, fixedNow)

	require.Len(t, slots, 4) // 2 morning + 13:00-14:00 + 14:00-15:00
	for i := 1; i < len(slots); i++ {
		assert.False(t, slots[i].StartsAt.Before(slots[i-1].StartsAt), "slots out of order at %d", i)
	}
	assert.Equal(t, 780, slots[2].Start)
	assert.Equal(t, 1.5, slots[2].PriceMultiplier)
	assert.Equal(t, 2, slots[2].MaxBookings)
}

func TestGenerateSlotsInactiveRuleIgnored(t *testing.T) {
	rule := mondayRule()
	rule.IsActive = false

	day, err := ParseDate("2026-03-16")
	require.NoError(t, err)

	slots := GenerateSlots("prov-1", day, day,
		[]models.AvailabilityRule{rule}, nil, nil, "", 0, fixedNow)
	assert.Empty(t, slots)
}
