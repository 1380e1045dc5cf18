package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotify/models"
)

func TestCheckConflictsRecurringOverlap(t *testing.T) {
	svc, rules, _, _, _ := newTestService()
	existing := mondayRule()
	require.NoError(t, rules.Create(context.Background(), &existing))

	candidate := mondayRule()
	candidate.ID = "rule-new"
	candidate.Start = 600 // 10:00
	candidate.End = 780   // 13:00

	conflicts, err := svc.CheckConflicts(context.Background(), &candidate, "")
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictTimeOverlap, conflicts[0].Type)
	assert.Equal(t, "rule-a", conflicts[0].RuleID)
	assert.Equal(t, 540, conflicts[0].Start)
	assert.Equal(t, 720, conflicts[0].End)
}

func TestCheckConflictsTouchingBoundariesAllowed(t *testing.T) {
	svc, rules, _, _, _ := newTestService()
	existing := mondayRule()
	require.NoError(t, rules.Create(context.Background(), &existing))

	candidate := mondayRule()
	candidate.ID = "rule-new"
	candidate.Start = 720 // starts exactly where the existing rule ends
	candidate.End = 840

	conflicts, err := svc.CheckConflicts(context.Background(), &candidate, "")
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestCheckConflictsDifferentWeekdaysIndependent(t *testing.T) {
	svc, rules, _, _, _ := newTestService()
	existing := mondayRule()
	require.NoError(t, rules.Create(context.Background(), &existing))

	candidate := mondayRule()
	candidate.ID = "rule-new"
	candidate.DayOfWeek = time.Tuesday

	conflicts, err := svc.CheckConflicts(context.Background(), &candidate, "")
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestCheckConflictsOneTimeAgainstRecurring(t *testing.T) {
	svc, rules, _, _, _ := newTestService()
	existing := mondayRule()
	require.NoError(t, rules.Create(context.Background(), &existing))

	candidate := models.AvailabilityRule{
		ID:           "rule-new",
		ProviderID:   "prov-1",
		Kind:         models.RuleKindOneTime,
		SpecificDate: "2026-03-16", // a Monday
		Start:        600,
		End:          660,
		IsActive:     true,
	}

	conflicts, err := svc.CheckConflicts(context.Background(), &candidate, "")
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictRecurring, conflicts[0].Type)
	assert.Equal(t, "rule-a", conflicts[0].RuleID)
	assert.Equal(t, "2026-03-16", conflicts[0].Date)
}

func TestCheckConflictsOneTimeAgainstOneTime(t *testing.T) {
	svc, rules, _, _, _ := newTestService()
	existing := models.AvailabilityRule{
		ID:           "rule-ot",
		ProviderID:   "prov-1",
		Kind:         models.RuleKindOneTime,
		SpecificDate: "2026-03-17",
		Start:        540,
		End:          660,
		IsActive:     true,
	}
	require.NoError(t, rules.Create(context.Background(), &existing))

	candidate := existing
	candidate.ID = "rule-new"
	candidate.Start = 600
	candidate.End = 720

	conflicts, err := svc.CheckConflicts(context.Background(), &candidate, "")
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictSpecific, conflicts[0].Type)
	assert.Equal(t, "rule-ot", conflicts[0].RuleID)

	// A different date is no conflict.
	candidate.SpecificDate = "2026-03-18"
	conflicts, err = svc.CheckConflicts(context.Background(), &candidate, "")
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestCheckConflictsExcludesRuleUnderEdit(t *testing.T) {
	svc, rules, _, _, _ := newTestService()
	existing := mondayRule()
	require.NoError(t, rules.Create(context.Background(), &existing))

	// Re-validating the rule against itself must not self-conflict.
	candidate := existing
	conflicts, err := svc.CheckConflicts(context.Background(), &candidate, existing.ID)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestCheckConflictsActiveBookingBlocksRecurring(t *testing.T) {
	svc, _, bookings, _, _ := newTestService()
	bookings.bookings = []models.Booking{{
		ID:         "bk-1",
		ProviderID: "prov-1",
		ClientID:   "client-1",
		Date:       "2026-03-09", // Monday a week out
		Start:      600,
		End:        660,
		Status:     models.BookingConfirmed,
	}}

	candidate := mondayRule()
	conflicts, err := svc.CheckConflicts(context.Background(), &candidate, "")
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictBooking, conflicts[0].Type)
	assert.Equal(t, "bk-1", conflicts[0].BookingID)
	assert.Equal(t, "2026-03-09", conflicts[0].Date)
}

func TestCheckConflictsBookingOnOtherWeekdayIgnored(t *testing.T) {
	svc, _, bookings, _, _ := newTestService()
	bookings.bookings = []models.Booking{{
		ID:         "bk-1",
		ProviderID: "prov-1",
		Date:       "2026-03-10", // Tuesday
		Start:      600,
		End:        660,
		Status:     models.BookingConfirmed,
	}}

	candidate := mondayRule()
	conflicts, err := svc.CheckConflicts(context.Background(), &candidate, "")
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestCheckConflictsCancelledBookingIgnored(t *testing.T) {
	svc, _, bookings, _, _ := newTestService()
	bookings.bookings = []models.Booking{{
		ID:         "bk-1",
		ProviderID: "prov-1",
		Date:       "2026-03-09",
		Start:      600,
		End:        660,
		Status:     models.BookingCancelled,
	}}

	candidate := mondayRule()
	conflicts, err := svc.CheckConflicts(context.Background(), &candidate, "")
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestCheckConflictsOneTimeBookingSameDate(t *testing.T) {
	svc, _, bookings, _, _ := newTestService()
	bookings.bookings = []models.Booking{{
		ID:         "bk-1",
		ProviderID: "prov-1",
		Date:       "2026-03-17",
		Start:      555,
		End:        585,
		Status:     models.BookingPending,
	}}

	candidate := models.AvailabilityRule{
		ID:           "rule-new",
		ProviderID:   "prov-1",
		Kind:         models.RuleKindOneTime,
		SpecificDate: "2026-03-17",
		Start:        540,
		End:          660,
		IsActive:     true,
	}

	conflicts, err := svc.CheckConflicts(context.Background(), &candidate, "")
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictBooking, conflicts[0].Type)
}
