package calendar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotify/models"
)

func bulkRequest() models.BulkAvailabilityRequest {
	return models.BulkAvailabilityRequest{
		DaysOfWeek: []int{1, 3, 5}, // Mon, Wed, Fri
		StartDate:  "2026-03-02",
		EndDate:    "2026-04-03",
		StartTime:  "09:00",
		EndTime:    "12:00",
	}
}

func TestCreateBulkAvailabilityExpandsPattern(t *testing.T) {
	svc, rules, _, _, _ := newTestService()

	req := bulkRequest()
	req.ExcludedDates = []string{"2026-03-18"}
	result, err := svc.CreateBulkAvailability(context.Background(), "prov-1", req)
	require.NoError(t, err)

	// Five weeks of Mon/Wed/Fri is 15 dates, minus the excluded Wednesday.
	assert.Equal(t, 14, result.CreatedCount)
	assert.Equal(t, 0, result.SkippedCount)
	require.Len(t, result.Dates, 14)
	for _, d := range result.Dates {
		assert.True(t, d.Created)
		assert.NotEmpty(t, d.RuleID)
		assert.NotEqual(t, "2026-03-18", d.Date)
	}

	stored, err := rules.ListByProvider(context.Background(), "prov-1", true)
	require.NoError(t, err)
	require.Len(t, stored, 14)
	for _, rule := range stored {
		assert.Equal(t, models.RuleKindOneTime, rule.Kind)
		assert.Equal(t, 540, rule.Start)
		assert.Equal(t, 720, rule.End)
	}
}

func TestCreateBulkAvailabilitySkipsConflictingDates(t *testing.T) {
	svc, rules, _, _, _ := newTestService()
	existing := models.AvailabilityRule{
		ID:           "rule-existing",
		ProviderID:   "prov-1",
		Kind:         models.RuleKindOneTime,
		SpecificDate: "2026-03-09",
		Start:        600,
		End:          660,
		IsActive:     true,
	}
	require.NoError(t, rules.Create(context.Background(), &existing))

	result, err := svc.CreateBulkAvailability(context.Background(), "prov-1", bulkRequest())
	require.NoError(t, err)

	assert.Equal(t, 14, result.CreatedCount)
	assert.Equal(t, 1, result.SkippedCount)

	var skipped *models.BulkDateResult
	for i := range result.Dates {
		if !result.Dates[i].Created {
			skipped = &result.Dates[i]
		}
	}
	require.NotNil(t, skipped)
	assert.Equal(t, "2026-03-09", skipped.Date)
	assert.NotEmpty(t, skipped.Reason)
}

func TestCreateBulkAvailabilityCap(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	req := bulkRequest()
	req.DaysOfWeek = []int{0, 1, 2, 3, 4, 5, 6}
	req.EndDate = "2026-08-31"
	_, err := svc.CreateBulkAvailability(context.Background(), "prov-1", req)
	svcErr := serviceErr(t, err)
	assert.Equal(t, CodeValidation, svcErr.Code)
}

func TestCreateBulkAvailabilityEmptyPattern(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	// A Sunday-only pattern over a Mon-Fri range matches nothing.
	req := bulkRequest()
	req.DaysOfWeek = []int{0}
	req.StartDate = "2026-03-02"
	req.EndDate = "2026-03-06"
	_, err := svc.CreateBulkAvailability(context.Background(), "prov-1", req)
	svcErr := serviceErr(t, err)
	assert.Equal(t, CodeValidation, svcErr.Code)

	req = bulkRequest()
	req.DaysOfWeek = []int{9}
	_, err = svc.CreateBulkAvailability(context.Background(), "prov-1", req)
	svcErr = serviceErr(t, err)
	assert.Equal(t, CodeValidation, svcErr.Code)

	req = bulkRequest()
	req.EndDate = "2026-02-01"
	_, err = svc.CreateBulkAvailability(context.Background(), "prov-1", req)
	svcErr = serviceErr(t, err)
	assert.Equal(t, CodeValidation, svcErr.Code)
}
