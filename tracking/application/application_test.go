package application

import (
	"testing"
	"time"

	"github.com/acamacho/jobtrail/pkg/errx"
	"github.com/acamacho/jobtrail/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleApplication() Application {
	return Application{
		ID:            kernel.ApplicationID("0d4a7f3a-3c86-4f22-9df3-1a8e7e2b6f01"),
		UserID:        kernel.UserID("8f14e45f-ceea-4e67-aab5-95efb1a17a86"),
		CompanyID:     kernel.CompanyID("1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed"),
		StatusID:      kernel.StatusID("6ec0bd7f-11c0-43da-975e-2a8ad9ebae0b"),
		PositionTitle: "Software Engineer",
		DateApplied:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestApplyChangesKnownFields(t *testing.T) {
	app := sampleApplication()

	err := app.ApplyChanges(map[string]any{
		"position_title": "Staff Engineer",
		"notes":          "Referred by a friend",
		"date_applied":   "2024-06-15",
	})
	require.NoError(t, err)

	assert.Equal(t, "Staff Engineer", app.PositionTitle)
	require.NotNil(t, app.Notes)
	assert.Equal(t, "Referred by a friend", *app.Notes)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), app.DateApplied)
	assert.False(t, app.UpdatedAt.IsZero())
}

func TestApplyChangesReassignsReferences(t *testing.T) {
	app := sampleApplication()

	err := app.ApplyChanges(map[string]any{
		"user":   "aaaaaaaa-bbbb-4ccc-8ddd-eeeeeeeeeeee",
		"status": "11111111-2222-4333-8444-555555555555",
	})
	require.NoError(t, err)

	assert.Equal(t, kernel.UserID("aaaaaaaa-bbbb-4ccc-8ddd-eeeeeeeeeeee"), app.UserID)
	assert.Equal(t, kernel.StatusID("11111111-2222-4333-8444-555555555555"), app.StatusID)
}

func TestApplyChangesIgnoresUnknownKeys(t *testing.T) {
	app := sampleApplication()
	before := app

	err := app.ApplyChanges(map[string]any{
		"admin":       true,
		"salary_wish": 999999,
	})
	require.NoError(t, err)

	assert.Equal(t, before.PositionTitle, app.PositionTitle)
	assert.Equal(t, before.UserID, app.UserID)
}

func TestApplyChangesInvalidReferenceFailsWhole(t *testing.T) {
	app := sampleApplication()
	before := app

	err := app.ApplyChanges(map[string]any{
		"position_title": "Changed Title",
		"user":           "not-a-uuid",
	})

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "APPLICATION_INVALID_FIELD_VALUE", e.Code)

	// no partial application
	assert.Equal(t, before.PositionTitle, app.PositionTitle)
	assert.Equal(t, before.UserID, app.UserID)
}

func TestApplyChangesRejectsBadTypes(t *testing.T) {
	app := sampleApplication()

	err := app.ApplyChanges(map[string]any{"position_title": 42})

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "APPLICATION_INVALID_FIELD_VALUE", e.Code)
}

func TestApplyChangesRejectsBadDate(t *testing.T) {
	app := sampleApplication()

	err := app.ApplyChanges(map[string]any{"date_applied": "soon"})

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "APPLICATION_INVALID_FIELD_VALUE", e.Code)
	assert.Equal(t, "date_applied", e.Details["field"])
}
