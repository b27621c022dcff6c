package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/readcircle/readcircle-server/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReport(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	svc := NewReportService(db)
	reporter := createTestUser(t, db, "reporter@example.com")

	_, err := svc.Create(reporter.ID, &dto.CreateReportRequest{ContentType: "comment", Reason: "spam"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	_, err = svc.Create(reporter.ID, &dto.CreateReportRequest{ContentType: "user", Reason: "  "})
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	report, err := svc.Create(reporter.ID, &dto.CreateReportRequest{
		ContentType: "reading_log",
		ContentID:   uuid.New().String(),
		Reason:      "offensive review",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", report.Status)
	assert.Equal(t, reporter.ID, report.ReporterID)
}

func TestListAndActionReports(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	svc := NewReportService(db)
	reporter := createTestUser(t, db, "reporter@example.com")

	first, err := svc.Create(reporter.ID, &dto.CreateReportRequest{ContentType: "user", ContentID: uuid.New().String(), Reason: "harassment"})
	require.NoError(t, err)
	_, err = svc.Create(reporter.ID, &dto.CreateReportRequest{ContentType: "user", ContentID: uuid.New().String(), Reason: "spam"})
	require.NoError(t, err)

	reports, total, err := svc.List("", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, reports, 2)

	require.Error(t, svc.Action(first.ID, &dto.ActionReportRequest{Status: "ignored"}))
	require.ErrorIs(t, svc.Action(uuid.New(), &dto.ActionReportRequest{Status: "dismissed"}), ErrNotFound)
	require.NoError(t, svc.Action(first.ID, &dto.ActionReportRequest{Status: "dismissed", AdminNote: "not actionable"}))

	pending, total, err := svc.List("pending", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, pending, 1)
}
