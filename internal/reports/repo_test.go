package reports

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/divelink/backoffice-backend/pkg/db/models"
	"github.com/divelink/backoffice-backend/pkg/enums"
)

func setupReportsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS reports (
  id TEXT PRIMARY KEY,
  reporter_id TEXT NOT NULL,
  reporter_name TEXT NOT NULL,
  reported_user_id TEXT NOT NULL,
  reported_user_name TEXT NOT NULL,
  reported_post_id TEXT,
  reason TEXT NOT NULL,
  details TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  action_taken TEXT,
  action_note TEXT NOT NULL DEFAULT '',
  reviewed_at DATETIME,
  reviewed_by TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func seedReport(t *testing.T, db *gorm.DB, reportedUserID string, createdAt time.Time) *models.Report {
	t.Helper()

	report := &models.Report{
		ID:               uuid.New(),
		ReporterID:       uuid.NewString(),
		ReporterName:     "Reporter",
		ReportedUserID:   reportedUserID,
		ReportedUserName: "Reported",
		Reason:           enums.ReportReasonSpam,
		Details:          "posting ads in dive logs",
		Status:           enums.ReportStatusPending,
		CreatedAt:        createdAt,
		UpdatedAt:        createdAt,
	}
	require.NoError(t, db.Create(report).Error)
	return report
}

func TestRepositoryRecordActionDerivesReviewed(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)
	report := seedReport(t, db, uuid.NewString(), time.Now().UTC())

	now := time.Now().UTC()
	ok, err := repo.RecordAction(context.Background(), report.ID, enums.ReportActionWarning, "first strike", "admin-1", now)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := repo.Get(context.Background(), report.ID)
	require.NoError(t, err)
	require.Equal(t, enums.ReportStatusReviewed, got.Status)
	require.NotNil(t, got.ActionTaken)
	require.Equal(t, enums.ReportActionWarning, *got.ActionTaken)
	require.Equal(t, "first strike", got.ActionNote)
	require.NotNil(t, got.ReviewedBy)
	require.Equal(t, "admin-1", *got.ReviewedBy)
}

func TestRepositoryRecordActionDismissResolves(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)
	report := seedReport(t, db, uuid.NewString(), time.Now().UTC())

	ok, err := repo.RecordAction(context.Background(), report.ID, enums.ReportActionDismissed, "", "admin-1", time.Now().UTC())
	require.NoError(t, err)
	require.True(t, ok)

	got, err := repo.Get(context.Background(), report.ID)
	require.NoError(t, err)
	require.Equal(t, enums.ReportStatusResolved, got.Status)
}

func TestRepositoryRecordActionMissingReport(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)

	ok, err := repo.RecordAction(context.Background(), uuid.New(), enums.ReportActionBanUser, "", "admin-1", time.Now().UTC())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRepositoryListFiltersByReportedUser(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)

	target := uuid.NewString()
	base := time.Now().UTC().Truncate(time.Second)
	seedReport(t, db, target, base)
	seedReport(t, db, target, base.Add(time.Minute))
	seedReport(t, db, uuid.NewString(), base.Add(2*time.Minute))

	rows, _, err := repo.List(context.Background(), listReportsParams{
		ReportedUserID: target,
		Limit:          10,
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		require.Equal(t, target, row.ReportedUserID)
	}
}
