package shops

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

func setupShopsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	applications := `
CREATE TABLE IF NOT EXISTS shop_applications (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  user_name TEXT NOT NULL,
  user_email TEXT NOT NULL,
  shop_name TEXT NOT NULL,
  address TEXT NOT NULL,
  region TEXT NOT NULL,
  description TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  reject_reason TEXT,
  reviewed_at DATETIME,
  reviewed_by TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	users := `
CREATE TABLE IF NOT EXISTS app_users (
  uid TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  name TEXT NOT NULL,
  rank TEXT,
  region TEXT,
  organization TEXT,
  is_shop_staff INTEGER NOT NULL DEFAULT 0,
  is_banned INTEGER NOT NULL DEFAULT 0,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(applications).Error)
	require.NoError(t, db.Exec(users).Error)
	return db
}

func seedApplication(t *testing.T, db *gorm.DB, region string, status enums.ApplicationStatus, createdAt time.Time) *models.ShopApplication {
	t.Helper()

	app := &models.ShopApplication{
		ID:        uuid.New(),
		UserID:    uuid.NewString(),
		UserName:  "Applicant",
		UserEmail: "applicant@example.com",
		ShopName:  "Reef Divers",
		Address:   "1-1 Harbor St",
		Region:    region,
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, db.Create(app).Error)
	return app
}

func TestRepositorySettleFromPendingApproves(t *testing.T) {
	db := setupShopsTestDB(t)
	repo := NewRepository(db)
	app := seedApplication(t, db, "okinawa", enums.ApplicationStatusPending, time.Now().UTC())

	now := time.Now().UTC()
	updated, err := repo.SettleFromPending(context.Background(), app.ID, enums.ApplicationStatusApproved, nil, "admin-1", now)
	require.NoError(t, err)
	require.True(t, updated)

	got, err := repo.Get(context.Background(), app.ID)
	require.NoError(t, err)
	require.Equal(t, enums.ApplicationStatusApproved, got.Status)
	require.NotNil(t, got.ReviewedAt)
	require.NotNil(t, got.ReviewedBy)
	require.Equal(t, "admin-1", *got.ReviewedBy)
}

func TestRepositorySettleFromPendingMissesSettled(t *testing.T) {
	db := setupShopsTestDB(t)
	repo := NewRepository(db)
	app := seedApplication(t, db, "okinawa", enums.ApplicationStatusRejected, time.Now().UTC())

	updated, err := repo.SettleFromPending(context.Background(), app.ID, enums.ApplicationStatusApproved, nil, "admin-1", time.Now().UTC())
	require.NoError(t, err)
	require.False(t, updated)

	got, err := repo.Get(context.Background(), app.ID)
	require.NoError(t, err)
	require.Equal(t, enums.ApplicationStatusRejected, got.Status)
}

func TestRepositoryGetMissing(t *testing.T) {
	db := setupShopsTestDB(t)
	repo := NewRepository(db)

	_, err := repo.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRepositoryListFiltersAndPaginates(t *testing.T) {
	db := setupShopsTestDB(t)
	repo := NewRepository(db)

	region := "list-region-" + uuid.NewString()
	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		seedApplication(t, db, region, enums.ApplicationStatusPending, base.Add(time.Duration(i)*time.Minute))
	}
	seedApplication(t, db, region, enums.ApplicationStatusApproved, base.Add(time.Hour))

	rows, next, err := repo.List(context.Background(), listApplicationsParams{
		Status: enums.ApplicationStatusPending,
		Region: region,
		Limit:  2,
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.NotNil(t, next)
	require.True(t, rows[0].CreatedAt.After(rows[1].CreatedAt))

	rows2, next2, err := repo.List(context.Background(), listApplicationsParams{
		Status: enums.ApplicationStatusPending,
		Region: region,
		Limit:  2,
		Cursor: next,
	})
	require.NoError(t, err)
	require.Len(t, rows2, 1)
	require.Nil(t, next2)
}

func TestRepositorySetShopStaff(t *testing.T) {
	db := setupShopsTestDB(t)
	repo := NewRepository(db)

	user := &models.AppUser{
		UID:       uuid.NewString(),
		Email:     "staff@example.com",
		Name:      "Staff",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, db.Create(user).Error)

	require.NoError(t, repo.SetShopStaff(context.Background(), user.UID, true))

	var got models.AppUser
	require.NoError(t, db.Where("uid = ?", user.UID).First(&got).Error)
	require.True(t, got.IsShopStaff)
}
