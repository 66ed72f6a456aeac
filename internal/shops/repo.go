package shops

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/divelink/backoffice-backend/pkg/db/models"
	"github.com/divelink/backoffice-backend/pkg/enums"
	"github.com/divelink/backoffice-backend/pkg/pagination"
)

// ErrNotFound is returned when no application matches the lookup.
var ErrNotFound = errors.New("shop application not found")

// Repository exposes persistence helpers for shop applications.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Get(ctx context.Context, id uuid.UUID) (*models.ShopApplication, error)
	List(ctx context.Context, params listApplicationsParams) ([]models.ShopApplication, *pagination.Cursor, error)
	// SettleFromPending flips a pending application to a terminal status in
	// one statement; reports whether a row was updated.
	SettleFromPending(ctx context.Context, id uuid.UUID, status enums.ApplicationStatus, reason *string, reviewedBy string, now time.Time) (bool, error)
	SetShopStaff(ctx context.Context, userUID string, staff bool) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a shop applications repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type listApplicationsParams struct {
	Status enums.ApplicationStatus
	Region string
	Limit  int
	Cursor *pagination.Cursor
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Get(ctx context.Context, id uuid.UUID) (*models.ShopApplication, error) {
	var app models.ShopApplication
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *repositoryImpl) List(ctx context.Context, params listApplicationsParams) ([]models.ShopApplication, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.ShopApplication{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Region != "" {
		query = query.Where("region = ?", params.Region)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var apps []models.ShopApplication
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&apps).Error; err != nil {
		return nil, nil, err
	}

	if len(apps) > normalized {
		apps = apps[:normalized]
		last := apps[normalized-1]
		return apps, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID.String()}, nil
	}
	return apps, nil, nil
}

func (r *repositoryImpl) SettleFromPending(ctx context.Context, id uuid.UUID, status enums.ApplicationStatus, reason *string, reviewedBy string, now time.Time) (bool, error) {
	updates := map[string]any{
		"status":        status,
		"reject_reason": reason,
		"reviewed_at":   now,
		"reviewed_by":   reviewedBy,
		"updated_at":    now,
	}
	result := r.db.WithContext(ctx).
		Model(&models.ShopApplication{}).
		Where("id = ? AND status = ?", id, enums.ApplicationStatusPending).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) SetShopStaff(ctx context.Context, userUID string, staff bool) error {
	return r.db.WithContext(ctx).
		Model(&models.AppUser{}).
		Where("uid = ?", userUID).
		UpdateColumn("is_shop_staff", staff).Error
}
