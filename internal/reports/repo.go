package reports

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

// ErrNotFound is returned when no report matches the lookup.
var ErrNotFound = errors.New("report not found")

// Repository exposes persistence helpers for abuse reports.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Get(ctx context.Context, id uuid.UUID) (*models.Report, error)
	List(ctx context.Context, params listReportsParams) ([]models.Report, *pagination.Cursor, error)
	// RecordAction stamps the moderation decision in one statement and
	// reports whether a row was updated.
	RecordAction(ctx context.Context, id uuid.UUID, action enums.ReportAction, note, reviewedBy string, now time.Time) (bool, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a reports repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type listReportsParams struct {
	Status         enums.ReportStatus
	Reason         enums.ReportReason
	ReportedUserID string
	Limit          int
	Cursor         *pagination.Cursor
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Get(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *repositoryImpl) List(ctx context.Context, params listReportsParams) ([]models.Report, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.Report{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Reason != "" {
		query = query.Where("reason = ?", params.Reason)
	}
	if params.ReportedUserID != "" {
		query = query.Where("reported_user_id = ?", params.ReportedUserID)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var reports []models.Report
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&reports).Error; err != nil {
		return nil, nil, err
	}

	if len(reports) > normalized {
		reports = reports[:normalized]
		last := reports[normalized-1]
		return reports, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID.String()}, nil
	}
	return reports, nil, nil
}

func (r *repositoryImpl) RecordAction(ctx context.Context, id uuid.UUID, action enums.ReportAction, note, reviewedBy string, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       action.DerivedStatus(),
			"action_taken": action,
			"action_note":  note,
			"reviewed_at":  now,
			"reviewed_by":  reviewedBy,
			"updated_at":   now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
