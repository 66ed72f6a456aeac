package notifications

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

// ErrNotFound is returned when no notification record matches the lookup.
var ErrNotFound = errors.New("notification not found")

// Repository exposes persistence helpers for the notification log.
type Repository interface {
	Create(ctx context.Context, record *models.NotificationLog) error
	Get(ctx context.Context, id uuid.UUID) (*models.NotificationLog, error)
	List(ctx context.Context, params listNotificationsParams) ([]models.NotificationLog, *pagination.Cursor, error)
	// ConfirmSent patches the record with the provider message id.
	ConfirmSent(ctx context.Context, id uuid.UUID, messageID string, now time.Time) error
	// MarkFailed patches the record with the provider error verbatim.
	MarkFailed(ctx context.Context, id uuid.UUID, providerErr string, now time.Time) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a notification log repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type listNotificationsParams struct {
	Status enums.NotificationStatus
	Target enums.NotificationTarget
	Limit  int
	Cursor *pagination.Cursor
}

func (r *repositoryImpl) Create(ctx context.Context, record *models.NotificationLog) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repositoryImpl) Get(ctx context.Context, id uuid.UUID) (*models.NotificationLog, error) {
	var record models.NotificationLog
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *repositoryImpl) List(ctx context.Context, params listNotificationsParams) ([]models.NotificationLog, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.NotificationLog{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Target != "" {
		query = query.Where("target = ?", params.Target)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var records []models.NotificationLog
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, nil, err
	}

	if len(records) > normalized {
		records = records[:normalized]
		last := records[normalized-1]
		return records, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID.String()}, nil
	}
	return records, nil, nil
}

func (r *repositoryImpl) ConfirmSent(ctx context.Context, id uuid.UUID, messageID string, now time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.NotificationLog{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     enums.NotificationStatusSent,
			"message_id": messageID,
			"sent_at":    now,
			"updated_at": now,
		}).Error
}

func (r *repositoryImpl) MarkFailed(ctx context.Context, id uuid.UUID, providerErr string, now time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.NotificationLog{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     enums.NotificationStatusFailed,
			"error":      providerErr,
			"sent_at":    nil,
			"updated_at": now,
		}).Error
}
