package audit

import (
	"context"

	"gorm.io/gorm"

	"github.com/divelink/backoffice-backend/pkg/db/models"
	"github.com/divelink/backoffice-backend/pkg/pagination"
)

// Repository exposes persistence helpers for the audit trail.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, params listAuditParams) ([]models.AuditLog, *pagination.Cursor, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an audit repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type listAuditParams struct {
	Action     string
	ActorUID   string
	TargetKind string
	TargetID   string
	Limit      int
	Cursor     *pagination.Cursor
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repositoryImpl) List(ctx context.Context, params listAuditParams) ([]models.AuditLog, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.AuditLog{})
	if params.Action != "" {
		query = query.Where("action = ?", params.Action)
	}
	if params.ActorUID != "" {
		query = query.Where("actor_uid = ?", params.ActorUID)
	}
	if params.TargetKind != "" {
		query = query.Where("target_kind = ?", params.TargetKind)
	}
	if params.TargetID != "" {
		query = query.Where("target_id = ?", params.TargetID)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var entries []models.AuditLog
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, nil, err
	}

	if len(entries) > normalized {
		entries = entries[:normalized]
		last := entries[normalized-1]
		return entries, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID.String()}, nil
	}
	return entries, nil, nil
}
