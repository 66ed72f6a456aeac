package users

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/divelink/backoffice-backend/pkg/db/models"
	"github.com/divelink/backoffice-backend/pkg/pagination"
)

// ErrNotFound is returned when no app user matches the lookup.
var ErrNotFound = errors.New("app user not found")

// Repository exposes persistence helpers for app user profiles.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Get(ctx context.Context, uid string) (*models.AppUser, error)
	List(ctx context.Context, params listUsersParams) ([]models.AppUser, *pagination.Cursor, error)
	// SetBanned flips the ban flag in one statement and reports whether a
	// row was updated.
	SetBanned(ctx context.Context, uid string, banned bool) (bool, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an app users repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type listUsersParams struct {
	Search     string
	Rank       string
	Region     string
	BannedOnly bool
	Limit      int
	Cursor     *pagination.Cursor
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Get(ctx context.Context, uid string) (*models.AppUser, error) {
	var user models.AppUser
	err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *repositoryImpl) List(ctx context.Context, params listUsersParams) ([]models.AppUser, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.AppUser{})
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}
	if params.Rank != "" {
		query = query.Where("rank = ?", params.Rank)
	}
	if params.Region != "" {
		query = query.Where("region = ?", params.Region)
	}
	if params.BannedOnly {
		query = query.Where("is_banned = ?", true)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, uid) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var users []models.AppUser
	if err := query.Order("created_at DESC, uid DESC").Limit(limit).Find(&users).Error; err != nil {
		return nil, nil, err
	}

	if len(users) > normalized {
		users = users[:normalized]
		last := users[normalized-1]
		return users, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.UID}, nil
	}
	return users, nil, nil
}

func (r *repositoryImpl) SetBanned(ctx context.Context, uid string, banned bool) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.AppUser{}).
		Where("uid = ?", uid).
		UpdateColumn("is_banned", banned)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
