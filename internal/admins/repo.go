package admins

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/divelink/backoffice-backend/pkg/db/models"
)

// ErrNotFound is returned when no admin matches the lookup.
var ErrNotFound = errors.New("admin not found")

// Repository exposes persistence helpers for admin accounts.
type Repository interface {
	GetByUID(ctx context.Context, uid string) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	Upsert(ctx context.Context, admin *models.Admin) error
	TouchLastLogin(ctx context.Context, uid string, now time.Time) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an admins repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) GetByUID(ctx context.Context, uid string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (r *repositoryImpl) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// Upsert inserts the admin or, when the email already exists, refreshes the
// password hash and role. Used by the operator seeding CLI.
func (r *repositoryImpl) Upsert(ctx context.Context, admin *models.Admin) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "password_hash", "role", "updated_at"}),
	}).Create(admin).Error
}

func (r *repositoryImpl) TouchLastLogin(ctx context.Context, uid string, now time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Admin{}).
		Where("uid = ?", uid).
		UpdateColumn("last_login_at", now).Error
}
