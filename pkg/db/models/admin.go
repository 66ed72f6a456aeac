package models

import (
	"time"

	"github.com/divelink/backoffice-backend/pkg/enums"
)

// Admin represents a back-office operator account. The primary key is the
// identity provider UID so provider tokens resolve without a join.
type Admin struct {
	UID          string           `gorm:"column:uid;primaryKey"`
	Email        string           `gorm:"type:text;not null;uniqueIndex"`
	Name         string           `gorm:"type:text;not null"`
	PasswordHash string           `gorm:"column:password_hash;not null"`
	Role         enums.AdminRole  `gorm:"column:role;type:admin_role;not null;default:'moderator'"`
	LastLoginAt  *time.Time       `gorm:"column:last_login_at"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
