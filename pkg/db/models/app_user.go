package models

import "time"

// AppUser mirrors the mobile-app user profile as seen by the back office.
// The app itself owns this data; the back office only toggles moderation
// fields such as is_banned.
type AppUser struct {
	UID          string     `gorm:"column:uid;primaryKey"`
	Email        string     `gorm:"type:text;not null"`
	Name         string     `gorm:"type:text;not null"`
	Rank         *string    `gorm:"column:rank"`
	Region       *string    `gorm:"column:region"`
	Organization *string    `gorm:"column:organization"`
	IsShopStaff  bool       `gorm:"column:is_shop_staff;not null;default:false"`
	IsBanned     bool       `gorm:"column:is_banned;not null;default:false"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
