package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/divelink/backoffice-backend/pkg/enums"
)

// ShopApplication is a dive-shop operator's request for shop-staff status.
type ShopApplication struct {
	ID           uuid.UUID               `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       string                  `gorm:"column:user_id;not null;index"`
	UserName     string                  `gorm:"column:user_name;not null"`
	UserEmail    string                  `gorm:"column:user_email;not null"`
	ShopName     string                  `gorm:"column:shop_name;not null"`
	Address      string                  `gorm:"type:text;not null"`
	Region       string                  `gorm:"type:text;not null"`
	Description  string                  `gorm:"type:text;not null"`
	Status       enums.ApplicationStatus `gorm:"column:status;type:application_status;not null;default:'pending'"`
	RejectReason *string                 `gorm:"column:reject_reason"`
	ReviewedAt   *time.Time              `gorm:"column:reviewed_at"`
	ReviewedBy   *string                 `gorm:"column:reviewed_by"`
	CreatedAt    time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
