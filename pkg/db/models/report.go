package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/divelink/backoffice-backend/pkg/enums"
)

// Report is an abuse report filed by one app user against another.
type Report struct {
	ID               uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ReporterID       string              `gorm:"column:reporter_id;not null;index"`
	ReporterName     string              `gorm:"column:reporter_name;not null"`
	ReportedUserID   string              `gorm:"column:reported_user_id;not null;index"`
	ReportedUserName string              `gorm:"column:reported_user_name;not null"`
	ReportedPostID   *string             `gorm:"column:reported_post_id"`
	Reason           enums.ReportReason  `gorm:"column:reason;type:report_reason;not null"`
	Details          string              `gorm:"type:text;not null"`
	Status           enums.ReportStatus  `gorm:"column:status;type:report_status;not null;default:'pending'"`
	ActionTaken      *enums.ReportAction `gorm:"column:action_taken;type:report_action"`
	ActionNote       string              `gorm:"column:action_note;not null;default:''"`
	ReviewedAt       *time.Time          `gorm:"column:reviewed_at"`
	ReviewedBy       *string             `gorm:"column:reviewed_by"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
