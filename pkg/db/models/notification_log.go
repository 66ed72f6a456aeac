package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/divelink/backoffice-backend/pkg/enums"
)

// NotificationLog records every push notification request before the
// provider is called, then is patched with the delivery outcome.
type NotificationLog struct {
	ID            uuid.UUID                `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title         string                   `gorm:"type:text;not null"`
	Body          string                   `gorm:"type:text;not null"`
	Target        enums.NotificationTarget `gorm:"column:target;type:notification_target;not null"`
	SegmentRank   *string                  `gorm:"column:segment_rank"`
	SegmentRegion *string                  `gorm:"column:segment_region"`
	Status        enums.NotificationStatus `gorm:"column:status;type:notification_status;not null"`
	ScheduledAt   *time.Time               `gorm:"column:scheduled_at"`
	SentAt        *time.Time               `gorm:"column:sent_at"`
	MessageID     *string                  `gorm:"column:message_id"`
	Error         *string                  `gorm:"column:error"`
	CreatedBy     string                   `gorm:"column:created_by;not null"`
	CreatedAt     time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the historical table name used by the dashboard exports.
func (NotificationLog) TableName() string { return "notifications_log" }
