package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/divelink/backoffice-backend/pkg/db/types"
)

// AuditLog is the append-only trail of administrative actions.
type AuditLog struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Action     string          `gorm:"column:action;not null;index"`
	ActorUID   string          `gorm:"column:actor_uid;not null;index"`
	TargetKind string          `gorm:"column:target_kind;not null"`
	TargetID   string          `gorm:"column:target_id;not null;index"`
	Details    dbtypes.JSONMap `gorm:"column:details;type:jsonb"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// TableName pins the table name so the audit trail survives model renames.
func (AuditLog) TableName() string { return "admin_audit_log" }
