package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/divelink/backoffice-backend/pkg/enums"
)

// SupportTicket is an inquiry submitted from the mobile app.
type SupportTicket struct {
	ID          uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      string               `gorm:"column:user_id;not null;index"`
	UserName    string               `gorm:"column:user_name;not null"`
	UserEmail   string               `gorm:"column:user_email;not null"`
	Subject     string               `gorm:"type:text;not null"`
	Body        string               `gorm:"type:text;not null"`
	Status      enums.TicketStatus   `gorm:"column:status;type:ticket_status;not null;default:'open'"`
	Priority    enums.TicketPriority `gorm:"column:priority;type:ticket_priority;not null;default:'medium'"`
	LastReplyAt *time.Time           `gorm:"column:last_reply_at"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime"`

	Replies []TicketReply `gorm:"foreignKey:TicketID"`
}
