package models

import (
	"time"

	"github.com/google/uuid"
)

// TicketReply is one message in a support ticket thread. Replies are
// append-only; inserting a row never rewrites the thread.
type TicketReply struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	TicketID  uuid.UUID `gorm:"column:ticket_id;type:uuid;not null;index"`
	Content   string    `gorm:"type:text;not null"`
	IsAdmin   bool      `gorm:"column:is_admin;not null;default:false"`
	AuthorID  *string   `gorm:"column:author_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
