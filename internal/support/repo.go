package support

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/divelink/backoffice-backend/pkg/db/models"
	"github.com/divelink/backoffice-backend/pkg/enums"
	"github.com/divelink/backoffice-backend/pkg/pagination"
)

// ErrNotFound is returned when no ticket matches the lookup.
var ErrNotFound = errors.New("support ticket not found")

// Repository exposes persistence helpers for support tickets.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Get(ctx context.Context, id uuid.UUID) (*models.SupportTicket, error)
	GetWithReplies(ctx context.Context, id uuid.UUID) (*models.SupportTicket, error)
	List(ctx context.Context, params listTicketsParams) ([]models.SupportTicket, *pagination.Cursor, error)
	// AppendReply inserts a reply row and stamps the parent ticket in the
	// same call. The insert is append-only; concurrent replies both land.
	AppendReply(ctx context.Context, reply *models.TicketReply, now time.Time) (bool, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a support tickets repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type listTicketsParams struct {
	Status   enums.TicketStatus
	Priority enums.TicketPriority
	UserID   string
	Limit    int
	Cursor   *pagination.Cursor
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Get(ctx context.Context, id uuid.UUID) (*models.SupportTicket, error) {
	var ticket models.SupportTicket
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *repositoryImpl) GetWithReplies(ctx context.Context, id uuid.UUID) (*models.SupportTicket, error) {
	var ticket models.SupportTicket
	err := r.db.WithContext(ctx).
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Where("id = ?", id).
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *repositoryImpl) List(ctx context.Context, params listTicketsParams) ([]models.SupportTicket, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.SupportTicket{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Priority != "" {
		query = query.Where("priority = ?", params.Priority)
	}
	if params.UserID != "" {
		query = query.Where("user_id = ?", params.UserID)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var tickets []models.SupportTicket
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&tickets).Error; err != nil {
		return nil, nil, err
	}

	if len(tickets) > normalized {
		tickets = tickets[:normalized]
		last := tickets[normalized-1]
		return tickets, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID.String()}, nil
	}
	return tickets, nil, nil
}

func (r *repositoryImpl) AppendReply(ctx context.Context, reply *models.TicketReply, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.SupportTicket{}).
		Where("id = ?", reply.TicketID).
		Updates(map[string]any{
			"status":        enums.TicketStatusReplied,
			"last_reply_at": now,
			"updated_at":    now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	if err := r.db.WithContext(ctx).Create(reply).Error; err != nil {
		return false, err
	}
	return true, nil
}
