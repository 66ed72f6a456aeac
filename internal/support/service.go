package support

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/divelink/backoffice-backend/internal/audit"
	"github.com/divelink/backoffice-backend/internal/events"
	"github.com/divelink/backoffice-backend/pkg/db/models"
	"github.com/divelink/backoffice-backend/pkg/enums"
	pkgerrors "github.com/divelink/backoffice-backend/pkg/errors"
	"github.com/divelink/backoffice-backend/pkg/metrics"
	"github.com/divelink/backoffice-backend/pkg/pagination"
)

// Service defines support ticket operations.
type Service interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*models.SupportTicket, error)
	Reply(ctx context.Context, id uuid.UUID, content, actorUID string) (*models.TicketReply, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ListParams configures ticket list filtering and pagination.
type ListParams struct {
	Status   string
	Priority string
	UserID   string
	Limit    int
	Cursor   string
}

// ListResult wraps returned tickets and the cursor for the next page.
type ListResult struct {
	Items  []models.SupportTicket `json:"items"`
	Cursor string                 `json:"cursor"`
}

type service struct {
	tx      txRunner
	repo    Repository
	audit   audit.Service
	events  events.Publisher
	metrics *metrics.AdminMetrics
}

// NewService wires the support ticket dependencies.
func NewService(tx txRunner, repo Repository, auditSvc audit.Service, publisher events.Publisher, adminMetrics *metrics.AdminMetrics) (Service, error) {
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "tx runner required")
	}
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "support repository required")
	}
	if auditSvc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "audit service required")
	}
	return &service{
		tx:      tx,
		repo:    repo,
		audit:   auditSvc,
		events:  publisher,
		metrics: adminMetrics,
	}, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	query := listTicketsParams{
		UserID: strings.TrimSpace(params.UserID),
		Limit:  params.Limit,
	}
	if raw := strings.TrimSpace(params.Status); raw != "" {
		status, err := enums.ParseTicketStatus(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		query.Status = status
	}
	if raw := strings.TrimSpace(params.Priority); raw != "" {
		priority, err := enums.ParseTicketPriority(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid priority filter")
		}
		query.Priority = priority
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tickets")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: rows, Cursor: cursor}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.SupportTicket, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ticket id required")
	}
	ticket, err := s.repo.GetWithReplies(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ticket not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ticket")
	}
	return ticket, nil
}

// Reply appends an admin reply to the ticket thread. A reply to a closed
// ticket re-opens it as replied.
func (s *service) Reply(ctx context.Context, id uuid.UUID, content, actorUID string) (*models.TicketReply, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ticket id required")
	}
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reply content required")
	}
	if strings.TrimSpace(actorUID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor uid required")
	}

	now := time.Now().UTC()
	author := actorUID
	reply := &models.TicketReply{
		ID:        uuid.New(),
		TicketID:  id,
		Content:   trimmed,
		IsAdmin:   true,
		AuthorID:  &author,
		CreatedAt: now,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		ok, err := repo.AppendReply(ctx, reply, now)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append reply")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "ticket not found")
		}

		return s.audit.Record(ctx, tx, audit.Entry{
			Action:     "ticket.replied",
			ActorUID:   actorUID,
			TargetKind: audit.TargetTicket,
			TargetID:   id.String(),
			Details:    map[string]any{"reply_id": reply.ID.String()},
		})
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncWorkflowAction(audit.TargetTicket, "reply")
	if s.events != nil {
		s.events.Emit(ctx, events.Event{
			Type:       events.TypeTicketReplied,
			TargetKind: audit.TargetTicket,
			TargetID:   id.String(),
			ActorUID:   actorUID,
			OccurredAt: now,
			Data:       map[string]any{"reply_id": reply.ID.String()},
		})
	}

	return reply, nil
}
