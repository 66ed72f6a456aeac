package shops

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

// Service defines shop application review operations.
type Service interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*models.ShopApplication, error)
	Approve(ctx context.Context, id uuid.UUID, actorUID string) (*models.ShopApplication, error)
	Reject(ctx context.Context, id uuid.UUID, reason, actorUID string) (*models.ShopApplication, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ListParams configures application list filtering and pagination.
type ListParams struct {
	Status string
	Region string
	Limit  int
	Cursor string
}

// ListResult wraps returned applications and the cursor for the next page.
type ListResult struct {
	Items  []models.ShopApplication `json:"items"`
	Cursor string                   `json:"cursor"`
}

type service struct {
	tx      txRunner
	repo    Repository
	audit   audit.Service
	events  events.Publisher
	metrics *metrics.AdminMetrics
}

// NewService wires the shop application dependencies.
func NewService(tx txRunner, repo Repository, auditSvc audit.Service, publisher events.Publisher, adminMetrics *metrics.AdminMetrics) (Service, error) {
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "tx runner required")
	}
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "shop applications repository required")
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
	query := listApplicationsParams{
		Region: strings.TrimSpace(params.Region),
		Limit:  params.Limit,
	}
	if raw := strings.TrimSpace(params.Status); raw != "" {
		status, err := enums.ParseApplicationStatus(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		query.Status = status
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
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list applications")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: rows, Cursor: cursor}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.ShopApplication, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "application id required")
	}
	app, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "application not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load application")
	}
	return app, nil
}

// Approve settles a pending application and grants the applicant shop-staff
// status. Re-approving an already approved application is a no-op.
func (s *service) Approve(ctx context.Context, id uuid.UUID, actorUID string) (*models.ShopApplication, error) {
	return s.settle(ctx, id, enums.ApplicationStatusApproved, nil, actorUID)
}

// Reject settles a pending application with a mandatory reason.
func (s *service) Reject(ctx context.Context, id uuid.UUID, reason, actorUID string) (*models.ShopApplication, error) {
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reject reason required")
	}
	return s.settle(ctx, id, enums.ApplicationStatusRejected, &trimmed, actorUID)
}

func (s *service) settle(ctx context.Context, id uuid.UUID, status enums.ApplicationStatus, reason *string, actorUID string) (*models.ShopApplication, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "application id required")
	}
	if strings.TrimSpace(actorUID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor uid required")
	}

	now := time.Now().UTC()
	var settled *models.ShopApplication
	transitioned := false

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		updated, err := repo.SettleFromPending(ctx, id, status, reason, actorUID, now)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "settle application")
		}
		if !updated {
			// The guarded update missed: either the application does not
			// exist or it already left pending.
			current, getErr := repo.Get(ctx, id)
			if getErr != nil {
				if errors.Is(getErr, ErrNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "application not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, getErr, "load application")
			}
			if current.Status == status {
				settled = current
				return nil
			}
			return pkgerrors.New(pkgerrors.CodeStateConflict, "application already settled").
				WithDetails(map[string]any{"status": current.Status})
		}
		transitioned = true

		app, getErr := repo.Get(ctx, id)
		if getErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, getErr, "load application")
		}
		settled = app

		if status == enums.ApplicationStatusApproved {
			if staffErr := repo.SetShopStaff(ctx, app.UserID, true); staffErr != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, staffErr, "grant shop staff")
			}
		}

		details := map[string]any{"status": string(status)}
		if reason != nil {
			details["reason"] = *reason
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			Action:     "shop_application." + string(status),
			ActorUID:   actorUID,
			TargetKind: audit.TargetShopApplication,
			TargetID:   id.String(),
			Details:    details,
		})
	})
	if err != nil {
		return nil, err
	}

	// Only count and announce real transitions, not idempotent replays.
	if transitioned && settled != nil {
		s.metrics.IncWorkflowAction(audit.TargetShopApplication, string(status))
		if s.events != nil {
			eventType := events.TypeApplicationApproved
			if status == enums.ApplicationStatusRejected {
				eventType = events.TypeApplicationRejected
			}
			s.events.Emit(ctx, events.Event{
				Type:       eventType,
				TargetKind: audit.TargetShopApplication,
				TargetID:   id.String(),
				ActorUID:   actorUID,
				OccurredAt: now,
				Data:       map[string]any{"user_uid": settled.UserID},
			})
		}
	}

	return settled, nil
}
