package reports

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

// Service defines report moderation operations.
type Service interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Report, error)
	ApplyAction(ctx context.Context, id uuid.UUID, input ActionInput) (*models.Report, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ListParams configures report list filtering and pagination.
type ListParams struct {
	Status         string
	Reason         string
	ReportedUserID string
	Limit          int
	Cursor         string
}

// ListResult wraps returned reports and the cursor for the next page.
type ListResult struct {
	Items  []models.Report `json:"items"`
	Cursor string          `json:"cursor"`
}

// ActionInput is one moderation decision against a report.
type ActionInput struct {
	Action   enums.ReportAction
	Note     string
	ActorUID string
}

type service struct {
	tx      txRunner
	repo    Repository
	audit   audit.Service
	events  events.Publisher
	metrics *metrics.AdminMetrics
}

// NewService wires the report moderation dependencies.
func NewService(tx txRunner, repo Repository, auditSvc audit.Service, publisher events.Publisher, adminMetrics *metrics.AdminMetrics) (Service, error) {
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "tx runner required")
	}
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "reports repository required")
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
	query := listReportsParams{
		ReportedUserID: strings.TrimSpace(params.ReportedUserID),
		Limit:          params.Limit,
	}
	if raw := strings.TrimSpace(params.Status); raw != "" {
		status, err := enums.ParseReportStatus(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		query.Status = status
	}
	if raw := strings.TrimSpace(params.Reason); raw != "" {
		reason, err := enums.ParseReportReason(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid reason filter")
		}
		query.Reason = reason
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
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reports")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: rows, Cursor: cursor}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "report id required")
	}
	report, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "report not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load report")
	}
	return report, nil
}

// ApplyAction records the moderation decision on the report document. The
// decision is a record only: banning or content deletion happens through
// the dedicated user/content endpoints, not as a side effect here.
func (s *service) ApplyAction(ctx context.Context, id uuid.UUID, input ActionInput) (*models.Report, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "report id required")
	}
	if !input.Action.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid report action")
	}
	if strings.TrimSpace(input.ActorUID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor uid required")
	}

	now := time.Now().UTC()
	note := strings.TrimSpace(input.Note)
	var updated *models.Report

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		ok, err := repo.RecordAction(ctx, id, input.Action, note, input.ActorUID, now)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record report action")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "report not found")
		}

		report, err := repo.Get(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load report")
		}
		updated = report

		return s.audit.Record(ctx, tx, audit.Entry{
			Action:     "report." + string(input.Action),
			ActorUID:   input.ActorUID,
			TargetKind: audit.TargetReport,
			TargetID:   id.String(),
			Details: map[string]any{
				"status": string(input.Action.DerivedStatus()),
				"note":   note,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncWorkflowAction(audit.TargetReport, string(input.Action))
	if s.events != nil {
		s.events.Emit(ctx, events.Event{
			Type:       events.TypeReportActioned,
			TargetKind: audit.TargetReport,
			TargetID:   id.String(),
			ActorUID:   input.ActorUID,
			OccurredAt: now,
			Data: map[string]any{
				"action":        string(input.Action),
				"reported_user": updated.ReportedUserID,
			},
		})
	}

	return updated, nil
}
