package audit

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/divelink/backoffice-backend/pkg/db/models"
	dbtypes "github.com/divelink/backoffice-backend/pkg/db/types"
	pkgerrors "github.com/divelink/backoffice-backend/pkg/errors"
	"github.com/divelink/backoffice-backend/pkg/pagination"
)

// Target kinds recorded in the audit trail.
const (
	TargetShopApplication = "shop_application"
	TargetReport          = "report"
	TargetTicket          = "support_ticket"
	TargetUser            = "app_user"
	TargetNotification    = "notification"
)

// Entry describes one administrative action to record.
type Entry struct {
	Action     string
	ActorUID   string
	TargetKind string
	TargetID   string
	Details    map[string]any
}

// Service records and lists audit entries.
type Service interface {
	Record(ctx context.Context, tx *gorm.DB, entry Entry) error
	List(ctx context.Context, params ListParams) (*ListResult, error)
}

// ListParams configures audit trail filtering and pagination.
type ListParams struct {
	Action     string
	ActorUID   string
	TargetKind string
	TargetID   string
	Limit      int
	Cursor     string
}

// ListResult wraps audit entries and the cursor for the next page.
type ListResult struct {
	Items  []models.AuditLog `json:"items"`
	Cursor string            `json:"cursor"`
}

type service struct {
	repo Repository
}

// NewService wires the audit dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "audit repository required")
	}
	return &service{repo: repo}, nil
}

// Record appends an audit row, inside tx when one is supplied so the entry
// commits or rolls back with the workflow mutation it describes.
func (s *service) Record(ctx context.Context, tx *gorm.DB, entry Entry) error {
	if strings.TrimSpace(entry.Action) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "audit action required")
	}
	if strings.TrimSpace(entry.ActorUID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "audit actor required")
	}

	row := &models.AuditLog{
		Action:     entry.Action,
		ActorUID:   entry.ActorUID,
		TargetKind: entry.TargetKind,
		TargetID:   entry.TargetID,
		Details:    dbtypes.JSONMap(entry.Details),
	}

	repo := s.repo
	if tx != nil {
		repo = s.repo.WithTx(tx)
	}
	if err := repo.Create(ctx, row); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record audit entry")
	}
	return nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	query := listAuditParams{
		Action:     strings.TrimSpace(params.Action),
		ActorUID:   strings.TrimSpace(params.ActorUID),
		TargetKind: strings.TrimSpace(params.TargetKind),
		TargetID:   strings.TrimSpace(params.TargetID),
		Limit:      params.Limit,
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
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list audit entries")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: rows, Cursor: cursor}, nil
}
