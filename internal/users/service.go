package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/divelink/backoffice-backend/internal/audit"
	"github.com/divelink/backoffice-backend/internal/events"
	"github.com/divelink/backoffice-backend/pkg/db/models"
	"github.com/divelink/backoffice-backend/pkg/enums"
	pkgerrors "github.com/divelink/backoffice-backend/pkg/errors"
	"github.com/divelink/backoffice-backend/pkg/logger"
	"github.com/divelink/backoffice-backend/pkg/metrics"
	"github.com/divelink/backoffice-backend/pkg/pagination"
)

// Service defines app user moderation operations.
type Service interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Get(ctx context.Context, uid string) (*models.AppUser, error)
	ApplyAction(ctx context.Context, uid string, input ActionInput) (*models.AppUser, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// accountDisabler is the provider-side kill switch for banned accounts.
type accountDisabler interface {
	SetUserDisabled(ctx context.Context, uid string, disabled bool) error
}

// ListParams configures user list filtering and pagination.
type ListParams struct {
	Search     string
	Rank       string
	Region     string
	BannedOnly bool
	Limit      int
	Cursor     string
}

// ListResult wraps returned users and the cursor for the next page.
type ListResult struct {
	Items  []models.AppUser `json:"items"`
	Cursor string           `json:"cursor"`
}

// ActionInput is one administrative action against an app user.
type ActionInput struct {
	Action   enums.UserAction
	Reason   string
	ActorUID string
}

type service struct {
	tx       txRunner
	repo     Repository
	audit    audit.Service
	events   events.Publisher
	disabler accountDisabler
	metrics  *metrics.AdminMetrics
	logg     *logger.Logger
}

// NewService wires the user moderation dependencies. The disabler may be
// nil when no identity provider is configured.
func NewService(tx txRunner, repo Repository, auditSvc audit.Service, publisher events.Publisher, disabler accountDisabler, adminMetrics *metrics.AdminMetrics, logg *logger.Logger) (Service, error) {
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "tx runner required")
	}
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "users repository required")
	}
	if auditSvc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "audit service required")
	}
	return &service{
		tx:       tx,
		repo:     repo,
		audit:    auditSvc,
		events:   publisher,
		disabler: disabler,
		metrics:  adminMetrics,
		logg:     logg,
	}, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	query := listUsersParams{
		Search:     strings.TrimSpace(params.Search),
		Rank:       strings.TrimSpace(params.Rank),
		Region:     strings.TrimSpace(params.Region),
		BannedOnly: params.BannedOnly,
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
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: rows, Cursor: cursor}, nil
}

func (s *service) Get(ctx context.Context, uid string) (*models.AppUser, error) {
	trimmed := strings.TrimSpace(uid)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user uid required")
	}
	user, err := s.repo.Get(ctx, trimmed)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}

// ApplyAction executes ban, unban, or warn. Bans flip the profile flag
// first, then attempt the provider-side disable; a provider failure is
// logged and the ban stands. Warnings only produce an audit entry.
func (s *service) ApplyAction(ctx context.Context, uid string, input ActionInput) (*models.AppUser, error) {
	trimmed := strings.TrimSpace(uid)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user uid required")
	}
	if !input.Action.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid user action")
	}
	if strings.TrimSpace(input.ActorUID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor uid required")
	}

	switch input.Action {
	case enums.UserActionWarn:
		return s.warn(ctx, trimmed, input)
	case enums.UserActionBan:
		return s.setBanned(ctx, trimmed, input, true)
	default:
		return s.setBanned(ctx, trimmed, input, false)
	}
}

func (s *service) warn(ctx context.Context, uid string, input ActionInput) (*models.AppUser, error) {
	user, err := s.Get(ctx, uid)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.audit.Record(ctx, tx, audit.Entry{
			Action:     "user.warned",
			ActorUID:   input.ActorUID,
			TargetKind: audit.TargetUser,
			TargetID:   uid,
			Details:    map[string]any{"reason": strings.TrimSpace(input.Reason)},
		})
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncWorkflowAction(audit.TargetUser, string(enums.UserActionWarn))
	return user, nil
}

func (s *service) setBanned(ctx context.Context, uid string, input ActionInput, banned bool) (*models.AppUser, error) {
	var user *models.AppUser

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		ok, err := repo.SetBanned(ctx, uid, banned)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update ban flag")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}

		loaded, err := repo.Get(ctx, uid)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
		}
		user = loaded

		action := "user.banned"
		if !banned {
			action = "user.unbanned"
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			Action:     action,
			ActorUID:   input.ActorUID,
			TargetKind: audit.TargetUser,
			TargetID:   uid,
			Details:    map[string]any{"reason": strings.TrimSpace(input.Reason)},
		})
	})
	if err != nil {
		return nil, err
	}

	// Provider disable is attempted after the local row is committed; a
	// failure here must not undo the ban.
	if s.disabler != nil {
		if provErr := s.disabler.SetUserDisabled(ctx, uid, banned); provErr != nil && s.logg != nil {
			fields := map[string]any{"user_uid": uid, "banned": banned, "error": provErr.Error()}
			s.logg.Warn(s.logg.WithFields(ctx, fields), "provider account disable failed")
		}
	}

	action := enums.UserActionBan
	eventType := events.TypeUserBanned
	if !banned {
		action = enums.UserActionUnban
		eventType = events.TypeUserUnbanned
	}
	s.metrics.IncWorkflowAction(audit.TargetUser, string(action))
	if s.events != nil {
		s.events.Emit(ctx, events.Event{
			Type:       eventType,
			TargetKind: audit.TargetUser,
			TargetID:   uid,
			ActorUID:   input.ActorUID,
			OccurredAt: time.Now().UTC(),
		})
	}

	return user, nil
}
