package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/divelink/backoffice-backend/internal/audit"
	"github.com/divelink/backoffice-backend/pkg/db/models"
	"github.com/divelink/backoffice-backend/pkg/enums"
	pkgerrors "github.com/divelink/backoffice-backend/pkg/errors"
	fb "github.com/divelink/backoffice-backend/pkg/firebase"
	"github.com/divelink/backoffice-backend/pkg/metrics"
	"github.com/divelink/backoffice-backend/pkg/pagination"
)

// Service defines push notification dispatch and history operations.
type Service interface {
	Send(ctx context.Context, input SendInput) (*models.NotificationLog, error)
	Get(ctx context.Context, id uuid.UUID) (*models.NotificationLog, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
}

// pushSender abstracts the provider so the dispatcher can swap gateways.
type pushSender interface {
	Send(ctx context.Context, msg fb.PushMessage) (string, error)
}

// SendInput carries one notification request.
type SendInput struct {
	Title         string
	Body          string
	Target        enums.NotificationTarget
	SegmentRank   string
	SegmentRegion string
	ScheduleType  enums.ScheduleType
	ScheduledAt   *time.Time
	ActorUID      string
}

// ListParams configures notification log filtering and pagination.
type ListParams struct {
	Status string
	Target string
	Limit  int
	Cursor string
}

// ListResult wraps notification records and the cursor for the next page.
type ListResult struct {
	Items  []models.NotificationLog `json:"items"`
	Cursor string                   `json:"cursor"`
}

type service struct {
	repo           Repository
	sender         pushSender
	audit          audit.Service
	metrics        *metrics.AdminMetrics
	broadcastTopic string
}

// NewService wires the dispatcher dependencies.
func NewService(repo Repository, sender pushSender, auditSvc audit.Service, adminMetrics *metrics.AdminMetrics, broadcastTopic string) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	if sender == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "push sender required")
	}
	if auditSvc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "audit service required")
	}
	if strings.TrimSpace(broadcastTopic) == "" {
		broadcastTopic = "all_users"
	}
	return &service{
		repo:           repo,
		sender:         sender,
		audit:          auditSvc,
		metrics:        adminMetrics,
		broadcastTopic: broadcastTopic,
	}, nil
}

// Send persists the notification record first so every request is
// auditable, then delivers unless the request is scheduled. The provider
// outcome is patched back onto the record.
func (s *service) Send(ctx context.Context, input SendInput) (*models.NotificationLog, error) {
	record, err := s.buildRecord(input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist notification")
	}

	if auditErr := s.audit.Record(ctx, nil, audit.Entry{
		Action:     "notification.requested",
		ActorUID:   input.ActorUID,
		TargetKind: audit.TargetNotification,
		TargetID:   record.ID.String(),
		Details: map[string]any{
			"target":   string(record.Target),
			"schedule": string(input.ScheduleType),
		},
	}); auditErr != nil {
		return nil, auditErr
	}

	if input.ScheduleType == enums.ScheduleTypeScheduled {
		return record, nil
	}

	msg := s.buildMessage(record)
	start := time.Now()
	messageID, sendErr := s.sender.Send(ctx, msg)
	s.metrics.ObservePushDuration(time.Since(start))
	now := time.Now().UTC()

	if sendErr != nil {
		s.metrics.IncPushFailed()
		// The provider error is stored verbatim so a failed broadcast can
		// be diagnosed from the log alone.
		if markErr := s.repo.MarkFailed(ctx, record.ID, sendErr.Error(), now); markErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, markErr, "record push failure")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, sendErr, "push delivery failed").
			WithDetails(map[string]any{"notification_id": record.ID.String(), "provider_error": sendErr.Error()})
	}

	s.metrics.IncPushSent()
	if err := s.repo.ConfirmSent(ctx, record.ID, messageID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "confirm push delivery")
	}
	record.Status = enums.NotificationStatusSent
	record.MessageID = &messageID
	record.SentAt = &now

	return record, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.NotificationLog, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "notification id required")
	}
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load notification")
	}
	return record, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	query := listNotificationsParams{
		Limit: params.Limit,
	}
	if raw := strings.TrimSpace(params.Status); raw != "" {
		status, err := enums.ParseNotificationStatus(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		query.Status = status
	}
	if raw := strings.TrimSpace(params.Target); raw != "" {
		target, err := enums.ParseNotificationTarget(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target filter")
		}
		query.Target = target
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
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: rows, Cursor: cursor}, nil
}

func (s *service) buildRecord(input SendInput) (*models.NotificationLog, error) {
	title := strings.TrimSpace(input.Title)
	body := strings.TrimSpace(input.Body)
	if title == "" || body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title and body required")
	}
	if !input.Target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid notification target")
	}
	if !input.ScheduleType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid schedule type")
	}
	if strings.TrimSpace(input.ActorUID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor uid required")
	}

	now := time.Now().UTC()
	record := &models.NotificationLog{
		ID:        uuid.New(),
		Title:     title,
		Body:      body,
		Target:    input.Target,
		CreatedBy: input.ActorUID,
		CreatedAt: now,
	}

	// Segment dimensions are stored only for segment sends so the history
	// view never shows stale filters on a broadcast.
	if input.Target == enums.NotificationTargetSegment {
		if rank := strings.TrimSpace(input.SegmentRank); rank != "" {
			record.SegmentRank = &rank
		}
		if region := strings.TrimSpace(input.SegmentRegion); region != "" {
			record.SegmentRegion = &region
		}
	}

	if input.ScheduleType == enums.ScheduleTypeScheduled {
		record.Status = enums.NotificationStatusScheduled
		record.ScheduledAt = input.ScheduledAt
	} else {
		// Optimistic: the two-phase write confirms or downgrades after the
		// provider call.
		record.Status = enums.NotificationStatusSent
		sentAt := now
		record.SentAt = &sentAt
	}

	return record, nil
}

func (s *service) buildMessage(record *models.NotificationLog) fb.PushMessage {
	msg := fb.PushMessage{
		Title: record.Title,
		Body:  record.Body,
	}
	if record.Target == enums.NotificationTargetAll {
		msg.Topic = s.broadcastTopic
		return msg
	}
	msg.Condition = s.buildCondition(record)
	return msg
}

// buildCondition AND-joins the segment dimensions into an FCM topic
// condition; a segment with no dimensions degrades to the broadcast topic.
func (s *service) buildCondition(record *models.NotificationLog) string {
	parts := []string{}
	if record.SegmentRank != nil {
		parts = append(parts, fmt.Sprintf("'rank_%s' in topics", *record.SegmentRank))
	}
	if record.SegmentRegion != nil {
		parts = append(parts, fmt.Sprintf("'region_%s' in topics", *record.SegmentRegion))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("'%s' in topics", s.broadcastTopic)
	}
	return strings.Join(parts, " && ")
}
