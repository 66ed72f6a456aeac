package events

import (
	"context"
	"encoding/json"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/divelink/backoffice-backend/pkg/logger"
)

// Event types published to the admin events topic.
const (
	TypeApplicationApproved = "shop_application.approved"
	TypeApplicationRejected = "shop_application.rejected"
	TypeReportActioned      = "report.actioned"
	TypeTicketReplied       = "ticket.replied"
	TypeUserBanned          = "user.banned"
	TypeUserUnbanned        = "user.unbanned"
)

const publishTimeout = 10 * time.Second

// Event is one admin workflow occurrence fanned out to downstream systems.
type Event struct {
	Type       string         `json:"type"`
	TargetKind string         `json:"target_kind"`
	TargetID   string         `json:"target_id"`
	ActorUID   string         `json:"actor_uid"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data,omitempty"`
}

// Publisher emits admin workflow events. Emission is best effort: a broker
// failure is logged and swallowed, never returned to the workflow.
type Publisher interface {
	Emit(ctx context.Context, event Event)
}

type publishResult interface {
	Get(ctx context.Context) (string, error)
}

type messageSender interface {
	Publish(ctx context.Context, msg *gcppubsub.Message) publishResult
}

type publisher struct {
	sender messageSender
	logg   *logger.Logger
}

// NewPublisher wraps a Pub/Sub publisher handle. A nil handle yields a
// no-op publisher so deployments without a broker stay wired.
func NewPublisher(pub *gcppubsub.Publisher, logg *logger.Logger) Publisher {
	if pub == nil {
		return &publisher{logg: logg}
	}
	return &publisher{sender: &gcpSender{pub: pub}, logg: logg}
}

func (p *publisher) Emit(ctx context.Context, event Event) {
	if p.sender == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.warn(ctx, event, err)
		return
	}

	msg := &gcppubsub.Message{
		Data: payload,
		Attributes: map[string]string{
			"event_id":    uuid.NewString(),
			"event_type":  event.Type,
			"target_kind": event.TargetKind,
			"target_id":   event.TargetID,
			"occurred_at": event.OccurredAt.Format(time.RFC3339Nano),
		},
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	result := p.sender.Publish(publishCtx, msg)
	if result == nil {
		return
	}
	if _, err := result.Get(publishCtx); err != nil {
		p.warn(ctx, event, err)
	}
}

func (p *publisher) warn(ctx context.Context, event Event, err error) {
	if p.logg == nil {
		return
	}
	fields := map[string]any{
		"event_type": event.Type,
		"target_id":  event.TargetID,
		"error":      err.Error(),
	}
	p.logg.Warn(p.logg.WithFields(ctx, fields), "admin event publish failed")
}

type gcpSender struct {
	pub *gcppubsub.Publisher
}

func (s *gcpSender) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	if s == nil || s.pub == nil {
		return nil
	}
	return s.pub.Publish(ctx, msg)
}
