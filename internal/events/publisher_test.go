package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
)

func TestPublisherEmitPublishesEnvelope(t *testing.T) {
	sender := &stubSender{}
	pub := &publisher{sender: sender}

	occurred := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	pub.Emit(context.Background(), Event{
		Type:       TypeUserBanned,
		TargetKind: "app_user",
		TargetID:   "user-3",
		ActorUID:   "admin-1",
		OccurredAt: occurred,
		Data:       map[string]any{"reason": "spam"},
	})

	if sender.msg == nil {
		t.Fatal("expected message published")
	}
	if sender.msg.Attributes["event_type"] != TypeUserBanned {
		t.Fatalf("unexpected event type attribute %q", sender.msg.Attributes["event_type"])
	}
	if sender.msg.Attributes["target_id"] != "user-3" {
		t.Fatalf("unexpected target attribute %q", sender.msg.Attributes["target_id"])
	}
	if sender.msg.Attributes["event_id"] == "" {
		t.Fatal("expected event id attribute")
	}

	var decoded Event
	if err := json.Unmarshal(sender.msg.Data, &decoded); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if decoded.ActorUID != "admin-1" || !decoded.OccurredAt.Equal(occurred) {
		t.Fatalf("unexpected payload %+v", decoded)
	}
}

func TestPublisherEmitStampsOccurredAt(t *testing.T) {
	sender := &stubSender{}
	pub := &publisher{sender: sender}

	pub.Emit(context.Background(), Event{Type: TypeTicketReplied})

	if sender.msg == nil {
		t.Fatal("expected message published")
	}
	if sender.msg.Attributes["occurred_at"] == "" {
		t.Fatal("expected occurred_at stamped")
	}
}

func TestPublisherEmitSwallowsBrokerError(t *testing.T) {
	sender := &stubSender{err: errors.New("broker down")}
	pub := &publisher{sender: sender}

	// Must not panic or surface the error.
	pub.Emit(context.Background(), Event{Type: TypeReportActioned})
}

func TestNilPublisherIsNoOp(t *testing.T) {
	pub := NewPublisher(nil, nil)
	pub.Emit(context.Background(), Event{Type: TypeApplicationApproved})
}

type stubSender struct {
	msg *gcppubsub.Message
	err error
}

func (s *stubSender) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	s.msg = msg
	return stubResult{err: s.err}
}

type stubResult struct {
	err error
}

func (r stubResult) Get(ctx context.Context) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return "server-id", nil
}
