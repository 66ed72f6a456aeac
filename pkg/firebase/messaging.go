package firebase

import (
	"context"
	"strings"

	"firebase.google.com/go/v4/messaging"

	pkgerrors "github.com/divelink/backoffice-backend/pkg/errors"
)

// PushMessage is a provider-agnostic push payload. Exactly one of Topic or
// Condition selects the audience.
type PushMessage struct {
	Title     string
	Body      string
	Topic     string
	Condition string
}

// Send delivers one push message and returns the provider message ID.
func (c *Client) Send(ctx context.Context, msg PushMessage) (string, error) {
	if c == nil || c.messaging == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "messaging client not initialized")
	}
	topic := strings.TrimSpace(msg.Topic)
	condition := strings.TrimSpace(msg.Condition)
	if (topic == "") == (condition == "") {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "exactly one of topic or condition is required")
	}

	out := &messaging.Message{
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Topic:     topic,
		Condition: condition,
	}

	id, err := c.messaging.Send(ctx, out)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sending push message")
	}
	return id, nil
}
