package enums

import "fmt"

// NotificationStatus records the delivery outcome of a push notification.
type NotificationStatus string

const (
	NotificationStatusScheduled NotificationStatus = "scheduled"
	NotificationStatusSent      NotificationStatus = "sent"
	NotificationStatusFailed    NotificationStatus = "failed"
)

var validNotificationStatuses = []NotificationStatus{
	NotificationStatusScheduled,
	NotificationStatusSent,
	NotificationStatusFailed,
}

// IsValid reports whether the value is a known NotificationStatus.
func (s NotificationStatus) IsValid() bool {
	for _, candidate := range validNotificationStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseNotificationStatus converts raw strings into NotificationStatus.
func ParseNotificationStatus(value string) (NotificationStatus, error) {
	for _, candidate := range validNotificationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification status %q", value)
}
