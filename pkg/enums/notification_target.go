package enums

import "fmt"

// NotificationTarget selects the audience of a push notification.
type NotificationTarget string

const (
	NotificationTargetAll     NotificationTarget = "all"
	NotificationTargetSegment NotificationTarget = "segment"
)

var validNotificationTargets = []NotificationTarget{
	NotificationTargetAll,
	NotificationTargetSegment,
}

// IsValid reports whether the value is a known NotificationTarget.
func (t NotificationTarget) IsValid() bool {
	for _, candidate := range validNotificationTargets {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseNotificationTarget converts raw strings into NotificationTarget.
func ParseNotificationTarget(value string) (NotificationTarget, error) {
	for _, candidate := range validNotificationTargets {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification target %q", value)
}
