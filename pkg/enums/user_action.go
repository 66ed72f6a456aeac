package enums

import "fmt"

// UserAction is an administrative action taken against an app user.
type UserAction string

const (
	UserActionBan   UserAction = "ban"
	UserActionUnban UserAction = "unban"
	UserActionWarn  UserAction = "warn"
)

var validUserActions = []UserAction{
	UserActionBan,
	UserActionUnban,
	UserActionWarn,
}

// IsValid reports whether the value is a known UserAction.
func (a UserAction) IsValid() bool {
	for _, candidate := range validUserActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseUserAction converts raw strings into UserAction.
func ParseUserAction(value string) (UserAction, error) {
	for _, candidate := range validUserActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user action %q", value)
}
