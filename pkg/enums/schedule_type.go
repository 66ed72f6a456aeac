package enums

import "fmt"

// ScheduleType decides whether a notification goes out immediately or is
// stored for a later dispatch run.
type ScheduleType string

const (
	ScheduleTypeNow       ScheduleType = "now"
	ScheduleTypeScheduled ScheduleType = "scheduled"
)

var validScheduleTypes = []ScheduleType{
	ScheduleTypeNow,
	ScheduleTypeScheduled,
}

// IsValid reports whether the value is a known ScheduleType.
func (t ScheduleType) IsValid() bool {
	for _, candidate := range validScheduleTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseScheduleType converts raw strings into ScheduleType.
func ParseScheduleType(value string) (ScheduleType, error) {
	for _, candidate := range validScheduleTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid schedule type %q", value)
}
