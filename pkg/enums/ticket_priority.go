package enums

import "fmt"

// TicketPriority orders support tickets for triage.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

var validTicketPriorities = []TicketPriority{
	TicketPriorityLow,
	TicketPriorityMedium,
	TicketPriorityHigh,
}

// IsValid reports whether the value is a known TicketPriority.
func (p TicketPriority) IsValid() bool {
	for _, candidate := range validTicketPriorities {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseTicketPriority converts raw strings into TicketPriority.
func ParseTicketPriority(value string) (TicketPriority, error) {
	for _, candidate := range validTicketPriorities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid ticket priority %q", value)
}
