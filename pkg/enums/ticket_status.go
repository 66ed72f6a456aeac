package enums

import "fmt"

// TicketStatus tracks the support ticket lifecycle.
type TicketStatus string

const (
	TicketStatusOpen    TicketStatus = "open"
	TicketStatusReplied TicketStatus = "replied"
	TicketStatusClosed  TicketStatus = "closed"
)

var validTicketStatuses = []TicketStatus{
	TicketStatusOpen,
	TicketStatusReplied,
	TicketStatusClosed,
}

// IsValid reports whether the value is a known TicketStatus.
func (s TicketStatus) IsValid() bool {
	for _, candidate := range validTicketStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseTicketStatus converts raw strings into TicketStatus.
func ParseTicketStatus(value string) (TicketStatus, error) {
	for _, candidate := range validTicketStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid ticket status %q", value)
}
