package enums

import "fmt"

// ReportStatus tracks where a report sits in the moderation workflow.
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusReviewed ReportStatus = "reviewed"
	ReportStatusResolved ReportStatus = "resolved"
)

var validReportStatuses = []ReportStatus{
	ReportStatusPending,
	ReportStatusReviewed,
	ReportStatusResolved,
}

// IsValid reports whether the value is a known ReportStatus.
func (s ReportStatus) IsValid() bool {
	for _, candidate := range validReportStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseReportStatus converts raw strings into ReportStatus.
func ParseReportStatus(value string) (ReportStatus, error) {
	for _, candidate := range validReportStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid report status %q", value)
}
