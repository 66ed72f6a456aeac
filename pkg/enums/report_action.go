package enums

import "fmt"

// ReportAction is the moderation decision recorded against a report.
type ReportAction string

const (
	ReportActionWarning       ReportAction = "warning"
	ReportActionDeleteContent ReportAction = "delete_content"
	ReportActionBanUser       ReportAction = "ban_user"
	ReportActionDismissed     ReportAction = "dismissed"
)

var validReportActions = []ReportAction{
	ReportActionWarning,
	ReportActionDeleteContent,
	ReportActionBanUser,
	ReportActionDismissed,
}

// IsValid reports whether the value is a known ReportAction.
func (a ReportAction) IsValid() bool {
	for _, candidate := range validReportActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// DerivedStatus returns the report status a moderation action settles on.
// Dismissing a report resolves it outright, every other action marks it
// reviewed so it stays visible in follow-up queues.
func (a ReportAction) DerivedStatus() ReportStatus {
	if a == ReportActionDismissed {
		return ReportStatusResolved
	}
	return ReportStatusReviewed
}

// ParseReportAction converts raw strings into ReportAction.
func ParseReportAction(value string) (ReportAction, error) {
	for _, candidate := range validReportActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid report action %q", value)
}
