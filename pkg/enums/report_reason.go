package enums

import "fmt"

// ReportReason categorizes an abuse report filed by an app user.
type ReportReason string

const (
	ReportReasonSpam          ReportReason = "spam"
	ReportReasonImpersonation ReportReason = "impersonation"
	ReportReasonHarassment    ReportReason = "harassment"
	ReportReasonOther         ReportReason = "other"
)

var validReportReasons = []ReportReason{
	ReportReasonSpam,
	ReportReasonImpersonation,
	ReportReasonHarassment,
	ReportReasonOther,
}

// IsValid reports whether the value is a known ReportReason.
func (r ReportReason) IsValid() bool {
	for _, candidate := range validReportReasons {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseReportReason converts raw strings into ReportReason.
func ParseReportReason(value string) (ReportReason, error) {
	for _, candidate := range validReportReasons {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid report reason %q", value)
}
