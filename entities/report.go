package entities

import "strings"

type ReportFrequency string

const (
	FrequencyDaily   ReportFrequency = "daily"
	FrequencyWeekly  ReportFrequency = "weekly"
	FrequencyMonthly ReportFrequency = "monthly"
)

// ParseFrequency accepts daily|weekly|monthly in any case.
func ParseFrequency(s string) (ReportFrequency, bool) {
	switch f := ReportFrequency(strings.ToLower(strings.TrimSpace(s))); f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return f, true
	}
	return "", false
}

// ReportMessage is one outbound scheduled report.
type ReportMessage struct {
	To      string `json:"to"`
	Message string `json:"message"`
}
