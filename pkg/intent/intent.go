// Package intent classifies messages from linked farmers.
package intent

import "github.com/Teo107/farmer-assistant/entities"

type Kind string

// Kind values double as the interpreter's intent tags.
const (
	Greeting      Kind = "GREETING"
	ListParcels   Kind = "LIST_PARCELS"
	ParcelDetails Kind = "PARCEL_DETAILS"
	ParcelStatus  Kind = "PARCEL_STATUS"
	SetFrequency  Kind = "SET_REPORT_FREQUENCY"
	StopReports   Kind = "STOP_REPORTS"
	Unknown       Kind = "UNKNOWN"
)

func (k Kind) valid() bool {
	switch k {
	case Greeting, ListParcels, ParcelDetails, ParcelStatus, SetFrequency, StopReports, Unknown:
		return true
	}
	return false
}

type Source string

const (
	SourceRules       Source = "rules"
	SourceInterpreter Source = "interpreter"
)

// Intent is what a message asks for. ParcelID is set for the parcel kinds,
// Frequency for SetFrequency.
type Intent struct {
	Kind      Kind
	ParcelID  string
	Frequency entities.ReportFrequency
	Source    Source
}
