package serviceImp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Teo107/farmer-assistant/entities"
	"github.com/Teo107/farmer-assistant/pkg/indices"
	"github.com/Teo107/farmer-assistant/pkg/message/service"
	parcelSvc "github.com/Teo107/farmer-assistant/pkg/parcel/service"
)

const (
	GreetingText = "Welcome to the CO2 Angels Farm Assistant!\n" +
		"You can ask me things like:\n" +
		"- Show my parcels\n" +
		"- Show parcel P2 details\n" +
		"- How is parcel P1 doing?\n" +
		"- Set weekly reports\n" +
		"- Stop reports"

	GuidanceText = "I didn't fully understand that.\n" +
		"Try one of these:\n" +
		"- Show my parcels\n" +
		"- Show parcel P3\n" +
		"- How is P1 doing?\n" +
		"- Set daily reports"

	NoScheduleText    = "You don't have any report schedule set."
	ReportsStoppedTxt = "Reports disabled successfully."
	NoParcelsText     = "You don't have any parcels registered yet."
	FailureText       = "Sorry, something went wrong on our side. Please try again in a moment."
)

var frequencyReplies = map[entities.ReportFrequency]string{
	entities.FrequencyDaily:   "Okay! I've set your report frequency to daily.",
	entities.FrequencyWeekly:  "Got it! I'll prepare a parcel summary for you every week based on your latest available data.",
	entities.FrequencyMonthly: "OK! I've set your report frequency to monthly.",
}

// errorText maps domain errors to farmer-facing text. ok is false for
// anything that is not a domain error.
func errorText(err error) (string, bool) {
	switch {
	case errors.Is(err, parcelSvc.ErrParcelNotFound):
		return "Parcel not found.", true
	case errors.Is(err, parcelSvc.ErrNotAuthorized):
		return "This parcel does not belong to you.", true
	case errors.Is(err, parcelSvc.ErrNoMonitoringData):
		return "No monitoring data available for this parcel.", true
	}
	return "", false
}

func reading(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return indices.FormatValue(*v)
}

func formatParcelList(ps []entities.Parcel) string {
	lines := make([]string, 0, len(ps)+1)
	lines = append(lines, fmt.Sprintf("You have %d parcels:", len(ps)))
	for _, p := range ps {
		lines = append(lines, fmt.Sprintf("%s – %s (%s ha, %s)", p.ID, p.Name, indices.FormatValue(p.AreaHa), p.Crop))
	}
	return strings.Join(lines, "\n")
}

func formatDetails(d *parcelSvc.ParcelDetails) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Parcel %s – %s\n", d.ID, d.Name)
	fmt.Fprintf(&b, "Crop: %s\n", d.Crop)
	fmt.Fprintf(&b, "Area: %s ha\n", indices.FormatValue(d.AreaHa))
	if d.Latest == nil {
		txt, _ := errorText(parcelSvc.ErrNoMonitoringData)
		b.WriteString("Latest data: " + txt)
		return b.String()
	}
	l := d.Latest
	fmt.Fprintf(&b, "Latest data %s:\n", l.Date)
	fmt.Fprintf(&b, "     NDVI: %s\n", reading(l.NDVI))
	fmt.Fprintf(&b, "     NDMI: %s\n", reading(l.NDMI))
	fmt.Fprintf(&b, "     NDWI: %s\n", reading(l.NDWI))
	fmt.Fprintf(&b, "     SOC: %s\n", reading(l.SOC))
	fmt.Fprintf(&b, "     N: %s\n", reading(l.Nitrogen))
	fmt.Fprintf(&b, "     P: %s\n", reading(l.Phosphorus))
	fmt.Fprintf(&b, "     K: %s\n", reading(l.Potassium))
	fmt.Fprintf(&b, "     pH: %s", reading(l.PH))
	return b.String()
}

// statusSections groups the assessments under farmer-friendly headings.
var statusSections = []struct {
	title string
	kinds []indices.Kind
}{
	{"Vegetation", []indices.Kind{indices.NDVI}},
	{"Moisture & Water", []indices.Kind{indices.NDMI, indices.NDWI}},
	{"Soil Quality", []indices.Kind{indices.SOC}},
	{"Nutrients", []indices.Kind{indices.Nitrogen, indices.Phosphorus, indices.Potassium}},
	{"Soil pH", []indices.Kind{indices.PH}},
}

func buildStatus(d *parcelSvc.ParcelDetails) service.Reply {
	assessments := indices.AssessRecord(d.Latest)
	byKind := make(map[indices.Kind]indices.Assessment, len(assessments))
	for _, a := range assessments {
		byKind[a.Kind] = a
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Parcel %s – %s\n", d.ID, d.Name)
	fmt.Fprintf(&b, "Status update based on latest data (%s):", d.Latest.Date)
	for _, sec := range statusSections {
		fmt.Fprintf(&b, "\n\n%s:", sec.title)
		for _, k := range sec.kinds {
			fmt.Fprintf(&b, "\n    - %s", byKind[k].Text)
		}
	}

	return service.Reply{
		Reply: b.String(),
		Status: &service.StatusPayload{
			ParcelID:    d.ID,
			Name:        d.Name,
			Date:        d.Latest.Date,
			Assessments: assessments,
		},
	}
}
