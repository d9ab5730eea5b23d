// Package indices turns raw sensor readings into short assessments.
package indices

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Teo107/farmer-assistant/entities"
)

type Kind string

const (
	NDVI       Kind = "ndvi"
	NDMI       Kind = "ndmi"
	NDWI       Kind = "ndwi"
	SOC        Kind = "soc"
	Nitrogen   Kind = "nitrogen"
	Phosphorus Kind = "phosphorus"
	Potassium  Kind = "potassium"
	PH         Kind = "ph"
)

// Kinds lists every index in report order.
var Kinds = []Kind{NDVI, NDMI, NDWI, SOC, Nitrogen, Phosphorus, Potassium, PH}

// tier matches values below upper. format receives the value as %s.
type tier struct {
	upper  float64
	name   string
	format string
}

type scale struct {
	missing string
	tiers   []tier
}

var inf = math.Inf(1)

var scales = map[Kind]scale{
	NDVI: {"No vegetation data available.", []tier{
		{0.3, "poor", "NDVI is %s, indicating poor vegetation."},
		{0.55, "moderate", "NDVI is %s, indicating moderate vegetation."},
		{0.75, "good", "NDVI is %s, indicating good vegetation."},
		{inf, "strong", "NDVI is %s, indicating strong vegetation."},
	}},
	NDMI: {"No moisture data available.", []tier{
		{0.15, "dry", "NDMI is %s, indicating dry moisture conditions."},
		{0.30, "average", "NDMI is %s, indicating average moisture."},
		{inf, "good", "NDMI is %s, indicating good moisture."},
	}},
	NDWI: {"No water data available.", []tier{
		{0.10, "low", "Water index (NDWI) is low (%s)."},
		{0.25, "average", "Water index (NDWI) is average (%s)."},
		{inf, "good", "Water index (NDWI) is good (%s)."},
	}},
	SOC: {"No soil organic carbon data available.", []tier{
		{1.5, "poor", "SOC is %s, indicating poor soil organic matter."},
		{2.5, "moderate", "SOC is %s, indicating moderate soil organic matter."},
		{inf, "rich", "SOC is %s, indicating rich organic content."},
	}},
	Nitrogen: {"No nitrogen data available.", []tier{
		{0.7, "low", "Nitrogen is %s, indicating the crop may need nitrogen fertilization."},
		{1.0, "adequate", "Nitrogen is %s, indicating adequate nitrogen levels."},
		{inf, "high", "Nitrogen is %s, indicating high nitrogen levels."},
	}},
	Phosphorus: {"No phosphorus data available.", []tier{
		{0.35, "low", "Phosphorus is %s, indicating the crop may need phosphorus fertilization."},
		{0.45, "adequate", "Phosphorus is %s, indicating adequate phosphorus levels."},
		{inf, "high", "Phosphorus is %s, indicating high phosphorus levels."},
	}},
	Potassium: {"No potassium data available.", []tier{
		{0.55, "low", "Potassium is %s, indicating the crop may need potassium fertilization."},
		{0.7, "adequate", "Potassium is %s, indicating adequate potassium levels."},
		{inf, "high", "Potassium is %s, indicating high potassium levels."},
	}},
	PH: {"No pH data available.", []tier{
		{5.5, "strongly_acidic", "pH is %s, indicating strongly acidic soil."},
		{6.0, "slightly_acidic", "pH is %s, indicating slightly acidic soil."},
		{7.0, "optimal", "pH is %s, near optimal. This is good for most crops."},
		{inf, "alkaline", "pH is %s, indicating slightly alkaline soil."},
	}},
}

// Assessment is the classification of one reading.
type Assessment struct {
	Kind  Kind     `json:"index"`
	Value *float64 `json:"value"`
	Tier  string   `json:"tier"` // "no_data" when Value is nil
	Text  string   `json:"text"`
}

// Classify buckets v for the given index. Unknown kinds and nil values yield
// the "no data" text.
func Classify(k Kind, v *float64) Assessment {
	s, ok := scales[k]
	if !ok {
		return Assessment{Kind: k, Value: v, Tier: "no_data", Text: fmt.Sprintf("No %s data available.", k)}
	}
	if v == nil || math.IsNaN(*v) {
		return Assessment{Kind: k, Tier: "no_data", Text: s.missing}
	}
	for _, t := range s.tiers {
		if *v < t.upper {
			return Assessment{Kind: k, Value: v, Tier: t.name, Text: fmt.Sprintf(t.format, FormatValue(*v))}
		}
	}
	// unreachable: the last tier is unbounded
	last := s.tiers[len(s.tiers)-1]
	return Assessment{Kind: k, Value: v, Tier: last.name, Text: fmt.Sprintf(last.format, FormatValue(*v))}
}

// Describe is Classify(k, v).Text.
func Describe(k Kind, v *float64) string { return Classify(k, v).Text }

// FormatValue prints the shortest decimal that round-trips.
func FormatValue(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// Reading returns the value of index k in rec.
func Reading(rec *entities.IndexRecord, k Kind) *float64 {
	if rec == nil {
		return nil
	}
	switch k {
	case NDVI:
		return rec.NDVI
	case NDMI:
		return rec.NDMI
	case NDWI:
		return rec.NDWI
	case SOC:
		return rec.SOC
	case Nitrogen:
		return rec.Nitrogen
	case Phosphorus:
		return rec.Phosphorus
	case Potassium:
		return rec.Potassium
	case PH:
		return rec.PH
	}
	return nil
}

// AssessRecord classifies every index of rec in Kinds order.
func AssessRecord(rec *entities.IndexRecord) []Assessment {
	out := make([]Assessment, 0, len(Kinds))
	for _, k := range Kinds {
		out = append(out, Classify(k, Reading(rec, k)))
	}
	return out
}
