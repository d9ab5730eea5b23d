package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Teo107/farmer-assistant/entities"
)

func TestClassify(t *testing.T) {
	rules := DefaultRules()
	cases := []struct {
		text string
		want Intent
	}{
		{"hello", Intent{Kind: Greeting}},
		{"Hi!", Intent{Kind: Greeting}},
		{"good morning", Intent{Kind: Greeting}},
		{"hey there", Intent{Kind: Greeting}},
		{"hello show parcels", Intent{Kind: ListParcels}},
		{"this", Intent{Kind: Unknown}},
		{"Set weekly reports", Intent{Kind: SetFrequency, Frequency: entities.FrequencyWeekly}},
		{"DAILY please", Intent{Kind: SetFrequency, Frequency: entities.FrequencyDaily}},
		{"monthly summary for p1", Intent{Kind: SetFrequency, Frequency: entities.FrequencyMonthly}},
		{"Stop reports", Intent{Kind: StopReports}},
		{"disable everything", Intent{Kind: StopReports}},
		{"how is p 2 doing", Intent{Kind: ParcelStatus, ParcelID: "P2"}},
		{"How is parcel P1 doing?", Intent{Kind: ParcelStatus, ParcelID: "P1"}},
		{"P3 status?", Intent{Kind: ParcelStatus, ParcelID: "P3"}},
		{"summary P4", Intent{Kind: ParcelStatus, ParcelID: "P4"}},
		{"Show parcel P2 details", Intent{Kind: ParcelDetails, ParcelID: "P2"}},
		{"showhow P2", Intent{Kind: ParcelDetails, ParcelID: "P2"}},
		{"Show my parcels", Intent{Kind: ListParcels}},
		{"list fields", Intent{Kind: ListParcels}},
		{"what's the weather", Intent{Kind: Unknown}},
		{"", Intent{Kind: Unknown}},
	}
	for _, c := range cases {
		got := Classify(rules, c.text)
		c.want.Source = SourceRules
		assert.Equal(t, c.want, got, c.text)
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	calls := []string{}
	rule := func(name string, hit bool) Rule {
		return Rule{Name: name, Match: func(Message) (Intent, bool) {
			calls = append(calls, name)
			return Intent{Kind: Kind(name)}, hit
		}}
	}
	got := Classify([]Rule{rule("a", false), rule("b", true), rule("c", true)}, "x")

	assert.Equal(t, Kind("b"), got.Kind)
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestNewMessage(t *testing.T) {
	m := NewMessage("  How is P2, status?  ")
	assert.Equal(t, []string{"how", "is", "p2,", "status?"}, m.Fields)
	assert.True(t, m.Words["status"])
	assert.True(t, m.Words["p2"])
	assert.False(t, m.Words["status?"])
}
