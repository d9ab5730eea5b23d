package serviceImp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Teo107/farmer-assistant/entities"
	"github.com/Teo107/farmer-assistant/pkg/session"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr(t time.Time) *time.Time { return &t }

func TestDue(t *testing.T) {
	today := day("2024-03-15")
	cases := []struct {
		name string
		freq entities.ReportFrequency
		last *time.Time
		want bool
	}{
		{"daily sent today", entities.FrequencyDaily, ptr(day("2024-03-15")), false},
		{"daily sent yesterday", entities.FrequencyDaily, ptr(day("2024-03-14")), true},
		{"daily never sent", entities.FrequencyDaily, nil, true},
		{"weekly exactly 7 days", entities.FrequencyWeekly, ptr(day("2024-03-08")), true},
		{"weekly 6 days", entities.FrequencyWeekly, ptr(day("2024-03-09")), false},
		{"weekly never sent", entities.FrequencyWeekly, nil, true},
		{"monthly previous month", entities.FrequencyMonthly, ptr(day("2024-02-15")), true},
		{"monthly same month", entities.FrequencyMonthly, ptr(day("2024-03-01")), false},
		{"monthly last day of previous month", entities.FrequencyMonthly, ptr(day("2024-02-29")), true},
		{"monthly same month previous year", entities.FrequencyMonthly, ptr(day("2023-03-15")), true},
		{"monthly never sent", entities.FrequencyMonthly, nil, true},
		{"unknown frequency", entities.ReportFrequency("hourly"), nil, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Due(c.freq, c.last, today), c.name)
	}
}

func TestDue_IgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)
	early := time.Date(2024, 3, 8, 0, 1, 0, 0, time.UTC)
	assert.True(t, Due(entities.FrequencyWeekly, &early, late))
	assert.False(t, Due(entities.FrequencyDaily, ptr(late.Add(-23*time.Hour)), late))
}

func TestScheduler_IsDueHasNoSideEffects(t *testing.T) {
	st := session.NewStore()
	s := NewScheduler(st)
	today := day("2024-03-15")

	assert.False(t, s.IsDue("F1", today), "no frequency configured")

	st.SetFrequency("F1", entities.FrequencyDaily)
	assert.True(t, s.IsDue("F1", today))
	assert.True(t, s.IsDue("F1", today))
	_, ok := st.LastReport("F1")
	assert.False(t, ok)

	s.MarkSent("F1", today)
	assert.False(t, s.IsDue("F1", today))
	assert.True(t, s.IsDue("F1", today.AddDate(0, 0, 1)))
}
