package serviceImp

import (
	"time"

	"github.com/Teo107/farmer-assistant/entities"
	"github.com/Teo107/farmer-assistant/pkg/report/service"
	"github.com/Teo107/farmer-assistant/pkg/session"
)

type scheduler struct{ store *session.Store }

func NewScheduler(store *session.Store) service.Scheduler { return &scheduler{store} }

func (s *scheduler) IsDue(farmerID string, today time.Time) bool {
	freq, ok := s.store.Frequency(farmerID)
	if !ok {
		return false
	}
	var last *time.Time
	if d, ok := s.store.LastReport(farmerID); ok {
		last = &d
	}
	return Due(freq, last, today)
}

func (s *scheduler) MarkSent(farmerID string, today time.Time) {
	s.store.MarkReported(farmerID, today, today)
}

// Due decides whether a report with frequency f, last sent on last (nil when
// never), should go out on today. Only calendar dates are compared.
func Due(f entities.ReportFrequency, last *time.Time, today time.Time) bool {
	t := session.Day(today)
	switch f {
	case entities.FrequencyDaily:
		return last == nil || !session.Day(*last).Equal(t)
	case entities.FrequencyWeekly:
		if last == nil {
			return true
		}
		return daysBetween(session.Day(*last), t) >= 7
	case entities.FrequencyMonthly:
		if last == nil {
			return true
		}
		ly, lm, _ := last.Date()
		ty, tm, _ := t.Date()
		return ly != ty || lm != tm
	}
	return false
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
