// Package session holds the in-memory conversational state: phone links,
// pending linking attempts and report schedules. Nothing here is persisted.
package session

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Teo107/farmer-assistant/entities"
)

var ErrPhoneLinked = errors.New("phone already linked to another farmer")

const dateLayout = "2006-01-02"

type Store struct {
	mu          sync.RWMutex
	phoneFarmer map[string]string
	pending     map[string]struct{}
	freq        map[string]entities.ReportFrequency
	lastReport  map[string]time.Time

	phoneLocks  *keyedLock
	farmerLocks *keyedLock
}

func NewStore() *Store {
	return &Store{
		phoneFarmer: map[string]string{},
		pending:     map[string]struct{}{},
		freq:        map[string]entities.ReportFrequency{},
		lastReport:  map[string]time.Time{},
		phoneLocks:  newKeyedLock(),
		farmerLocks: newKeyedLock(),
	}
}

// LockPhone serializes multi-step transitions for one phone number.
func (s *Store) LockPhone(phone string) (unlock func()) { return s.phoneLocks.Lock(phone) }

// LockFarmer serializes multi-step transitions for one farmer.
func (s *Store) LockFarmer(farmerID string) (unlock func()) { return s.farmerLocks.Lock(farmerID) }

// FarmerFor returns the farmer linked to phone.
func (s *Store) FarmerFor(phone string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.phoneFarmer[phone]
	return id, ok
}

func (s *Store) IsPending(phone string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.pending[phone]
	return ok
}

// MarkPending moves an unlinked phone into the pending set. It reports false
// when the phone is already pending or already linked.
func (s *Store) MarkPending(phone string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.phoneFarmer[phone]; ok {
		return false
	}
	if _, ok := s.pending[phone]; ok {
		return false
	}
	s.pending[phone] = struct{}{}
	return true
}

// CompleteLink records phone -> farmerID and drops the phone from the pending
// set in one step. Relinking to the same farmer is a no-op.
func (s *Store) CompleteLink(phone, farmerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.phoneFarmer[phone]; ok && cur != farmerID {
		return ErrPhoneLinked
	}
	s.phoneFarmer[phone] = farmerID
	delete(s.pending, phone)
	return nil
}

func (s *Store) SetFrequency(farmerID string, f entities.ReportFrequency) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.freq[farmerID] = f
}

// ClearFrequency removes the schedule and reports whether one existed.
func (s *Store) ClearFrequency(farmerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.freq[farmerID]; !ok {
		return false
	}
	delete(s.freq, farmerID)
	return true
}

func (s *Store) Frequency(farmerID string) (entities.ReportFrequency, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.freq[farmerID]
	return f, ok
}

// LastReport returns the calendar date of the last report sent to farmerID.
func (s *Store) LastReport(farmerID string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.lastReport[farmerID]
	return d, ok
}

// MarkReported records the calendar date of day as the last report date.
// Dates after today are clamped to today.
func (s *Store) MarkReported(farmerID string, day, today time.Time) {
	d := Day(day)
	if t := Day(today); d.After(t) {
		d = t
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastReport[farmerID] = d
}

// Link is one phone -> farmer association.
type Link struct {
	Phone    string
	FarmerID string
}

// Links returns every linked phone, sorted by phone.
func (s *Store) Links() []Link {
	s.mu.RLock()
	out := make([]Link, 0, len(s.phoneFarmer))
	for p, f := range s.phoneFarmer {
		out = append(out, Link{Phone: p, FarmerID: f})
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Phone < out[j].Phone })
	return out
}

// Snapshot is a copy of the store for inspection.
type Snapshot struct {
	PhoneToFarmer  map[string]string                   `json:"phone_to_farmer"`
	PendingLinking []string                            `json:"pending_linking"`
	ReportFreq     map[string]entities.ReportFrequency `json:"report_freq"`
	LastReportSent map[string]string                   `json:"last_report_sent"`
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		PhoneToFarmer:  make(map[string]string, len(s.phoneFarmer)),
		PendingLinking: make([]string, 0, len(s.pending)),
		ReportFreq:     make(map[string]entities.ReportFrequency, len(s.freq)),
		LastReportSent: make(map[string]string, len(s.lastReport)),
	}
	for k, v := range s.phoneFarmer {
		snap.PhoneToFarmer[k] = v
	}
	for k := range s.pending {
		snap.PendingLinking = append(snap.PendingLinking, k)
	}
	sort.Strings(snap.PendingLinking)
	for k, v := range s.freq {
		snap.ReportFreq[k] = v
	}
	for k, v := range s.lastReport {
		snap.LastReportSent[k] = v.Format(dateLayout)
	}
	return snap
}

// Day truncates t to midnight UTC of its own calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
