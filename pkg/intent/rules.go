package intent

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/Teo107/farmer-assistant/entities"
	parcelSvc "github.com/Teo107/farmer-assistant/pkg/parcel/service"
)

// Message is a farmer message pre-split for the rules.
type Message struct {
	Text   string
	Lower  string
	Fields []string        // whitespace tokens
	Words  map[string]bool // lowercase words, punctuation stripped
}

func NewMessage(text string) Message {
	lower := strings.ToLower(strings.TrimSpace(text))
	m := Message{
		Text:   text,
		Lower:  lower,
		Fields: strings.Fields(lower),
		Words:  map[string]bool{},
	}
	for _, w := range strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		m.Words[w] = true
	}
	return m
}

// Rule maps a message to an intent when it applies.
type Rule struct {
	Name  string
	Match func(Message) (Intent, bool)
}

// MaxGreetingTokens is the longest message still treated as a bare greeting.
const MaxGreetingTokens = 2

var greetingRe = regexp.MustCompile(`\b(hello|hi|hey|salut|good morning|good evening)\b`)

var frequencyOrder = []entities.ReportFrequency{
	entities.FrequencyDaily,
	entities.FrequencyWeekly,
	entities.FrequencyMonthly,
}

var statusWords = []string{"how", "status", "summary"}

var listingWords = []string{"parcel", "parcels", "field", "fields"}

// DefaultRules is the ordered rule list; the first match wins.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "greeting", Match: func(m Message) (Intent, bool) {
			if len(m.Fields) > MaxGreetingTokens || !greetingRe.MatchString(m.Lower) {
				return Intent{}, false
			}
			return Intent{Kind: Greeting}, true
		}},
		{Name: "set_frequency", Match: func(m Message) (Intent, bool) {
			for _, f := range frequencyOrder {
				if strings.Contains(m.Lower, string(f)) {
					return Intent{Kind: SetFrequency, Frequency: f}, true
				}
			}
			return Intent{}, false
		}},
		{Name: "stop_reports", Match: func(m Message) (Intent, bool) {
			if strings.Contains(m.Lower, "stop") || strings.Contains(m.Lower, "disable") {
				return Intent{Kind: StopReports}, true
			}
			return Intent{}, false
		}},
		{Name: "parcel_reference", Match: func(m Message) (Intent, bool) {
			id, ok := parcelSvc.ExtractParcelReference(m.Text)
			if !ok {
				return Intent{}, false
			}
			for _, w := range statusWords {
				if m.Words[w] {
					return Intent{Kind: ParcelStatus, ParcelID: id}, true
				}
			}
			return Intent{Kind: ParcelDetails, ParcelID: id}, true
		}},
		{Name: "list_parcels", Match: func(m Message) (Intent, bool) {
			for _, w := range listingWords {
				if strings.Contains(m.Lower, w) {
					return Intent{Kind: ListParcels}, true
				}
			}
			return Intent{}, false
		}},
	}
}

// Classify runs rules in order and falls back to Unknown.
func Classify(rules []Rule, text string) Intent {
	m := NewMessage(text)
	for _, r := range rules {
		if in, ok := r.Match(m); ok {
			in.Source = SourceRules
			return in
		}
	}
	return Intent{Kind: Unknown, Source: SourceRules}
}
