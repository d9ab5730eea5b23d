// pkg/ai/client.go

package ai

import (
	"context"
	"errors"
	"strings"
)

var ErrEmptyResponse = errors.New("empty model response")

// Client turns a farmer message into the raw JSON intent object
// {"intent": ..., "parcel_id": ..., "frequency": ...}. Validation is the
// caller's job.
type Client interface {
	ParseMessage(ctx context.Context, text string) (string, error)
}

// SystemPrompt instructs the model to behave as an intent classifier.
const SystemPrompt = `You are an intent classifier for a farmer assistant chatbot.

You MUST ALWAYS return valid JSON only.
Never include explanations or markdown.

JSON schema:
{
  "intent": "GREETING | LIST_PARCELS | PARCEL_DETAILS | PARCEL_STATUS | SET_REPORT_FREQUENCY | STOP_REPORTS | UNKNOWN",
  "parcel_id": "P1 | P2 | ... | null",
  "frequency": "daily | weekly | monthly | null"
}

Rules:
- a short greeting only -> GREETING
- "show my parcels" -> LIST_PARCELS
- "show P3" / "details P3" -> PARCEL_DETAILS, with parcel_id
- "how is P3" / "status P3" / "summary P3" -> PARCEL_STATUS, with parcel_id
- contains daily / weekly / monthly -> SET_REPORT_FREQUENCY, with frequency
- contains stop / disable -> STOP_REPORTS
- otherwise UNKNOWN
Return ONLY JSON.`

// StripFences removes markdown code fences some models wrap JSON in.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
