package service

import (
	"context"

	"github.com/Teo107/farmer-assistant/pkg/indices"
)

// Reply is the body of every /message response.
type Reply struct {
	Reply  string         `json:"reply"`
	Status *StatusPayload `json:"status,omitempty"`
}

// StatusPayload is the structured side of a parcel status reply.
type StatusPayload struct {
	ParcelID    string               `json:"parcel_id"`
	Name        string               `json:"name"`
	Date        string               `json:"date"`
	Assessments []indices.Assessment `json:"assessments"`
}

// Dispatcher answers one inbound message. Domain failures are carried in
// the reply text; it never returns an error.
type Dispatcher interface {
	Handle(ctx context.Context, phone, text string) Reply
}
