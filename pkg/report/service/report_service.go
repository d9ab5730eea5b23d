package service

import (
	"context"
	"time"

	"github.com/Teo107/farmer-assistant/entities"
)

// Batch is the outcome of one scheduler tick.
type Batch struct {
	GeneratedAt string                   `json:"generated_at"`
	ReportsSent int                      `json:"reports_sent"`
	Messages    []entities.ReportMessage `json:"messages"`
}

type Scheduler interface {
	// IsDue never changes state.
	IsDue(farmerID string, today time.Time) bool
	MarkSent(farmerID string, today time.Time)
}

type ReportService interface {
	Generate(ctx context.Context) (*Batch, error)
}
