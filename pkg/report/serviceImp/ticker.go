package serviceImp

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Teo107/farmer-assistant/pkg/logging"
	"github.com/Teo107/farmer-assistant/pkg/report/service"
)

// RunTicker calls Generate every interval until ctx ends. Delivery is out of
// scope: the batch is only logged.
func RunTicker(ctx context.Context, svc service.ReportService, interval time.Duration, log *zap.Logger) {
	if interval <= 0 {
		return
	}
	if log == nil {
		log = zap.NewNop()
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			b, err := svc.Generate(ctx)
			if err != nil {
				log.Warn("scheduled report tick failed", zap.Error(err))
				continue
			}
			for _, m := range b.Messages {
				log.Info("scheduled report", zap.String("to", logging.MaskPhone(m.To)), zap.String("message", m.Message))
			}
		}
	}
}
