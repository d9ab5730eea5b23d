package serviceImp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Teo107/farmer-assistant/entities"
	"github.com/Teo107/farmer-assistant/pkg/indices"
	"github.com/Teo107/farmer-assistant/pkg/logging"
	parcelSvc "github.com/Teo107/farmer-assistant/pkg/parcel/service"
	"github.com/Teo107/farmer-assistant/pkg/report/service"
	"github.com/Teo107/farmer-assistant/pkg/session"
)

const NoParcelsMessage = "You currently have no registered parcels."

type reportSvc struct {
	store   *session.Store
	sched   service.Scheduler
	parcels parcelSvc.ParcelService
	now     func() time.Time
	log     *zap.Logger
}

func NewReportService(store *session.Store, sched service.Scheduler, parcels parcelSvc.ParcelService, now func() time.Time, log *zap.Logger) service.ReportService {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &reportSvc{store: store, sched: sched, parcels: parcels, now: now, log: log.Named("report")}
}

// Generate walks every linked phone and produces the reports due today.
// Due-check and mark-sent run under the farmer's lock so overlapping ticks
// cannot both send.
func (s *reportSvc) Generate(ctx context.Context) (*service.Batch, error) {
	today := s.now()
	batch := &service.Batch{
		GeneratedAt: today.Format("2006-01-02"),
		Messages:    []entities.ReportMessage{},
	}

	for _, link := range s.store.Links() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		msg, sent, err := s.reportFor(link, today)
		if err != nil {
			s.log.Error("report failed",
				zap.String("farmer_id", link.FarmerID),
				zap.Error(err))
			continue
		}
		if sent {
			batch.Messages = append(batch.Messages, msg)
		}
	}
	batch.ReportsSent = len(batch.Messages)
	s.log.Info("reports generated", zap.Int("sent", batch.ReportsSent))
	return batch, nil
}

func (s *reportSvc) reportFor(link session.Link, today time.Time) (entities.ReportMessage, bool, error) {
	unlock := s.store.LockFarmer(link.FarmerID)
	defer unlock()

	if !s.sched.IsDue(link.FarmerID, today) {
		return entities.ReportMessage{}, false, nil
	}
	ps, err := s.parcels.ParcelsForFarmer(link.FarmerID)
	if err != nil {
		return entities.ReportMessage{}, false, err
	}

	text := NoParcelsMessage
	if len(ps) > 0 {
		text, err = s.summarize(ps)
		if err != nil {
			return entities.ReportMessage{}, false, err
		}
	}
	s.sched.MarkSent(link.FarmerID, today)
	s.log.Debug("report sent",
		zap.String("to", logging.MaskPhone(link.Phone)),
		zap.String("farmer_id", link.FarmerID))
	return entities.ReportMessage{To: link.Phone, Message: text}, true, nil
}

func (s *reportSvc) summarize(ps []entities.Parcel) (string, error) {
	var b strings.Builder
	noun := "parcels"
	if len(ps) == 1 {
		noun = "parcel"
	}
	fmt.Fprintf(&b, "You have %d %s.", len(ps), noun)
	for _, p := range ps {
		latest, err := s.parcels.LatestIndices(p.ID)
		if err != nil {
			return "", err
		}
		if latest == nil {
			fmt.Fprintf(&b, "\n%s – %s: no monitoring data yet.", p.ID, p.Name)
			continue
		}
		fmt.Fprintf(&b, "\n%s – %s (%s): %s", p.ID, p.Name, latest.Date, indices.Describe(indices.NDVI, latest.NDVI))
	}
	return b.String(), nil
}
