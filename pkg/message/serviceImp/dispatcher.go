package serviceImp

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Teo107/farmer-assistant/pkg/intent"
	linkingSvc "github.com/Teo107/farmer-assistant/pkg/linking/service"
	"github.com/Teo107/farmer-assistant/pkg/logging"
	"github.com/Teo107/farmer-assistant/pkg/message/service"
	parcelSvc "github.com/Teo107/farmer-assistant/pkg/parcel/service"
	"github.com/Teo107/farmer-assistant/pkg/session"
)

type dispatcher struct {
	store   *session.Store
	linking linkingSvc.LinkingService
	router  *intent.Router
	parcels parcelSvc.ParcelService
	log     *zap.Logger
}

func NewDispatcher(store *session.Store, linking linkingSvc.LinkingService, router *intent.Router, parcels parcelSvc.ParcelService, log *zap.Logger) service.Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &dispatcher{store: store, linking: linking, router: router, parcels: parcels, log: log.Named("message")}
}

func (d *dispatcher) Handle(ctx context.Context, phone, text string) service.Reply {
	text = strings.TrimSpace(text)
	log := d.log.With(zap.String("from", logging.MaskPhone(phone)))

	farmerID, linked := d.store.FarmerFor(phone)
	if !linked {
		out, err := d.linking.Resolve(ctx, phone, text)
		if err != nil {
			log.Error("linking failed", zap.Error(err))
			return service.Reply{Reply: FailureText}
		}
		log.Debug("linking step", zap.Stringer("state", out.State))
		return service.Reply{Reply: out.Reply()}
	}

	in := d.router.Route(ctx, text)
	log.Debug("intent",
		zap.String("farmer_id", farmerID),
		zap.String("kind", string(in.Kind)),
		zap.String("source", string(in.Source)))
	return d.handle(log, farmerID, in)
}

func (d *dispatcher) handle(log *zap.Logger, farmerID string, in intent.Intent) service.Reply {
	switch in.Kind {
	case intent.Greeting:
		return service.Reply{Reply: GreetingText}

	case intent.SetFrequency:
		txt, ok := frequencyReplies[in.Frequency]
		if !ok {
			return service.Reply{Reply: GuidanceText}
		}
		d.store.SetFrequency(farmerID, in.Frequency)
		return service.Reply{Reply: txt}

	case intent.StopReports:
		if !d.store.ClearFrequency(farmerID) {
			return service.Reply{Reply: NoScheduleText}
		}
		return service.Reply{Reply: ReportsStoppedTxt}

	case intent.ParcelDetails:
		det, err := d.parcels.ParcelDetailsForFarmer(farmerID, in.ParcelID)
		if err != nil {
			return d.failure(log, err)
		}
		return service.Reply{Reply: formatDetails(det)}

	case intent.ParcelStatus:
		det, err := d.parcels.ParcelDetailsForFarmer(farmerID, in.ParcelID)
		if err != nil {
			return d.failure(log, err)
		}
		if det.Latest == nil {
			return d.failure(log, parcelSvc.ErrNoMonitoringData)
		}
		return buildStatus(det)

	case intent.ListParcels:
		ps, err := d.parcels.ParcelsForFarmer(farmerID)
		if err != nil {
			return d.failure(log, err)
		}
		if len(ps) == 0 {
			return service.Reply{Reply: NoParcelsText}
		}
		return service.Reply{Reply: formatParcelList(ps)}
	}
	return service.Reply{Reply: GuidanceText}
}

func (d *dispatcher) failure(log *zap.Logger, err error) service.Reply {
	if txt, ok := errorText(err); ok {
		return service.Reply{Reply: txt}
	}
	log.Error("request failed", zap.Error(err))
	return service.Reply{Reply: FailureText}
}
