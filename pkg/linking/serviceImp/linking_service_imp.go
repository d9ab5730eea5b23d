package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Teo107/farmer-assistant/pkg/linking/service"
	"github.com/Teo107/farmer-assistant/pkg/logging"
	repo "github.com/Teo107/farmer-assistant/pkg/parcel/repository"
	"github.com/Teo107/farmer-assistant/pkg/session"
)

type linkingSvc struct {
	r     repo.FarmRepository
	store *session.Store
	log   *zap.Logger
}

func NewLinkingService(r repo.FarmRepository, store *session.Store, log *zap.Logger) service.LinkingService {
	if log == nil {
		log = zap.NewNop()
	}
	return &linkingSvc{r: r, store: store, log: log.Named("linking")}
}

// Resolve treats text as a username for phone. All reads and writes for one
// phone happen under that phone's lock.
func (s *linkingSvc) Resolve(ctx context.Context, phone, text string) (service.Outcome, error) {
	unlock := s.store.LockPhone(phone)
	defer unlock()

	if farmerID, ok := s.store.FarmerFor(phone); ok {
		return service.Outcome{Kind: service.KindAlreadyLinked, State: service.Linked, FarmerID: farmerID}, nil
	}

	username := strings.ToLower(strings.TrimSpace(text))
	if username == "" {
		return service.Outcome{Kind: service.KindPromptUsername, State: s.currentState(phone)}, nil
	}

	if err := ctx.Err(); err != nil {
		return service.Outcome{}, err
	}
	farmer, err := s.r.FarmerByUsername(username)
	if err != nil {
		return service.Outcome{}, fmt.Errorf("lookup username: %w", err)
	}

	if farmer == nil {
		if s.store.MarkPending(phone) {
			s.log.Info("linking started", zap.String("phone", logging.MaskPhone(phone)))
			return service.Outcome{Kind: service.KindPendingStarted, State: service.PendingUsername}, nil
		}
		return service.Outcome{
			Kind:  service.KindUsernameNotFound,
			State: service.PendingUsername,
			Err:   service.ErrUsernameNotFound,
		}, nil
	}

	if farmer.Linked() {
		if farmer.Phone == phone {
			return s.complete(phone, farmer.ID, farmer.Name, service.KindRelinked)
		}
		return s.refuse(phone, farmer.ID), nil
	}

	if err := s.r.BindPhone(farmer.ID, phone); err != nil {
		if !errors.Is(err, repo.ErrPhoneAlreadyBound) {
			return service.Outcome{}, err
		}
		// another phone won the race for this farmer
		cur, ferr := s.r.FarmerByID(farmer.ID)
		if ferr != nil {
			return service.Outcome{}, fmt.Errorf("reload farmer: %w", ferr)
		}
		if cur != nil && cur.Phone == phone {
			return s.complete(phone, farmer.ID, farmer.Name, service.KindRelinked)
		}
		return s.refuse(phone, farmer.ID), nil
	}
	return s.complete(phone, farmer.ID, farmer.Name, service.KindLinked)
}

func (s *linkingSvc) complete(phone, farmerID, name string, kind service.Kind) (service.Outcome, error) {
	if err := s.store.CompleteLink(phone, farmerID); err != nil {
		return service.Outcome{}, err
	}
	s.log.Info("phone linked",
		zap.String("phone", logging.MaskPhone(phone)),
		zap.String("farmer_id", farmerID))
	return service.Outcome{Kind: kind, State: service.Linked, FarmerID: farmerID, FarmerName: name}, nil
}

func (s *linkingSvc) refuse(phone, farmerID string) service.Outcome {
	s.log.Warn("link refused: farmer bound to another phone",
		zap.String("phone", logging.MaskPhone(phone)),
		zap.String("farmer_id", farmerID))
	return service.Outcome{
		Kind:  service.KindHijackRefused,
		State: s.currentState(phone),
		Err:   service.ErrAccountHijack,
	}
}

func (s *linkingSvc) currentState(phone string) service.State {
	if s.store.IsPending(phone) {
		return service.PendingUsername
	}
	return service.Unlinked
}
