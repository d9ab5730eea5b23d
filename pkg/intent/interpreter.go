package intent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Teo107/farmer-assistant/entities"
	"github.com/Teo107/farmer-assistant/pkg/ai"
	parcelSvc "github.com/Teo107/farmer-assistant/pkg/parcel/service"
)

// ErrInterpreterFailure wraps every reason an interpreter answer is unusable.
var ErrInterpreterFailure = errors.New("interpreter failure")

type payload struct {
	Intent    string  `json:"intent"`
	ParcelID  *string `json:"parcel_id"`
	Frequency *string `json:"frequency"`
}

// Decode validates a raw interpreter answer.
func Decode(raw string) (Intent, error) {
	var p payload
	// Unmarshal rejects trailing text after the object.
	if err := json.Unmarshal([]byte(ai.StripFences(raw)), &p); err != nil {
		return Intent{}, fmt.Errorf("%w: decode: %v", ErrInterpreterFailure, err)
	}

	k := Kind(strings.ToUpper(strings.TrimSpace(p.Intent)))
	if !k.valid() {
		return Intent{}, fmt.Errorf("%w: unknown intent %q", ErrInterpreterFailure, p.Intent)
	}
	in := Intent{Kind: k, Source: SourceInterpreter}

	switch k {
	case ParcelDetails, ParcelStatus:
		if p.ParcelID == nil {
			return Intent{}, fmt.Errorf("%w: %s without parcel_id", ErrInterpreterFailure, k)
		}
		id, ok := parcelSvc.ExtractParcelReference(*p.ParcelID)
		if !ok {
			return Intent{}, fmt.Errorf("%w: bad parcel_id %q", ErrInterpreterFailure, *p.ParcelID)
		}
		in.ParcelID = id
	case SetFrequency:
		if p.Frequency == nil {
			return Intent{}, fmt.Errorf("%w: %s without frequency", ErrInterpreterFailure, k)
		}
		f, ok := entities.ParseFrequency(*p.Frequency)
		if !ok {
			return Intent{}, fmt.Errorf("%w: bad frequency %q", ErrInterpreterFailure, *p.Frequency)
		}
		in.Frequency = f
	}
	return in, nil
}

// Delegate asks the interpreter within timeout. ok is false for any failure,
// which is logged and never returned.
func Delegate(ctx context.Context, c ai.Client, text string, timeout time.Duration, log *zap.Logger) (in Intent, ok bool) {
	if c == nil {
		return Intent{}, false
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrInterpreterFailure, r)
			in, ok = Intent{}, false
		}
		if err != nil {
			log.Warn("interpreter unavailable, using rules", zap.Error(err))
		}
	}()

	raw, cerr := c.ParseMessage(ctx, text)
	if cerr != nil {
		err = fmt.Errorf("%w: %v", ErrInterpreterFailure, cerr)
		return Intent{}, false
	}
	in, err = Decode(raw)
	if err != nil {
		return Intent{}, false
	}
	return in, true
}
