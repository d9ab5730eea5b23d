package serviceImp

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Teo107/farmer-assistant/entities"
	"github.com/Teo107/farmer-assistant/pkg/linking/service"
	"github.com/Teo107/farmer-assistant/pkg/parcel/repository"
	"github.com/Teo107/farmer-assistant/pkg/parcel/repositoryImp"
	"github.com/Teo107/farmer-assistant/pkg/session"
)

const (
	phoneA = "+40740000001"
	phoneB = "+40740000002"
)

func setup() (service.LinkingService, *session.Store, repository.FarmRepository) {
	r := repositoryImp.NewMemory([]entities.Farmer{
		{ID: "F1", Username: "Ion.Popescu", Name: "Ion Popescu"},
		{ID: "F2", Username: "maria", Name: "Maria", Phone: phoneB},
	}, nil, nil)
	st := session.NewStore()
	return NewLinkingService(r, st, nil), st, r
}

func resolve(t *testing.T, s service.LinkingService, phone, text string) service.Outcome {
	t.Helper()
	out, err := s.Resolve(context.Background(), phone, text)
	require.NoError(t, err)
	return out
}

func TestResolve_BlankInputDoesNotCreatePending(t *testing.T) {
	s, st, _ := setup()

	out := resolve(t, s, phoneA, "   ")
	assert.Equal(t, service.KindPromptUsername, out.Kind)
	assert.Equal(t, service.Unlinked, out.State)
	assert.False(t, st.IsPending(phoneA))
}

func TestResolve_UnknownThenPendingThenNotFound(t *testing.T) {
	s, st, _ := setup()

	out := resolve(t, s, phoneA, "hello")
	assert.Equal(t, service.KindPendingStarted, out.Kind)
	assert.True(t, st.IsPending(phoneA))

	out = resolve(t, s, phoneA, "wrong.name")
	assert.Equal(t, service.KindUsernameNotFound, out.Kind)
	assert.ErrorIs(t, out.Err, service.ErrUsernameNotFound)
	assert.Equal(t, service.PendingUsername, out.State)
	assert.True(t, st.IsPending(phoneA))
}

func TestResolve_LinksCaseInsensitive(t *testing.T) {
	s, st, r := setup()

	resolve(t, s, phoneA, "hi")
	out := resolve(t, s, phoneA, "  ION.popescu ")
	assert.Equal(t, service.KindLinked, out.Kind)
	assert.Equal(t, service.Linked, out.State)
	assert.Contains(t, out.Reply(), "Ion Popescu")

	id, ok := st.FarmerFor(phoneA)
	assert.True(t, ok)
	assert.Equal(t, "F1", id)
	assert.False(t, st.IsPending(phoneA))

	f, err := r.FarmerByID("F1")
	require.NoError(t, err)
	assert.Equal(t, phoneA, f.Phone)
}

func TestResolve_AlreadyLinkedIsIdempotent(t *testing.T) {
	s, st, _ := setup()
	resolve(t, s, phoneA, "ion.popescu")
	before := st.Snapshot()

	for _, text := range []string{"ion.popescu", "maria", "", "anything"} {
		out := resolve(t, s, phoneA, text)
		assert.Equal(t, service.KindAlreadyLinked, out.Kind)
		assert.Equal(t, "F1", out.FarmerID)
		assert.Equal(t, before, st.Snapshot())
	}
}

func TestResolve_RelinkSamePhone(t *testing.T) {
	s, st, _ := setup()

	// F2 is bound to phoneB in the data but the session map is empty (restart)
	out := resolve(t, s, phoneB, "MARIA")
	assert.Equal(t, service.KindRelinked, out.Kind)
	id, ok := st.FarmerFor(phoneB)
	assert.True(t, ok)
	assert.Equal(t, "F2", id)
}

func TestResolve_HijackDoesNotMutate(t *testing.T) {
	s, st, r := setup()
	before := st.Snapshot()

	out := resolve(t, s, phoneA, "maria")
	assert.Equal(t, service.KindHijackRefused, out.Kind)
	assert.ErrorIs(t, out.Err, service.ErrAccountHijack)
	assert.Equal(t, "This account is already linked to a different phone number.", out.Reply())
	assert.Equal(t, before, st.Snapshot())

	f, err := r.FarmerByID("F2")
	require.NoError(t, err)
	assert.Equal(t, phoneB, f.Phone)
}

func TestResolve_HijackWhilePendingKeepsPending(t *testing.T) {
	s, st, _ := setup()
	resolve(t, s, phoneA, "nobody")
	require.True(t, st.IsPending(phoneA))

	out := resolve(t, s, phoneA, "maria")
	assert.Equal(t, service.KindHijackRefused, out.Kind)
	assert.Equal(t, service.PendingUsername, out.State)
	assert.True(t, st.IsPending(phoneA))
}

func TestResolve_ConcurrentPhonesRaceForOneFarmer(t *testing.T) {
	s, st, _ := setup()

	const n = 10
	outs := make([]service.Outcome, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := s.Resolve(context.Background(), fmt.Sprintf("+4100000%02d", i), "ion.popescu")
			assert.NoError(t, err)
			outs[i] = out
		}(i)
	}
	wg.Wait()

	linked := 0
	for _, o := range outs {
		switch o.Kind {
		case service.KindLinked:
			linked++
		case service.KindHijackRefused:
		default:
			t.Fatalf("unexpected outcome %v", o.Kind)
		}
	}
	assert.Equal(t, 1, linked)
	assert.Len(t, st.Links(), 1)
}

func TestResolve_CancelledContext(t *testing.T) {
	s, st, _ := setup()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Resolve(ctx, phoneA, "ion.popescu")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, st.Links())
}
