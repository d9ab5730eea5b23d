// pkg/ai/mock_client.go

package ai

import (
	"context"
	"sync"
)

// MockClient replays scripted replies in order; the last one repeats.
type MockClient struct {
	mu      sync.Mutex
	replies []MockReply
	calls   []string
}

type MockReply struct {
	Raw   string
	Err   error
	Block bool // wait for ctx to end before answering
}

func NewMock(replies ...MockReply) *MockClient { return &MockClient{replies: replies} }

func (m *MockClient) ParseMessage(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, text)
	var r MockReply
	if len(m.replies) > 0 {
		r = m.replies[0]
		if len(m.replies) > 1 {
			m.replies = m.replies[1:]
		}
	} else {
		r = MockReply{Raw: `{"intent":"UNKNOWN","parcel_id":null,"frequency":null}`}
	}
	m.mu.Unlock()

	if r.Block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return r.Raw, r.Err
}

// Calls returns the texts the mock received.
func (m *MockClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}
