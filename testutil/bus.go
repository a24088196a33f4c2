package testutil

import (
	"context"
	"sync"
	"testing"

	"ai-gateway-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// NewSyncBus returns a gochannel whose Publish returns only after the
// subscriber acked, so log rows exist by the time a handler returns.
func NewSyncBus(t *testing.T) *gochannel.GoChannel {
	t.Helper()
	bus := gochannel.NewGoChannel(gochannel.Config{BlockPublishUntilSubscriberAck: true}, watermill.NopLogger{})
	t.Cleanup(func() { _ = bus.Close() })
	return bus
}

// RecordingSink collects published events.
type RecordingSink struct {
	mu     sync.Mutex
	Err    error
	Events []events.Event
}

func (s *RecordingSink) Publish(_ context.Context, event events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, event)
	return s.Err
}

func (s *RecordingSink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Events)
}
