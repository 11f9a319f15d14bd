package eventbus_test

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veildoc/veilflow/pkg/channels/gochannel"
	"github.com/veildoc/veilflow/pkg/eventbus"
	"github.com/veildoc/veilflow/pkg/events"
	"github.com/veildoc/veilflow/pkg/models"
	"github.com/veildoc/veilflow/pkg/registry"
	"github.com/veildoc/veilflow/pkg/services"
	"github.com/veildoc/veilflow/pkg/testutil"
)

// eventSink collects decoded events in arrival order. The test channel
// blocks each publish until its message is acked, so the collection is
// complete as soon as the publisher returns.
type eventSink struct {
	mu     sync.Mutex
	events []any
}

func (s *eventSink) handle(_ context.Context, event any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, event)

	return nil
}

func (s *eventSink) collected() []any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]any(nil), s.events...)
}

func newTestBus(t *testing.T) (*eventbus.WatermillEventBus, *eventSink) {
	t.Helper()

	pub, sub := gochannel.CreateTestChannel(watermill.NopLogger{})
	bus := eventbus.NewWatermillEventBus(pub, sub)

	sink := &eventSink{}
	for _, eventType := range []events.EventType{
		events.RunStartedEvent,
		events.NodeStatusEvent,
		events.NodeFinishedEvent,
		events.RunFinishedEvent,
	} {
		bus.Handle(eventType, sink.handle)
	}

	t.Cleanup(func() {
		_ = bus.Close()
	})

	return bus, sink
}

func TestWatermillEventBus_RoundTripsRunEvents(t *testing.T) {
	ctx := context.Background()
	bus, sink := newTestBus(t)

	require.NoError(t, bus.Subscribe(ctx))

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	reg := registry.NewRegistry(logger)
	reg.RegisterDefaultCapabilities()

	runner := services.NewRunner(logger, reg, services.WithPublisher(bus))

	run, err := runner.Run(ctx, testutil.HashAndSignWorkflow())
	require.NoError(t, err)

	// run.started, then pending + running + node.finished per node,
	// then run.finished.
	received := sink.collected()
	require.Len(t, received, 8)

	started, ok := received[0].(*events.RunStarted)
	require.True(t, ok, "first event is %T", received[0])
	assert.Equal(t, run.ID, started.RunID)
	assert.Equal(t, 2, started.NodeCount)

	finished, ok := received[len(received)-1].(*events.RunFinished)
	require.True(t, ok, "last event is %T", received[len(received)-1])
	assert.Equal(t, run.ID, finished.RunID)
	assert.Equal(t, models.RunStatusDone, finished.Status)

	statusCount := 0
	finishedCount := 0

	for _, event := range received[1 : len(received)-1] {
		switch decoded := event.(type) {
		case *events.NodeStatus:
			statusCount++

			assert.Equal(t, run.ID, decoded.RunID)
			assert.NotEmpty(t, decoded.NodeID)
		case *events.NodeFinished:
			finishedCount++

			assert.Equal(t, run.ID, decoded.RunID)
			assert.Equal(t, models.NodeStatusDone, decoded.Result.Status)
			assert.NotEmpty(t, decoded.Result.Output)
		default:
			t.Fatalf("unexpected event %T", event)
		}
	}

	assert.Equal(t, 4, statusCount)
	assert.Equal(t, 2, finishedCount)
}

func TestWatermillEventBus_SkipsUnhandledEventTypes(t *testing.T) {
	ctx := context.Background()

	pub, sub := gochannel.CreateTestChannel(watermill.NopLogger{})
	bus := eventbus.NewWatermillEventBus(pub, sub)

	t.Cleanup(func() {
		_ = bus.Close()
	})

	sink := &eventSink{}
	bus.Handle(events.RunFinishedEvent, sink.handle)

	require.NoError(t, bus.Subscribe(ctx))

	require.NoError(t, bus.Publish(ctx, "run-1", events.RunStarted{
		BaseEvent: events.BaseEvent{ID: "e1", Type: events.RunStartedEvent, RunID: "run-1"},
		NodeCount: 1,
	}))
	require.NoError(t, bus.Publish(ctx, "run-1", events.RunFinished{
		BaseEvent: events.BaseEvent{ID: "e2", Type: events.RunFinishedEvent, RunID: "run-1"},
		Status:    models.RunStatusDone,
	}))

	received := sink.collected()
	require.Len(t, received, 1)

	finished, ok := received[0].(*events.RunFinished)
	require.True(t, ok)
	assert.Equal(t, "run-1", finished.RunID)
}
