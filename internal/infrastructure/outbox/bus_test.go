package outbox

import (
	"context"
	"sync"
	"testing"
	"time"

	domoutbox "github.com/storekit/storefront/internal/domain/outbox"
	"github.com/storekit/storefront/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct{ name string }

func (e testEvent) EventName() string { return e.name }

func TestBusDeliversToSubscriber(t *testing.T) {
	bus := NewBus(observability.NopLogger())

	var mu sync.Mutex
	var got []string
	done := make(chan struct{}, 1)
	bus.Subscribe("order.test", func(_ context.Context, e domoutbox.Event) error {
		mu.Lock()
		got = append(got, e.EventName())
		mu.Unlock()
		done <- struct{}{}
		return nil
	})

	ctx := context.Background()
	bus.Start(ctx)
	defer bus.Stop(ctx)

	require.NoError(t, bus.Publish(ctx, testEvent{name: "order.test"}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"order.test"}, got)
}

func TestBusIgnoresNilEvents(t *testing.T) {
	bus := NewBus(observability.NopLogger())
	assert.NoError(t, bus.Publish(context.Background(), nil))
}

func TestBusRecoversFromHandlerPanic(t *testing.T) {
	bus := NewBus(observability.NopLogger())

	delivered := make(chan struct{}, 1)
	bus.Subscribe("boom", func(context.Context, domoutbox.Event) error {
		panic("handler exploded")
	})
	bus.Subscribe("after", func(context.Context, domoutbox.Event) error {
		delivered <- struct{}{}
		return nil
	})

	ctx := context.Background()
	bus.Start(ctx)
	defer bus.Stop(ctx)

	require.NoError(t, bus.Publish(ctx, testEvent{name: "boom"}))
	require.NoError(t, bus.Publish(ctx, testEvent{name: "after"}))

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("bus stopped dispatching after a handler panic")
	}
}
