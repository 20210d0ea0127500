package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishAndSubscribe(t *testing.T) {
	bus := NewBus(4)
	defer bus.Close()

	ch := bus.Subscribe(KindUsageRecorded)
	bus.Publish(Event{Kind: KindUsageRecorded, SubscriptionID: "sub_1", Quantity: 42})

	select {
	case ev := <-ch:
		assert.Equal(t, KindUsageRecorded, ev.Kind)
		assert.Equal(t, "sub_1", ev.SubscriptionID)
		assert.EqualValues(t, 42, ev.Quantity)
		assert.NotEmpty(t, ev.ID)
		assert.False(t, ev.OccurredAt.IsZero())
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestBus_SubscriberOnlyGetsItsKinds(t *testing.T) {
	bus := NewBus(4)
	defer bus.Close()

	ch := bus.Subscribe(KindSubscriptionChanged)
	bus.Publish(Event{Kind: KindUsageRecorded, SubscriptionID: "sub_1"})

	select {
	case ev := <-ch:
		t.Fatalf("unexpected event delivered: %v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBus_MultiKindSubscription(t *testing.T) {
	bus := NewBus(4)
	defer bus.Close()

	ch := bus.Subscribe(KindUsageRecorded, KindSubscriptionChanged)
	bus.Publish(Event{Kind: KindUsageRecorded})
	bus.Publish(Event{Kind: KindSubscriptionChanged})

	kinds := make(map[Kind]int)
	for i := 0; i < 2; i++ {
		select {
		case ev := <-ch:
			kinds[ev.Kind]++
		case <-time.After(time.Second):
			t.Fatal("missing event")
		}
	}
	assert.Equal(t, 1, kinds[KindUsageRecorded])
	assert.Equal(t, 1, kinds[KindSubscriptionChanged])
}

// A slow subscriber must not block the publisher; overflow is dropped.
func TestBus_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	bus := NewBus(2)
	defer bus.Close()

	ch := bus.Subscribe(KindUsageRecorded)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			bus.Publish(Event{Kind: KindUsageRecorded})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher blocked on a full subscriber")
	}
	assert.Len(t, ch, 2)
}

func TestBus_CloseEndsSubscription(t *testing.T) {
	bus := NewBus(4)
	ch := bus.Subscribe(KindUsageRecorded)

	bus.Close()

	_, open := <-ch
	require.False(t, open)

	// Publishing and re-closing after shutdown must be safe no-ops.
	bus.Publish(Event{Kind: KindUsageRecorded})
	bus.Close()
}

func TestBus_SubscribeAfterClose(t *testing.T) {
	bus := NewBus(4)
	bus.Close()

	ch := bus.Subscribe(KindUsageRecorded)
	_, open := <-ch
	assert.False(t, open)
}
