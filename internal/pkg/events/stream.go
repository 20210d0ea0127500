package events

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// Kind identifies the type of a change event.
type Kind string

const (
	KindSubscriptionChanged Kind = "subscription_changed"
	KindUsageRecorded       Kind = "usage_recorded"
)

// Event is a typed change notification. Events are advisory: consumers must
// re-read store state and never treat the payload as authoritative.
type Event struct {
	ID             string    `json:"id"`
	Kind           Kind      `json:"kind"`
	UserID         uint      `json:"user_id,omitempty"`
	SubscriptionID string    `json:"subscription_id,omitempty"`
	ResourceType   string    `json:"resource_type,omitempty"`
	Quantity       int64     `json:"quantity,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Bus is an in-process fan-out of change events over buffered channels.
// Delivery is at-most-once per subscriber: when a subscriber's buffer is
// full the event is dropped for that subscriber rather than blocking the
// publisher.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[Kind][]chan Event
	buffer      int
	closed      bool
}

// NewBus creates a bus with the given per-subscriber channel buffer.
func NewBus(buffer int) *Bus {
	if buffer <= 0 {
		buffer = 64
	}
	return &Bus{
		subscribers: make(map[Kind][]chan Event),
		buffer:      buffer,
	}
}

// Subscribe registers a new receiver for the given kinds and returns its
// channel. The channel is closed when the bus shuts down.
func (b *Bus) Subscribe(kinds ...Kind) <-chan Event {
	ch := make(chan Event, b.buffer)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	for _, kind := range kinds {
		b.subscribers[kind] = append(b.subscribers[kind], ch)
	}
	return ch
}

// Publish delivers the event to every subscriber of its kind. Missing ID and
// timestamp fields are filled in.
func (b *Bus) Publish(ev Event) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, ch := range b.subscribers[ev.Kind] {
		select {
		case ch <- ev:
		default:
			log.Warnf("[Events] Dropping %s event %s: subscriber buffer full", ev.Kind, ev.ID)
		}
	}
}

// Close shuts the bus down and closes all subscriber channels.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true

	seen := make(map[chan Event]struct{})
	for _, chans := range b.subscribers {
		for _, ch := range chans {
			if _, ok := seen[ch]; ok {
				continue
			}
			seen[ch] = struct{}{}
			close(ch)
		}
	}
	b.subscribers = make(map[Kind][]chan Event)
}
