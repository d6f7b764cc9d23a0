package events

import (
	"sync"

	"github.com/google/uuid"
)

// DefaultBuffer is the subscription buffer used when none is given.
const DefaultBuffer = 64

// Subscription receives events from a Bus through a buffered channel.
type Subscription struct {
	id       string
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
	bus      *Bus
}

// ID returns the subscription identifier.
func (s *Subscription) ID() string {
	return s.id
}

// Events returns the channel to receive events from.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Done returns a channel closed when the subscription ends.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Close removes the subscription from its bus. Safe to call multiple times.
func (s *Subscription) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
		if s.bus != nil {
			s.bus.remove(s.id)
		}
	})
}

// send delivers evt without blocking. When the buffer is full the oldest
// event is dropped.
func (s *Subscription) send(evt Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- evt:
	default:
		select {
		case <-s.events:
		default:
		}
		select {
		case s.events <- evt:
		default:
		}
	}
}

// Bus fans events out to subscribers. Publish never blocks.
type Bus struct {
	mu   sync.RWMutex
	subs map[string]*Subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string]*Subscription)}
}

// Subscribe registers a new subscriber with the given buffer size.
func (b *Bus) Subscribe(buffer int) *Subscription {
	if buffer < 1 {
		buffer = DefaultBuffer
	}
	sub := &Subscription{
		id:     uuid.NewString(),
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
		bus:    b,
	}

	b.mu.Lock()
	b.subs[sub.id] = sub
	b.mu.Unlock()
	return sub
}

func (b *Bus) remove(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, id)
}

// Publish delivers evt to every current subscriber.
func (b *Bus) Publish(evt Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs {
		sub.send(evt)
	}
}

// Count returns the number of active subscriptions.
func (b *Bus) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
