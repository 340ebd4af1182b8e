package eventbus

import (
	"VendingBus/internal/core/domain"
	"VendingBus/internal/core/ports"
	"context"
	"fmt"
	"reflect"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// HandlerError is returned by Publish when a subscriber fails during a drain.
type HandlerError struct {
	Subscriber string
	Topic      domain.Topic
	EventID    uuid.UUID
	Err        error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("subscriber %q failed on %s event %s: %v", e.Subscriber, e.Topic, e.EventID, e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }

// inMemoryEventBus implements the ports.EventBus interface.
//
// Dispatch is synchronous and single-threaded: there are no locks, and a
// bus must not be shared between goroutines. Re-entrancy is handled by the
// draining flag, not by recursion. A publish issued while a drain is running
// only appends to the queue and the running drain picks it up in FIFO order.
type inMemoryEventBus struct {
	log         zerolog.Logger
	subscribers [domain.TopicCount][]ports.Subscriber
	queue       []domain.Event
	draining    bool
}

var _ ports.EventBus = (*inMemoryEventBus)(nil) // Ensure compliance

// NewInMemoryEventBus creates a new, empty event bus
func NewInMemoryEventBus(baseLogger *zerolog.Logger) ports.EventBus {
	return &inMemoryEventBus{
		log: baseLogger.With().Str("component", "in_memory_bus").Logger(),
	}
}

// Subscribe registers a subscriber for a topic. Subscribers keep their
// registration order; a repeated registration is ignored.
func (b *inMemoryEventBus) Subscribe(topic domain.Topic, sub ports.Subscriber) {
	if !topic.Valid() {
		b.log.Warn().Uint8("topic", uint8(topic)).Str("subscriber", sub.Name()).Msg("Ignoring subscription to unknown topic")
		return
	}
	if !isComparable(sub) {
		b.log.Warn().Stringer("topic", topic).Str("subscriber", sub.Name()).Msg("Ignoring non-comparable subscriber, register a pointer instead")
		return
	}
	if slices.Contains(b.subscribers[topic], sub) {
		b.log.Debug().Stringer("topic", topic).Str("subscriber", sub.Name()).Msg("Subscriber already registered")
		return
	}

	b.subscribers[topic] = append(b.subscribers[topic], sub)
	b.log.Info().Stringer("topic", topic).Str("subscriber", sub.Name()).Msg("New subscriber registered to topic")
}

// Unsubscribe removes a subscriber from a topic. Unknown topics and
// subscribers are ignored.
func (b *inMemoryEventBus) Unsubscribe(topic domain.Topic, sub ports.Subscriber) {
	if !topic.Valid() || !isComparable(sub) {
		return
	}
	i := slices.Index(b.subscribers[topic], sub)
	if i < 0 {
		return
	}

	// Build a new slice so a snapshot held by a running drain is untouched.
	b.subscribers[topic] = slices.Delete(slices.Clone(b.subscribers[topic]), i, i+1)
	b.log.Info().Stringer("topic", topic).Str("subscriber", sub.Name()).Msg("Subscriber removed from topic")
}

// isComparable reports whether sub can be used with ==. Set membership
// compares interface values, which panics for slice or map fields.
func isComparable(sub ports.Subscriber) bool {
	return reflect.TypeOf(sub).Comparable()
}

// Publish appends the event to the queue. If no drain is running, the
// call drains the queue until it is empty, including events appended by
// handlers along the way.
//
// If a handler fails, draining stops and the error is returned wrapped in
// a *HandlerError. Events still queued stay queued and are dispatched by
// the next Publish call.
func (b *inMemoryEventBus) Publish(ctx context.Context, event domain.Event) error {
	b.queue = append(b.queue, event)

	if b.draining {
		b.log.Debug().
			Stringer("topic", event.Topic()).
			Str("event_id", event.ID().String()).
			Int("pending", len(b.queue)).
			Msg("Event queued during drain")
		return nil
	}

	b.draining = true
	defer func() { b.draining = false }()

	return b.drain(ctx)
}

// Pending returns the number of events waiting to be dispatched.
func (b *inMemoryEventBus) Pending() int {
	return len(b.queue)
}

// drain dispatches queued events in FIFO order until the queue is empty
// or a handler fails.
func (b *inMemoryEventBus) drain(ctx context.Context) error {
	publish := b.Publish

	for len(b.queue) > 0 {
		event := b.queue[0]
		b.queue[0] = domain.Event{}
		b.queue = b.queue[1:]

		subs := b.subscribersFor(event.Topic())
		if len(subs) == 0 {
			b.log.Debug().Stringer("topic", event.Topic()).Str("event_id", event.ID().String()).Msg("No subscribers for event")
			continue
		}

		for _, sub := range subs {
			if err := sub.Handle(ctx, event, publish); err != nil {
				b.log.Error().
					Err(err).
					Stringer("topic", event.Topic()).
					Str("subscriber", sub.Name()).
					Str("event_id", event.ID().String()).
					Int("pending", len(b.queue)).
					Msg("Event handler failed, stopping drain")
				return &HandlerError{
					Subscriber: sub.Name(),
					Topic:      event.Topic(),
					EventID:    event.ID(),
					Err:        err,
				}
			}
		}
	}

	b.queue = nil
	return nil
}

// subscribersFor returns the current subscriber set for a topic. The
// returned slice is never mutated in place by Subscribe or Unsubscribe.
func (b *inMemoryEventBus) subscribersFor(topic domain.Topic) []ports.Subscriber {
	if !topic.Valid() {
		return nil
	}
	return b.subscribers[topic]
}
