package ports

import (
	"VendingBus/internal/core/domain"
	"context"
)

// PublishFunc is handed to subscribers so they can publish follow-up
// events. Inside a drain it only enqueues.
type PublishFunc func(ctx context.Context, event domain.Event) error

// Subscriber handles events for the topics it declares.
// The bus compares subscribers with ==, so implementations must be
// pointers or comparable values. Non-comparable values (a struct holding
// a slice or map) are refused by Subscribe.
type Subscriber interface {
	// Name identifies the subscriber in logs and errors.
	Name() string
	// Topics lists the topics the subscriber wants to be registered under.
	Topics() []domain.Topic
	// Handle processes one event. Returning an error aborts the current drain.
	Handle(ctx context.Context, event domain.Event, publish PublishFunc) error
}

// EventBus defines the interface for our in-process pub/sub system
type EventBus interface {
	// Subscribe registers a subscriber under a topic. Registering twice is a no-op.
	Subscribe(topic domain.Topic, sub Subscriber)

	// Unsubscribe removes a subscriber from a topic if present.
	Unsubscribe(topic domain.Topic, sub Subscriber)

	// Publish enqueues an event and drains the queue unless a drain is already running.
	Publish(ctx context.Context, event domain.Event) error

	// Pending returns the number of queued events not yet dispatched.
	Pending() int
}
