package outbox

import "context"

// Event is a domain event identified by name.
type Event interface {
	EventName() string
}

// Handler reacts to a published event.
type Handler func(ctx context.Context, e Event) error

// Publisher hands events to whatever dispatch mechanism is wired in.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Subscriber registers a handler for all events with the given name.
type Subscriber interface {
	Subscribe(eventName string, h Handler)
}
