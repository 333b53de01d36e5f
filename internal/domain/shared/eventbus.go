package shared

import "context"

// EventHandler reacts to domain events after they are published. EventTypes
// narrows delivery; a handler that returns none sees every event.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	EventTypes() []string
}

// EventPublisher is the port application services publish through
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber attaches handlers. Types passed here replace the handler's own.
type EventSubscriber interface {
	Subscribe(handler EventHandler, eventTypes ...string)
}

// EventBus is a publisher with a lifecycle
type EventBus interface {
	EventPublisher
	EventSubscriber
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// EventHandlerFunc adapts a function into an EventHandler for the given types.
// Subscribe it by pointer; handlers are compared by identity.
type EventHandlerFunc struct {
	Types []string
	Fn    func(ctx context.Context, event DomainEvent) error
}

// Handle calls Fn
func (f *EventHandlerFunc) Handle(ctx context.Context, event DomainEvent) error {
	return f.Fn(ctx, event)
}

// EventTypes returns Types
func (f *EventHandlerFunc) EventTypes() []string {
	return f.Types
}
