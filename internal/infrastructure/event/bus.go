package event

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/qrdine/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InMemoryEventBus delivers domain events in-process, synchronously and in
// subscription order. Handler failures are logged and never reach the
// publisher: an order transition has already been saved when its events go out.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
	running  atomic.Bool
}

func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger.Named("event_bus"),
	}
}

// Publish delivers each event to its handlers. While the bus is stopped
// events are dropped with a warning.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	if !b.running.Load() {
		b.logger.Warn("event bus not running, dropping events", zap.Int("count", len(events)))
		return nil
	}

	for _, event := range events {
		for _, handler := range b.registry.Handlers(event.EventType()) {
			if err := b.deliver(ctx, handler, event); err != nil {
				b.logger.Error("event handler failed",
					zap.String("handler", fmt.Sprintf("%T", handler)),
					zap.String("event_type", event.EventType()),
					zap.String("event_id", event.EventID().String()),
					zap.String("restaurant_id", event.RestaurantID().String()),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

// deliver runs one handler, turning a panic into an error
func (b *InMemoryEventBus) deliver(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &HandlerPanicError{Value: r}
		}
	}()
	return handler.Handle(ctx, event)
}

// HandlerPanicError reports a handler that panicked during delivery
type HandlerPanicError struct {
	Value any
}

func (e *HandlerPanicError) Error() string {
	return fmt.Sprintf("handler panicked: %v", e.Value)
}

// Subscribe registers a handler for eventTypes, or for the handler's own
// EventTypes when none are given. An empty set means every event.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("handler subscribed",
		zap.String("handler", fmt.Sprintf("%T", handler)),
		zap.Strings("event_types", eventTypes),
	)
}

func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
}

func (b *InMemoryEventBus) Start(ctx context.Context) error {
	if b.running.Swap(true) {
		return nil
	}
	b.logger.Info("event bus started", zap.Int("handlers", b.registry.Len()))
	return nil
}

func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	if b.running.Swap(false) {
		b.logger.Info("event bus stopped")
	}
	return nil
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
