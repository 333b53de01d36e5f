package event

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/qrdine/backend/internal/domain/ordering"
	"github.com/qrdine/backend/internal/domain/shared"
)

// EventSerializer turns domain events into JSON payloads and back. Decoding
// needs a constructor per event type, registered with RegisterEvent.
type EventSerializer struct {
	mu        sync.RWMutex
	factories map[string]func() shared.DomainEvent
}

// NewEventSerializer creates a serializer with no registered types
func NewEventSerializer() *EventSerializer {
	return &EventSerializer{factories: make(map[string]func() shared.DomainEvent)}
}

// RegisterEvent makes eventType decodable into a *T
func RegisterEvent[T any, PT interface {
	*T
	shared.DomainEvent
}](s *EventSerializer, eventType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.factories[eventType] = func() shared.DomainEvent { return PT(new(T)) }
}

// Serialize encodes the event with its embedded metadata
func (s *EventSerializer) Serialize(event shared.DomainEvent) ([]byte, error) {
	return json.Marshal(event)
}

// Deserialize decodes data into a fresh event of eventType
func (s *EventSerializer) Deserialize(eventType string, data []byte) (shared.DomainEvent, error) {
	s.mu.RLock()
	factory, ok := s.factories[eventType]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}

	event := factory()
	if err := json.Unmarshal(data, event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", eventType, err)
	}
	return event, nil
}

// IsRegistered reports whether eventType can be decoded
func (s *EventSerializer) IsRegistered(eventType string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.factories[eventType]
	return ok
}

// RegisteredTypes returns the decodable event types, sorted
func (s *EventSerializer) RegisteredTypes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	types := make([]string, 0, len(s.factories))
	for t := range s.factories {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// RegisterOrderEvents registers every event the order aggregate emits
func RegisterOrderEvents(s *EventSerializer) {
	RegisterEvent[ordering.OrderPlacedEvent](s, ordering.EventTypeOrderPlaced)
	RegisterEvent[ordering.OrderStatusChangedEvent](s, ordering.EventTypeOrderStatusChanged)
	RegisterEvent[ordering.OrderItemStatusChangedEvent](s, ordering.EventTypeOrderItemStatusChanged)
	RegisterEvent[ordering.OrderReopenedEvent](s, ordering.EventTypeOrderReopened)
}
