package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/domain/shared"
)

// Envelope is the wire format of a domain event forwarded to a broker.
// Payload holds the full event as serialized by EventSerializer.
type Envelope struct {
	ID            uuid.UUID       `json:"id"`
	Type          string          `json:"type"`
	AggregateID   uuid.UUID       `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	RestaurantID  uuid.UUID       `json:"restaurant_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

// NewEnvelope wraps a domain event
func NewEnvelope(s *EventSerializer, e shared.DomainEvent) (*Envelope, error) {
	payload, err := s.Serialize(e)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize event %s: %w", e.EventType(), err)
	}
	return &Envelope{
		ID:            e.EventID(),
		Type:          e.EventType(),
		AggregateID:   e.AggregateID(),
		AggregateType: e.AggregateType(),
		RestaurantID:  e.RestaurantID(),
		OccurredAt:    e.OccurredAt().UTC(),
		Payload:       payload,
	}, nil
}

// Event decodes the payload back into its registered domain event type
func (e *Envelope) Event(s *EventSerializer) (shared.DomainEvent, error) {
	return s.Deserialize(e.Type, e.Payload)
}

// Message is a broker-neutral outgoing message
type Message struct {
	// Key orders messages of one aggregate (Kafka partition key)
	Key     string
	Type    string
	Body    []byte
	Headers map[string]string
}

// ToMessage encodes the envelope as a broker message keyed by aggregate id
func (e *Envelope) ToMessage() (Message, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return Message{}, fmt.Errorf("failed to marshal envelope: %w", err)
	}
	return Message{
		Key:  e.AggregateID.String(),
		Type: e.Type,
		Body: body,
		Headers: map[string]string{
			"event_id":      e.ID.String(),
			"event_type":    e.Type,
			"restaurant_id": e.RestaurantID.String(),
			"content_type":  "application/json",
		},
	}, nil
}
