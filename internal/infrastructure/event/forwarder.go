package event

import (
	"context"
	"fmt"

	"github.com/qrdine/backend/internal/domain/ordering"
	"github.com/qrdine/backend/internal/domain/shared"
	"github.com/qrdine/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// BrokerPublisher sends messages to an external broker
type BrokerPublisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// BrokerForwarder relays order events from the in-process bus to a broker so
// that other systems (printers, displays, analytics) can follow the kitchen.
type BrokerForwarder struct {
	publisher  BrokerPublisher
	serializer *EventSerializer
	logger     *zap.Logger
}

// NewBrokerForwarder creates a forwarder. The serializer must know the order events.
func NewBrokerForwarder(publisher BrokerPublisher, serializer *EventSerializer, logger *zap.Logger) *BrokerForwarder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BrokerForwarder{
		publisher:  publisher,
		serializer: serializer,
		logger:     logger.Named("broker_forwarder"),
	}
}

// EventTypes implements shared.EventHandler
func (f *BrokerForwarder) EventTypes() []string {
	return ordering.OrderEventTypes()
}

// Handle implements shared.EventHandler
func (f *BrokerForwarder) Handle(ctx context.Context, e shared.DomainEvent) error {
	env, err := NewEnvelope(f.serializer, e)
	if err != nil {
		return err
	}
	msg, err := env.ToMessage()
	if err != nil {
		return err
	}
	if err := f.publisher.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to forward %s: %w", e.EventType(), err)
	}
	f.logger.Debug("event forwarded",
		zap.String("event_type", e.EventType()),
		zap.String("aggregate_id", env.AggregateID.String()),
	)
	return nil
}

var _ shared.EventHandler = (*BrokerForwarder)(nil)

// NewBrokerPublisher connects the publisher selected by cfg.Broker.
// The memory broker has no external publisher and returns nil.
func NewBrokerPublisher(cfg config.EventConfig, logger *zap.Logger) (BrokerPublisher, error) {
	switch cfg.Broker {
	case config.BrokerMemory, "":
		return nil, nil
	case config.BrokerRabbitMQ:
		return NewRabbitMQPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange, logger)
	case config.BrokerKafka:
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger), nil
	default:
		return nil, fmt.Errorf("unknown event broker %q", cfg.Broker)
	}
}
