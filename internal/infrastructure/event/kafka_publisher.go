package event

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	kafkaBatchTimeout = 5 * time.Millisecond
	kafkaWriteTimeout = 5 * time.Second
)

// KafkaPublisher writes messages to a single topic. Messages are keyed by
// aggregate id so the events of one order stay on one partition.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewKafkaPublisher creates a publisher. Connections are opened lazily on the first write.
func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			// Publish runs inside the request, one message per call, so each
			// write is its own batch instead of waiting out the 1s default.
			BatchSize:    1,
			BatchTimeout: kafkaBatchTimeout,
			WriteTimeout: kafkaWriteTimeout,
		},
		logger: logger,
	}
}

// Publish writes one message synchronously
func (p *KafkaPublisher) Publish(ctx context.Context, msg Message) error {
	if err := p.writer.WriteMessages(ctx, kafkaMessage(msg)); err != nil {
		return fmt.Errorf("failed to write to kafka topic %s: %w", p.writer.Topic, err)
	}
	return nil
}

// Close flushes pending writes and closes the writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func kafkaMessage(msg Message) kafka.Message {
	headers := make([]kafka.Header, 0, len(msg.Headers))
	for k, v := range msg.Headers {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}
	return kafka.Message{
		Key:     []byte(msg.Key),
		Value:   msg.Body,
		Headers: headers,
	}
}
