// Package kafka mirrors hub notifications to a Kafka topic for consumers
// outside this process.
package kafka

import (
	"context"
	"log/slog"
	"time"

	"baggage/internal/metrics"

	"github.com/segmentio/kafka-go"
)

// TopicHeader carries the hub topic a message was published to. Kafka topic
// names cannot contain ':' so every hub topic shares one Kafka topic and the
// hub topic travels in the key and this header.
const TopicHeader = "hub-topic"

const sinkName = "kafka"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes every publish as one Kafka message keyed by hub topic, so
// messages for one bag stay ordered within a partition.
type Publisher struct {
	writer messageWriter
	logger *slog.Logger
}

// NewPublisher creates an asynchronous writer. Delivery errors are reported
// through the writer's completion callback, logged and counted.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) *Publisher {
	logger = logger.With("component", "kafka-publisher", "topic", topic)

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err == nil {
				return
			}
			metrics.PublishFailuresTotal.WithLabelValues(sinkName).Add(float64(len(messages)))
			logger.Error("failed to deliver messages", "count", len(messages), "error", err)
		},
	}

	return newPublisher(writer, logger)
}

func newPublisher(writer messageWriter, logger *slog.Logger) *Publisher {
	return &Publisher{writer: writer, logger: logger}
}

func (p *Publisher) Publish(ctx context.Context, topic string, payload []byte) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(topic),
		Value: payload,
		Headers: []kafka.Header{
			{Key: TopicHeader, Value: []byte(topic)},
		},
	})
}

// Close flushes pending messages.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
