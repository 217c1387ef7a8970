package kafka

import (
	"log/slog"

	"github.com/segmentio/kafka-go"
)

type MessageWriter = messageWriter

var _ MessageWriter = (*kafka.Writer)(nil)

func NewPublisherWithWriter(writer MessageWriter) *Publisher {
	return newPublisher(writer, slog.New(slog.DiscardHandler))
}
