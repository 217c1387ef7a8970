package notifications

import (
	"context"
	"encoding/json"
	"log/slog"

	"baggage/internal/core/domain/model/baggage"
	"baggage/internal/core/ports"
	"baggage/internal/metrics"
)

// Sink is a named publish target.
type Sink struct {
	Name      string
	Publisher ports.Publisher
}

// FanOut publishes every committed status event to the bag's topic and to
// the general topic on each sink. A failing sink is logged and counted; it
// never affects the other sinks or the caller.
//
// Example:
//
//	fanOut := notifications.NewFanOut(logger,
//	    notifications.Sink{Name: "hub", Publisher: hub},
//	    notifications.Sink{Name: "kafka", Publisher: kafkaPublisher},
//	)
//	handler := commands.NewRecordStatusCommandHandler(uowFactory, authority, fanOut)
type FanOut struct {
	sinks  []Sink
	logger *slog.Logger
}

func NewFanOut(logger *slog.Logger, sinks ...Sink) *FanOut {
	return &FanOut{
		sinks:  sinks,
		logger: logger.With("component", "notification-fan-out"),
	}
}

func (f *FanOut) OnStatusAppended(
	ctx context.Context,
	event *baggage.StatusEvent,
	item *baggage.Baggage,
	actorName string,
) {
	metrics.StatusEventsRecordedTotal.WithLabelValues(event.Status().String()).Inc()

	change := NewStatusChange(event, item, actorName)
	messages := []struct {
		topic string
		env   Envelope
	}{
		{topic: BaggageTopic(item.ID()), env: Envelope{Type: TypeBaggageUpdate, Data: change}},
		{topic: GeneralTopic, env: Envelope{Type: TypeNotification, Data: change}},
	}

	for _, m := range messages {
		payload, err := json.Marshal(m.env)
		if err != nil {
			f.logger.ErrorContext(ctx, "failed to encode notification", "topic", m.topic, "error", err)
			continue
		}

		for _, sink := range f.sinks {
			if err = sink.Publisher.Publish(ctx, m.topic, payload); err != nil {
				metrics.PublishFailuresTotal.WithLabelValues(sink.Name).Inc()
				f.logger.ErrorContext(ctx, "failed to publish notification",
					"sink", sink.Name,
					"topic", m.topic,
					"baggage_id", change.BaggageID,
					"error", err,
				)
			}
		}
	}

	f.logger.DebugContext(ctx, "status change published",
		"baggage_id", change.BaggageID,
		"status", change.Status,
		"actor", actorName,
	)
}
