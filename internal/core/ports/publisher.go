package ports

import "context"

// Publisher delivers an already encoded message to every subscriber of topic.
// Delivery is best effort: implementations must not block on slow subscribers.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}
