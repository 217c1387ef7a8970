// Package pubsub is the in-process topic registry that websocket
// connections subscribe to.
package pubsub

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"baggage/internal/metrics"
)

// DefaultBuffer is the per-subscriber queue length used when none is configured.
const DefaultBuffer = 16

// Subscriber is one consumer of one topic. Messages arrive on Messages();
// the channel is closed when the subscriber leaves the hub, either through
// Unsubscribe or because the hub evicted it.
type Subscriber struct {
	id       uint64
	topic    string
	send     chan []byte
	lastSeen atomic.Int64
	evicted  atomic.Bool
}

func (s *Subscriber) Topic() string {
	return s.topic
}

func (s *Subscriber) Messages() <-chan []byte {
	return s.send
}

// Touch records that the peer showed a sign of life.
func (s *Subscriber) Touch(at time.Time) {
	s.lastSeen.Store(at.UnixNano())
}

func (s *Subscriber) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load()).UTC()
}

// Evicted reports whether the hub dropped the subscriber rather than the
// subscriber leaving on its own.
func (s *Subscriber) Evicted() bool {
	return s.evicted.Load()
}

// Hub fans messages out to subscribers grouped by topic.
//
// Publish never blocks: every subscriber has a bounded queue and a subscriber
// whose queue is full is evicted. Closing its channel lets the connection
// owner notice and hang up.
//
// Example:
//
//	hub := pubsub.NewHub(16, logger)
//	sub := hub.Subscribe("baggage:" + id)
//	defer hub.Unsubscribe(sub)
//
//	for msg := range sub.Messages() {
//	    conn.WriteMessage(websocket.TextMessage, msg)
//	}
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[uint64]*Subscriber
	nextID uint64
	buffer int
	count  int
	logger *slog.Logger
}

func NewHub(buffer int, logger *slog.Logger) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		topics: make(map[string]map[uint64]*Subscriber),
		buffer: buffer,
		logger: logger.With("component", "pubsub-hub"),
	}
}

func (h *Hub) Subscribe(topic string) *Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	sub := &Subscriber{
		id:    h.nextID,
		topic: topic,
		send:  make(chan []byte, h.buffer),
	}
	sub.Touch(time.Now())

	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[uint64]*Subscriber)
		h.topics[topic] = subs
	}
	subs[sub.id] = sub
	h.count++
	metrics.ActiveSubscribers.Inc()

	return sub
}

// Unsubscribe is idempotent.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(sub)
}

// Publish queues payload for every subscriber of topic. It returns nil even
// when some subscribers had to be evicted.
func (h *Hub) Publish(ctx context.Context, topic string, payload []byte) error {
	var slow []*Subscriber

	h.mu.RLock()
	for _, sub := range h.topics[topic] {
		select {
		case sub.send <- payload:
		default:
			slow = append(slow, sub)
		}
	}
	h.mu.RUnlock()

	if len(slow) == 0 {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range slow {
		if h.evictLocked(sub) {
			metrics.SubscribersEvictedTotal.WithLabelValues(metrics.EvictSlowConsumer).Inc()
			h.logger.WarnContext(ctx, "evicted slow subscriber", "topic", topic, "subscriber", sub.id)
		}
	}
	return nil
}

// SweepIdle evicts subscribers that have not been touched since cutoff and
// returns how many were removed.
func (h *Hub) SweepIdle(cutoff time.Time) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	removed := 0
	for _, subs := range h.topics {
		for _, sub := range subs {
			if sub.LastSeen().Before(cutoff) && h.evictLocked(sub) {
				removed++
			}
		}
	}
	if removed > 0 {
		metrics.SubscribersEvictedTotal.WithLabelValues(metrics.EvictIdle).Add(float64(removed))
	}
	return removed
}

// Count returns the number of subscribers across all topics.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

func (h *Hub) CountTopic(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Close removes every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, subs := range h.topics {
		for _, sub := range subs {
			h.removeLocked(sub)
		}
	}
}

func (h *Hub) evictLocked(sub *Subscriber) bool {
	if !h.containsLocked(sub) {
		return false
	}
	sub.evicted.Store(true)
	return h.removeLocked(sub)
}

func (h *Hub) containsLocked(sub *Subscriber) bool {
	_, ok := h.topics[sub.topic][sub.id]
	return ok
}

// removeLocked closes the subscriber's channel. Publishers only send while
// holding the read lock, so no send can race with the close.
func (h *Hub) removeLocked(sub *Subscriber) bool {
	if !h.containsLocked(sub) {
		return false
	}

	subs := h.topics[sub.topic]
	delete(subs, sub.id)
	if len(subs) == 0 {
		delete(h.topics, sub.topic)
	}
	close(sub.send)
	h.count--
	metrics.ActiveSubscribers.Dec()
	return true
}
