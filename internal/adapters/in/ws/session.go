package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"baggage/internal/adapters/out/pubsub"

	"github.com/gorilla/websocket"
)

// session owns one connection. Only the write pump writes to conn; the read
// loop and request handlers hand their replies over through replies.
type session struct {
	conn    *websocket.Conn
	sub     *pubsub.Subscriber
	broker  Broker
	replies chan any
	done    chan struct{}
	once    sync.Once
	opts    Options
	h       *Handler
}

func (h *Handler) newSession(conn *websocket.Conn, sub *pubsub.Subscriber) *session {
	sub.Touch(time.Now())
	return &session{
		conn:    conn,
		sub:     sub,
		broker:  h.broker,
		replies: make(chan any, h.opts.ReplyBuffer),
		done:    make(chan struct{}),
		opts:    h.opts,
		h:       h,
	}
}

// reply queues a frame for the client. It gives up once the session is over.
func (s *session) reply(frame any) {
	select {
	case s.replies <- frame:
	case <-s.done:
	}
}

// run writes greeting, then blocks until the client goes away or the hub
// drops the subscriber. greeting goes out before the write pump starts, so it
// precedes anything already queued on the subscriber.
func (s *session) run(ctx context.Context, greeting any, onMessage func(clientMessage)) {
	defer s.close()

	payload, err := json.Marshal(greeting)
	if err != nil {
		s.h.logger.ErrorContext(ctx, "encode frame", "error", err)
		return
	}
	if err = s.write(websocket.TextMessage, payload); err != nil {
		return
	}
	go s.writePump()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(s.opts.PongWait))
	s.conn.SetPongHandler(func(string) error {
		now := time.Now()
		s.sub.Touch(now)
		return s.conn.SetReadDeadline(now.Add(s.opts.PongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				s.h.logger.DebugContext(ctx, "connection lost", "topic", s.sub.Topic(), "error", err)
			}
			return
		}

		now := time.Now()
		s.sub.Touch(now)
		_ = s.conn.SetReadDeadline(now.Add(s.opts.PongWait))

		var msg clientMessage
		if err = json.Unmarshal(data, &msg); err != nil {
			s.reply(errorFrame(msgInvalidJSON))
			continue
		}
		onMessage(msg)
	}
}

func (s *session) writePump() {
	ticker := time.NewTicker(s.opts.pingPeriod())
	defer func() {
		ticker.Stop()
		s.close()
	}()

	for {
		select {
		case payload, ok := <-s.sub.Messages():
			if !ok {
				// Evicted or unsubscribed.
				s.writeClose(websocket.CloseTryAgainLater, "subscriber dropped")
				return
			}
			if err := s.write(websocket.TextMessage, payload); err != nil {
				return
			}
		case frame := <-s.replies:
			payload, err := json.Marshal(frame)
			if err != nil {
				s.h.logger.Error("encode frame", "error", err)
				continue
			}
			if err = s.write(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			if err := s.write(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.done:
			s.writeClose(websocket.CloseNormalClosure, "")
			return
		}
	}
}

func (s *session) write(messageType int, payload []byte) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(s.opts.WriteWait))
	return s.conn.WriteMessage(messageType, payload)
}

func (s *session) writeClose(code int, text string) {
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, text), time.Now().Add(s.opts.WriteWait))
}

// close is safe to call from both pumps.
func (s *session) close() {
	s.once.Do(func() {
		close(s.done)
		s.broker.Unsubscribe(s.sub)
		_ = s.conn.Close()
	})
}
