// Package ws serves the websocket push channel. A connection joins exactly
// one hub topic: the timeline of one bag or the general notification feed.
package ws

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"baggage/internal/adapters/out/pubsub"
	"baggage/internal/core/application/notifications"
	"baggage/internal/core/application/usecases/queries"
	"baggage/internal/core/domain/model/actor"
	"baggage/internal/core/domain/model/kernel"
	"baggage/internal/pkg/errs"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

type (
	Broker interface {
		Subscribe(topic string) *pubsub.Subscriber
		Unsubscribe(sub *pubsub.Subscriber)
	}

	BaggageReader interface {
		Handle(ctx context.Context, query queries.GetBaggageQuery) (queries.BaggageView, error)
	}

	TokenAuthenticator interface {
		Authenticate(token string) (kernel.UUID, error)
	}

	ActorReader interface {
		Get(ctx context.Context, id kernel.UUID) (*actor.Actor, error)
	}
)

// Options tune connection liveness. Zero values fall back to defaults.
type Options struct {
	PongWait       time.Duration
	WriteWait      time.Duration
	ReplyBuffer    int
	AllowedOrigins []string
}

const (
	defaultPongWait    = 60 * time.Second
	defaultWriteWait   = 10 * time.Second
	defaultReplyBuffer = 8
	maxMessageSize     = 4096
)

func (o Options) withDefaults() Options {
	if o.PongWait <= 0 {
		o.PongWait = defaultPongWait
	}
	if o.WriteWait <= 0 {
		o.WriteWait = defaultWriteWait
	}
	if o.ReplyBuffer <= 0 {
		o.ReplyBuffer = defaultReplyBuffer
	}
	return o
}

// pingPeriod must stay below PongWait so a healthy peer never times out.
func (o Options) pingPeriod() time.Duration {
	return o.PongWait * 9 / 10
}

type Handler struct {
	broker   Broker
	baggage  BaggageReader
	auth     TokenAuthenticator
	actors   ActorReader
	opts     Options
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewHandler(
	broker Broker,
	baggage BaggageReader,
	auth TokenAuthenticator,
	actors ActorReader,
	opts Options,
	logger *slog.Logger,
) *Handler {
	opts = opts.withDefaults()
	return &Handler{
		broker:  broker,
		baggage: baggage,
		auth:    auth,
		actors:  actors,
		opts:    opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(opts.AllowedOrigins),
		},
		logger: logger.With("component", "websocket"),
	}
}

// Register mounts the websocket endpoints on e.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/ws/baggage/:id", h.ServeBaggage)
	e.GET("/ws/notifications", h.ServeNotifications)
}

// ServeBaggage streams status changes of one bag. The first frame is the
// bag's current snapshot, or an error frame followed by a close when the bag
// does not exist. Changes committed while the snapshot is read may arrive
// after it even when the snapshot already reflects them.
func (h *Handler) ServeBaggage(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already replied to the client.
		h.logger.DebugContext(c.Request().Context(), "upgrade failed", "error", err)
		return nil
	}

	ctx := c.Request().Context()
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		h.reject(conn, msgBaggageNotFound)
		return nil
	}

	// Subscribe before reading, so an append committed in between is queued
	// on the subscriber rather than lost.
	sub := h.broker.Subscribe(notifications.BaggageTopic(id))
	snapshot, err := h.snapshot(ctx, id)
	if err != nil {
		h.broker.Unsubscribe(sub)
		if !isNotFound(err) {
			h.logger.ErrorContext(ctx, "load baggage snapshot", "baggage_id", id.String(), "error", err)
		}
		h.reject(conn, msgBaggageNotFound)
		return nil
	}

	s := h.newSession(conn, sub)
	s.run(ctx, snapshotFrame{Type: typeConnectionEstablished, Baggage: snapshot}, func(msg clientMessage) {
		switch msg.Type {
		case typeGetStatus:
			current, err := h.snapshot(ctx, id)
			if err != nil {
				s.reply(errorFrame(msgBaggageNotFound))
				return
			}
			s.reply(snapshotFrame{Type: typeStatusUpdate, Baggage: current})
		case typeAuthenticate:
			s.reply(h.authenticate(ctx, msg.Token))
		case typePing:
			s.reply(pongFrame{Type: typePong, Timestamp: msg.Timestamp})
		}
	})
	return nil
}

// ServeNotifications streams every status change of every bag.
func (h *Handler) ServeNotifications(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.DebugContext(c.Request().Context(), "upgrade failed", "error", err)
		return nil
	}

	sub := h.broker.Subscribe(notifications.GeneralTopic)
	s := h.newSession(conn, sub)
	s.run(c.Request().Context(), messageFrame{Type: typeConnectionEstablished, Message: msgWelcome}, func(msg clientMessage) {
		if msg.Type == typePing {
			s.reply(pongFrame{Type: typePong, Timestamp: msg.Timestamp})
		}
	})
	return nil
}

func (h *Handler) snapshot(ctx context.Context, id kernel.UUID) (*baggageSnapshot, error) {
	query, err := queries.NewGetBaggageByIDQuery(id)
	if err != nil {
		return nil, err
	}
	view, err := h.baggage.Handle(ctx, query)
	if err != nil {
		return nil, err
	}
	return toSnapshot(view), nil
}

func (h *Handler) authenticate(ctx context.Context, token string) any {
	if h.auth == nil {
		return messageFrame{Type: typeAuthenticationFailed, Message: msgInvalidToken}
	}
	actorID, err := h.auth.Authenticate(token)
	if err != nil {
		return messageFrame{Type: typeAuthenticationFailed, Message: msgInvalidToken}
	}
	a, err := h.actors.Get(ctx, actorID)
	if err != nil {
		if !isNotFound(err) {
			h.logger.ErrorContext(ctx, "load actor profile", "actor_id", actorID.String(), "error", err)
		}
		return messageFrame{Type: typeAuthenticationFailed, Message: msgInvalidToken}
	}
	return authenticatedFrame{Type: typeAuthenticated, User: a.Username()}
}

func (h *Handler) reject(conn *websocket.Conn, message string) {
	deadline := time.Now().Add(h.opts.WriteWait)
	_ = conn.SetWriteDeadline(deadline)
	if err := conn.WriteJSON(errorFrame(message)); err == nil {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, message), deadline)
	}
	_ = conn.Close()
}

func isNotFound(err error) bool {
	var notFound *errs.ObjectNotFoundError
	return errors.As(err, &notFound)
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
