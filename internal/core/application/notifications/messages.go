// Package notifications turns committed status events into messages for
// websocket observers and external mirrors.
package notifications

import (
	"time"

	"baggage/internal/core/domain/model/baggage"
	"baggage/internal/core/domain/model/kernel"
)

// GeneralTopic receives every status change of every bag.
const GeneralTopic = "notifications:general"

// Message types pushed to observers.
const (
	TypeBaggageUpdate = "baggage_update"
	TypeNotification  = "notification"
)

// BaggageTopic is the topic observers of one bag subscribe to.
func BaggageTopic(id kernel.UUID) string {
	return "baggage:" + id.String()
}

// StatusChange is the flat payload describing one appended event.
type StatusChange struct {
	BaggageID     string    `json:"baggage_id"`
	TrackingCode  string    `json:"tracking_code"`
	Status        string    `json:"status"`
	StatusDisplay string    `json:"status_display"`
	Timestamp     time.Time `json:"timestamp"`
	ActorName     string    `json:"actor_name"`
	Notes         string    `json:"notes"`
	Location      string    `json:"location"`
}

// Envelope wraps a payload with its message type.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

func NewStatusChange(event *baggage.StatusEvent, item *baggage.Baggage, actorName string) StatusChange {
	return StatusChange{
		BaggageID:     item.ID().String(),
		TrackingCode:  item.TrackingCode().String(),
		Status:        event.Status().String(),
		StatusDisplay: event.Status().Display(),
		Timestamp:     event.Timestamp(),
		ActorName:     actorName,
		Notes:         event.Notes(),
		Location:      event.Location(),
	}
}
