package ws

import (
	"encoding/json"
	"time"

	"baggage/internal/core/application/usecases/queries"
)

// Frame types exchanged with clients.
const (
	typeConnectionEstablished = "connection_established"
	typeStatusUpdate          = "status_update"
	typeAuthenticated         = "authenticated"
	typeAuthenticationFailed  = "authentication_failed"
	typePong                  = "pong"
	typeError                 = "error"

	typeGetStatus    = "get_status"
	typeAuthenticate = "authenticate"
	typePing         = "ping"
)

const (
	msgBaggageNotFound = "Baggage not found"
	msgInvalidJSON     = "Invalid JSON format"
	msgInvalidToken    = "Invalid token"
	msgWelcome         = "Connected to notification system"
)

// clientMessage is any frame a client sends. Fields not used by Type are
// ignored.
type clientMessage struct {
	Type      string          `json:"type"`
	Token     string          `json:"token,omitempty"`
	Timestamp json.RawMessage `json:"timestamp,omitempty"`
}

type baggageSnapshot struct {
	ID                   string    `json:"id"`
	QRCode               string    `json:"qr_code"`
	PassengerName        string    `json:"passenger_name"`
	FlightNumber         string    `json:"flight_number"`
	Destination          string    `json:"destination"`
	CurrentStatus        string    `json:"current_status"`
	CurrentStatusDisplay string    `json:"current_status_display"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func toSnapshot(v queries.BaggageView) *baggageSnapshot {
	return &baggageSnapshot{
		ID:                   v.ID.String(),
		QRCode:               v.TrackingCode,
		PassengerName:        v.PassengerName,
		FlightNumber:         v.FlightNumber,
		Destination:          v.Destination,
		CurrentStatus:        v.Status.String(),
		CurrentStatusDisplay: v.Status.Display(),
		CreatedAt:            v.CreatedAt,
		UpdatedAt:            v.UpdatedAt,
	}
}

type snapshotFrame struct {
	Type    string           `json:"type"`
	Baggage *baggageSnapshot `json:"baggage"`
}

type messageFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type authenticatedFrame struct {
	Type string `json:"type"`
	User string `json:"user"`
}

type pongFrame struct {
	Type      string          `json:"type"`
	Timestamp json.RawMessage `json:"timestamp"`
}

func errorFrame(message string) messageFrame {
	return messageFrame{Type: typeError, Message: message}
}
