package http

import (
	"time"

	"baggage/internal/core/application/usecases/queries"
	"baggage/internal/core/domain/model/baggage"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

type NewBaggageRequest struct {
	PassengerName  string `json:"passenger_name"`
	PassengerEmail string `json:"passenger_email"`
	FlightNumber   string `json:"flight_number"`
	Destination    string `json:"destination"`
}

type NewStatusUpdateRequest struct {
	Status   string `json:"status"`
	Notes    string `json:"notes"`
	Location string `json:"location"`
}

type StatusUpdateResponse struct {
	ID            string    `json:"id"`
	Status        string    `json:"status"`
	StatusDisplay string    `json:"status_display"`
	Timestamp     time.Time `json:"timestamp"`
	UpdatedBy     *string   `json:"updated_by"`
	UpdatedByName string    `json:"updated_by_name"`
	Notes         string    `json:"notes"`
	Location      string    `json:"location"`
}

type BaggageResponse struct {
	ID                   string                 `json:"id"`
	PassengerName        string                 `json:"passenger_name"`
	PassengerEmail       string                 `json:"passenger_email"`
	FlightNumber         string                 `json:"flight_number"`
	Destination          string                 `json:"destination"`
	QRCode               string                 `json:"qr_code"`
	CurrentStatus        string                 `json:"current_status"`
	CurrentStatusDisplay string                 `json:"current_status_display"`
	CreatedAt            time.Time              `json:"created_at"`
	UpdatedAt            time.Time              `json:"updated_at"`
	StatusTimeline       []StatusUpdateResponse `json:"status_timeline"`
}

type CreateBaggageResponse struct {
	Message string          `json:"message"`
	Baggage BaggageResponse `json:"baggage"`
}

type UpdateStatusResponse struct {
	Message      string               `json:"message"`
	Baggage      BaggageResponse      `json:"baggage"`
	StatusUpdate StatusUpdateResponse `json:"status_update"`
}

type TimelineResponse struct {
	BaggageID     string                 `json:"baggage_id"`
	QRCode        string                 `json:"qr_code"`
	PassengerName string                 `json:"passenger_name"`
	CurrentStatus string                 `json:"current_status"`
	Timeline      []StatusUpdateResponse `json:"timeline"`
}

type StatusCountResponse struct {
	Count   int64  `json:"count"`
	Display string `json:"display"`
}

type DashboardStatsResponse struct {
	TotalBaggage  int64                          `json:"total_baggage"`
	StatusCounts  map[string]StatusCountResponse `json:"status_counts"`
	RecentUpdates []StatusUpdateResponse         `json:"recent_updates"`
}

func toStatusUpdateResponse(e queries.StatusEventView) StatusUpdateResponse {
	resp := StatusUpdateResponse{
		ID:            e.ID.String(),
		Status:        e.Status.String(),
		StatusDisplay: e.Status.Display(),
		Timestamp:     e.Timestamp,
		UpdatedByName: e.ActorName,
		Notes:         e.Notes,
		Location:      e.Location,
	}
	if e.ActorID != nil {
		id := e.ActorID.String()
		resp.UpdatedBy = &id
	}
	return resp
}

func toStatusUpdateResponses(events []queries.StatusEventView) []StatusUpdateResponse {
	out := make([]StatusUpdateResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toStatusUpdateResponse(e))
	}
	return out
}

func toBaggageResponse(v queries.BaggageView) BaggageResponse {
	return BaggageResponse{
		ID:                   v.ID.String(),
		PassengerName:        v.PassengerName,
		PassengerEmail:       v.PassengerEmail,
		FlightNumber:         v.FlightNumber,
		Destination:          v.Destination,
		QRCode:               v.TrackingCode,
		CurrentStatus:        v.Status.String(),
		CurrentStatusDisplay: v.Status.Display(),
		CreatedAt:            v.CreatedAt,
		UpdatedAt:            v.UpdatedAt,
		StatusTimeline:       toStatusUpdateResponses(v.Timeline),
	}
}

// eventView adapts a freshly appended event to the read model.
func eventView(e *baggage.StatusEvent, actorName string) queries.StatusEventView {
	return queries.StatusEventView{
		ID:        e.ID(),
		BaggageID: e.BaggageID(),
		Status:    e.Status(),
		Timestamp: e.Timestamp(),
		ActorID:   e.ActorID(),
		ActorName: actorName,
		Notes:     e.Notes(),
		Location:  e.Location(),
	}
}

func toTimelineResponse(v queries.TimelineView) TimelineResponse {
	return TimelineResponse{
		BaggageID:     v.BaggageID.String(),
		QRCode:        v.TrackingCode,
		PassengerName: v.PassengerName,
		CurrentStatus: v.CurrentStatus.String(),
		Timeline:      toStatusUpdateResponses(v.Timeline),
	}
}

func toDashboardStatsResponse(s queries.DashboardStats) DashboardStatsResponse {
	counts := make(map[string]StatusCountResponse, len(s.StatusCounts))
	for _, c := range s.StatusCounts {
		counts[c.Status.String()] = StatusCountResponse{Count: c.Count, Display: c.Status.Display()}
	}
	return DashboardStatsResponse{
		TotalBaggage:  s.TotalBaggage,
		StatusCounts:  counts,
		RecentUpdates: toStatusUpdateResponses(s.RecentUpdates),
	}
}
