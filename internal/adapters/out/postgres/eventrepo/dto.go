// Package eventrepo persists status events with GORM. The table is append-only.
package eventrepo

import (
	"time"

	"baggage/internal/core/domain/model/baggage"
	"baggage/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// StatusEventDTO maps the status_events table. Seq is assigned by the
// database on insert and orders events that share a timestamp.
type StatusEventDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Seq       int64      `gorm:"->"`
	BaggageID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status    string     `gorm:"size:20;not null"`
	Timestamp time.Time  `gorm:"not null"`
	ActorID   *uuid.UUID `gorm:"type:uuid"`
	Notes     *string
	Location  *string `gorm:"size:100"`
}

func (StatusEventDTO) TableName() string {
	return "status_events"
}

func fromDomain(event *baggage.StatusEvent) StatusEventDTO {
	var actorID *uuid.UUID
	if id := event.ActorID(); id != nil {
		raw := id.Bytes()
		actorID = &raw
	}

	return StatusEventDTO{
		ID:        event.ID().Bytes(),
		BaggageID: event.BaggageID().Bytes(),
		Status:    event.Status().String(),
		Timestamp: event.Timestamp(),
		ActorID:   actorID,
		Notes:     nullable(event.Notes()),
		Location:  nullable(event.Location()),
	}
}

func toDomain(dto StatusEventDTO) (*baggage.StatusEvent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	baggageID, err := kernel.UUIDFromBytes(dto.BaggageID[:])
	if err != nil {
		return nil, err
	}

	var actorID *kernel.UUID
	if dto.ActorID != nil {
		aID, actorErr := kernel.UUIDFromBytes((*dto.ActorID)[:])
		if actorErr != nil {
			return nil, actorErr
		}
		actorID = &aID
	}

	status, err := baggage.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var notes, location string
	if dto.Notes != nil {
		notes = *dto.Notes
	}
	if dto.Location != nil {
		location = *dto.Location
	}

	return baggage.RestoreStatusEvent(id, baggageID, status, dto.Timestamp, actorID, notes, location)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
