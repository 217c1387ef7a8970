// Package baggagerepo persists the baggage aggregate with GORM.
package baggagerepo

import (
	"time"

	"baggage/internal/core/domain/model/baggage"
	"baggage/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BaggageDTO maps the baggage table. Optional registration fields are NULL when empty.
type BaggageDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrackingCode   string    `gorm:"size:12;not null;uniqueIndex"`
	PassengerName  string    `gorm:"size:200;not null"`
	PassengerEmail *string   `gorm:"size:254"`
	FlightNumber   *string   `gorm:"size:20"`
	Destination    *string   `gorm:"size:100"`
	CurrentStatus  string    `gorm:"size:20;not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime:false"`
}

func (BaggageDTO) TableName() string {
	return "baggage"
}

func fromDomain(aggregate *baggage.Baggage) BaggageDTO {
	r := aggregate.Registration()
	return BaggageDTO{
		ID:             aggregate.ID().Bytes(),
		TrackingCode:   aggregate.TrackingCode().String(),
		PassengerName:  r.PassengerName(),
		PassengerEmail: nullable(r.PassengerEmail()),
		FlightNumber:   nullable(r.FlightNumber()),
		Destination:    nullable(r.Destination()),
		CurrentStatus:  aggregate.Status().String(),
		CreatedAt:      aggregate.CreatedAt(),
		UpdatedAt:      aggregate.UpdatedAt(),
	}
}

func toDomain(dto BaggageDTO) (*baggage.Baggage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	code, err := kernel.RestoreTrackingCode(dto.TrackingCode)
	if err != nil {
		return nil, err
	}

	registration, err := baggage.NewRegistration(
		dto.PassengerName,
		deref(dto.PassengerEmail),
		deref(dto.FlightNumber),
		deref(dto.Destination),
	)
	if err != nil {
		return nil, err
	}

	status, err := baggage.ParseStatus(dto.CurrentStatus)
	if err != nil {
		return nil, err
	}

	return baggage.RestoreBaggage(id, code, registration, status, dto.CreatedAt, dto.UpdatedAt)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
