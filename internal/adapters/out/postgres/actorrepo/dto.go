// Package actorrepo persists actor profiles with GORM.
package actorrepo

import (
	"time"

	"baggage/internal/core/domain/model/actor"
	"baggage/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type ActorDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string    `gorm:"size:150;not null;uniqueIndex"`
	Role      string    `gorm:"size:20;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
}

func (ActorDTO) TableName() string {
	return "actor_profiles"
}

func fromDomain(aggregate *actor.Actor) ActorDTO {
	return ActorDTO{
		ID:        aggregate.ID().Bytes(),
		Username:  aggregate.Username(),
		Role:      aggregate.Role().String(),
		CreatedAt: aggregate.CreatedAt(),
	}
}

func toDomain(dto ActorDTO) (*actor.Actor, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	role, err := actor.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}

	return actor.RestoreActor(id, dto.Username, role, dto.CreatedAt)
}
