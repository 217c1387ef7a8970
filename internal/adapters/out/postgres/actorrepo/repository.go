package actorrepo

import (
	"context"
	"errors"

	"baggage/internal/adapters/out/postgres/pgerr"
	"baggage/internal/core/domain/model/actor"
	"baggage/internal/core/domain/model/kernel"
	"baggage/internal/pkg/errs"

	"gorm.io/gorm"
)

const resourceName = "actor profile"

// GormActorRepository implements ports.ActorRepository using GORM.
type GormActorRepository struct {
	db *gorm.DB
}

func NewGormActorRepository(db *gorm.DB) *GormActorRepository {
	return &GormActorRepository{db: db}
}

func (r *GormActorRepository) Add(ctx context.Context, aggregate *actor.Actor) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Classify(err, resourceName)
	}
	return nil
}

func (r *GormActorRepository) Get(ctx context.Context, id kernel.UUID) (*actor.Actor, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ActorDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(resourceName, id.String())
		}
		return nil, pgerr.Classify(err, resourceName)
	}

	return toDomain(dto)
}
