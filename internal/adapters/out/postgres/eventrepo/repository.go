package eventrepo

import (
	"context"
	"errors"

	"baggage/internal/adapters/out/postgres/pgerr"
	"baggage/internal/core/domain/model/baggage"
	"baggage/internal/core/domain/model/kernel"
	"baggage/internal/pkg/errs"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const resourceName = "status event"

// Default PostgreSQL name of the actor_id foreign key on status_events.
const actorForeignKey = "status_events_actor_id_fkey"

// GormStatusEventRepository implements ports.StatusEventRepository using GORM.
type GormStatusEventRepository struct {
	db *gorm.DB
}

func NewGormStatusEventRepository(db *gorm.DB) *GormStatusEventRepository {
	return &GormStatusEventRepository{db: db}
}

// Add inserts an event. A missing parent bag or actor profile surfaces as
// object-not-found on that parent.
func (r *GormStatusEventRepository) Add(ctx context.Context, event *baggage.StatusEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return missingParent(event, pgErr.ConstraintName, err)
		}
		return pgerr.Classify(err, resourceName)
	}
	return nil
}

// ListByBaggage returns events ordered by timestamp then seq.
func (r *GormStatusEventRepository) ListByBaggage(
	ctx context.Context,
	baggageID kernel.UUID,
) ([]*baggage.StatusEvent, error) {
	if err := baggageID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StatusEventDTO
	if err := r.db.WithContext(ctx).
		Where("baggage_id = ?", baggageID.Bytes()).
		Order(`"timestamp" ASC, seq ASC`).
		Find(&dtos).Error; err != nil {
		return nil, pgerr.Classify(err, resourceName)
	}

	events := make([]*baggage.StatusEvent, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func missingParent(event *baggage.StatusEvent, constraint string, cause error) error {
	if constraint == actorForeignKey && event.ActorID() != nil {
		return errs.NewObjectNotFoundErrorWithCause("actor profile", event.ActorID().String(), cause)
	}
	return errs.NewObjectNotFoundErrorWithCause("baggage", event.BaggageID().String(), cause)
}
