package baggagerepo

import (
	"context"
	"errors"

	"baggage/internal/adapters/out/postgres/pgerr"
	"baggage/internal/core/domain/model/baggage"
	"baggage/internal/core/domain/model/kernel"
	"baggage/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const resourceName = "baggage"

// GormBaggageRepository implements ports.BaggageRepository using GORM.
type GormBaggageRepository struct {
	db *gorm.DB
}

func NewGormBaggageRepository(db *gorm.DB) *GormBaggageRepository {
	return &GormBaggageRepository{db: db}
}

// Add saves a new bag.
func (r *GormBaggageRepository) Add(ctx context.Context, aggregate *baggage.Baggage) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Classify(err, resourceName)
	}
	return nil
}

// Get retrieves a bag by ID.
func (r *GormBaggageRepository) Get(ctx context.Context, id kernel.UUID) (*baggage.Baggage, error) {
	return r.first(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves a bag with SELECT ... FOR UPDATE.
func (r *GormBaggageRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*baggage.Baggage, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// GetByTrackingCode retrieves a bag by its tracking code.
func (r *GormBaggageRepository) GetByTrackingCode(
	ctx context.Context,
	code kernel.TrackingCode,
) (*baggage.Baggage, error) {
	if err := code.Validate(); err != nil {
		return nil, err
	}

	var dto BaggageDTO
	if err := r.db.WithContext(ctx).First(&dto, "tracking_code = ?", code.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tracking code", code.String())
		}
		return nil, pgerr.Classify(err, resourceName)
	}

	return toDomain(dto)
}

// UpdateStatus writes current_status and updated_at only.
func (r *GormBaggageRepository) UpdateStatus(ctx context.Context, aggregate *baggage.Baggage) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&BaggageDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		UpdateColumns(map[string]any{
			"current_status": aggregate.Status().String(),
			"updated_at":     aggregate.UpdatedAt(),
		})
	if result.Error != nil {
		return pgerr.Classify(result.Error, resourceName)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(resourceName, aggregate.ID().String())
	}
	return nil
}

func (r *GormBaggageRepository) first(db *gorm.DB, id kernel.UUID) (*baggage.Baggage, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BaggageDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(resourceName, id.String())
		}
		return nil, pgerr.Classify(err, resourceName)
	}

	return toDomain(dto)
}
