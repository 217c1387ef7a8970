// Package postgres provides the GORM-based Unit of Work and the schema
// migrations of the baggage tracker.
//
// A status append writes two tables: it inserts into status_events and
// updates the parent row in baggage. Both writes go through repositories
// obtained from the same GormUnitOfWork so that they commit or roll back
// together:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	bag, err := uow.BaggageRepository().GetForUpdate(ctx, id)
//	...
//	if err = uow.StatusEventRepository().Add(ctx, event); err != nil {
//	    return err
//	}
//	if err = uow.BaggageRepository().UpdateStatus(ctx, bag); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides isolated transactions
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Row locks taken with GetForUpdate are held until Commit or Rollback
package postgres

import (
	"context"

	"baggage/internal/adapters/out/postgres/actorrepo"
	"baggage/internal/adapters/out/postgres/baggagerepo"
	"baggage/internal/adapters/out/postgres/eventrepo"
	"baggage/internal/adapters/out/postgres/pgerr"
	"baggage/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Factory ensures each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    return err
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork instance ready for business transaction management.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.CreateGorm()
}

// CreateGorm is Create returning the concrete type, so that callers can
// adapt it to narrower unit of work interfaces.
func (f *GormUnitOfWorkFactory) CreateGorm() *GormUnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction across the baggage,
// status event and actor repositories.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
// Cancelling ctx before Commit rolls the transaction back.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Serialization failures and deadlocks detected at commit surface as conflict errors.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return pgerr.Classify(err, "transaction")
}

// Rollback discards all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// BaggageRepository returns a repository bound to the active transaction,
// or to the plain connection when none is active.
func (uow *GormUnitOfWork) BaggageRepository() ports.BaggageRepository {
	return baggagerepo.NewGormBaggageRepository(uow.conn())
}

func (uow *GormUnitOfWork) StatusEventRepository() ports.StatusEventRepository {
	return eventrepo.NewGormStatusEventRepository(uow.conn())
}

func (uow *GormUnitOfWork) ActorRepository() ports.ActorRepository {
	return actorrepo.NewGormActorRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
