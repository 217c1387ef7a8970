package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage transaction lifecycle:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//	...
//	return uow.Commit(ctx)
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction, e.g. after a successful Commit.
	Rollback(ctx context.Context) error

	// BaggageRepository returns a repository bound to the current transaction.
	BaggageRepository() BaggageRepository

	// StatusEventRepository returns a repository bound to the current transaction.
	StatusEventRepository() StatusEventRepository

	// ActorRepository returns a repository bound to the current transaction.
	ActorRepository() ActorRepository
}
