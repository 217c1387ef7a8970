package commands_test

import (
	"context"

	"baggage/internal/core/application/usecases/commands"
	"baggage/internal/core/domain/model/actor"
	"baggage/internal/core/domain/model/baggage"
	"baggage/internal/core/domain/model/kernel"
	"baggage/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockBaggageRepository struct{ mock.Mock }

func (m *MockBaggageRepository) Add(ctx context.Context, b *baggage.Baggage) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBaggageRepository) Get(ctx context.Context, id kernel.UUID) (*baggage.Baggage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*baggage.Baggage), args.Error(1)
}

func (m *MockBaggageRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*baggage.Baggage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*baggage.Baggage), args.Error(1)
}

func (m *MockBaggageRepository) GetByTrackingCode(ctx context.Context, code kernel.TrackingCode) (*baggage.Baggage, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*baggage.Baggage), args.Error(1)
}

func (m *MockBaggageRepository) UpdateStatus(ctx context.Context, b *baggage.Baggage) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

type MockStatusEventRepository struct{ mock.Mock }

func (m *MockStatusEventRepository) Add(ctx context.Context, e *baggage.StatusEvent) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockStatusEventRepository) ListByBaggage(ctx context.Context, id kernel.UUID) ([]*baggage.StatusEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*baggage.StatusEvent), args.Error(1)
}

type MockActorRepository struct{ mock.Mock }

func (m *MockActorRepository) Add(ctx context.Context, a *actor.Actor) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockActorRepository) Get(ctx context.Context, id kernel.UUID) (*actor.Actor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*actor.Actor), args.Error(1)
}

// MockUoW satisfies every unit of work interface the handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) BaggageRepository() ports.BaggageRepository {
	args := m.Called()
	return args.Get(0).(ports.BaggageRepository)
}

func (m *MockUoW) StatusEventRepository() ports.StatusEventRepository {
	args := m.Called()
	return args.Get(0).(ports.StatusEventRepository)
}

func (m *MockUoW) ActorRepository() ports.ActorRepository {
	args := m.Called()
	return args.Get(0).(ports.ActorRepository)
}

type MockBaggageUoWFactory struct{ mock.Mock }

func (m *MockBaggageUoWFactory) Create() commands.BaggageUoW {
	args := m.Called()
	return args.Get(0).(commands.BaggageUoW)
}

type MockTimelineUoWFactory struct{ mock.Mock }

func (m *MockTimelineUoWFactory) Create() commands.TimelineUoW {
	args := m.Called()
	return args.Get(0).(commands.TimelineUoW)
}

type MockActorUoWFactory struct{ mock.Mock }

func (m *MockActorUoWFactory) Create() commands.ActorUoW {
	args := m.Called()
	return args.Get(0).(commands.ActorUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) OnStatusAppended(ctx context.Context, e *baggage.StatusEvent, b *baggage.Baggage, actorName string) {
	m.Called(ctx, e, b, actorName)
}
