package baggagerepo_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	postgres_adapter "baggage/internal/adapters/out/postgres"
	"baggage/internal/adapters/out/postgres/baggagerepo"
	"baggage/internal/core/domain/model/baggage"
	"baggage/internal/core/domain/model/kernel"
	"baggage/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type BaggageRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *baggagerepo.GormBaggageRepository
}

func (suite *BaggageRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	suite.Require().NoError(postgres_adapter.Migrate(connStr, slog.New(slog.DiscardHandler)))

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *BaggageRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE status_events, baggage").Error)
	suite.repository = baggagerepo.NewGormBaggageRepository(suite.db)
}

func (suite *BaggageRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *BaggageRepositoryIntegrationTestSuite) TestAdd_ThenGetByIDAndCode() {
	ctx := context.Background()
	original := suite.createTestBaggage("Ann Lee", "ann@example.com", "BA117", "London")

	suite.Require().NoError(suite.repository.Add(ctx, original))

	byID, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)
	byCode, err := suite.repository.GetByTrackingCode(ctx, original.TrackingCode())
	suite.Require().NoError(err)

	for _, got := range []*baggage.Baggage{byID, byCode} {
		suite.True(got.IsEqual(original))
		suite.Equal(original.TrackingCode(), got.TrackingCode())
		suite.Equal("Ann Lee", got.Registration().PassengerName())
		suite.Equal("ann@example.com", got.Registration().PassengerEmail())
		suite.Equal("BA117", got.Registration().FlightNumber())
		suite.Equal("London", got.Registration().Destination())
		suite.Equal(baggage.CheckedIn, got.Status())
		suite.True(original.CreatedAt().Equal(got.CreatedAt()))
	}
}

func (suite *BaggageRepositoryIntegrationTestSuite) TestAdd_OptionalFieldsStoredAsNull() {
	ctx := context.Background()
	original := suite.createTestBaggage("Bo", "", "", "")

	suite.Require().NoError(suite.repository.Add(ctx, original))

	var nulls int64
	suite.Require().NoError(suite.db.Raw(
		"SELECT count(*) FROM baggage WHERE passenger_email IS NULL AND flight_number IS NULL AND destination IS NULL",
	).Scan(&nulls).Error)
	suite.Equal(int64(1), nulls)

	got, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)
	suite.Empty(got.Registration().PassengerEmail())
}

func (suite *BaggageRepositoryIntegrationTestSuite) TestAdd_DuplicateIsConflict() {
	ctx := context.Background()
	original := suite.createTestBaggage("Ann Lee", "", "", "")
	suite.Require().NoError(suite.repository.Add(ctx, original))

	err := suite.repository.Add(ctx, original)

	suite.Require().ErrorIs(err, errs.ErrConflict)
	suite.assertBaggageCount(1)
}

func (suite *BaggageRepositoryIntegrationTestSuite) TestAdd_InvalidAggregate() {
	var invalid baggage.Baggage

	err := suite.repository.Add(context.Background(), &invalid)

	suite.Require().ErrorIs(err, baggage.ErrBaggageIsNotConstructed)
	suite.assertBaggageCount(0)
}

func (suite *BaggageRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	got, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(got)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *BaggageRepositoryIntegrationTestSuite) TestGetByTrackingCode_IsCaseSensitive() {
	ctx := context.Background()
	original := suite.createTestBaggage("Ann Lee", "", "", "")
	suite.Require().NoError(suite.repository.Add(ctx, original))

	other, err := kernel.RestoreTrackingCode("BAG-FFFFFFFF")
	suite.Require().NoError(err)
	if other.IsEqual(original.TrackingCode()) {
		suite.T().Skip("generated id collides with probe code")
	}

	_, err = suite.repository.GetByTrackingCode(ctx, other)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	var lower int64
	suite.Require().NoError(suite.db.Raw(
		"SELECT count(*) FROM baggage WHERE tracking_code = lower(?)", original.TrackingCode().String(),
	).Scan(&lower).Error)
	suite.Equal(int64(0), lower, "lower-case code must not match")
}

func (suite *BaggageRepositoryIntegrationTestSuite) TestUpdateStatus_WritesOnlyStatusColumns() {
	ctx := context.Background()
	original := suite.createTestBaggage("Ann Lee", "ann@example.com", "", "")
	suite.Require().NoError(suite.repository.Add(ctx, original))

	at := original.CreatedAt().Add(5 * time.Minute)
	_, err := original.RecordStatus(kernel.NewUUID(), baggage.Loaded, nil, "", "", at)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.UpdateStatus(ctx, original))

	got, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)
	suite.Equal(baggage.Loaded, got.Status())
	suite.True(at.Equal(got.UpdatedAt()))
	suite.True(original.CreatedAt().Equal(got.CreatedAt()))
	suite.Equal("ann@example.com", got.Registration().PassengerEmail())
}

func (suite *BaggageRepositoryIntegrationTestSuite) TestUpdateStatus_MissingRowIsNotFound() {
	missing := suite.createTestBaggage("Ann Lee", "", "", "")

	err := suite.repository.UpdateStatus(context.Background(), missing)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *BaggageRepositoryIntegrationTestSuite) TestGetForUpdate_InsideTransaction() {
	ctx := context.Background()
	original := suite.createTestBaggage("Ann Lee", "", "", "")
	suite.Require().NoError(suite.repository.Add(ctx, original))

	err := suite.db.Transaction(func(tx *gorm.DB) error {
		got, lockErr := baggagerepo.NewGormBaggageRepository(tx).GetForUpdate(ctx, original.ID())
		if lockErr != nil {
			return lockErr
		}
		suite.True(got.IsEqual(original))
		return nil
	})

	suite.Require().NoError(err)
}

func (suite *BaggageRepositoryIntegrationTestSuite) createTestBaggage(name, email, flight, destination string) *baggage.Baggage {
	r, err := baggage.NewRegistration(name, email, flight, destination)
	suite.Require().NoError(err)
	b, err := baggage.NewBaggage(kernel.NewUUID(), r, time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	return b
}

func (suite *BaggageRepositoryIntegrationTestSuite) assertBaggageCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&baggagerepo.BaggageDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestBaggageRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(BaggageRepositoryIntegrationTestSuite))
}
