package cmd

import (
	"context"
	"errors"
	"log/slog"

	httpadapter "baggage/internal/adapters/in/http"
	"baggage/internal/adapters/in/ws"
	"baggage/internal/adapters/out/kafka"
	"baggage/internal/adapters/out/postgres"
	"baggage/internal/adapters/out/postgres/actorrepo"
	"baggage/internal/adapters/out/pubsub"
	"baggage/internal/core/application/notifications"
	"baggage/internal/core/application/usecases/commands"
	"baggage/internal/core/application/usecases/queries"
	"baggage/internal/core/domain/services"
	"baggage/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	authority  services.StatusAuthority
	logger     *slog.Logger

	hub      *pubsub.Hub
	kafka    *kafka.Publisher
	notifier *notifications.FanOut
	// nil when TRACKING_CACHE_SIZE is 0
	trackingCodes *queries.TrackingCodeCache
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	policy, err := services.ParseTransitionPolicy(configs.StatusTransitionPolicy)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		authority:  services.NewStatusAuthority(policy),
		logger:     logger,
		hub:        pubsub.NewHub(configs.WSSendBuffer, logger),
	}
	if configs.TrackingCacheSize > 0 {
		c.trackingCodes = queries.NewTrackingCodeCache(configs.TrackingCacheSize, configs.TrackingCacheTTL)
	}

	sinks := []notifications.Sink{{Name: "hub", Publisher: c.hub}}
	if configs.KafkaEnabled() {
		c.kafka = kafka.NewPublisher(configs.KafkaBrokers, configs.KafkaTopic, logger)
		sinks = append(sinks, notifications.Sink{Name: "kafka", Publisher: c.kafka})
	}
	c.notifier = notifications.NewFanOut(logger, sinks...)

	logger.Info("composition root ready",
		"transition_policy", policy.Name(),
		"kafka_mirror", configs.KafkaEnabled(),
	)
	return c, nil
}

func (c *CompositionRoot) CreateCreateBaggageCommandHandler() commands.CreateBaggageCommandHandler {
	var f commands.BaggageUoWFactory = FuncBaggageUoWFactory(func() commands.BaggageUoW {
		return c.uowFactory.CreateGorm()
	})
	return commands.NewCreateBaggageCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateRecordStatusCommandHandler() commands.RecordStatusCommandHandler {
	var f commands.TimelineUoWFactory = FuncTimelineUoWFactory(func() commands.TimelineUoW {
		return c.uowFactory.CreateGorm()
	})
	return commands.NewRecordStatusCommandHandler(f, c.authority, c.notifier)
}

func (c *CompositionRoot) CreateRegisterActorCommandHandler() commands.RegisterActorCommandHandler {
	var f commands.ActorUoWFactory = FuncActorUoWFactory(func() commands.ActorUoW {
		return c.uowFactory.CreateGorm()
	})
	return commands.NewRegisterActorCommandHandler(f)
}

func (c *CompositionRoot) CreateListBaggageQueryHandler() queries.ListBaggageQueryHandler {
	return queries.NewListBaggageQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBaggageQueryHandler() queries.GetBaggageQueryHandler {
	return queries.NewGetBaggageQueryHandler(c.gormDB, c.trackingCodes)
}

func (c *CompositionRoot) CreateGetTimelineQueryHandler() queries.GetTimelineQueryHandler {
	return queries.NewGetTimelineQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStatusCountsQueryHandler() queries.GetStatusCountsQueryHandler {
	return queries.NewGetStatusCountsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDashboardStatsQueryHandler() queries.GetDashboardStatsQueryHandler {
	return queries.NewGetDashboardStatsQueryHandler(c.gormDB)
}

// CreateActorReader reads actor profiles outside any transaction.
func (c *CompositionRoot) CreateActorReader() *actorrepo.GormActorRepository {
	return actorrepo.NewGormActorRepository(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.hub, c.configs.WSIdleTimeout, c.CreateGetStatusCountsQueryHandler(), c.logger)
}

// CreateAuthenticator prefers the JWKS endpoint when one is configured.
// Keys are refreshed in the background until ctx is cancelled.
func (c *CompositionRoot) CreateAuthenticator(ctx context.Context) (*httpadapter.Authenticator, error) {
	if c.configs.JWTJWKSURL != "" {
		return httpadapter.NewJWKSAuthenticator(ctx, c.configs.JWTJWKSURL, c.configs.JWTIssuer, c.logger)
	}
	return httpadapter.NewHMACAuthenticator([]byte(c.configs.JWTSecret), c.configs.JWTIssuer, c.logger), nil
}

func (c *CompositionRoot) CreateRouter(ctx context.Context) (*echo.Echo, error) {
	auth, err := c.CreateAuthenticator(ctx)
	if err != nil {
		return nil, err
	}
	spec, err := httpadapter.LoadSpec()
	if err != nil {
		return nil, err
	}

	actors := c.CreateActorReader()
	getBaggage := c.CreateGetBaggageQueryHandler()

	server := httpadapter.NewServer(
		c.CreateCreateBaggageCommandHandler(),
		c.CreateRecordStatusCommandHandler(),
		c.CreateListBaggageQueryHandler(),
		getBaggage,
		c.CreateGetTimelineQueryHandler(),
		c.CreateGetDashboardStatsQueryHandler(),
		actors,
		c.logger,
	)
	// Pongs must arrive well inside the idle window swept by the jobs.
	wsHandler := ws.NewHandler(c.hub, getBaggage, auth, actors, ws.Options{PongWait: c.configs.WSIdleTimeout / 2}, c.logger)

	return httpadapter.NewRouter(httpadapter.RouterConfig{
		Server:        server,
		Authenticator: auth,
		Spec:          spec,
		Logger:        c.logger,
		Extra:         wsHandler.Register,
	})
}

// Close drops all websocket subscribers and flushes the kafka mirror.
func (c *CompositionRoot) Close() error {
	c.hub.Close()
	var err error
	if c.kafka != nil {
		err = c.kafka.Close()
	}
	if sqlDB, dbErr := c.gormDB.DB(); dbErr == nil {
		err = errors.Join(err, sqlDB.Close())
	}
	return err
}

type FuncBaggageUoWFactory func() commands.BaggageUoW

func (f FuncBaggageUoWFactory) Create() commands.BaggageUoW {
	return f()
}

type FuncTimelineUoWFactory func() commands.TimelineUoW

func (f FuncTimelineUoWFactory) Create() commands.TimelineUoW {
	return f()
}

type FuncActorUoWFactory func() commands.ActorUoW

func (f FuncActorUoWFactory) Create() commands.ActorUoW {
	return f()
}
