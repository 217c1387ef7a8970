package http

import (
	"context"
	"log/slog"
	"net/http"

	"baggage/internal/core/application/usecases/commands"
	"baggage/internal/core/application/usecases/queries"
	"baggage/internal/core/domain/model/actor"
	"baggage/internal/core/domain/model/baggage"
	"baggage/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	serviceName    = "Smart Baggage Tracker API"
	serviceVersion = "1.0.0"
)

// Use case ports of the server. The command and query handlers satisfy them.
type (
	CreateBaggageHandler interface {
		Handle(ctx context.Context, cmd commands.CreateBaggageCommand) (*baggage.Baggage, error)
	}

	RecordStatusHandler interface {
		Handle(ctx context.Context, cmd commands.RecordStatusCommand) (commands.RecordStatusResult, error)
	}

	ListBaggageHandler interface {
		Handle(ctx context.Context, query queries.ListBaggageQuery) ([]queries.BaggageView, error)
	}

	GetBaggageHandler interface {
		Handle(ctx context.Context, query queries.GetBaggageQuery) (queries.BaggageView, error)
	}

	GetTimelineHandler interface {
		Handle(ctx context.Context, query queries.GetTimelineQuery) (queries.TimelineView, error)
	}

	GetDashboardStatsHandler interface {
		Handle(ctx context.Context, query queries.GetDashboardStatsQuery) (queries.DashboardStats, error)
	}

	ActorReader interface {
		Get(ctx context.Context, id kernel.UUID) (*actor.Actor, error)
	}
)

// Server implements ServerInterface on top of the application use cases.
type Server struct {
	// Command handlers
	createBaggageHandler CreateBaggageHandler
	recordStatusHandler  RecordStatusHandler

	// Query handlers
	listBaggageHandler       ListBaggageHandler
	getBaggageHandler        GetBaggageHandler
	getTimelineHandler       GetTimelineHandler
	getDashboardStatsHandler GetDashboardStatsHandler

	actors ActorReader
	logger *slog.Logger
}

func NewServer(
	createBaggageHandler CreateBaggageHandler,
	recordStatusHandler RecordStatusHandler,
	listBaggageHandler ListBaggageHandler,
	getBaggageHandler GetBaggageHandler,
	getTimelineHandler GetTimelineHandler,
	getDashboardStatsHandler GetDashboardStatsHandler,
	actors ActorReader,
	logger *slog.Logger,
) *Server {
	return &Server{
		createBaggageHandler:     createBaggageHandler,
		recordStatusHandler:      recordStatusHandler,
		listBaggageHandler:       listBaggageHandler,
		getBaggageHandler:        getBaggageHandler,
		getTimelineHandler:       getTimelineHandler,
		getDashboardStatsHandler: getDashboardStatsHandler,
		actors:                   actors,
		logger:                   logger.With("component", "http_server"),
	}
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: serviceName,
		Version: serviceVersion,
	})
}

// ListBaggage handles GET /api/v1/baggage.
func (s *Server) ListBaggage(ctx echo.Context) error {
	views, err := s.listBaggageHandler.Handle(ctx.Request().Context(), queries.NewListBaggageQuery())
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	resp := make([]BaggageResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, toBaggageResponse(v))
	}
	return ctx.JSON(http.StatusOK, resp)
}

// CreateBaggage handles POST /api/v1/baggage.
func (s *Server) CreateBaggage(ctx echo.Context) error {
	var req NewBaggageRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	cmd, err := commands.NewCreateBaggageCommand(
		kernel.NewUUID(),
		req.PassengerName,
		req.PassengerEmail,
		req.FlightNumber,
		req.Destination,
	)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	bag, err := s.createBaggageHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	view, err := s.baggageView(ctx.Request().Context(), bag.ID())
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusCreated, CreateBaggageResponse{
		Message: "Baggage created successfully",
		Baggage: toBaggageResponse(view),
	})
}

// GetBaggage handles GET /api/v1/baggage/{id}.
func (s *Server) GetBaggage(ctx echo.Context, id openapi_types.UUID) error {
	baggageID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	view, err := s.baggageView(ctx.Request().Context(), baggageID)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, toBaggageResponse(view))
}

// GetBaggageByCode handles GET /api/v1/baggage/qr/{code}.
func (s *Server) GetBaggageByCode(ctx echo.Context, code string) error {
	query, err := queries.NewGetBaggageByTrackingCodeQuery(code)
	if err != nil {
		return ctx.JSON(http.StatusNotFound, ErrorResponse{Error: msgBaggageNotFound})
	}

	view, err := s.getBaggageHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, toBaggageResponse(view))
}

// UpdateBaggageStatus handles POST /api/v1/baggage/{id}/update.
func (s *Server) UpdateBaggageStatus(ctx echo.Context, id openapi_types.UUID) error {
	actorID, ok := ActorIDFromContext(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication credentials were not provided."})
	}

	var req NewStatusUpdateRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	baggageID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	cmd, err := commands.NewRecordStatusCommand(baggageID, actorID, req.Status, req.Notes, req.Location)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	res, err := s.recordStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	view, err := s.baggageView(ctx.Request().Context(), baggageID)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, UpdateStatusResponse{
		Message:      "Status updated successfully",
		Baggage:      toBaggageResponse(view),
		StatusUpdate: toStatusUpdateResponse(eventView(res.Event, res.ActorName)),
	})
}

// GetBaggageTimeline handles GET /api/v1/baggage/{id}/timeline.
func (s *Server) GetBaggageTimeline(ctx echo.Context, id openapi_types.UUID) error {
	baggageID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	query, err := queries.NewGetTimelineQuery(baggageID)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	view, err := s.getTimelineHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, toTimelineResponse(view))
}

// GetDashboardStats handles GET /api/v1/staff/dashboard/stats.
func (s *Server) GetDashboardStats(ctx echo.Context) error {
	actorID, ok := ActorIDFromContext(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication credentials were not provided."})
	}

	a, err := s.actors.Get(ctx.Request().Context(), actorID)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	if !a.IsStaffMember() {
		return ctx.JSON(http.StatusForbidden, ErrorResponse{Error: msgPermissionDenied})
	}

	stats, err := s.getDashboardStatsHandler.Handle(ctx.Request().Context(), queries.NewGetDashboardStatsQuery())
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, toDashboardStatsResponse(stats))
}

func (s *Server) baggageView(ctx context.Context, id kernel.UUID) (queries.BaggageView, error) {
	query, err := queries.NewGetBaggageByIDQuery(id)
	if err != nil {
		return queries.BaggageView{}, err
	}
	return s.getBaggageHandler.Handle(ctx, query)
}
