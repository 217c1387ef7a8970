package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface lists the operations of openapi.yaml.
type ServerInterface interface {
	// GET /health
	Health(ctx echo.Context) error
	// GET /api/v1/baggage
	ListBaggage(ctx echo.Context) error
	// POST /api/v1/baggage
	CreateBaggage(ctx echo.Context) error
	// GET /api/v1/baggage/{id}
	GetBaggage(ctx echo.Context, id openapi_types.UUID) error
	// GET /api/v1/baggage/qr/{code}
	GetBaggageByCode(ctx echo.Context, code string) error
	// POST /api/v1/baggage/{id}/update
	UpdateBaggageStatus(ctx echo.Context, id openapi_types.UUID) error
	// GET /api/v1/baggage/{id}/timeline
	GetBaggageTimeline(ctx echo.Context, id openapi_types.UUID) error
	// GET /api/v1/staff/dashboard/stats
	GetDashboardStats(ctx echo.Context) error
}

// serverInterfaceWrapper binds path parameters before calling the handler.
type serverInterfaceWrapper struct {
	handler ServerInterface
}

func (w *serverInterfaceWrapper) Health(ctx echo.Context) error {
	return w.handler.Health(ctx)
}

func (w *serverInterfaceWrapper) ListBaggage(ctx echo.Context) error {
	return w.handler.ListBaggage(ctx)
}

func (w *serverInterfaceWrapper) CreateBaggage(ctx echo.Context) error {
	return w.handler.CreateBaggage(ctx)
}

func (w *serverInterfaceWrapper) GetBaggage(ctx echo.Context) error {
	id, err := bindUUIDParam(ctx, "id")
	if err != nil {
		return err
	}
	return w.handler.GetBaggage(ctx, id)
}

func (w *serverInterfaceWrapper) GetBaggageByCode(ctx echo.Context) error {
	var code string
	if err := runtime.BindStyledParameterWithOptions("simple", "code", ctx.Param("code"), &code,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true},
	); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter code: "+err.Error())
	}
	return w.handler.GetBaggageByCode(ctx, code)
}

func (w *serverInterfaceWrapper) UpdateBaggageStatus(ctx echo.Context) error {
	id, err := bindUUIDParam(ctx, "id")
	if err != nil {
		return err
	}
	return w.handler.UpdateBaggageStatus(ctx, id)
}

func (w *serverInterfaceWrapper) GetBaggageTimeline(ctx echo.Context) error {
	id, err := bindUUIDParam(ctx, "id")
	if err != nil {
		return err
	}
	return w.handler.GetBaggageTimeline(ctx, id)
}

func (w *serverInterfaceWrapper) GetDashboardStats(ctx echo.Context) error {
	return w.handler.GetDashboardStats(ctx)
}

func bindUUIDParam(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	if err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true},
	); err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter "+name+": "+err.Error())
	}
	return id, nil
}

// RouteMiddlewares are applied per route, after any global middleware.
type RouteMiddlewares struct {
	Public        []echo.MiddlewareFunc
	Authenticated []echo.MiddlewareFunc
}

// RegisterHandlers mounts si on router.
func RegisterHandlers(router *echo.Echo, si ServerInterface, mw RouteMiddlewares) {
	w := &serverInterfaceWrapper{handler: si}

	router.GET("/health", w.Health, mw.Public...)
	router.GET("/api/v1/baggage/:id", w.GetBaggage, mw.Public...)
	router.GET("/api/v1/baggage/qr/:code", w.GetBaggageByCode, mw.Public...)

	router.GET("/api/v1/baggage", w.ListBaggage, mw.Authenticated...)
	router.POST("/api/v1/baggage", w.CreateBaggage, mw.Authenticated...)
	router.POST("/api/v1/baggage/:id/update", w.UpdateBaggageStatus, mw.Authenticated...)
	router.GET("/api/v1/baggage/:id/timeline", w.GetBaggageTimeline, mw.Authenticated...)
	router.GET("/api/v1/staff/dashboard/stats", w.GetDashboardStats, mw.Authenticated...)
}
