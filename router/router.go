package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"cacau/pkg/middleware"
)

// Registrar is any controller that mounts its own routes.
type Registrar interface {
	Register(e *echo.Echo)
}

type Deps struct {
	Log         *zap.Logger
	CORSOrigins []string
	Metrics     http.Handler
	Health      interface{ Health(echo.Context) error }
	Controllers []Registrar
}

func New(e *echo.Echo, d Deps) *echo.Echo {
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS(d.CORSOrigins))
	e.Use(middleware.Logger(d.Log))

	e.GET("/health", d.Health.Health)
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics))
	}

	for _, c := range d.Controllers {
		c.Register(e)
	}
	return e
}
