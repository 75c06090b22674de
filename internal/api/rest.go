package api

import (
	"net/http"
	"sync"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/markusressel/hydro2go/internal/controller"
	"github.com/markusressel/hydro2go/internal/persistence"
	"github.com/markusressel/hydro2go/internal/telemetry"
)

const (
	urlParamId      = "id"
	indentationChar = "  "

	metricsSubsystem = "api"
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

// Backend holds the daemon objects exposed by the REST service
type Backend struct {
	Telemetry  *telemetry.Hub
	State      *persistence.StateStore
	Statistics *controller.Statistics
}

var (
	metricsMiddleware     echo.MiddlewareFunc
	metricsMiddlewareOnce sync.Once
)

// request metrics are registered globally, so the middleware must only be created once per process
func requestMetrics() echo.MiddlewareFunc {
	metricsMiddlewareOnce.Do(func() {
		metricsMiddleware = echoprometheus.NewMiddleware(metricsSubsystem)
	})
	return metricsMiddleware
}

func CreateRestService(backend Backend) *echo.Echo {
	echoRest := echo.New()
	echoRest.HideBanner = true

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.Secure())
	echoRest.Use(middleware.Recover())
	echoRest.Use(requestMetrics())

	echoRest.GET("/alive/", isAlive)

	registerTelemetryEndpoints(echoRest, backend)
	registerStateEndpoints(echoRest, backend)
	registerPumpEndpoints(echoRest)
	registerSensorEndpoints(echoRest)

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// return a "not found" message
func returnNotFound(c echo.Context, id string) (err error) {
	return c.JSONPretty(http.StatusNotFound, &Result{
		Name:    "Not found",
		Message: "No item with id '" + id + "' found",
	}, indentationChar)
}

// return the error message of an error
func returnError(c echo.Context, e error) (err error) {
	return c.JSONPretty(http.StatusInternalServerError, &Result{
		Name:    "Unknown Error",
		Message: e.Error(),
	}, indentationChar)
}
