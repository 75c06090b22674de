package api

import (
	"errors"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
)

func registerTelemetryEndpoints(rest *echo.Echo, backend Backend) {
	rest.GET("/telemetry/", func(c echo.Context) error {
		data := backend.Telemetry.Latest()
		return c.JSONPretty(http.StatusOK, data, indentationChar)
	})
	rest.GET("/log/", func(c echo.Context) error {
		data := backend.Telemetry.Logs()
		return c.JSONPretty(http.StatusOK, data, indentationChar)
	})
	rest.GET("/statistics/", func(c echo.Context) error {
		data := backend.Statistics.Snapshot()
		return c.JSONPretty(http.StatusOK, data, indentationChar)
	})
}

func registerStateEndpoints(rest *echo.Echo, backend Backend) {
	rest.GET("/state/", func(c echo.Context) error {
		if backend.State == nil {
			return returnNotFound(c, "state")
		}
		state, err := backend.State.Read()
		if errors.Is(err, os.ErrNotExist) {
			return returnNotFound(c, "state")
		}
		if err != nil {
			return returnError(c, err)
		}
		return c.JSONPretty(http.StatusOK, reprint.This(state), indentationChar)
	})
}
