package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/hydro2go/internal/configuration"
	"github.com/markusressel/hydro2go/internal/pumps"
	"github.com/markusressel/hydro2go/internal/util"
	"github.com/qdm12/reprint"
)

type pumpResponse struct {
	Id         string                   `json:"id"`
	State      pumps.State              `json:"state"`
	Reversible bool                     `json:"reversible"`
	Config     configuration.PumpConfig `json:"config"`
}

func registerPumpEndpoints(rest *echo.Echo) {
	group := rest.Group("/pump")

	group.GET("/", getPumps)
	group.GET("/:"+urlParamId+"/", getPump)
}

func newPumpResponse(pump pumps.Pump) pumpResponse {
	return pumpResponse{
		Id:         pump.GetId(),
		State:      pump.GetState(),
		Reversible: pump.Supports(pumps.FeatureReverse),
		Config:     reprint.This(pump.GetConfig()).(configuration.PumpConfig),
	}
}

// returns a list of all currently configured pumps
func getPumps(c echo.Context) error {
	items := pumps.PumpMap.Items()
	var data []pumpResponse
	for _, id := range util.SortedKeys(items) {
		data = append(data, newPumpResponse(items[id]))
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getPump(c echo.Context) error {
	id := c.Param(urlParamId)
	pump, exists := pumps.PumpMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	} else {
		return c.JSONPretty(http.StatusOK, newPumpResponse(pump), indentationChar)
	}
}
