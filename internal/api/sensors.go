package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/hydro2go/internal/configuration"
	"github.com/markusressel/hydro2go/internal/sensors"
	"github.com/markusressel/hydro2go/internal/util"
	"github.com/qdm12/reprint"
)

type sensorResponse struct {
	Id        string                     `json:"id"`
	Kind      string                     `json:"kind"`
	MovingAvg float64                    `json:"movingAvg"`
	Config    configuration.SensorConfig `json:"config"`
}

func registerSensorEndpoints(rest *echo.Echo) {
	group := rest.Group("/sensor")

	group.GET("/", getSensors)
	group.GET("/:"+urlParamId+"/", getSensor)
}

func newSensorResponse(sensor sensors.Sensor) sensorResponse {
	config := reprint.This(sensor.GetConfig()).(configuration.SensorConfig)
	return sensorResponse{
		Id:        sensor.GetId(),
		Kind:      config.Kind,
		MovingAvg: sensor.GetMovingAvg(),
		Config:    config,
	}
}

func getSensors(c echo.Context) error {
	items := sensors.SensorMap.Items()
	var data []sensorResponse
	for _, id := range util.SortedKeys(items) {
		data = append(data, newSensorResponse(items[id]))
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getSensor(c echo.Context) error {
	id := c.Param(urlParamId)

	sensor, exists := sensors.SensorMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	} else {
		return c.JSONPretty(http.StatusOK, newSensorResponse(sensor), indentationChar)
	}
}
