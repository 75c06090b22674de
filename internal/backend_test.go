package internal

import (
	"testing"

	"github.com/markusressel/hydro2go/internal/configuration"
	"github.com/markusressel/hydro2go/internal/pumps"
	"github.com/markusressel/hydro2go/internal/sensors"
	"github.com/stretchr/testify/assert"
)

func TestInitializeObjects(t *testing.T) {
	// GIVEN
	config := configuration.Configuration{
		Sensors: []configuration.SensorConfig{
			{ID: "backend_temp", Kind: configuration.SensorKindTemp, File: &configuration.FileSensorConfig{Path: "/tmp/temp", Scale: 0.001}},
			{ID: "backend_water", Kind: configuration.SensorKindWaterRaw, Cmd: &configuration.CmdSensorConfig{Exec: "/usr/bin/adc"}},
		},
		Pumps: []configuration.PumpConfig{
			{ID: "backend_fill", Direction: configuration.PumpDirectionNormal, Speed: 1, Relay: &configuration.RelayPumpConfig{Path: "/tmp/gpio"}},
		},
	}
	defer func() {
		sensors.SensorMap.Remove("backend_temp")
		sensors.SensorMap.Remove("backend_water")
		pumps.PumpMap.Remove("backend_fill")
	}()

	// WHEN
	objects, err := InitializeObjects(config)

	// THEN
	assert.NoError(t, err)
	defer objects.Close()
	assert.Len(t, objects.Sensors, 2)
	assert.Len(t, objects.Pumps, 1)
	assert.True(t, sensors.SensorMap.Has("backend_temp"))
	assert.True(t, pumps.PumpMap.Has("backend_fill"))
}

func TestInitializeObjects_InvalidPump(t *testing.T) {
	// GIVEN
	config := configuration.Configuration{
		Pumps: []configuration.PumpConfig{
			{ID: "backend_broken", Direction: configuration.PumpDirectionNormal, Speed: 1},
		},
	}

	// WHEN
	_, err := InitializeObjects(config)

	// THEN
	assert.EqualError(t, err, "unable to process pump configuration backend_broken: no matching pump type for pump: backend_broken")
}

func TestNeedsI2cBus(t *testing.T) {
	// GIVEN
	withAtlas := configuration.Configuration{
		Sensors: []configuration.SensorConfig{
			{ID: "ph", Kind: configuration.SensorKindPh, Atlas: &configuration.AtlasSensorConfig{Address: 99}},
		},
	}
	withoutAtlas := configuration.Configuration{
		Sensors: []configuration.SensorConfig{
			{ID: "temp", Kind: configuration.SensorKindTemp, File: &configuration.FileSensorConfig{Path: "/tmp/temp"}},
		},
	}

	// WHEN
	resultWith := needsI2cBus(withAtlas)
	resultWithout := needsI2cBus(withoutAtlas)

	// THEN
	assert.True(t, resultWith)
	assert.False(t, resultWithout)
}
