package sensors

import (
	"context"
	"errors"

	"github.com/markusressel/hydro2go/internal/atlas"
	"github.com/markusressel/hydro2go/internal/configuration"
	"github.com/markusressel/hydro2go/internal/ui"
)

type AtlasBus = atlas.Bus

// AtlasSensor reads a pH or EC circuit. EC values are reported as PPM.
type AtlasSensor struct {
	Config    configuration.SensorConfig `json:"configuration"`
	MovingAvg float64                    `json:"movingAvg"`

	probe *atlas.Probe
}

func NewAtlasSensor(config configuration.SensorConfig, bus AtlasBus) *AtlasSensor {
	return &AtlasSensor{
		Config: config,
		probe:  atlas.NewProbe(bus, byte(config.Atlas.Address)),
	}
}

func (sensor *AtlasSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *AtlasSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor *AtlasSensor) GetValue(ctx context.Context) (float64, error) {
	value, err := sensor.read(ctx)
	if err != nil {
		if errors.Is(err, atlas.ErrSyntax) || ctx.Err() != nil {
			return 0, err
		}
		return 0, noValue(sensor.GetId(), err)
	}

	if sensor.Config.Kind == configuration.SensorKindEc {
		value = value * sensor.ppmFactor()
	}
	return value, nil
}

func (sensor *AtlasSensor) read(ctx context.Context) (float64, error) {
	temperatureSensorId := sensor.Config.Atlas.TemperatureSensor
	if len(temperatureSensorId) <= 0 {
		return sensor.probe.ReadValue(ctx)
	}

	temperatureSensor, ok := SensorMap.Get(temperatureSensorId)
	if !ok {
		return sensor.probe.ReadValue(ctx)
	}
	celsius, err := temperatureSensor.GetValue(ctx)
	if err != nil {
		ui.Warning("sensor %s: temperature compensation unavailable: %v", sensor.GetId(), err)
		return sensor.probe.ReadValue(ctx)
	}
	return sensor.probe.ReadCompensated(ctx, celsius)
}

func (sensor *AtlasSensor) ppmFactor() float64 {
	if sensor.Config.Atlas.PpmFactor > 0 {
		return sensor.Config.Atlas.PpmFactor
	}
	return atlas.DefaultPpmFactor
}

func (sensor *AtlasSensor) GetMovingAvg() (avg float64) {
	return sensor.MovingAvg
}

func (sensor *AtlasSensor) SetMovingAvg(avg float64) {
	sensor.MovingAvg = avg
}
