package supervisor

import (
	"context"
	"fmt"

	"github.com/markusressel/hydro2go/internal/calibration"
	"github.com/markusressel/hydro2go/internal/configuration"
	"github.com/markusressel/hydro2go/internal/controller"
	"github.com/markusressel/hydro2go/internal/pumps"
	"github.com/markusressel/hydro2go/internal/sensors"
	"github.com/markusressel/hydro2go/internal/telemetry"
)

// Reservoir bundles the sensors and pumps of one nutrient tank and turns
// averaged sensor reads into physical quantities
type Reservoir struct {
	Profile  configuration.PlantProfile
	Sampling configuration.SamplingConfig

	WaterLevelSensor sensors.Sensor
	EcSensor         sensors.Sensor
	PhSensor         sensors.Sensor
	// optional
	TemperatureSensor sensors.Sensor

	FillPump pumps.Pump
	PhPumps  controller.PumpPair
	Plan     controller.DosingPlan

	Estimator *calibration.Estimator
	Telemetry *telemetry.Hub
}

// NewReservoir resolves the roles of the reservoir configuration from the SensorMap and PumpMap
func NewReservoir(config configuration.Configuration, hub *telemetry.Hub) (*Reservoir, error) {
	roles := config.Reservoir

	sensorByRole := func(id string) (sensors.Sensor, error) {
		sensor, ok := sensors.SensorMap.Get(id)
		if !ok {
			return nil, fmt.Errorf("reservoir: no sensor with id found: %s", id)
		}
		return sensor, nil
	}

	waterLevel, err := sensorByRole(roles.WaterLevelSensor)
	if err != nil {
		return nil, err
	}
	ec, err := sensorByRole(roles.EcSensor)
	if err != nil {
		return nil, err
	}
	ph, err := sensorByRole(roles.PhSensor)
	if err != nil {
		return nil, err
	}
	var temperature sensors.Sensor
	if len(roles.TemperatureSensor) > 0 {
		temperature, err = sensorByRole(roles.TemperatureSensor)
		if err != nil {
			return nil, err
		}
	}

	rolePumps, err := pumps.GetPumps(roles.FillPump, roles.PhUpPump, roles.PhDownPump)
	if err != nil {
		return nil, fmt.Errorf("reservoir: %w", err)
	}
	plan, err := controller.NewDosingPlan(config.Profile.DosingPlan)
	if err != nil {
		return nil, err
	}

	return &Reservoir{
		Profile:           config.Profile,
		Sampling:          config.Sampling,
		WaterLevelSensor:  waterLevel,
		EcSensor:          ec,
		PhSensor:          ph,
		TemperatureSensor: temperature,
		FillPump:          rolePumps[0],
		PhPumps:           controller.PumpPair{Up: rolePumps[1], Down: rolePumps[2]},
		Plan:              plan,
		Estimator:         calibration.NewEstimator(),
		Telemetry:         hub,
	}, nil
}

// Pumps returns every pump of the reservoir once
func (r *Reservoir) Pumps() []pumps.Pump {
	return uniquePumps(append([]pumps.Pump{r.FillPump, r.PhPumps.Up, r.PhPumps.Down}, r.Plan.Pumps()...))
}

// DosingPumps returns the pumps attached to a dosing line, the fill pump excluded
func (r *Reservoir) DosingPumps() []pumps.Pump {
	return uniquePumps(append(r.Plan.Pumps(), r.PhPumps.Up, r.PhPumps.Down))
}

func uniquePumps(list []pumps.Pump) []pumps.Pump {
	seen := map[string]bool{}
	var result []pumps.Pump
	for _, pump := range list {
		if pump == nil || seen[pump.GetId()] {
			continue
		}
		seen[pump.GetId()] = true
		result = append(result, pump)
	}
	return result
}

// MeasureRawWater returns the averaged, uncalibrated reading of the water level sensor
func (r *Reservoir) MeasureRawWater(ctx context.Context) (float64, error) {
	return sensors.SampleSensor(ctx, r.WaterLevelSensor, r.Sampling)
}

// MeasureLevel returns the water level in inches
func (r *Reservoir) MeasureLevel(ctx context.Context) (float64, error) {
	raw, err := r.MeasureRawWater(ctx)
	if err != nil {
		return 0, err
	}
	level, err := r.Estimator.Estimate(raw)
	if err != nil {
		return 0, err
	}
	r.Telemetry.SetWaterLevel(level)
	return level, nil
}

func (r *Reservoir) MeasurePpm(ctx context.Context) (float64, error) {
	ppm, err := sensors.SampleSensor(ctx, r.EcSensor, r.Sampling)
	if err != nil {
		return 0, err
	}
	r.Telemetry.SetPpm(ppm)
	return ppm, nil
}

func (r *Reservoir) MeasurePh(ctx context.Context) (float64, error) {
	ph, err := sensors.SampleSensor(ctx, r.PhSensor, r.Sampling)
	if err != nil {
		return 0, err
	}
	r.Telemetry.SetPh(ph)
	return ph, nil
}

// MeasureTemperature is a no-op without a temperature sensor
func (r *Reservoir) MeasureTemperature(ctx context.Context) (float64, error) {
	if r.TemperatureSensor == nil {
		return 0, nil
	}
	temperature, err := sensors.SampleSensor(ctx, r.TemperatureSensor, r.Sampling)
	if err != nil {
		return 0, err
	}
	r.Telemetry.SetTemperature(temperature)
	return temperature, nil
}
