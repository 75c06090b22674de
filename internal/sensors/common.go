package sensors

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/markusressel/hydro2go/internal/configuration"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	SensorMap = cmap.New[Sensor]()

	// ErrNoValue marks a transient read failure that is worth retrying
	ErrNoValue = errors.New("sensor returned no value")
	// ErrInsufficientSamples is returned when a logical sample failed on every attempt
	ErrInsufficientSamples = errors.New("insufficient samples")
)

// Reading is a single timestamped sensor value
type Reading struct {
	Kind  string    `json:"kind"`
	Value float64   `json:"value"`
	Time  time.Time `json:"time"`
}

type Sensor interface {
	GetId() string

	GetConfig() configuration.SensorConfig

	// GetValue returns the current value of this sensor
	GetValue(ctx context.Context) (float64, error)

	// GetMovingAvg returns the last averaged value of this sensor
	GetMovingAvg() float64
	SetMovingAvg(avg float64)
}

// NewSensor creates a sensor from its configuration. Atlas probes share the given bus,
// temperature compensation is resolved lazily through the SensorMap.
func NewSensor(config configuration.SensorConfig, bus AtlasBus) (Sensor, error) {
	if config.Atlas != nil {
		if bus == nil {
			return nil, fmt.Errorf("sensor %s: no i2c bus available", config.ID)
		}
		return NewAtlasSensor(config, bus), nil
	}

	if config.File != nil {
		return &FileSensor{
			Config: config,
		}, nil
	}

	if config.Cmd != nil {
		return &CmdSensor{
			Config: config,
		}, nil
	}

	return nil, fmt.Errorf("no matching sensor type for sensor: %s", config.ID)
}

// Read samples the sensor once and wraps the result into a Reading
func Read(ctx context.Context, sensor Sensor) (Reading, error) {
	value, err := sensor.GetValue(ctx)
	if err != nil {
		return Reading{}, err
	}
	return Reading{
		Kind:  sensor.GetConfig().Kind,
		Value: value,
		Time:  time.Now(),
	}, nil
}

func noValue(id string, err error) error {
	return fmt.Errorf("sensor %s: %w: %w", id, ErrNoValue, err)
}
