package pumps

import (
	"errors"
	"fmt"

	"github.com/markusressel/hydro2go/internal/configuration"
	cmap "github.com/orcaman/concurrent-map/v2"
)

type FeatureFlag int

const (
	// FeatureReverse indicates that the pump can run backwards
	FeatureReverse FeatureFlag = 0
)

type State string

const (
	StateStopped State = "stopped"
	StateForward State = "forward"
	StateReverse State = "reverse"
)

var (
	PumpMap = cmap.New[Pump]()

	// ErrMissingCapability is returned when a pump is asked for an operation it can not perform
	ErrMissingCapability = errors.New("pump is missing capability")
)

type Pump interface {
	GetId() string

	GetConfig() configuration.PumpConfig

	// Start runs the pump in its forward direction
	Start() error
	// StartReverse runs the pump backwards, see FeatureReverse
	StartReverse() error
	Stop() error

	GetState() State

	Supports(feature FeatureFlag) bool
}

func NewPump(config configuration.PumpConfig) (Pump, error) {
	if config.Relay != nil {
		return &RelayPump{
			Config: config,
			state:  StateStopped,
		}, nil
	}

	if config.Motor != nil {
		motor, err := newMotor(config)
		if err != nil {
			return nil, err
		}
		return &MotorPump{
			Config: config,
			Motor:  motor,
			state:  StateStopped,
		}, nil
	}

	return nil, fmt.Errorf("no matching pump type for pump: %s", config.ID)
}

func newMotor(config configuration.PumpConfig) (Motor, error) {
	if config.Motor.File != nil {
		return &FileMotor{Config: *config.Motor.File}, nil
	}
	if config.Motor.Cmd != nil {
		return &CmdMotor{Config: *config.Motor.Cmd}, nil
	}
	return nil, fmt.Errorf("pump %s: no motor driver configured", config.ID)
}

func missingCapability(pump Pump, operation string) error {
	return fmt.Errorf("pump %s: %w: %s", pump.GetId(), ErrMissingCapability, operation)
}
