package pumps

import (
	"context"
	"fmt"
	"math"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/markusressel/hydro2go/internal/configuration"
	"github.com/markusressel/hydro2go/internal/util"
)

// Motor is a bidirectional DC motor driver, throttle is in [-1, 1]
type Motor interface {
	SetThrottle(throttle float64) error
}

// MotorPump is a peristaltic pump on a motor driver. Forward runs at
// direction*speed, reverse at -direction*speed.
type MotorPump struct {
	Config configuration.PumpConfig `json:"config"`
	Motor  Motor                    `json:"-"`

	mu    sync.Mutex
	state State
}

func (pump *MotorPump) GetId() string {
	return pump.Config.ID
}

func (pump *MotorPump) GetConfig() configuration.PumpConfig {
	return pump.Config
}

func (pump *MotorPump) forwardThrottle() float64 {
	return float64(pump.Config.Direction) * pump.Config.Speed
}

func (pump *MotorPump) Start() error {
	return pump.set(pump.forwardThrottle(), StateForward)
}

func (pump *MotorPump) StartReverse() error {
	return pump.set(-pump.forwardThrottle(), StateReverse)
}

func (pump *MotorPump) Stop() error {
	return pump.set(0, StateStopped)
}

func (pump *MotorPump) set(throttle float64, state State) error {
	pump.mu.Lock()
	defer pump.mu.Unlock()
	if err := pump.Motor.SetThrottle(throttle); err != nil {
		return fmt.Errorf("pump %s: %w", pump.GetId(), err)
	}
	pump.state = state
	return nil
}

func (pump *MotorPump) GetState() State {
	pump.mu.Lock()
	defer pump.mu.Unlock()
	return pump.state
}

func (pump *MotorPump) Supports(feature FeatureFlag) bool {
	switch feature {
	case FeatureReverse:
		return true
	}
	return false
}

// FileMotor writes round(throttle*scale) to a file, e.g. a motor hat driver attribute
type FileMotor struct {
	Config configuration.FileMotorConfig
}

func (motor *FileMotor) SetThrottle(throttle float64) error {
	filePath := motor.Config.Path
	// resolve home dir path
	if strings.HasPrefix(filePath, "~") {
		currentUser, err := user.Current()
		if err != nil {
			return err
		}

		filePath = filepath.Join(currentUser.HomeDir, filePath[1:])
	}

	scale := motor.Config.Scale
	if scale == 0 {
		scale = 100
	}
	value := int(math.Round(util.Coerce(throttle, -1, 1) * float64(scale)))
	return util.WriteIntToFile(value, filePath)
}

// CmdMotor runs an external command, %throttle% in the arguments is replaced with the throttle
type CmdMotor struct {
	Config configuration.CmdMotorConfig
}

func (motor *CmdMotor) SetThrottle(throttle float64) error {
	timeout := 2 * time.Second
	value := strconv.FormatFloat(util.Coerce(throttle, -1, 1), 'f', -1, 64)

	args := make([]string, len(motor.Config.Args))
	for i, arg := range motor.Config.Args {
		args[i] = strings.ReplaceAll(arg, "%throttle%", value)
	}
	_, err := util.SafeCmdExecution(context.Background(), motor.Config.Exec, args, timeout)
	return err
}
