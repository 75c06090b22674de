package pumps

import (
	"fmt"
	"sync"

	"github.com/markusressel/hydro2go/internal/configuration"
	"github.com/markusressel/hydro2go/internal/util"
)

// RelayPump switches a pump through a GPIO controlled relay. It only runs forward.
type RelayPump struct {
	Config configuration.PumpConfig `json:"config"`

	mu    sync.Mutex
	state State
}

func (pump *RelayPump) GetId() string {
	return pump.Config.ID
}

func (pump *RelayPump) GetConfig() configuration.PumpConfig {
	return pump.Config
}

func (pump *RelayPump) Start() error {
	return pump.set(true, StateForward)
}

func (pump *RelayPump) StartReverse() error {
	return missingCapability(pump, "reverse")
}

func (pump *RelayPump) Stop() error {
	return pump.set(false, StateStopped)
}

func (pump *RelayPump) set(on bool, state State) error {
	pump.mu.Lock()
	defer pump.mu.Unlock()

	value := 0
	if on != pump.Config.Relay.ActiveLow {
		value = 1
	}
	if err := util.WriteIntToFile(value, pump.Config.Relay.Path); err != nil {
		return fmt.Errorf("pump %s: %w", pump.GetId(), err)
	}
	pump.state = state
	return nil
}

func (pump *RelayPump) GetState() State {
	pump.mu.Lock()
	defer pump.mu.Unlock()
	return pump.state
}

func (pump *RelayPump) Supports(feature FeatureFlag) bool {
	return false
}
