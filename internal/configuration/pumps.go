package configuration

type PumpConfig struct {
	ID string `json:"id"`
	// 1 for normal wiring, -1 when the motor leads are swapped
	Direction PumpDirection `json:"direction"`
	// Throttle magnitude in (0, 1]
	Speed float64 `json:"speed"`

	Relay *RelayPumpConfig `json:"relay,omitempty"`
	Motor *MotorPumpConfig `json:"motor,omitempty"`
}

// RelayPumpConfig drives a pump through a GPIO pin exported via sysfs
type RelayPumpConfig struct {
	Path      string `json:"path"`
	ActiveLow bool   `json:"activeLow"`
}

type MotorPumpConfig struct {
	File *FileMotorConfig `json:"file,omitempty"`
	Cmd  *CmdMotorConfig  `json:"cmd,omitempty"`
}

// FileMotorConfig writes round(throttle * Scale) to Path
type FileMotorConfig struct {
	Path  string `json:"path"`
	Scale int    `json:"scale"`
}

// CmdMotorConfig executes Exec with Args, replacing %throttle% with the throttle value
type CmdMotorConfig struct {
	Exec string   `json:"exec"`
	Args []string `json:"args"`
}
