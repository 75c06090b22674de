package configuration

import "time"

const (
	DefaultWaterMaxBursts  = 500
	DefaultDosingMaxCycles = 50
	DefaultPhMaxCycles     = 200
)

type ControllersConfig struct {
	Water  WaterControllerConfig  `json:"water"`
	Dosing DosingControllerConfig `json:"dosing"`
	Ph     PhControllerConfig     `json:"ph"`
}

type WaterControllerConfig struct {
	OnTime  time.Duration `json:"onTime"`
	OffTime time.Duration `json:"offTime"`
	// Share of the estimated fill time used for the first burst, 0 disables it
	FeedForwardRatio float64 `json:"feedForwardRatio"`
	MaxBursts        int     `json:"maxBursts"`
}

// BurstLimit is MaxBursts, or the default when MaxBursts is not positive
func (c WaterControllerConfig) BurstLimit() int {
	if c.MaxBursts <= 0 {
		return DefaultWaterMaxBursts
	}
	return c.MaxBursts
}

type DosingControllerConfig struct {
	// Relative band below the target that counts as reached
	Tolerance  float64       `json:"tolerance"`
	SettleTime time.Duration `json:"settleTime"`
	MaxCycles  int           `json:"maxCycles"`
	// 0 disables the wall clock bound
	MaxDuration time.Duration `json:"maxDuration"`
}

// CycleLimit is MaxCycles, or the default when MaxCycles is not positive
func (c DosingControllerConfig) CycleLimit() int {
	if c.MaxCycles <= 0 {
		return DefaultDosingMaxCycles
	}
	return c.MaxCycles
}

type PhControllerConfig struct {
	UpTime     time.Duration `json:"upTime"`
	DownTime   time.Duration `json:"downTime"`
	SettleTime time.Duration `json:"settleTime"`
	MaxCycles  int           `json:"maxCycles"`
}
