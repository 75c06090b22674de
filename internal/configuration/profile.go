package configuration

import "time"

// PlantProfile holds the initial targets for a crop
type PlantProfile struct {
	Name             string             `json:"name"`
	TargetPh         float64            `json:"targetPh"`
	MinPh            float64            `json:"minPh"`
	MaxPh            float64            `json:"maxPh"`
	TargetPpm        float64            `json:"targetPpm"`
	TargetWaterLevel float64            `json:"targetWaterLevel"`
	DosingPlan       []DosingStepConfig `json:"dosingPlan"`
}

type DosingStepConfig struct {
	Pump     string        `json:"pump"`
	Duration time.Duration `json:"duration"`
}
