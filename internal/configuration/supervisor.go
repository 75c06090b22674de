package configuration

import "time"

type SupervisorConfig struct {
	CheckInterval time.Duration `json:"checkInterval"`
	// Deficit in inches below the target water level that triggers an adjustment
	WaterThreshold      float64       `json:"waterThreshold"`
	PpmSafetyMargin     float64       `json:"ppmSafetyMargin"`
	PostFillSettle      time.Duration `json:"postFillSettle"`
	PurgeDuration       time.Duration `json:"purgeDuration"`
	SkipSetupWaterLevel float64       `json:"skipSetupWaterLevel"`
}
