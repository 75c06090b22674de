package configuration

import "time"

type CalibrationConfig struct {
	Levels       []float64     `json:"levels"`
	BurstOnTime  time.Duration `json:"burstOnTime"`
	BurstOffTime time.Duration `json:"burstOffTime"`
	StopTimeout  time.Duration `json:"stopTimeout"`
	SettleDelay  time.Duration `json:"settleDelay"`
	// Run the fill pump while waiting for the operator to confirm a level
	AutoFill DefaultTrueBool `json:"autoFill"`
}

// DefaultCalibrationLevels returns 1.5 to 6.5 inches in 0.5 inch steps
func DefaultCalibrationLevels() []float64 {
	var levels []float64
	for i := 3; i <= 13; i++ {
		levels = append(levels, float64(i)/2)
	}
	return levels
}
