package calibration

import (
	"math"
	"time"

	"github.com/markusressel/hydro2go/internal/util"
)

// PumpTimeTable maps a water level in hundredths of an inch to the cumulative
// fill pump on-time in seconds needed to reach it from the calibration start.
type PumpTimeTable map[int]float64

func levelKey(level float64) int {
	return int(math.Round(level * 100))
}

func (table PumpTimeTable) Add(level float64, cumulative time.Duration) {
	table[levelKey(level)] = cumulative.Seconds()
}

// EstimateFillTime interpolates the pump on-time needed to raise the level from one value to another
func (table PumpTimeTable) EstimateFillTime(from float64, to float64) time.Duration {
	if len(table) == 0 || to <= from {
		return 0
	}
	start := util.CalculateInterpolatedCurveValue(table, util.InterpolationTypeLinear, from*100)
	end := util.CalculateInterpolatedCurveValue(table, util.InterpolationTypeLinear, to*100)
	seconds := math.Max(0, end-start)
	return time.Duration(seconds * float64(time.Second))
}
