package control_loop

const (
	// Raise means the measured value is below the band and needs to be increased
	Raise = 1.0
	// Hold means the measured value is within the band
	Hold = 0.0
	// Lower means the measured value is above the band and needs to be decreased
	Lower = -1.0
)

var _ ControlLoop = &BangBangControlLoop{}

// BangBangControlLoop is an on/off controller with a dead band around the target.
// The band is [target - BelowTolerance, target + AboveTolerance].
type BangBangControlLoop struct {
	BelowTolerance float64
	AboveTolerance float64
}

// NewBangBangControlLoop creates a BangBangControlLoop with the given dead band.
// Negative tolerances are treated as 0.
func NewBangBangControlLoop(belowTolerance float64, aboveTolerance float64) *BangBangControlLoop {
	return &BangBangControlLoop{
		BelowTolerance: max(belowTolerance, 0),
		AboveTolerance: max(aboveTolerance, 0),
	}
}

func (l *BangBangControlLoop) Loop(target float64, measured float64) float64 {
	if measured < target-l.BelowTolerance {
		return Raise
	}
	if measured > target+l.AboveTolerance {
		return Lower
	}
	return Hold
}

// InRange reports whether value lies within [min, max]
func InRange(value float64, min float64, max float64) bool {
	return value >= min && value <= max
}
