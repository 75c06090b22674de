package controller

// AdaptTarget shifts the PPM target by the deviation measured before the last
// top-up. The correction is not damped.
func AdaptTarget(target float64, preFill float64) float64 {
	return target + (target - preFill)
}
