package control_loop

type ControlLoop interface {
	// Loop advances the control loop and returns the actuation for the current cycle
	Loop(target float64, measured float64) float64
}
