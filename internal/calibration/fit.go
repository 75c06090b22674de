package calibration

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Fit computes the least squares quadratic level = a*raw^2 + b*raw + c through the given points.
// At least three distinct raw values are required.
func Fit(points []Point) (Model, error) {
	n := len(points)
	if n < 3 {
		return Model{}, fmt.Errorf("%w: need at least 3 points, got %d", ErrInsufficientCalibrationData, n)
	}

	distinct := map[float64]struct{}{}
	mean := 0.0
	for _, p := range points {
		distinct[p.Raw] = struct{}{}
		mean += p.Raw
	}
	if len(distinct) < 3 {
		return Model{}, fmt.Errorf("%w: fewer than 3 distinct raw values", ErrInsufficientCalibrationData)
	}
	mean /= float64(n)

	// center and scale x to keep the vandermonde matrix well conditioned
	scale := 0.0
	for _, p := range points {
		scale = math.Max(scale, math.Abs(p.Raw-mean))
	}

	// y = p0 + p1*u + p2*u^2 with u = (x - mean) / scale
	vandermonde := mat.NewDense(n, 3, nil)
	levels := mat.NewVecDense(n, nil)
	for i, p := range points {
		u := (p.Raw - mean) / scale
		vandermonde.SetRow(i, []float64{1, u, u * u})
		levels.SetVec(i, p.Level)
	}

	var solution mat.VecDense
	if err := solution.SolveVec(vandermonde, levels); err != nil {
		return Model{}, fmt.Errorf("%w: %v", ErrInsufficientCalibrationData, err)
	}
	p0, p1, p2 := solution.AtVec(0), solution.AtVec(1), solution.AtVec(2)

	// expand back into the unscaled polynomial
	s2 := scale * scale
	return Model{
		A: p2 / s2,
		B: p1/scale - 2*p2*mean/s2,
		C: p0 - p1*mean/scale + p2*mean*mean/s2,
	}, nil
}
