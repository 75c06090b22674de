package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	assert.Equal(t, 1.5, Round(1.5000000000000002, 2))
	assert.Equal(t, 2.35, Round(2.3456, 2))
	assert.Equal(t, -0.12, Round(-0.1234, 2))
}

func TestCoerce(t *testing.T) {
	assert.Equal(t, 1.0, Coerce(5.0, 0.0, 1.0))
	assert.Equal(t, 0.0, Coerce(-5.0, 0.0, 1.0))
	assert.Equal(t, 0.5, Coerce(0.5, 0.0, 1.0))
}

func TestCalculateInterpolatedCurveValue(t *testing.T) {
	// GIVEN
	expectedInputOutput := map[float64]float64{
		-100.0: 0.0,
		0:      0.0,
		100.0:  100.0,
		500.0:  500.0,
		1000.0: 1000.0,
		2000.0: 1000.0,
	}
	steps := map[int]float64{
		0:    0,
		100:  100,
		1000: 1000,
	}
	interpolationType := InterpolationTypeLinear

	for input, output := range expectedInputOutput {
		// WHEN
		result := CalculateInterpolatedCurveValue(steps, interpolationType, input)

		// THEN
		assert.Equal(t, output, result)
	}
}

func TestCalculateInterpolatedCurveValue_Empty(t *testing.T) {
	// WHEN
	result := CalculateInterpolatedCurveValue(map[int]float64{}, InterpolationTypeLinear, 42)

	// THEN
	assert.Equal(t, 0.0, result)
}

func TestRatio(t *testing.T) {
	// GIVEN
	a := 0.0
	b := 100.0
	c := 50.0

	expected := 0.5

	// WHEN
	result := Ratio(c, a, b)

	// THEN
	assert.Equal(t, expected, result)
}
