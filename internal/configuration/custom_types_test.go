package configuration

import (
	"testing"

	"github.com/mitchellh/mapstructure"
	"github.com/stretchr/testify/assert"
)

func TestDefaultTrueBool_Get(t *testing.T) {
	tests := []struct {
		name     string
		input    DefaultTrueBool
		expected bool
	}{
		{
			name: "Present and True returns True",
			input: DefaultTrueBool{
				Optional: Optional[bool]{Value: true, Present: true},
			},
			expected: true,
		},
		{
			name: "Present and False returns False",
			input: DefaultTrueBool{
				Optional: Optional[bool]{Value: false, Present: true},
			},
			expected: false,
		},
		{
			name: "Not Present returns True (Default)",
			input: DefaultTrueBool{
				Optional: Optional[bool]{Value: false, Present: false},
			},
			expected: true,
		},
		{
			name: "Runtime Override wins over Missing",
			input: func() DefaultTrueBool {
				b := DefaultTrueBool{}
				b.SetOverride(false)
				return b
			}(),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.input.Get())
		})
	}
}

func decodeWithHooks(t *testing.T, input map[string]interface{}, output interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: decodeHook(),
		Result:     output,
	})
	assert.NoError(t, err)
	return decoder.Decode(input)
}

func TestDecodeHook_CalibrationConfig(t *testing.T) {
	// GIVEN
	input := map[string]interface{}{
		"autoFill":    false,
		"stopTimeout": "10s",
	}
	var config CalibrationConfig

	// WHEN
	err := decodeWithHooks(t, input, &config)

	// THEN
	assert.NoError(t, err)
	assert.False(t, config.AutoFill.Get())
	assert.Equal(t, "10s", config.StopTimeout.String())
}

func TestDecodeHook_CalibrationConfig_AutoFillMissing(t *testing.T) {
	// GIVEN
	input := map[string]interface{}{}
	var config CalibrationConfig

	// WHEN
	err := decodeWithHooks(t, input, &config)

	// THEN
	assert.NoError(t, err)
	assert.True(t, config.AutoFill.Get())
}

func TestDecodeHook_PumpDirection(t *testing.T) {
	tests := []struct {
		input    interface{}
		expected PumpDirection
	}{
		{"normal", PumpDirectionNormal},
		{"Reversed", PumpDirectionReversed},
		{1, PumpDirectionNormal},
		{-1, PumpDirectionReversed},
	}

	for _, tt := range tests {
		// GIVEN
		var config PumpConfig

		// WHEN
		err := decodeWithHooks(t, map[string]interface{}{"id": "p", "direction": tt.input}, &config)

		// THEN
		assert.NoError(t, err)
		assert.Equal(t, tt.expected, config.Direction)
	}
}

func TestDecodeHook_PumpDirection_Invalid(t *testing.T) {
	// GIVEN
	var config PumpConfig

	// WHEN
	err := decodeWithHooks(t, map[string]interface{}{"direction": "sideways"}, &config)

	// THEN
	assert.Error(t, err)
}

func TestDefaultCalibrationLevels(t *testing.T) {
	// WHEN
	levels := DefaultCalibrationLevels()

	// THEN
	assert.Len(t, levels, 11)
	assert.Equal(t, 1.5, levels[0])
	assert.Equal(t, 6.5, levels[len(levels)-1])
}
