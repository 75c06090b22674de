package configuration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApiConfig_Address(t *testing.T) {
	// GIVEN
	config := ApiConfig{Host: "localhost", Port: 9001}

	// WHEN
	result := config.Address()

	// THEN
	assert.Equal(t, "localhost:9001", result)
}

func TestStatisticsConfig_Address(t *testing.T) {
	assert.Equal(t, ":9100", StatisticsConfig{Port: 9100}.Address())
	assert.Equal(t, ":9000", StatisticsConfig{Port: 0}.Address())
	assert.Equal(t, ":9000", StatisticsConfig{Port: 70000}.Address())
}

func TestProfilingConfig_Address(t *testing.T) {
	// GIVEN
	config := ProfilingConfig{Host: "0.0.0.0", Port: 6060}

	// WHEN
	result := config.Address()

	// THEN
	assert.Equal(t, "0.0.0.0:6060", result)
}
