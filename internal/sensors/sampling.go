package sensors

import (
	"context"
	"errors"
	"fmt"

	"github.com/markusressel/hydro2go/internal/configuration"
	"github.com/markusressel/hydro2go/internal/ui"
	"github.com/markusressel/hydro2go/internal/util"
)

// ReadFunc performs a single raw read
type ReadFunc func(ctx context.Context) (float64, error)

// SampleAveraged takes Discard+Samples logical samples, drops the first Discard
// and returns the mean of the rest. Each logical sample is attempted up to
// RetriesPerSample times while the read fails with ErrNoValue, any other error aborts.
func SampleAveraged(ctx context.Context, read ReadFunc, config configuration.SamplingConfig) (float64, error) {
	if config.Samples <= 0 {
		return 0, fmt.Errorf("%w: samples must be >= 1", ErrInsufficientSamples)
	}

	window := util.CreateRollingWindow(config.Samples)
	total := config.Discard + config.Samples
	for i := 0; i < total; i++ {
		if i > 0 {
			if err := util.SleepWithContext(ctx, config.InterSampleDelay); err != nil {
				return 0, err
			}
		}

		value, err := sampleWithRetry(ctx, read, config)
		if err != nil {
			return 0, err
		}
		if i < config.Discard {
			continue
		}
		window.Append(value)
	}

	avg := util.GetWindowAvg(window)
	ui.Debug("Sampled %d values: avg %.3f, spread %.3f", config.Samples, avg, util.GetWindowMax(window)-util.GetWindowMin(window))
	return avg, nil
}

func sampleWithRetry(ctx context.Context, read ReadFunc, config configuration.SamplingConfig) (float64, error) {
	attempts := max(config.RetriesPerSample, 1)

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		value, err := read(ctx)
		if err == nil {
			return value, nil
		}
		if !errors.Is(err, ErrNoValue) {
			return 0, err
		}
		lastErr = err

		if attempt < attempts {
			if err := util.SleepWithContext(ctx, config.RetryDelay); err != nil {
				return 0, err
			}
		}
	}

	return 0, fmt.Errorf("%w: %d attempts failed, last error: %v", ErrInsufficientSamples, attempts, lastErr)
}

// SampleSensor averages the given sensor and remembers the result on it
func SampleSensor(ctx context.Context, sensor Sensor, config configuration.SamplingConfig) (float64, error) {
	value, err := SampleAveraged(ctx, sensor.GetValue, config)
	if err != nil {
		return 0, err
	}
	sensor.SetMovingAvg(value)
	return value, nil
}
