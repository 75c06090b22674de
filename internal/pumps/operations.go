package pumps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/markusressel/hydro2go/internal/ui"
	"github.com/markusressel/hydro2go/internal/util"
)

// RunFor runs the pump forward for the given duration. The pump is stopped on every exit path.
func RunFor(ctx context.Context, pump Pump, duration time.Duration) (err error) {
	if err = pump.Start(); err != nil {
		return err
	}
	defer func() {
		if stopErr := pump.Stop(); stopErr != nil {
			err = errors.Join(err, stopErr)
		}
	}()
	return util.SleepWithContext(ctx, duration)
}

// RunReverseFor runs the pump backwards for the given duration
func RunReverseFor(ctx context.Context, pump Pump, duration time.Duration) (err error) {
	if err = pump.StartReverse(); err != nil {
		return err
	}
	defer func() {
		if stopErr := pump.Stop(); stopErr != nil {
			err = errors.Join(err, stopErr)
		}
	}()
	return util.SleepWithContext(ctx, duration)
}

// Prime fills the line of a pump, the operator decides when the line is full
func Prime(ctx context.Context, operator ui.Operator, pump Pump) error {
	ui.Info("Priming pump %s, press enter to start", pump.GetId())
	if err := operator.AwaitReady(ctx); err != nil {
		return err
	}
	if err := pump.Start(); err != nil {
		return err
	}
	ui.Info("Pump %s running, press enter once liquid reaches the outlet", pump.GetId())
	err := operator.AwaitReady(ctx)
	return errors.Join(err, pump.Stop())
}

func PrimeAll(ctx context.Context, operator ui.Operator, pumps []Pump) error {
	for _, pump := range pumps {
		if err := Prime(ctx, operator, pump); err != nil {
			return err
		}
	}
	return nil
}

// ClearLines empties the line of a pump by running it backwards
func ClearLines(ctx context.Context, operator ui.Operator, pump Pump) error {
	if !pump.Supports(FeatureReverse) {
		return missingCapability(pump, "reverse")
	}
	ui.Info("Clearing line of pump %s, press enter to start", pump.GetId())
	if err := operator.AwaitReady(ctx); err != nil {
		return err
	}
	if err := pump.StartReverse(); err != nil {
		return err
	}
	ui.Info("Pump %s running in reverse, press enter once the line is empty", pump.GetId())
	err := operator.AwaitReady(ctx)
	return errors.Join(err, pump.Stop())
}

// RunList starts all given pumps. Capabilities are checked for every pump
// before any pump is actuated.
func RunList(pumps []Pump, reverse bool) error {
	if reverse {
		for _, pump := range pumps {
			if !pump.Supports(FeatureReverse) {
				return missingCapability(pump, "reverse")
			}
		}
	}

	for _, pump := range pumps {
		var err error
		if reverse {
			err = pump.StartReverse()
		} else {
			err = pump.Start()
		}
		if err != nil {
			return errors.Join(err, StopList(pumps))
		}
	}
	return nil
}

// StopList stops all given pumps, a failing pump does not prevent the others from being stopped
func StopList(pumps []Pump) error {
	var errs []error
	for _, pump := range pumps {
		if err := pump.Stop(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// StopAll stops every registered pump
func StopAll() error {
	var pumps []Pump
	for _, pump := range PumpMap.Items() {
		pumps = append(pumps, pump)
	}
	err := StopList(pumps)
	if err != nil {
		ui.Error("Failed to stop pumps: %v", err)
	}
	return err
}

// GetPumps resolves the given ids from the PumpMap
func GetPumps(ids ...string) ([]Pump, error) {
	result := make([]Pump, 0, len(ids))
	for _, id := range ids {
		pump, ok := PumpMap.Get(id)
		if !ok {
			return nil, fmt.Errorf("no pump with id found: %s", id)
		}
		result = append(result, pump)
	}
	return result, nil
}
