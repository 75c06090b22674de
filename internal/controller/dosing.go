package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/markusressel/hydro2go/internal/configuration"
	"github.com/markusressel/hydro2go/internal/control_loop"
	"github.com/markusressel/hydro2go/internal/pumps"
	"github.com/markusressel/hydro2go/internal/ui"
	"github.com/markusressel/hydro2go/internal/util"
)

type DosingStep struct {
	Pump     pumps.Pump
	Duration time.Duration
}

// DosingPlan lists the nutrient pumps of one dosing cycle in the order they run
type DosingPlan []DosingStep

// NewDosingPlan resolves the pumps of the configured plan from the PumpMap
func NewDosingPlan(steps []configuration.DosingStepConfig) (DosingPlan, error) {
	plan := make(DosingPlan, 0, len(steps))
	for _, step := range steps {
		pump, ok := pumps.PumpMap.Get(step.Pump)
		if !ok {
			return nil, fmt.Errorf("dosing plan: no pump with id found: %s", step.Pump)
		}
		plan = append(plan, DosingStep{Pump: pump, Duration: step.Duration})
	}
	return plan, nil
}

func (plan DosingPlan) Pumps() []pumps.Pump {
	result := make([]pumps.Pump, 0, len(plan))
	for _, step := range plan {
		result = append(result, step.Pump)
	}
	return result
}

// DosingController adds nutrients until the PPM target is reached
type DosingController struct {
	Ppm        Measurement
	Config     configuration.DosingControllerConfig
	Statistics *Statistics
}

// DoseToTarget runs full dosing cycles while the PPM is below target*(1-Tolerance)
// and returns the number of cycles run. Exceeding MaxCycles or MaxDuration fails with ErrDosingTimeout,
// a non-positive MaxCycles falls back to the default limit.
func (c *DosingController) DoseToTarget(ctx context.Context, target float64, plan DosingPlan) (int, error) {
	loop := control_loop.NewBangBangControlLoop(target*c.Config.Tolerance, 0)
	maxCycles := c.Config.CycleLimit()
	start := time.Now()
	cycles := 0

	for {
		ppm, err := c.Ppm(ctx)
		if err != nil {
			return cycles, err
		}
		if loop.Loop(target, ppm) != control_loop.Raise {
			ui.Info("PPM %.1f reached target %.1f after %d cycles", ppm, target, cycles)
			return cycles, nil
		}

		if cycles >= maxCycles {
			return cycles, c.timeout(fmt.Errorf("%w: %d cycles, ppm %.1f, target %.1f", ErrDosingTimeout, cycles, ppm, target))
		}
		if c.Config.MaxDuration > 0 && time.Since(start) >= c.Config.MaxDuration {
			return cycles, c.timeout(fmt.Errorf("%w: %s elapsed, ppm %.1f, target %.1f", ErrDosingTimeout, c.Config.MaxDuration, ppm, target))
		}

		ui.Debug("Dosing: ppm %.1f, target %.1f", ppm, target)
		for _, step := range plan {
			if err := pumps.RunFor(ctx, step.Pump, step.Duration); err != nil {
				return cycles, err
			}
		}
		cycles++
		if c.Statistics != nil {
			c.Statistics.DosingCycles.Add(1)
		}

		if err := util.SleepWithContext(ctx, c.Config.SettleTime); err != nil {
			return cycles, err
		}
	}
}

func (c *DosingController) timeout(err error) error {
	if c.Statistics != nil {
		c.Statistics.Timeouts.Add(1)
	}
	ui.ErrorAndNotify("Dosing Timeout", "%v", err)
	return err
}
