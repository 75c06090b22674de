package controller

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/markusressel/hydro2go/internal/calibration"
	"github.com/markusressel/hydro2go/internal/configuration"
	"github.com/markusressel/hydro2go/internal/control_loop"
	"github.com/markusressel/hydro2go/internal/pumps"
	"github.com/markusressel/hydro2go/internal/ui"
	"github.com/markusressel/hydro2go/internal/util"
)

// WaterLevelController tops up the reservoir with duty cycled bursts of the fill pump
type WaterLevelController struct {
	Level  Measurement
	Config configuration.WaterControllerConfig
	// Optional, enables a single feed forward burst sized from the calibration run
	TimeTable  calibration.PumpTimeTable
	Statistics *Statistics
}

// Fill runs the pump until the measured level reaches target. The level is only
// measured while the pump is stopped, and the pump is stopped on every exit path.
// Not reaching the target within MaxBursts fails with ErrFillTimeout.
func (c *WaterLevelController) Fill(ctx context.Context, target float64, pump pumps.Pump) (err error) {
	defer func() {
		if stopErr := pump.Stop(); stopErr != nil {
			err = errors.Join(err, stopErr)
		}
	}()

	loop := control_loop.NewBangBangControlLoop(0, math.Inf(1))
	feedForward := len(c.TimeTable) > 0 && c.Config.FeedForwardRatio > 0
	maxBursts := c.Config.BurstLimit()

	for bursts := 0; ; bursts++ {
		level, err := c.Level(ctx)
		if err != nil {
			return err
		}
		if loop.Loop(target, level) != control_loop.Raise {
			ui.Info("Water level %.2f in reached target %.2f in", level, target)
			return nil
		}
		if bursts >= maxBursts {
			if c.Statistics != nil {
				c.Statistics.Timeouts.Add(1)
			}
			err := fmt.Errorf("%w: level %.2f in, target %.2f in after %d bursts", ErrFillTimeout, level, target, bursts)
			ui.ErrorAndNotify("Fill Timeout", "%v", err)
			return err
		}

		burst := c.Config.OnTime
		if feedForward {
			feedForward = false
			estimate := c.TimeTable.EstimateFillTime(level, target)
			if estimate > 0 {
				burst = time.Duration(float64(estimate) * c.Config.FeedForwardRatio)
				ui.Info("Feed forward fill burst of %s to go from %.2f in to %.2f in", burst, level, target)
			}
		}

		ui.Debug("Filling: level %.2f in, target %.2f in", level, target)
		if err := pumps.RunFor(ctx, pump, burst); err != nil {
			return err
		}
		if c.Statistics != nil {
			c.Statistics.FillBursts.Add(1)
		}
		if err := util.SleepWithContext(ctx, c.Config.OffTime); err != nil {
			return err
		}
	}
}
