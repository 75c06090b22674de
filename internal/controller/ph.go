package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/markusressel/hydro2go/internal/configuration"
	"github.com/markusressel/hydro2go/internal/control_loop"
	"github.com/markusressel/hydro2go/internal/pumps"
	"github.com/markusressel/hydro2go/internal/ui"
	"github.com/markusressel/hydro2go/internal/util"
)

type PumpPair struct {
	Up   pumps.Pump
	Down pumps.Pump
}

type PhDosingTime struct {
	UpTime     time.Duration
	DownTime   time.Duration
	SettleTime time.Duration
}

func NewPhDosingTime(config configuration.PhControllerConfig) PhDosingTime {
	return PhDosingTime{
		UpTime:     config.UpTime,
		DownTime:   config.DownTime,
		SettleTime: config.SettleTime,
	}
}

type PHController struct {
	Ph Measurement
	// Not positive means configuration.DefaultPhMaxCycles
	MaxCycles  int
	Statistics *Statistics
}

// BalanceRange only acts when the pH left [MinPh, MaxPh], and then drives it to TargetPh
func (c *PHController) BalanceRange(ctx context.Context, profile configuration.PlantProfile, pair PumpPair, dosing PhDosingTime) error {
	ph, err := c.Ph(ctx)
	if err != nil {
		return err
	}
	if control_loop.InRange(ph, profile.MinPh, profile.MaxPh) {
		ui.Debug("pH %.2f within [%.2f, %.2f]", ph, profile.MinPh, profile.MaxPh)
		return nil
	}
	return c.drive(ctx, profile.TargetPh, ph, pair, dosing)
}

// BalanceExact drives the pH to TargetPh regardless of the range
func (c *PHController) BalanceExact(ctx context.Context, profile configuration.PlantProfile, pair PumpPair, dosing PhDosingTime) error {
	ph, err := c.Ph(ctx)
	if err != nil {
		return err
	}
	return c.drive(ctx, profile.TargetPh, ph, pair, dosing)
}

// drive doses with the pump matching the initial deviation until the target is
// reached or crossed. Both pumps are stopped on exit.
func (c *PHController) drive(ctx context.Context, target float64, ph float64, pair PumpPair, dosing PhDosingTime) (err error) {
	defer func() {
		if stopErr := pumps.StopList([]pumps.Pump{pair.Up, pair.Down}); stopErr != nil {
			err = errors.Join(err, stopErr)
		}
	}()

	loop := control_loop.NewBangBangControlLoop(0, 0)
	direction := loop.Loop(target, ph)
	if direction == control_loop.Hold {
		return nil
	}

	pump, onTime, action := pair.Up, dosing.UpTime, "Increasing"
	if direction == control_loop.Lower {
		pump, onTime, action = pair.Down, dosing.DownTime, "Reducing"
	}

	maxCycles := c.MaxCycles
	if maxCycles <= 0 {
		maxCycles = configuration.DefaultPhMaxCycles
	}

	cycles := 0
	for loop.Loop(target, ph) == direction {
		if cycles >= maxCycles {
			if c.Statistics != nil {
				c.Statistics.Timeouts.Add(1)
			}
			err = fmt.Errorf("%w: pH %.2f, target %.2f after %d cycles", ErrDosingTimeout, ph, target, cycles)
			ui.ErrorAndNotify("pH Dosing Timeout", "%v", err)
			return err
		}

		ui.Info("%s pH: %.2f, target %.2f", action, ph, target)
		if err := pumps.RunFor(ctx, pump, onTime); err != nil {
			return err
		}
		cycles++
		if c.Statistics != nil {
			c.Statistics.PhCycles.Add(1)
		}
		if err := util.SleepWithContext(ctx, dosing.SettleTime); err != nil {
			return err
		}

		ph, err = c.Ph(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}
