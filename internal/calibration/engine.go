package calibration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/markusressel/hydro2go/internal/configuration"
	"github.com/markusressel/hydro2go/internal/pumps"
	"github.com/markusressel/hydro2go/internal/sensors"
	"github.com/markusressel/hydro2go/internal/ui"
	"github.com/markusressel/hydro2go/internal/util"
)

type State string

const (
	StateIdle            State = "idle"
	StateAwaitingConfirm State = "awaiting_confirm"
	StateSampling        State = "sampling"
	StateFitting         State = "fitting"
	StateDone            State = "done"
	StateFailed          State = "failed"
)

// ModelStore persists the results of a calibration run
type ModelStore interface {
	SaveCalibration(model Model) error
	SavePumpTimeTable(table PumpTimeTable) error
}

// Engine walks the operator through a set of known water levels, samples the
// raw water sensor at each of them and fits the level model.
type Engine struct {
	Operator ui.Operator
	Read     sensors.ReadFunc
	Sampling configuration.SamplingConfig
	Store    ModelStore
	Config   configuration.CalibrationConfig

	mu     sync.Mutex
	state  State
	points []Point
}

func NewEngine(
	operator ui.Operator,
	read sensors.ReadFunc,
	sampling configuration.SamplingConfig,
	store ModelStore,
	config configuration.CalibrationConfig,
) *Engine {
	return &Engine{
		Operator: operator,
		Read:     read,
		Sampling: sampling,
		Store:    store,
		Config:   config,
		state:    StateIdle,
	}
}

func (e *Engine) GetState() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) setState(state State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != state {
		ui.Debug("Calibration state: %s -> %s", e.state, state)
	}
	e.state = state
}

// GetPoints returns the points collected by the last run
func (e *Engine) GetPoints() []Point {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Point(nil), e.points...)
}

// Calibrate collects one point per level and fits the model. With a fill pump
// and AutoFill enabled the pump is pulsed while the operator watches the level.
// A model is only persisted if the fit succeeded.
func (e *Engine) Calibrate(ctx context.Context, levels []float64, fillPump pumps.Pump) (Model, error) {
	e.mu.Lock()
	e.points = nil
	e.mu.Unlock()

	model, err := e.calibrate(ctx, levels, fillPump)
	if err != nil {
		e.setState(StateFailed)
		return model, err
	}
	e.setState(StateDone)
	return model, nil
}

func (e *Engine) calibrate(ctx context.Context, levels []float64, fillPump pumps.Pump) (Model, error) {
	autoFill := fillPump != nil && e.Config.AutoFill.Get()
	table := PumpTimeTable{}
	var cumulative time.Duration

	for _, level := range levels {
		e.setState(StateAwaitingConfirm)

		var onTime time.Duration
		var err error
		if autoFill {
			onTime, err = e.fillUntilConfirmed(ctx, level, fillPump)
		} else {
			err = e.awaitConfirmation(ctx, level)
		}
		if err != nil {
			return Model{}, err
		}
		if autoFill {
			cumulative += onTime
			table.Add(level, cumulative)
		}

		e.setState(StateSampling)
		if err := util.SleepWithContext(ctx, e.Config.SettleDelay); err != nil {
			return Model{}, err
		}
		raw, err := sensors.SampleAveraged(ctx, e.Read, e.Sampling)
		if err != nil {
			return Model{}, fmt.Errorf("sampling level %.2f: %w", level, err)
		}
		ui.Info("Calibration point: level %.2f in, raw %.2f", level, raw)

		e.mu.Lock()
		e.points = append(e.points, Point{Level: level, Raw: raw})
		e.mu.Unlock()
	}

	e.setState(StateFitting)
	model, err := Fit(e.GetPoints())
	if err != nil {
		return Model{}, err
	}
	ui.Info("Calibration model: a=%g b=%g c=%g", model.A, model.B, model.C)

	if err := e.Store.SaveCalibration(model); err != nil {
		return model, fmt.Errorf("%w: %w", ErrCalibrationPersistFailure, err)
	}
	if len(table) > 0 {
		if err := e.Store.SavePumpTimeTable(table); err != nil {
			return model, fmt.Errorf("%w: %w", ErrCalibrationPersistFailure, err)
		}
	}
	return model, nil
}

func confirmationLabel(level float64) string {
	return fmt.Sprintf("Is the water level at %.2f inches?", level)
}

func (e *Engine) awaitConfirmation(ctx context.Context, level float64) error {
	for {
		ok, err := e.Operator.Confirm(ctx, confirmationLabel(level))
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
}

// fillUntilConfirmed pulses the fill pump in the background until the operator
// confirms the level, then joins the background task within StopTimeout.
func (e *Engine) fillUntilConfirmed(ctx context.Context, level float64, fillPump pumps.Pump) (time.Duration, error) {
	burstCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var onTime time.Duration
	var burstErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		onTime, burstErr = runBursts(burstCtx, fillPump, e.Config.BurstOnTime, e.Config.BurstOffTime)
	}()

	confirmErr := e.awaitConfirmation(ctx, level)
	cancel()

	select {
	case <-done:
	case <-time.After(e.Config.StopTimeout):
		ui.ErrorAndNotify("Pump Stop Timeout", "fill pump %s did not stop within %s", fillPump.GetId(), e.Config.StopTimeout)
		return 0, fmt.Errorf("pump %s: %w", fillPump.GetId(), ErrActuatorStopTimeout)
	}

	if confirmErr != nil {
		return onTime, confirmErr
	}
	return onTime, burstErr
}

// runBursts runs the pump duty cycled until ctx is cancelled and returns the accumulated on-time
func runBursts(ctx context.Context, pump pumps.Pump, on time.Duration, off time.Duration) (time.Duration, error) {
	var total time.Duration
	for ctx.Err() == nil {
		start := time.Now()
		if err := pump.Start(); err != nil {
			return total, err
		}
		sleepErr := util.SleepWithContext(ctx, on)
		stopErr := pump.Stop()
		total += time.Since(start)
		if stopErr != nil {
			return total, stopErr
		}
		if sleepErr != nil {
			break
		}
		if err := util.SleepWithContext(ctx, off); err != nil {
			break
		}
	}
	return total, nil
}
