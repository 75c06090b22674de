package supervisor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/markusressel/hydro2go/internal/calibration"
	"github.com/markusressel/hydro2go/internal/configuration"
	"github.com/markusressel/hydro2go/internal/controller"
	"github.com/markusressel/hydro2go/internal/persistence"
	"github.com/markusressel/hydro2go/internal/pumps"
	"github.com/markusressel/hydro2go/internal/ui"
	"github.com/markusressel/hydro2go/internal/util"
)

type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseSetup   Phase = "setup"
	PhaseMonitor Phase = "monitor"
	PhaseStopped Phase = "stopped"
)

// CalibrationStore loads and saves the water level calibration
type CalibrationStore interface {
	calibration.ModelStore
	LoadCalibration() (calibration.Model, error)
	LoadPumpTimeTable() (calibration.PumpTimeTable, error)
}

// Supervisor runs the reservoir: a one time SETUP phase followed by a MONITOR
// loop that keeps water level, PPM and pH at their targets.
// Only one Supervisor may run per reservoir, it is the single writer of the SystemState.
type Supervisor struct {
	Reservoir   *Reservoir
	Config      configuration.SupervisorConfig
	Calibration configuration.CalibrationConfig
	Operator    ui.Operator
	Store       CalibrationStore
	State       *persistence.StateStore

	water    *controller.WaterLevelController
	dosing   *controller.DosingController
	ph       *controller.PHController
	phDosing controller.PhDosingTime

	mu    sync.RWMutex
	phase Phase
}

func NewSupervisor(
	config configuration.Configuration,
	reservoir *Reservoir,
	operator ui.Operator,
	store CalibrationStore,
	state *persistence.StateStore,
	statistics *controller.Statistics,
) *Supervisor {
	s := &Supervisor{
		Reservoir:   reservoir,
		Config:      config.Supervisor,
		Calibration: config.Calibration,
		Operator:    operator,
		Store:       store,
		State:       state,
		water: &controller.WaterLevelController{
			Level:      reservoir.MeasureLevel,
			Config:     config.Controllers.Water,
			Statistics: statistics,
		},
		dosing: &controller.DosingController{
			Ppm:        reservoir.MeasurePpm,
			Config:     config.Controllers.Dosing,
			Statistics: statistics,
		},
		ph: &controller.PHController{
			Ph:         reservoir.MeasurePh,
			MaxCycles:  config.Controllers.Ph.MaxCycles,
			Statistics: statistics,
		},
		phDosing: controller.NewPhDosingTime(config.Controllers.Ph),
	}
	s.phase = PhaseIdle
	return s
}

func (s *Supervisor) GetPhase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

func (s *Supervisor) setPhase(phase Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = phase
}

// Run executes Setup and then monitors until ctx is done.
// Every pump of the reservoir is stopped when Run returns.
func (s *Supervisor) Run(ctx context.Context) (err error) {
	defer func() {
		s.setPhase(PhaseStopped)
		if stopErr := s.StopAll(); stopErr != nil {
			err = errors.Join(err, stopErr)
		}
	}()

	s.setPhase(PhaseSetup)
	if err := s.Setup(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		ui.ErrorAndNotify("Setup Failed", "Reservoir setup failed: %v", err)
		return fmt.Errorf("setup: %w", err)
	}

	s.setPhase(PhaseMonitor)
	return s.Monitor(ctx)
}

// StopAll stops every pump of the reservoir, best effort
func (s *Supervisor) StopAll() error {
	err := pumps.StopList(s.Reservoir.Pumps())
	if err != nil {
		ui.Error("Failed to stop pumps: %v", err)
	}
	return err
}

// Setup makes sure a calibration exists and brings a fresh reservoir to its
// initial targets. A calibrated reservoir that was already set up before is resumed.
// Without a calibration the lines are purged and primed before calibrating,
// so the calibration bursts run on a primed fill pump.
func (s *Supervisor) Setup(ctx context.Context) error {
	calibrated, err := s.loadCalibration()
	if err != nil {
		return err
	}

	if calibrated {
		resume, err := s.canResume(ctx)
		if err != nil {
			return err
		}
		if resume {
			return nil
		}
	}

	r := s.Reservoir
	if err := s.purgeDosingLines(ctx); err != nil {
		return err
	}
	if err := pumps.PrimeAll(ctx, s.Operator, r.Pumps()); err != nil {
		return err
	}

	if !calibrated {
		if err := s.calibrate(ctx); err != nil {
			return err
		}
	}

	state := s.initialState()
	if err := s.State.Write(state); err != nil {
		return err
	}

	if err := s.water.Fill(ctx, state.TargetWaterLevel, r.FillPump); err != nil {
		return err
	}
	if _, err := s.dosing.DoseToTarget(ctx, state.TargetPpm, r.Plan); err != nil {
		return err
	}
	if err := s.ph.BalanceExact(ctx, r.Profile, r.PhPumps, s.phDosing); err != nil {
		return err
	}

	state, err = s.withCurrentValues(ctx, state)
	if err != nil {
		return err
	}
	if err := s.State.Write(state); err != nil {
		return err
	}
	r.Telemetry.Logf("Setup of reservoir finished: %.2f in, %.1f ppm", state.CurrentWaterLevel, state.CurrentPpm)
	ui.NotifyInfo("Reservoir Ready", fmt.Sprintf("%.2f in at %.1f ppm", state.CurrentWaterLevel, state.CurrentPpm))
	return nil
}

// loadCalibration applies a persisted model and reports whether one exists
func (s *Supervisor) loadCalibration() (bool, error) {
	model, err := s.Store.LoadCalibration()
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	s.Reservoir.Estimator.SetModel(model)
	s.loadPumpTimeTable()
	return true, nil
}

func (s *Supervisor) calibrate(ctx context.Context) error {
	r := s.Reservoir
	r.Telemetry.Logf("No water level calibration found, starting calibration")
	engine := calibration.NewEngine(s.Operator, r.WaterLevelSensor.GetValue, r.Sampling, s.Store, s.Calibration)
	model, err := engine.Calibrate(ctx, s.Calibration.Levels, r.FillPump)
	if errors.Is(err, calibration.ErrCalibrationPersistFailure) {
		// the fitted model is still usable for this run
		ui.Warning("%v", err)
		err = nil
	}
	if err != nil {
		return err
	}
	r.Estimator.SetModel(model)
	s.loadPumpTimeTable()
	return nil
}

func (s *Supervisor) loadPumpTimeTable() {
	table, err := s.Store.LoadPumpTimeTable()
	switch {
	case err == nil:
		s.water.TimeTable = table
	case errors.Is(err, os.ErrNotExist):
		ui.Debug("No pump time table found, feed forward fill disabled")
	default:
		ui.Warning("Unable to load pump time table: %v", err)
	}
}

// canResume reports whether a previous setup left a filled reservoir behind
func (s *Supervisor) canResume(ctx context.Context) (bool, error) {
	_, err := s.State.Read()
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	level, err := s.Reservoir.MeasureLevel(ctx)
	if err != nil {
		return false, err
	}
	if level < s.Config.SkipSetupWaterLevel {
		return false, nil
	}
	s.Reservoir.Telemetry.Logf("Reservoir already filled (%.2f in), skipping setup", level)
	return true, nil
}

// purgeDosingLines runs every reversible dosing pump backwards to empty its line
func (s *Supervisor) purgeDosingLines(ctx context.Context) (err error) {
	if s.Config.PurgeDuration <= 0 {
		return nil
	}

	var reversible []pumps.Pump
	for _, pump := range s.Reservoir.DosingPumps() {
		if pump.Supports(pumps.FeatureReverse) {
			reversible = append(reversible, pump)
		} else {
			ui.Debug("Pump %s cannot run in reverse, not purging its line", pump.GetId())
		}
	}
	if len(reversible) == 0 {
		return nil
	}

	ui.Info("Purging dosing lines for %s", s.Config.PurgeDuration)
	defer func() {
		if stopErr := pumps.StopList(reversible); stopErr != nil {
			err = errors.Join(err, stopErr)
		}
	}()
	if err := pumps.RunList(reversible, true); err != nil {
		return err
	}
	return util.SleepWithContext(ctx, s.Config.PurgeDuration)
}

// Monitor runs MonitorOnce every CheckInterval until ctx is done.
// A failed cycle is logged and retried with the next one.
func (s *Supervisor) Monitor(ctx context.Context) error {
	failing := false
	for {
		err := s.MonitorOnce(ctx)
		if err != nil && ctx.Err() != nil {
			return nil
		}
		switch {
		case err != nil && !failing:
			ui.WarningAndNotify("Monitor Failure", "Monitor cycle failed: %v", err)
			fallthrough
		case err != nil:
			s.Reservoir.Telemetry.Logf("Monitor cycle failed: %v", err)
		case failing:
			s.Reservoir.Telemetry.Logf("Monitor cycle recovered")
		}
		failing = err != nil

		if err := util.SleepWithContext(ctx, s.Config.CheckInterval); err != nil {
			return nil
		}
	}
}

// MonitorOnce refills and readjusts a reservoir that lost more than WaterThreshold,
// otherwise it only keeps the pH in range
func (s *Supervisor) MonitorOnce(ctx context.Context) error {
	r := s.Reservoir

	state, err := s.State.Read()
	if errors.Is(err, os.ErrNotExist) {
		state = s.initialState()
	} else if err != nil {
		return err
	}

	if _, err := r.MeasureTemperature(ctx); err != nil {
		ui.Warning("Unable to read water temperature: %v", err)
	}

	level, err := r.MeasureLevel(ctx)
	if err != nil {
		return err
	}

	deficit := state.TargetWaterLevel - level
	if deficit > s.Config.WaterThreshold {
		r.Telemetry.Logf("Water level %.2f in is %.2f in below target, adjusting", level, deficit)
		return s.Adjust(ctx, state)
	}

	if err := s.ph.BalanceRange(ctx, r.Profile, r.PhPumps, s.phDosing); err != nil {
		return err
	}

	ppm, err := r.MeasurePpm(ctx)
	if err != nil {
		return err
	}

	_, err = s.State.Update(func(current persistence.SystemState, exists bool) persistence.SystemState {
		if !exists {
			current = state
		}
		current.CurrentWaterLevel = level
		current.CurrentPpm = ppm
		return current
	})
	return err
}

// Adjust refills the reservoir, adapts the PPM target to the drift since the
// last refill and doses back to it. The adapted target is persisted before dosing.
func (s *Supervisor) Adjust(ctx context.Context, state persistence.SystemState) error {
	r := s.Reservoir

	preFill, err := r.MeasurePpm(ctx)
	if err != nil {
		return err
	}

	if err := s.water.Fill(ctx, state.TargetWaterLevel, r.FillPump); err != nil {
		return err
	}
	if err := util.SleepWithContext(ctx, s.Config.PostFillSettle); err != nil {
		return err
	}

	target := controller.AdaptTarget(state.TargetPpm, preFill)
	r.Telemetry.Logf("PPM before fill %.1f, adapting target from %.1f to %.1f", preFill, state.TargetPpm, target)
	state.TargetPpm = target
	if _, err := s.State.Update(func(current persistence.SystemState, exists bool) persistence.SystemState {
		if !exists {
			current = state
		}
		current.TargetPpm = target
		return current
	}); err != nil {
		return err
	}

	if _, err := s.dosing.DoseToTarget(ctx, target-s.Config.PpmSafetyMargin, r.Plan); err != nil {
		return err
	}
	if err := s.ph.BalanceExact(ctx, r.Profile, r.PhPumps, s.phDosing); err != nil {
		return err
	}
	if _, err := s.dosing.DoseToTarget(ctx, target, r.Plan); err != nil {
		return err
	}

	state, err = s.withCurrentValues(ctx, state)
	if err != nil {
		return err
	}
	return s.State.Write(state)
}

func (s *Supervisor) initialState() persistence.SystemState {
	return persistence.SystemState{
		TargetPpm:        s.Reservoir.Profile.TargetPpm,
		TargetWaterLevel: s.Reservoir.Profile.TargetWaterLevel,
	}
}

func (s *Supervisor) withCurrentValues(ctx context.Context, state persistence.SystemState) (persistence.SystemState, error) {
	level, err := s.Reservoir.MeasureLevel(ctx)
	if err != nil {
		return state, err
	}
	ppm, err := s.Reservoir.MeasurePpm(ctx)
	if err != nil {
		return state, err
	}
	state.CurrentWaterLevel = level
	state.CurrentPpm = ppm
	return state, nil
}
