package calibration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/markusressel/hydro2go/internal/configuration"
	"github.com/markusressel/hydro2go/internal/testingutils"
	"github.com/markusressel/hydro2go/internal/ui"
	"github.com/stretchr/testify/assert"
)

type mockStore struct {
	models  []Model
	tables  []PumpTimeTable
	saveErr error
}

func (s *mockStore) SaveCalibration(model Model) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.models = append(s.models, model)
	return nil
}

func (s *mockStore) SavePumpTimeTable(table PumpTimeTable) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.tables = append(s.tables, table)
	return nil
}

// linearReader returns raw = level * 100 for the level currently "in" the reservoir
type linearReader struct {
	levels []float64
	reads  int
	per    int
}

func (r *linearReader) read(ctx context.Context) (float64, error) {
	i := r.reads / r.per
	r.reads++
	return r.levels[i] * 100, nil
}

func createSampling() configuration.SamplingConfig {
	return configuration.SamplingConfig{Samples: 2, Discard: 1, RetriesPerSample: 1}
}

func createEngine(operator ui.Operator, levels []float64, store ModelStore) *Engine {
	reader := &linearReader{levels: levels, per: 3}
	return NewEngine(operator, reader.read, createSampling(), store, configuration.CalibrationConfig{
		Levels:       levels,
		BurstOnTime:  time.Millisecond,
		BurstOffTime: time.Millisecond,
		StopTimeout:  time.Second,
	})
}

func TestFit_ExactLine(t *testing.T) {
	// GIVEN
	points := []Point{
		{Level: 1.5, Raw: 150},
		{Level: 3.0, Raw: 300},
		{Level: 4.5, Raw: 450},
	}

	// WHEN
	model, err := Fit(points)

	// THEN
	assert.NoError(t, err)
	assert.InDelta(t, 0, model.A, 1e-12)
	assert.InDelta(t, 0.01, model.B, 1e-12)
	assert.InDelta(t, 0, model.C, 1e-9)
}

func TestFit_Quadratic(t *testing.T) {
	// GIVEN
	f := func(x float64) float64 { return 0.00002*x*x + 0.003*x + 0.4 }
	var points []Point
	for _, raw := range []float64{120, 260, 410, 530, 700} {
		points = append(points, Point{Level: f(raw), Raw: raw})
	}

	// WHEN
	model, err := Fit(points)

	// THEN
	assert.NoError(t, err)
	assert.InDelta(t, 0.00002, model.A, 1e-12)
	assert.InDelta(t, 0.003, model.B, 1e-9)
	assert.InDelta(t, 0.4, model.C, 1e-7)
}

func TestFit_TooFewPoints(t *testing.T) {
	// WHEN
	_, err := Fit([]Point{{Level: 1, Raw: 100}, {Level: 2, Raw: 200}})

	// THEN
	assert.ErrorIs(t, err, ErrInsufficientCalibrationData)
}

func TestFit_TooFewDistinctRawValues(t *testing.T) {
	// GIVEN
	points := []Point{
		{Level: 1, Raw: 100},
		{Level: 2, Raw: 100},
		{Level: 3, Raw: 200},
	}

	// WHEN
	_, err := Fit(points)

	// THEN
	assert.ErrorIs(t, err, ErrInsufficientCalibrationData)
}

func TestLevel_IsPureAndRounded(t *testing.T) {
	// GIVEN
	model := Model{A: 0, B: 0.01, C: 0.004}

	// WHEN
	first := Level(333, model)
	second := Level(333, model)

	// THEN
	assert.Equal(t, 3.33, first)
	assert.Equal(t, first, second)
}

func TestEstimator_NoCalibration(t *testing.T) {
	// GIVEN
	estimator := NewEstimator()

	// WHEN
	_, err := estimator.Estimate(300)

	// THEN
	assert.ErrorIs(t, err, ErrNoCalibration)
}

func TestEstimator_Estimate(t *testing.T) {
	// GIVEN
	estimator := NewEstimator()
	estimator.SetModel(Model{B: 0.01})

	// WHEN
	level, err := estimator.Estimate(450)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 4.5, level)
}

func TestPumpTimeTable_EstimateFillTime(t *testing.T) {
	// GIVEN
	table := PumpTimeTable{}
	table.Add(1.5, 0)
	table.Add(2.0, 10*time.Second)
	table.Add(3.0, 30*time.Second)

	// WHEN
	estimate := table.EstimateFillTime(1.75, 2.5)

	// THEN
	assert.Equal(t, 15*time.Second, estimate)
	assert.Equal(t, time.Duration(0), table.EstimateFillTime(3, 2))
	assert.Equal(t, time.Duration(0), PumpTimeTable{}.EstimateFillTime(1, 2))
}

func TestEngine_CalibrateWithoutPump(t *testing.T) {
	// GIVEN
	levels := []float64{1.5, 3.0, 4.5}
	store := &mockStore{}
	operator := &ui.ScriptedOperator{Answers: []bool{false, true, true, true}}
	engine := createEngine(operator, levels, store)

	// WHEN
	model, err := engine.Calibrate(context.Background(), levels, nil)

	// THEN
	assert.NoError(t, err)
	assert.InDelta(t, 0.01, model.B, 1e-12)
	assert.Len(t, store.models, 1)
	assert.Empty(t, store.tables)
	assert.Equal(t, StateDone, engine.GetState())
	assert.Len(t, operator.Asked, 4)
	assert.Equal(t, []Point{{1.5, 150}, {3.0, 300}, {4.5, 450}}, engine.GetPoints())
}

func TestEngine_TooFewLevelsPersistsNothing(t *testing.T) {
	// GIVEN
	levels := []float64{1.5, 3.0}
	store := &mockStore{}
	engine := createEngine(&ui.ScriptedOperator{}, levels, store)

	// WHEN
	_, err := engine.Calibrate(context.Background(), levels, nil)

	// THEN
	assert.ErrorIs(t, err, ErrInsufficientCalibrationData)
	assert.Empty(t, store.models)
	assert.Empty(t, store.tables)
	assert.Equal(t, StateFailed, engine.GetState())
}

func TestEngine_PersistFailureReturnsModel(t *testing.T) {
	// GIVEN
	levels := []float64{1.5, 3.0, 4.5}
	storeErr := errors.New("disk full")
	store := &mockStore{saveErr: storeErr}
	engine := createEngine(&ui.ScriptedOperator{}, levels, store)

	// WHEN
	model, err := engine.Calibrate(context.Background(), levels, nil)

	// THEN
	assert.ErrorIs(t, err, ErrCalibrationPersistFailure)
	assert.ErrorIs(t, err, storeErr)
	assert.InDelta(t, 0.01, model.B, 1e-12)
}

func TestEngine_CalibrateWithFillPump(t *testing.T) {
	// GIVEN
	levels := []float64{1.5, 3.0, 4.5}
	store := &mockStore{}
	pump := testingutils.NewMockPump("water", false, nil)
	operator := &delayedOperator{delay: 20 * time.Millisecond}
	engine := createEngine(operator, levels, store)

	// WHEN
	_, err := engine.Calibrate(context.Background(), levels, pump)

	// THEN
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, pump.Starts(), 3)
	assert.Equal(t, pump.Starts(), pump.Stops())
	assert.Len(t, store.tables, 1)
	table := store.tables[0]
	assert.Len(t, table, 3)
	assert.Less(t, table[150], table[300])
	assert.Less(t, table[300], table[450])
}

func TestEngine_StopTimeout(t *testing.T) {
	// GIVEN
	levels := []float64{1.5, 3.0, 4.5}
	store := &mockStore{}
	pump := &stuckPump{MockPump: testingutils.NewMockPump("water", false, nil), release: make(chan struct{})}
	defer close(pump.release)
	engine := createEngine(&delayedOperator{delay: 20 * time.Millisecond}, levels, store)
	engine.Config.BurstOnTime = time.Hour
	engine.Config.StopTimeout = 20 * time.Millisecond

	// WHEN
	_, err := engine.Calibrate(context.Background(), levels, pump)

	// THEN
	assert.ErrorIs(t, err, ErrActuatorStopTimeout)
	assert.Equal(t, StateFailed, engine.GetState())
	assert.Empty(t, store.models)
}

// delayedOperator confirms every level after a short delay
type delayedOperator struct {
	delay time.Duration
}

func (o *delayedOperator) AwaitReady(ctx context.Context) error {
	return nil
}

func (o *delayedOperator) Confirm(ctx context.Context, label string) (bool, error) {
	time.Sleep(o.delay)
	return true, nil
}

// stuckPump never returns from Stop until released
type stuckPump struct {
	*testingutils.MockPump
	release chan struct{}
}

func (p *stuckPump) Stop() error {
	<-p.release
	return p.MockPump.Stop()
}
