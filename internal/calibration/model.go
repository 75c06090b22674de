package calibration

import (
	"errors"
	"sync"

	"github.com/markusressel/hydro2go/internal/util"
)

var (
	ErrInsufficientCalibrationData = errors.New("insufficient calibration data")
	ErrNoCalibration               = errors.New("no calibration available")
	ErrCalibrationPersistFailure   = errors.New("failed to persist calibration")
	ErrActuatorStopTimeout         = errors.New("actuator did not stop in time")
)

// Point pairs a known water level (inches) with the raw sensor reading taken at it
type Point struct {
	Level float64 `json:"level"`
	Raw   float64 `json:"raw"`
}

// Model maps a raw reading to a level: level = A*raw^2 + B*raw + C
type Model struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
}

// Level evaluates the model, rounded to hundredths of an inch
func Level(raw float64, model Model) float64 {
	value := model.A*raw*raw + model.B*raw + model.C
	return util.Round(value, 2)
}

// Estimator converts raw readings using the currently loaded model
type Estimator struct {
	mu    sync.RWMutex
	model *Model
}

func NewEstimator() *Estimator {
	return &Estimator{}
}

func (e *Estimator) SetModel(model Model) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.model = &model
}

func (e *Estimator) GetModel() (Model, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.model == nil {
		return Model{}, false
	}
	return *e.model, true
}

func (e *Estimator) Estimate(raw float64) (float64, error) {
	model, ok := e.GetModel()
	if !ok {
		return 0, ErrNoCalibration
	}
	return Level(raw, model), nil
}
