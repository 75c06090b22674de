package testingutils

import (
	"context"
	"errors"
	"sync"

	"github.com/markusressel/hydro2go/internal/configuration"
	"github.com/markusressel/hydro2go/internal/pumps"
)

// Events records the order of actuations across several mock pumps
type Events struct {
	mu   sync.Mutex
	list []string
}

func (e *Events) Add(event string) {
	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.list = append(e.list, event)
}

func (e *Events) List() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.list...)
}

// MockPump is an in-memory pump that records every call
type MockPump struct {
	ID         string
	Reversible bool
	StopErr    error
	OnStart    func()
	Events     *Events

	mu      sync.Mutex
	state   pumps.State
	starts  int
	stops   int
	reverse int
}

func NewMockPump(id string, reversible bool, events *Events) *MockPump {
	return &MockPump{ID: id, Reversible: reversible, Events: events, state: pumps.StateStopped}
}

func (p *MockPump) GetId() string {
	return p.ID
}

func (p *MockPump) GetConfig() configuration.PumpConfig {
	return configuration.PumpConfig{ID: p.ID, Direction: configuration.PumpDirectionNormal, Speed: 1}
}

func (p *MockPump) Start() error {
	p.mu.Lock()
	p.starts++
	p.state = pumps.StateForward
	onStart := p.OnStart
	p.mu.Unlock()
	p.Events.Add(p.ID + ":start")
	if onStart != nil {
		onStart()
	}
	return nil
}

func (p *MockPump) StartReverse() error {
	if !p.Reversible {
		return pumps.ErrMissingCapability
	}
	p.mu.Lock()
	p.reverse++
	p.state = pumps.StateReverse
	p.mu.Unlock()
	p.Events.Add(p.ID + ":reverse")
	return nil
}

func (p *MockPump) Stop() error {
	p.mu.Lock()
	p.stops++
	p.state = pumps.StateStopped
	p.mu.Unlock()
	p.Events.Add(p.ID + ":stop")
	return p.StopErr
}

func (p *MockPump) GetState() pumps.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *MockPump) Supports(feature pumps.FeatureFlag) bool {
	return feature == pumps.FeatureReverse && p.Reversible
}

func (p *MockPump) Starts() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.starts
}

func (p *MockPump) Stops() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stops
}

func (p *MockPump) Reverses() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reverse
}

// SequenceMeasurement returns the given values in order and repeats the last one
type SequenceMeasurement struct {
	Values []float64
	// Errors at the given call index (0 based) are returned instead of a value
	Errors map[int]error

	mu    sync.Mutex
	calls int
}

func (m *SequenceMeasurement) Measure(ctx context.Context) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.calls
	m.calls++
	if err, ok := m.Errors[i]; ok {
		return 0, err
	}
	if len(m.Values) == 0 {
		return 0, errors.New("no values")
	}
	if i >= len(m.Values) {
		i = len(m.Values) - 1
	}
	return m.Values[i], nil
}

func (m *SequenceMeasurement) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
