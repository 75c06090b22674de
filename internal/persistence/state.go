package persistence

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/markusressel/hydro2go/internal/util"
)

var stateHeader = []string{"target_ppm", "target_water_level", "current_ppm", "current_water_level"}

// SystemState is the minimal information needed to resume after a restart
type SystemState struct {
	TargetPpm         float64 `json:"targetPpm"`
	TargetWaterLevel  float64 `json:"targetWaterLevel"`
	CurrentPpm        float64 `json:"currentPpm"`
	CurrentWaterLevel float64 `json:"currentWaterLevel"`
}

// StateStore keeps the SystemState in a single record CSV file.
// Writes replace the file atomically and are serialized.
type StateStore struct {
	path string
	mu   sync.Mutex
}

func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

func (s *StateStore) Path() string {
	return s.path
}

// Read returns the persisted state, os.ErrNotExist if there is none
func (s *StateStore) Read() (SystemState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *StateStore) Write(state SystemState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(state)
}

// Update applies fn to the current state and persists the result as one transaction.
// A missing state is passed to fn as the zero value together with exists=false.
func (s *StateStore) Update(fn func(state SystemState, exists bool) SystemState) (SystemState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read()
	exists := err == nil
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return SystemState{}, err
	}
	next := fn(current, exists)
	return next, s.write(next)
}

func (s *StateStore) read() (SystemState, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return SystemState{}, os.ErrNotExist
	}
	if err != nil {
		return SystemState{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return SystemState{}, fmt.Errorf("%w: %s: %w", ErrPersistence, s.path, err)
	}
	if len(records) == 0 {
		return SystemState{}, os.ErrNotExist
	}
	record := records[len(records)-1]
	if len(records) == 1 && record[0] == stateHeader[0] {
		return SystemState{}, os.ErrNotExist
	}
	if len(record) != len(stateHeader) {
		return SystemState{}, fmt.Errorf("%w: %s: expected %d fields, got %d", ErrPersistence, s.path, len(stateHeader), len(record))
	}

	values := make([]float64, len(record))
	for i, field := range record {
		values[i], err = strconv.ParseFloat(field, 64)
		if err != nil {
			return SystemState{}, fmt.Errorf("%w: %s: invalid %s: %w", ErrPersistence, s.path, stateHeader[i], err)
		}
	}

	return SystemState{
		TargetPpm:         values[0],
		TargetWaterLevel:  values[1],
		CurrentPpm:        values[2],
		CurrentWaterLevel: values[3],
	}, nil
}

func (s *StateStore) write(state SystemState) error {
	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)
	record := []string{
		formatFloat(state.TargetPpm),
		formatFloat(state.TargetWaterLevel),
		formatFloat(state.CurrentPpm),
		formatFloat(state.CurrentWaterLevel),
	}
	if err := writer.WriteAll([][]string{stateHeader, record}); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	if err := util.WriteStringToFileAtomic(buffer.String(), s.path); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
