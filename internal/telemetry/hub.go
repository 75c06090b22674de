package telemetry

import (
	"fmt"
	"sync"
	"time"

	"github.com/markusressel/hydro2go/internal/ui"
)

const DefaultLogSize = 100

// Snapshot holds the latest known values of the reservoir
type Snapshot struct {
	Ph          float64   `json:"ph"`
	Ppm         float64   `json:"ppm"`
	WaterLevel  float64   `json:"waterLevel"`
	Temperature float64   `json:"temperature"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type LogEntry struct {
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
}

// Listener is notified about every change of the Hub.
// Calls happen outside the Hub lock, on the goroutine that caused the change.
type Listener interface {
	OnTelemetry(snapshot Snapshot)
	OnLog(entry LogEntry)
}

// Hub is the export boundary for telemetry values and milestone log lines
type Hub struct {
	mu        sync.RWMutex
	latest    Snapshot
	logs      []LogEntry
	logSize   int
	listeners []Listener
	now       func() time.Time
}

func NewHub(logSize int) *Hub {
	if logSize <= 0 {
		logSize = DefaultLogSize
	}
	return &Hub{
		logSize: logSize,
		now:     time.Now,
	}
}

func (h *Hub) AddListener(listener Listener) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, listener)
}

func (h *Hub) SetPh(value float64) {
	h.update(func(s *Snapshot) { s.Ph = value })
}

func (h *Hub) SetPpm(value float64) {
	h.update(func(s *Snapshot) { s.Ppm = value })
}

func (h *Hub) SetWaterLevel(value float64) {
	h.update(func(s *Snapshot) { s.WaterLevel = value })
}

func (h *Hub) SetTemperature(value float64) {
	h.update(func(s *Snapshot) { s.Temperature = value })
}

func (h *Hub) Latest() Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest
}

// Logf records a milestone and prints it as info
func (h *Hub) Logf(format string, a ...interface{}) {
	message := fmt.Sprintf(format, a...)
	ui.Info("%s", message)

	h.mu.Lock()
	entry := LogEntry{Time: h.now(), Message: message}
	h.logs = append(h.logs, entry)
	if len(h.logs) > h.logSize {
		h.logs = h.logs[len(h.logs)-h.logSize:]
	}
	listeners := h.listeners
	h.mu.Unlock()

	for _, listener := range listeners {
		listener.OnLog(entry)
	}
}

// Logs returns a copy of the retained log lines, oldest first
func (h *Hub) Logs() []LogEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	result := make([]LogEntry, len(h.logs))
	copy(result, h.logs)
	return result
}

func (h *Hub) update(fn func(s *Snapshot)) {
	h.mu.Lock()
	fn(&h.latest)
	h.latest.UpdatedAt = h.now()
	snapshot := h.latest
	listeners := h.listeners
	h.mu.Unlock()

	for _, listener := range listeners {
		listener.OnTelemetry(snapshot)
	}
}
