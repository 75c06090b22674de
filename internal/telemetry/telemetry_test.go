package telemetry

import (
	"errors"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
)

type recordingListener struct {
	mu        sync.Mutex
	snapshots []Snapshot
	logs      []LogEntry
}

func (l *recordingListener) OnTelemetry(snapshot Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.snapshots = append(l.snapshots, snapshot)
}

func (l *recordingListener) OnLog(entry LogEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logs = append(l.logs, entry)
}

type doneToken struct {
	err error
}

func (t doneToken) Wait() bool                     { return true }
func (t doneToken) WaitTimeout(time.Duration) bool { return true }
func (t doneToken) Error() error                   { return t.err }
func (t doneToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

type fakeClient struct {
	topics   []string
	payloads map[string]string
	err      error
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	if c.payloads == nil {
		c.payloads = map[string]string{}
	}
	c.topics = append(c.topics, topic)
	c.payloads[topic] = string(payload.([]byte))
	return doneToken{err: c.err}
}

func TestHub_SetValues(t *testing.T) {
	// GIVEN
	hub := NewHub(10)
	listener := &recordingListener{}
	hub.AddListener(listener)

	// WHEN
	hub.SetPh(5.8)
	hub.SetPpm(800)
	hub.SetWaterLevel(5.25)
	hub.SetTemperature(21.5)

	// THEN
	latest := hub.Latest()
	assert.Equal(t, 5.8, latest.Ph)
	assert.Equal(t, 800.0, latest.Ppm)
	assert.Equal(t, 5.25, latest.WaterLevel)
	assert.Equal(t, 21.5, latest.Temperature)
	assert.False(t, latest.UpdatedAt.IsZero())

	assert.Len(t, listener.snapshots, 4)
	assert.Equal(t, latest, listener.snapshots[3])
	assert.Equal(t, 5.8, listener.snapshots[0].Ph)
	assert.Equal(t, 0.0, listener.snapshots[0].Ppm)
}

func TestHub_Logs_Bounded(t *testing.T) {
	// GIVEN
	hub := NewHub(3)
	listener := &recordingListener{}
	hub.AddListener(listener)

	// WHEN
	for i := 0; i < 5; i++ {
		hub.Logf("entry %d", i)
	}

	// THEN
	logs := hub.Logs()
	assert.Len(t, logs, 3)
	assert.Equal(t, "entry 2", logs[0].Message)
	assert.Equal(t, "entry 4", logs[2].Message)
	assert.Len(t, listener.logs, 5)
}

func TestHub_Logs_ReturnsCopy(t *testing.T) {
	// GIVEN
	hub := NewHub(0)
	hub.Logf("a")

	// WHEN
	logs := hub.Logs()
	logs[0].Message = "changed"

	// THEN
	assert.Equal(t, "a", hub.Logs()[0].Message)
}

func TestMqttPublisher_OnTelemetry(t *testing.T) {
	// GIVEN
	client := &fakeClient{}
	publisher := NewMqttPublisher(client, "hydro2go")

	// WHEN
	publisher.OnTelemetry(Snapshot{Ph: 5.8, Ppm: 800, WaterLevel: 5.5, Temperature: 20})

	// THEN
	assert.Equal(t, []string{
		"hydro2go/telemetry",
		"hydro2go/ph",
		"hydro2go/ppm",
		"hydro2go/water_level",
		"hydro2go/temperature",
	}, client.topics)
	assert.Equal(t, "5.8", client.payloads["hydro2go/ph"])
	assert.Equal(t, "800", client.payloads["hydro2go/ppm"])
	assert.Contains(t, client.payloads["hydro2go/telemetry"], `"waterLevel":5.5`)
}

func TestMqttPublisher_OnLog_NoPrefix(t *testing.T) {
	// GIVEN
	client := &fakeClient{err: errors.New("broker gone")}
	publisher := NewMqttPublisher(client, "")

	// WHEN
	publisher.OnLog(LogEntry{Message: "filled"})

	// THEN
	assert.Equal(t, []string{"log"}, client.topics)
	assert.Contains(t, client.payloads["log"], `"message":"filled"`)
}

func TestHub_WithMqttPublisher(t *testing.T) {
	// GIVEN
	hub := NewHub(10)
	client := &fakeClient{}
	hub.AddListener(NewMqttPublisher(client, "tank"))

	// WHEN
	hub.SetPpm(650)

	// THEN
	assert.Equal(t, "650", client.payloads["tank/ppm"])
}
