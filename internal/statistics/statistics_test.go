package statistics

import (
	"context"
	"strings"
	"testing"

	"github.com/markusressel/hydro2go/internal/configuration"
	"github.com/markusressel/hydro2go/internal/controller"
	"github.com/markusressel/hydro2go/internal/pumps"
	"github.com/markusressel/hydro2go/internal/sensors"
	"github.com/markusressel/hydro2go/internal/telemetry"
	"github.com/markusressel/hydro2go/internal/testingutils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
)

type staticSensor struct {
	config    configuration.SensorConfig
	movingAvg float64
}

func (s *staticSensor) GetId() string                                 { return s.config.ID }
func (s *staticSensor) GetConfig() configuration.SensorConfig         { return s.config }
func (s *staticSensor) GetValue(ctx context.Context) (float64, error) { return s.movingAvg, nil }
func (s *staticSensor) GetMovingAvg() float64                         { return s.movingAvg }
func (s *staticSensor) SetMovingAvg(avg float64)                      { s.movingAvg = avg }

// collectValues returns the value of every collected metric by its fully qualified name and first label
func collectValues(t *testing.T, collector prometheus.Collector) map[string]float64 {
	ch := make(chan prometheus.Metric, 100)
	collector.Collect(ch)
	close(ch)

	result := map[string]float64{}
	for m := range ch {
		metric := &dto.Metric{}
		assert.NoError(t, m.Write(metric))

		desc := m.Desc().String()
		start := strings.Index(desc, "fqName: \"") + len("fqName: \"")
		name := desc[start : start+strings.Index(desc[start:], "\"")]
		if len(metric.GetLabel()) > 0 {
			name += "/" + metric.GetLabel()[0].GetValue()
		}

		switch {
		case metric.GetGauge() != nil:
			result[name] = metric.GetGauge().GetValue()
		case metric.GetCounter() != nil:
			result[name] = metric.GetCounter().GetValue()
		}
	}
	return result
}

func TestPumpCollector(t *testing.T) {
	// GIVEN
	forward := testingutils.NewMockPump("fill", false, nil)
	reverse := testingutils.NewMockPump("grow", true, nil)
	stopped := testingutils.NewMockPump("bloom", true, nil)
	_ = forward.Start()
	_ = reverse.StartReverse()
	collector := NewPumpCollector([]pumps.Pump{forward, reverse, stopped})

	// WHEN
	values := collectValues(t, collector)

	// THEN
	assert.Equal(t, 6, testutil.CollectAndCount(collector))
	assert.Equal(t, 1.0, values["hydro2go_pump_running/fill"])
	assert.Equal(t, 1.0, values["hydro2go_pump_direction/fill"])
	assert.Equal(t, 1.0, values["hydro2go_pump_running/grow"])
	assert.Equal(t, -1.0, values["hydro2go_pump_direction/grow"])
	assert.Equal(t, 0.0, values["hydro2go_pump_running/bloom"])
	assert.Equal(t, 0.0, values["hydro2go_pump_direction/bloom"])
}

func TestSensorCollector(t *testing.T) {
	// GIVEN
	sensor := &staticSensor{
		config:    configuration.SensorConfig{ID: "ph_probe", Kind: configuration.SensorKindPh},
		movingAvg: 5.8,
	}
	collector := NewSensorCollector([]sensors.Sensor{sensor})

	// WHEN
	values := collectValues(t, collector)

	// THEN
	assert.Equal(t, 5.8, values["hydro2go_sensor_value/ph_probe"])
}

func TestControllerCollector(t *testing.T) {
	// GIVEN
	stats := &controller.Statistics{}
	stats.FillBursts.Add(3)
	stats.DosingCycles.Add(2)
	stats.Timeouts.Add(1)
	collector := NewControllerCollector(stats)

	// WHEN
	values := collectValues(t, collector)

	// THEN
	assert.Equal(t, 3.0, values["hydro2go_controller_fill_bursts_total"])
	assert.Equal(t, 2.0, values["hydro2go_controller_dosing_cycles_total"])
	assert.Equal(t, 0.0, values["hydro2go_controller_ph_cycles_total"])
	assert.Equal(t, 1.0, values["hydro2go_controller_timeouts_total"])
}

func TestTelemetryCollector_NoValues(t *testing.T) {
	// GIVEN
	collector := NewTelemetryCollector(telemetry.NewHub(10))

	// WHEN
	count := testutil.CollectAndCount(collector)

	// THEN
	assert.Equal(t, 0, count)
}

func TestTelemetryCollector(t *testing.T) {
	// GIVEN
	hub := telemetry.NewHub(10)
	hub.SetPh(6.1)
	hub.SetPpm(750)
	hub.SetWaterLevel(4.5)
	collector := NewTelemetryCollector(hub)

	// WHEN
	values := collectValues(t, collector)

	// THEN
	assert.Equal(t, 6.1, values["hydro2go_reservoir_ph"])
	assert.Equal(t, 750.0, values["hydro2go_reservoir_ppm"])
	assert.Equal(t, 4.5, values["hydro2go_reservoir_water_level_inches"])
	assert.Equal(t, 0.0, values["hydro2go_reservoir_temperature_celsius"])
}
