package statistics

import (
	"github.com/markusressel/hydro2go/internal/pumps"
	"github.com/prometheus/client_golang/prometheus"
)

const pumpSubsystem = "pump"

type PumpCollector struct {
	pumps     []pumps.Pump
	running   *prometheus.Desc
	direction *prometheus.Desc
}

func NewPumpCollector(pumps []pumps.Pump) *PumpCollector {
	return &PumpCollector{
		pumps: pumps,
		running: prometheus.NewDesc(prometheus.BuildFQName(namespace, pumpSubsystem, "running"),
			"1 if the pump is currently running, 0 otherwise",
			[]string{"id"}, nil,
		),
		direction: prometheus.NewDesc(prometheus.BuildFQName(namespace, pumpSubsystem, "direction"),
			"Current direction of the pump (1 forward, -1 reverse, 0 stopped)",
			[]string{"id"}, nil,
		),
	}
}

func (collector *PumpCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.running
	ch <- collector.direction
}

// Collect implements required collect function for all prometheus collectors
func (collector *PumpCollector) Collect(ch chan<- prometheus.Metric) {
	for _, pump := range collector.pumps {
		pumpId := pump.GetId()

		var running, direction float64
		switch pump.GetState() {
		case pumps.StateForward:
			running, direction = 1, 1
		case pumps.StateReverse:
			running, direction = 1, -1
		}

		ch <- prometheus.MustNewConstMetric(collector.running, prometheus.GaugeValue, running, pumpId)
		ch <- prometheus.MustNewConstMetric(collector.direction, prometheus.GaugeValue, direction, pumpId)
	}
}
