package statistics

import (
	"github.com/markusressel/hydro2go/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const controllerSubsystem = "controller"

type ControllerCollector struct {
	statistics *controller.Statistics

	fillBursts   *prometheus.Desc
	dosingCycles *prometheus.Desc
	phCycles     *prometheus.Desc
	timeouts     *prometheus.Desc
}

func NewControllerCollector(statistics *controller.Statistics) *ControllerCollector {
	return &ControllerCollector{
		statistics: statistics,
		fillBursts: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "fill_bursts_total"),
			"Number of fill pump bursts run by the water level controller",
			nil, nil,
		),
		dosingCycles: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "dosing_cycles_total"),
			"Number of nutrient dosing cycles",
			nil, nil,
		),
		phCycles: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "ph_cycles_total"),
			"Number of pH correction cycles",
			nil, nil,
		),
		timeouts: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "timeouts_total"),
			"Number of dosing loops aborted because they exceeded their bounds",
			nil, nil,
		),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.fillBursts
	ch <- collector.dosingCycles
	ch <- collector.phCycles
	ch <- collector.timeouts
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	snapshot := collector.statistics.Snapshot()
	ch <- prometheus.MustNewConstMetric(collector.fillBursts, prometheus.CounterValue, float64(snapshot.FillBursts))
	ch <- prometheus.MustNewConstMetric(collector.dosingCycles, prometheus.CounterValue, float64(snapshot.DosingCycles))
	ch <- prometheus.MustNewConstMetric(collector.phCycles, prometheus.CounterValue, float64(snapshot.PhCycles))
	ch <- prometheus.MustNewConstMetric(collector.timeouts, prometheus.CounterValue, float64(snapshot.Timeouts))
}
