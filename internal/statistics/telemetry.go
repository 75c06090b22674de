package statistics

import (
	"github.com/markusressel/hydro2go/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemReservoir = "reservoir"

type TelemetryCollector struct {
	hub *telemetry.Hub

	ph          *prometheus.Desc
	ppm         *prometheus.Desc
	waterLevel  *prometheus.Desc
	temperature *prometheus.Desc
}

func NewTelemetryCollector(hub *telemetry.Hub) *TelemetryCollector {
	return &TelemetryCollector{
		hub: hub,
		ph: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemReservoir, "ph"),
			"Last measured pH of the nutrient solution",
			nil, nil,
		),
		ppm: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemReservoir, "ppm"),
			"Last measured nutrient concentration in ppm",
			nil, nil,
		),
		waterLevel: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemReservoir, "water_level_inches"),
			"Last estimated water level",
			nil, nil,
		),
		temperature: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemReservoir, "temperature_celsius"),
			"Last measured water temperature",
			nil, nil,
		),
	}
}

func (collector *TelemetryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.ph
	ch <- collector.ppm
	ch <- collector.waterLevel
	ch <- collector.temperature
}

// Collect implements required collect function for all prometheus collectors
func (collector *TelemetryCollector) Collect(ch chan<- prometheus.Metric) {
	latest := collector.hub.Latest()
	if latest.UpdatedAt.IsZero() {
		// nothing measured yet
		return
	}
	ch <- prometheus.MustNewConstMetric(collector.ph, prometheus.GaugeValue, latest.Ph)
	ch <- prometheus.MustNewConstMetric(collector.ppm, prometheus.GaugeValue, latest.Ppm)
	ch <- prometheus.MustNewConstMetric(collector.waterLevel, prometheus.GaugeValue, latest.WaterLevel)
	ch <- prometheus.MustNewConstMetric(collector.temperature, prometheus.GaugeValue, latest.Temperature)
}
