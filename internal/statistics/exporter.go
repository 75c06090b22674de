package statistics

import "github.com/prometheus/client_golang/prometheus"

const (
	namespace = "hydro2go"
)

// Register adds the given collectors to the default prometheus registry,
// it panics on duplicate metric descriptors
func Register(collectors ...prometheus.Collector) {
	prometheus.MustRegister(collectors...)
}
