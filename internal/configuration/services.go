package configuration

import (
	"fmt"
	"net"
	"strconv"
)

const defaultStatisticsPort = 9000

// ApiConfig configures the REST endpoints for telemetry, log, state and pumps
type ApiConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
}

func (c ApiConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// StatisticsConfig configures the prometheus exporter. It listens on all interfaces.
type StatisticsConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}

// Address falls back to the default exporter port for an out of range port
func (c StatisticsConfig) Address() string {
	port := c.Port
	if port <= 0 || port >= 65535 {
		port = defaultStatisticsPort
	}
	return fmt.Sprintf(":%d", port)
}

type ProfilingConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port,omitempty"`
}

func (c ProfilingConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// MqttConfig configures the telemetry publisher, topics are <TopicPrefix>/<name>
type MqttConfig struct {
	Enabled     bool   `json:"enabled"`
	Broker      string `json:"broker"`
	ClientId    string `json:"clientId"`
	Username    string `json:"username,omitempty"`
	Password    string `json:"password,omitempty"`
	TopicPrefix string `json:"topicPrefix"`
}
