package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/markusressel/hydro2go/internal/configuration"
	"github.com/markusressel/hydro2go/internal/ui"
)

const publishTimeout = 5 * time.Second

type publishClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MqttPublisher forwards Hub changes to an MQTT broker
type MqttPublisher struct {
	client      publishClient
	topicPrefix string
}

// NewMqttClient creates and connects a client for the configured broker
func NewMqttClient(config configuration.MqttConfig) (mqtt.Client, error) {
	if len(config.Broker) <= 0 {
		return nil, errors.New("mqtt: no broker configured")
	}
	opts := mqtt.NewClientOptions().AddBroker(config.Broker)
	opts.SetClientID(config.ClientId)
	if len(config.Username) > 0 {
		opts.SetUsername(config.Username)
		opts.SetPassword(config.Password)
	}
	opts.SetAutoReconnect(true)
	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		ui.Warning("MQTT connection lost: %v", err)
	})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	token.Wait()
	if token.Error() != nil {
		return nil, fmt.Errorf("mqtt: unable to connect to %s: %w", config.Broker, token.Error())
	}
	return client, nil
}

func NewMqttPublisher(client publishClient, topicPrefix string) *MqttPublisher {
	return &MqttPublisher{
		client:      client,
		topicPrefix: topicPrefix,
	}
}

func (p *MqttPublisher) OnTelemetry(snapshot Snapshot) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		ui.Error("Error marshalling telemetry: %v", err)
		return
	}
	p.publish("telemetry", payload)
	p.publish("ph", formatValue(snapshot.Ph))
	p.publish("ppm", formatValue(snapshot.Ppm))
	p.publish("water_level", formatValue(snapshot.WaterLevel))
	p.publish("temperature", formatValue(snapshot.Temperature))
}

func (p *MqttPublisher) OnLog(entry LogEntry) {
	payload, err := json.Marshal(entry)
	if err != nil {
		ui.Error("Error marshalling log entry: %v", err)
		return
	}
	p.publish("log", payload)
}

func (p *MqttPublisher) topic(name string) string {
	if len(p.topicPrefix) <= 0 {
		return name
	}
	return p.topicPrefix + "/" + name
}

func (p *MqttPublisher) publish(name string, payload []byte) {
	topic := p.topic(name)
	token := p.client.Publish(topic, 0, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		ui.Warning("Timeout publishing to %s", topic)
		return
	}
	if token.Error() != nil {
		ui.Warning("Failed to publish to %s: %v", topic, token.Error())
	}
}

func formatValue(value float64) []byte {
	return []byte(strconv.FormatFloat(value, 'f', -1, 64))
}
