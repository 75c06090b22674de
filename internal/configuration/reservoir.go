package configuration

// ReservoirConfig assigns configured sensors and pumps to their role in the reservoir
type ReservoirConfig struct {
	WaterLevelSensor  string `json:"waterLevelSensor"`
	EcSensor          string `json:"ecSensor"`
	PhSensor          string `json:"phSensor"`
	TemperatureSensor string `json:"temperatureSensor,omitempty"`

	FillPump   string `json:"fillPump"`
	PhUpPump   string `json:"phUpPump"`
	PhDownPump string `json:"phDownPump"`
}
