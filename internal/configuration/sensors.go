package configuration

const (
	SensorKindPh       = "ph"
	SensorKindEc       = "ec"
	SensorKindWaterRaw = "water_raw"
	SensorKindTemp     = "temp"
)

type SensorConfig struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`

	Atlas *AtlasSensorConfig `json:"atlas,omitempty"`
	File  *FileSensorConfig  `json:"file,omitempty"`
	Cmd   *CmdSensorConfig   `json:"cmd,omitempty"`
}

// AtlasSensorConfig describes an EZO probe circuit on the I2C bus
type AtlasSensorConfig struct {
	Address int `json:"address"`
	// Id of a temperature sensor used for compensated reads
	TemperatureSensor string `json:"temperatureSensor,omitempty"`
	// Factor to convert EC (uS/cm) into PPM
	PpmFactor float64 `json:"ppmFactor,omitempty"`
}

type FileSensorConfig struct {
	Path string `json:"path"`
	// The raw value is multiplied with Scale, 0 means 1
	Scale float64 `json:"scale,omitempty"`
}

type CmdSensorConfig struct {
	Exec string   `json:"exec"`
	Args []string `json:"args"`
}
