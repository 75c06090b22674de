package sensors

import (
	"context"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/markusressel/hydro2go/internal/configuration"
	"github.com/markusressel/hydro2go/internal/util"
)

// FileSensor reads the first non-empty line of a file, e.g. a 1-wire temperature
// or a sysfs IIO raw ADC value, and multiplies it with the configured scale.
type FileSensor struct {
	Config    configuration.SensorConfig `json:"configuration"`
	MovingAvg float64                    `json:"movingAvg"`
}

func (sensor *FileSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *FileSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor *FileSensor) GetValue(ctx context.Context) (float64, error) {
	filePath := sensor.Config.File.Path
	// resolve home dir path
	if strings.HasPrefix(filePath, "~") {
		currentUser, err := user.Current()
		if err != nil {
			return 0, err
		}

		filePath = filepath.Join(currentUser.HomeDir, filePath[1:])
	}

	value, err := util.ReadFloatFromFile(filePath)
	if err != nil {
		return 0, noValue(sensor.GetId(), err)
	}

	scale := sensor.Config.File.Scale
	if scale == 0 {
		scale = 1
	}
	return value * scale, nil
}

func (sensor *FileSensor) GetMovingAvg() (avg float64) {
	return sensor.MovingAvg
}

func (sensor *FileSensor) SetMovingAvg(avg float64) {
	sensor.MovingAvg = avg
}
