package sensor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/markusressel/hydro2go/internal"
	"github.com/markusressel/hydro2go/internal/configuration"
	"github.com/markusressel/hydro2go/internal/sensors"
	"github.com/markusressel/hydro2go/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	sensorId string
	averaged bool
	asJson   bool
)

var Command = &cobra.Command{
	Use:              "sensor",
	Short:            "Print the current value of a sensor",
	Long:             ``,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		objects, err := initialize()
		if err != nil {
			return err
		}
		defer objects.Close()

		sensor, exists := sensors.SensorMap.Get(sensorId)
		if !exists {
			return fmt.Errorf("no sensor with id found: %s, options: %s", sensorId, sensors.SensorMap.Keys())
		}

		ctx := context.Background()
		var reading sensors.Reading
		if averaged {
			var value float64
			value, err = sensors.SampleSensor(ctx, sensor, configuration.CurrentConfig.Sampling)
			reading = sensors.Reading{Kind: sensor.GetConfig().Kind, Value: value, Time: time.Now()}
		} else {
			reading, err = sensors.Read(ctx, sensor)
		}
		if err != nil {
			return err
		}

		if asJson {
			data, err := json.Marshal(reading)
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}
		fmt.Printf("%.2f", reading.Value)
		return nil
	},
}

func init() {
	Command.PersistentFlags().StringVarP(
		&sensorId,
		"id", "i",
		"",
		"Sensor ID as specified in the config",
	)
	_ = Command.MarkPersistentFlagRequired("id")
	Command.Flags().BoolVarP(&asJson, "json", "j", false, "Print the reading as JSON including kind and timestamp")
	Command.Flags().BoolVarP(&averaged, "averaged", "a", false, "Average multiple reads using the sampling configuration")
}

func initialize() (*internal.Objects, error) {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	err := configuration.Validate(configPath)
	if err != nil {
		ui.FatalWithoutStacktrace("%v", err)
	}

	return internal.InitializeObjects(configuration.CurrentConfig)
}
