package calibration

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/markusressel/hydro2go/internal"
	"github.com/markusressel/hydro2go/internal/calibration"
	"github.com/markusressel/hydro2go/internal/configuration"
	"github.com/markusressel/hydro2go/internal/pumps"
	"github.com/markusressel/hydro2go/internal/sensors"
	"github.com/markusressel/hydro2go/internal/ui"
	"github.com/spf13/cobra"
)

var noFill bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Calibrate the water level sensor",
	Long: `Walks through all configured calibration levels. At every level the fill pump is
pulsed until you confirm the level, unless --no-fill is given. The fitted model
replaces any existing calibration.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loadConfig()
		config := configuration.CurrentConfig

		objects, err := internal.InitializeObjects(config)
		if err != nil {
			return err
		}
		defer objects.Close()

		waterSensor, ok := sensors.SensorMap.Get(config.Reservoir.WaterLevelSensor)
		if !ok {
			return errors.New("no water level sensor configured")
		}
		fillPump, _ := pumps.PumpMap.Get(config.Reservoir.FillPump)
		if noFill {
			config.Calibration.AutoFill.SetOverride(false)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		defer func() { _ = pumps.StopAll() }()

		engine := calibration.NewEngine(
			ui.NewTerminalOperator(),
			waterSensor.GetValue,
			config.Sampling,
			openPersistence(),
			config.Calibration,
		)
		model, err := engine.Calibrate(ctx, config.Calibration.Levels, fillPump)
		if err != nil && !errors.Is(err, calibration.ErrCalibrationPersistFailure) {
			return err
		}

		printModel(model)
		printPoints(engine.GetPoints())
		if err != nil {
			return err
		}
		ui.Success("Calibration saved")
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVarP(&noFill, "no-fill", "", false, "Do not pulse the fill pump, fill the reservoir by hand")
	Command.AddCommand(runCmd)
}
