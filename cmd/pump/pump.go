package pump

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/markusressel/hydro2go/internal"
	"github.com/markusressel/hydro2go/internal/configuration"
	"github.com/markusressel/hydro2go/internal/pumps"
	"github.com/markusressel/hydro2go/internal/ui"
	"github.com/markusressel/hydro2go/internal/util"
	"github.com/spf13/cobra"
)

var pumpIds []string

var Command = &cobra.Command{
	Use:              "pump",
	Short:            "Pump related commands",
	Long:             ``,
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().StringSliceVarP(
		&pumpIds,
		"id", "i",
		[]string{},
		"Pump ID(s) as specified in the config, all pumps if omitted",
	)
}

func initialize() (*internal.Objects, error) {
	configPath := configuration.DetectConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	err := configuration.Validate(configPath)
	if err != nil {
		ui.FatalWithoutStacktrace("%v", err)
	}

	return internal.InitializeObjects(configuration.CurrentConfig)
}

// selectedPumps resolves the --id flag, in config order when no id is given
func selectedPumps() ([]pumps.Pump, error) {
	if len(pumpIds) > 0 {
		return pumps.GetPumps(pumpIds...)
	}
	return pumps.GetPumps(util.SortedKeys(pumps.PumpMap.Items())...)
}

// interruptContext is cancelled on SIGINT/SIGTERM, so pumps are stopped when the user aborts
func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
