package pump

import (
	"time"

	"github.com/markusressel/hydro2go/internal/pumps"
	"github.com/markusressel/hydro2go/internal/ui"
	"github.com/spf13/cobra"
)

var (
	runDuration time.Duration
	runReverse  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the selected pumps for a fixed duration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		objects, err := initialize()
		if err != nil {
			return err
		}
		defer objects.Close()

		list, err := selectedPumps()
		if err != nil {
			return err
		}

		ctx, cancel := interruptContext()
		defer cancel()

		for _, pump := range list {
			ui.Info("Running pump %s for %s", pump.GetId(), runDuration)
			if runReverse {
				err = pumps.RunReverseFor(ctx, pump, runDuration)
			} else {
				err = pumps.RunFor(ctx, pump, runDuration)
			}
			if err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	runCmd.Flags().DurationVarP(&runDuration, "duration", "d", 1*time.Second, "How long each pump runs")
	runCmd.Flags().BoolVarP(&runReverse, "reverse", "r", false, "Run the pumps backwards")
	Command.AddCommand(runCmd)
}
