package pump

import (
	"github.com/markusressel/hydro2go/internal/pumps"
	"github.com/markusressel/hydro2go/internal/ui"
	"github.com/spf13/cobra"
)

var primeCmd = &cobra.Command{
	Use:   "prime",
	Short: "Fill the lines of the selected pumps",
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
		defer func() { _ = pumps.StopList(list) }()

		if err := pumps.PrimeAll(ctx, ui.NewTerminalOperator(), list); err != nil {
			return err
		}
		ui.Success("All pumps primed")
		return nil
	},
}

func init() {
	Command.AddCommand(primeCmd)
}
