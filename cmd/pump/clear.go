package pump

import (
	"github.com/markusressel/hydro2go/internal/pumps"
	"github.com/markusressel/hydro2go/internal/ui"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the lines of the selected pumps by running them in reverse",
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

		operator := ui.NewTerminalOperator()
		for _, pump := range list {
			if !pump.Supports(pumps.FeatureReverse) {
				ui.Warning("Pump %s cannot run in reverse, skipping", pump.GetId())
				continue
			}
			if err := pumps.ClearLines(ctx, operator, pump); err != nil {
				return err
			}
		}
		ui.Success("Lines cleared")
		return nil
	},
}

func init() {
	Command.AddCommand(clearCmd)
}
