package pump

import (
	"github.com/markusressel/hydro2go/internal/pumps"
	"github.com/markusressel/hydro2go/internal/ui"
	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the selected pumps",
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
		if err := pumps.StopList(list); err != nil {
			return err
		}
		ui.Success("Stopped %d pump(s)", len(list))
		return nil
	},
}

func init() {
	Command.AddCommand(stopCmd)
}
