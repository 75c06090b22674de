package calibration

import (
	"errors"

	"github.com/markusressel/hydro2go/internal/ui"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the stored calibration, the daemon recalibrates on its next start",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loadConfig()
		p := openPersistence()

		err := errors.Join(p.DeleteCalibration(), p.DeletePumpTimeTable())
		if err != nil {
			return err
		}
		ui.Success("Calibration deleted")
		return nil
	},
}

func init() {
	Command.AddCommand(deleteCmd)
}
