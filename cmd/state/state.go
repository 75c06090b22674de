package state

import (
	"bytes"
	"errors"
	"os"
	"strconv"

	"github.com/markusressel/hydro2go/cmd/global"
	"github.com/markusressel/hydro2go/internal/configuration"
	"github.com/markusressel/hydro2go/internal/persistence"
	"github.com/markusressel/hydro2go/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var Command = &cobra.Command{
	Use:              "state",
	Short:            "Persisted reservoir state related commands",
	Long:             ``,
	TraverseChildren: true,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the persisted targets and last measured values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := configuration.DetectConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()

		store := persistence.NewStateStore(configuration.CurrentConfig.StatePath)
		state, err := store.Read()
		if errors.Is(err, os.ErrNotExist) {
			ui.Printfln("No state persisted at %s yet", store.Path())
			return nil
		}
		if err != nil {
			return err
		}

		format := func(value float64) string {
			return strconv.FormatFloat(value, 'f', -1, 64)
		}
		tab := table.Table{
			Headers: []string{"", "Target", "Current"},
			Rows: [][]string{
				{"PPM", format(state.TargetPpm), format(state.CurrentPpm)},
				{"Water level [in]", format(state.TargetWaterLevel), format(state.CurrentWaterLevel)},
			},
		}
		var buf bytes.Buffer
		tableErr := tab.WriteTable(&buf, &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		})
		if tableErr != nil {
			return tableErr
		}
		ui.Printfln("%s", buf.String())
		return nil
	},
}

func init() {
	Command.AddCommand(showCmd)
}
