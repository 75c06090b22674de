package pump

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/markusressel/hydro2go/cmd/global"
	"github.com/markusressel/hydro2go/internal/configuration"
	"github.com/markusressel/hydro2go/internal/pumps"
	"github.com/markusressel/hydro2go/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configured pumps",
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

		var rows [][]string
		for _, pump := range list {
			config := pump.GetConfig()
			rows = append(rows, []string{
				pump.GetId(),
				pumpType(config),
				directionText(config.Direction),
				strconv.FormatFloat(config.Speed, 'f', -1, 64),
				fmt.Sprintf("%v", pump.Supports(pumps.FeatureReverse)),
				string(pump.GetState()),
			})
		}

		tab := table.Table{
			Headers: []string{"ID", "Type", "Direction", "Speed", "Reversible", "State"},
			Rows:    rows,
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
	Command.AddCommand(listCmd)
}

func pumpType(config configuration.PumpConfig) string {
	switch {
	case config.Relay != nil:
		return "relay"
	case config.Motor != nil && config.Motor.File != nil:
		return "motor (file)"
	case config.Motor != nil && config.Motor.Cmd != nil:
		return "motor (cmd)"
	default:
		return "unknown"
	}
}

func directionText(direction configuration.PumpDirection) string {
	if direction == configuration.PumpDirectionReversed {
		return "reversed"
	}
	return "normal"
}
