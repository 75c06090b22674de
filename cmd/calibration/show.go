package calibration

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/hydro2go/cmd/global"
	"github.com/markusressel/hydro2go/internal/calibration"
	"github.com/markusressel/hydro2go/internal/ui"
	"github.com/markusressel/hydro2go/internal/util"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored calibration and fill time table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loadConfig()
		p := openPersistence()

		model, err := p.LoadCalibration()
		if errors.Is(err, os.ErrNotExist) {
			ui.Printfln("No calibration yet, run 'hydro2go calibration run' first")
			return nil
		}
		if err != nil {
			return err
		}
		printModel(model)

		timeTable, err := p.LoadPumpTimeTable()
		if errors.Is(err, os.ErrNotExist) {
			ui.Printfln("No fill time table yet...")
			return nil
		}
		if err != nil {
			return err
		}

		keys := util.SortedKeys(timeTable)
		values := make([]float64, 0, len(keys))
		for _, k := range keys {
			values = append(values, timeTable[k])
		}

		caption := fmt.Sprintf("Fill time [s], %.2f in to %.2f in", float64(keys[0])/100, float64(keys[len(keys)-1])/100)
		graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
		ui.Printfln("%s", graph)
		return nil
	},
}

func init() {
	Command.AddCommand(showCmd)
}

func printModel(model calibration.Model) {
	printTable(table.Table{
		Headers: []string{"Coefficient", "Value"},
		Rows: [][]string{
			{"a (raw²)", fmt.Sprintf("%g", model.A)},
			{"b (raw)", fmt.Sprintf("%g", model.B)},
			{"c", fmt.Sprintf("%g", model.C)},
		},
	})
}

func printPoints(points []calibration.Point) {
	if len(points) == 0 {
		return
	}
	var rows [][]string
	for _, point := range points {
		rows = append(rows, []string{
			fmt.Sprintf("%.2f", point.Level),
			fmt.Sprintf("%.2f", point.Raw),
		})
	}
	printTable(table.Table{
		Headers: []string{"Level [in]", "Raw"},
		Rows:    rows,
	})
}

func printTable(tab table.Table) {
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
		panic(tableErr)
	}
	ui.Printfln("%s", buf.String())
}
