package cmd

import (
	"fmt"
	"os"

	"github.com/markusressel/hydro2go/cmd/calibration"
	"github.com/markusressel/hydro2go/cmd/config"
	"github.com/markusressel/hydro2go/cmd/global"
	"github.com/markusressel/hydro2go/cmd/pump"
	"github.com/markusressel/hydro2go/cmd/sensor"
	"github.com/markusressel/hydro2go/cmd/state"
	"github.com/markusressel/hydro2go/internal"
	"github.com/markusressel/hydro2go/internal/configuration"
	"github.com/markusressel/hydro2go/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hydro2go",
	Short: "A daemon to keep a hydroponic reservoir in balance.",
	Long: `hydro2go is a daemon that keeps the water level, nutrient
concentration and pH of a hydroponic reservoir at their targets.`,
	// this is the default command to run when no subcommand is specified
	Run: func(cmd *cobra.Command, args []string) {
		printHeader()
		ui.Info("hydro2go %s", Version)

		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		if err := configuration.Validate(configPath); err != nil {
			ui.ErrorAndNotify("Config Validation Error", "%s", err.Error())
			os.Exit(1)
		}

		internal.RunDaemon()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&global.CfgFile, "config", "c", "", "config file (default is $HOME/hydro2go.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&global.NoColor, "no-color", "", false, "Disable all terminal output coloration")
	rootCmd.PersistentFlags().BoolVarP(&global.NoStyle, "no-style", "", false, "Disable all terminal output styling")
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "More verbose output")

	rootCmd.AddCommand(config.Command)

	rootCmd.AddCommand(sensor.Command)
	rootCmd.AddCommand(pump.Command)
	rootCmd.AddCommand(calibration.Command)
	rootCmd.AddCommand(state.Command)
}

func setupUi() {
	ui.SetDebugEnabled(global.Verbose)

	if global.NoColor {
		pterm.DisableColor()
	}
	if global.NoStyle {
		pterm.DisableStyling()
	}
}

// Print a large text with the LetterStyle from the standard theme.
func printHeader() {
	err := pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("hydro", pterm.NewStyle(pterm.FgLightGreen)),
		pterm.NewLettersFromStringWithStyle("2", pterm.NewStyle(pterm.FgWhite)),
		pterm.NewLettersFromStringWithStyle("go", pterm.NewStyle(pterm.FgLightGreen)),
	).Render()
	if err != nil {
		fmt.Println("hydro2go")
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.OnInitialize(func() {
		configuration.InitConfig(global.CfgFile)
		setupUi()
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
