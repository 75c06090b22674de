package config

import (
	"os"

	"github.com/markusressel/hydro2go/internal/configuration"
	"github.com/markusressel/hydro2go/internal/ui"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validates the current configuration",
	Long:  `Checks sensor and pump definitions, reservoir role assignments and the plant profile.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// the config file path comes from the root command (-c)
		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)

		if err := configuration.Validate(configPath); err != nil {
			ui.Error("Validation failed: %v", err)
			os.Exit(1)
		}

		config := configuration.CurrentConfig
		ui.Success(
			"Config looks good! %d sensors, %d pumps, profile '%s' with %d dosing steps",
			len(config.Sensors), len(config.Pumps), config.Profile.Name, len(config.Profile.DosingPlan),
		)
		return nil
	},
}

func init() {
	Command.AddCommand(validateCmd)
}
