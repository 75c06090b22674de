package calibration

import (
	"github.com/markusressel/hydro2go/internal/configuration"
	"github.com/markusressel/hydro2go/internal/persistence"
	"github.com/markusressel/hydro2go/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "calibration",
	Short:            "Water level calibration related commands",
	Long:             ``,
	TraverseChildren: true,
}

func loadConfig() {
	configPath := configuration.DetectConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	err := configuration.Validate(configPath)
	if err != nil {
		ui.FatalWithoutStacktrace("%v", err)
	}
}

func openPersistence() persistence.Persistence {
	p := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
	if err := p.Init(); err != nil {
		ui.FatalWithoutStacktrace("%v", err)
	}
	return p
}
