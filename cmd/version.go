package cmd

import (
	"github.com/markusressel/hydro2go/internal/ui"
	"github.com/spf13/cobra"
)

// Version is overridden at build time via -ldflags "-X github.com/markusressel/hydro2go/cmd.Version=..."
var Version = "0.1.0-dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of hydro2go",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ui.Printfln("%s", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
