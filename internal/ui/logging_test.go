package ui

import (
	"os"

	"github.com/pterm/pterm"
)

func ExamplePrintfln() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	Printfln("%.2f", 4.5)
	// Output:
	// 4.50
}

func ExampleDebug() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()
	SetDebugEnabled(true)
	defer SetDebugEnabled(false)

	Debug("Sampled %d values", 5)
	// Output:
	// DEBUG: Sampled 5 values
}

func ExampleInfo() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	Info("Water level: %.2f in", 5.25)
	// Output:
	// INFO: Water level: 5.25 in
}

func ExampleSuccess() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	Success("Pump %s primed", "fill")
	// Output:
	// SUCCESS: Pump fill primed
}

func ExampleWarning() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	Warning("pH %.1f outside of [%.1f, %.1f]", 7.5, 5.5, 6.5)
	// Output:
	// WARNING: pH 7.5 outside of [5.5, 6.5]
}

func ExampleError() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	Error("Failed to stop pumps: %v", os.ErrClosed)
	// Output:
	// ERROR: Failed to stop pumps: file already closed
}
