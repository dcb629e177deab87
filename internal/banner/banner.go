package banner

import (
	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
)

// Print writes the startup banner to stdout.
func Print(version string) {
	myFigure := figure.NewColorFigure("URLUP", "doom", "cyan", true)
	myFigure.Print()

	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)

	_, _ = cyan.Println("════════════════════════════════════════════════")
	_, _ = green.Println("    Dereference URLs to their final destinations | v" + version)
	_, _ = cyan.Println("════════════════════════════════════════════════")
}
