package statuscolor

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	success  = color.New(color.FgGreen)
	redirect = color.New(color.FgCyan)
	failure  = color.New(color.FgRed)
	gray     = color.New(color.FgHiBlack)
)

func colorFor(status int) *color.Color {
	switch {
	case status == 0:
		return gray
	case status < 300:
		return success
	case status < 400:
		return redirect
	default:
		return failure
	}
}

// Sprint returns a colorized status code string.
func Sprint(status int) string {
	if status == 0 {
		return gray.Sprint("—")
	}
	return colorFor(status).Sprint(fmt.Sprintf("%d", status))
}

// WrapByStatus wraps text with the color that corresponds to the supplied
// status code: green below 300, cyan for redirects, red for 4xx/5xx.
func WrapByStatus(text string, status int) string {
	return colorFor(status).Sprint(text)
}

// Error wraps text with the failure color.
func Error(text string) string {
	return failure.Sprint(text)
}

// Gray wraps text with a dim color.
func Gray(text string) string {
	return gray.Sprint(text)
}
