package ui

import (
	"fmt"
	"io"
	"os"
)

// Banner is printed above one-shot command output
const Banner = `
  ┌─────────────────────────────────────────┐
  │  ig debugger · proxy API query panel    │
  └─────────────────────────────────────────┘
`

// Color functions for terminal output
var (
	Cyan    = colorize("\033[36m%s\033[0m")
	Yellow  = colorize("\033[33m%s\033[0m")
	Red     = colorize("\033[31m%s\033[0m")
	Green   = colorize("\033[32m%s\033[0m")
	Magenta = colorize("\033[35m%s\033[0m")
	Dim     = colorize("\033[2m%s\033[0m")
	Bold    = colorize("\033[1m%s\033[0m")
)

// Output is where the Print helpers write
var Output io.Writer = os.Stdout

func colorize(colorString string) func(string) string {
	return func(text string) string {
		return fmt.Sprintf(colorString, text)
	}
}

func plain(text string) string { return text }

// Palette picks coloured or plain formatters
type Palette struct {
	Title   func(string) string
	Label   func(string) string
	Value   func(string) string
	Error   func(string) string
	Warning func(string) string
	Muted   func(string) string
	Active  func(string) string
}

// NewPalette returns the ANSI palette when color is true, identity functions otherwise
func NewPalette(color bool) Palette {
	if !color {
		return Palette{plain, plain, plain, plain, plain, plain, plain}
	}
	return Palette{
		Title:   func(s string) string { return Bold(Magenta(s)) },
		Label:   Cyan,
		Value:   Yellow,
		Error:   Red,
		Warning: Yellow,
		Muted:   Dim,
		Active:  func(s string) string { return Bold(Green(s)) },
	}
}

// PrintBanner prints the banner in cyan
func PrintBanner() {
	fmt.Fprint(Output, Cyan(Banner))
}

// PrintError prints an error message in red
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 {
		fmt.Fprintln(Output, Red(msg+": "+fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Fprintln(Output, Red(msg))
	}
}

// PrintSuccess prints a success message in green
func PrintSuccess(msg string) {
	fmt.Fprintln(Output, Green(msg))
}

// PrintInfo prints a label/value pair
func PrintInfo(label string, value string) {
	fmt.Fprintf(Output, "%s: %s\n", Cyan(label), Yellow(value))
}

// PrintWarning prints a warning message in yellow
func PrintWarning(msg string, args ...interface{}) {
	if len(args) > 0 {
		fmt.Fprintln(Output, Yellow(msg+": "+fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Fprintln(Output, Yellow(msg))
	}
}
