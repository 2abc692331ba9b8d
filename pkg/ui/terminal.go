package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// ANSI color codes for terminal output
const (
	cyan    = "\033[36m%s\033[0m"
	yellow  = "\033[33m%s\033[0m"
	red     = "\033[31m%s\033[0m"
	green   = "\033[32m%s\033[0m"
	magenta = "\033[35m%s\033[0m"
	dim     = "\033[2m%s\033[0m"
)

var (
	mu      sync.Mutex
	out     io.Writer = os.Stderr
	noColor bool
	quiet   bool
)

// Color functions for terminal output
var (
	Cyan    = colorize(cyan)
	Yellow  = colorize(yellow)
	Red     = colorize(red)
	Green   = colorize(green)
	Magenta = colorize(magenta)
	Dim     = colorize(dim)
)

// SetOutput redirects status messages. Defaults to stderr so that stdout
// only ever carries command results.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// SetNoColor disables ANSI colors
func SetNoColor(disabled bool) {
	mu.Lock()
	defer mu.Unlock()
	noColor = disabled
}

// SetQuietMode suppresses everything except errors
func SetQuietMode(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = enabled
}

// colorize returns a function that wraps text with ANSI color codes
func colorize(colorString string) func(string) string {
	return func(text string) string {
		mu.Lock()
		plain := noColor
		mu.Unlock()

		if plain {
			return text
		}
		return fmt.Sprintf(colorString, text)
	}
}

func write(errorLevel bool, line string) {
	mu.Lock()
	w, silent := out, quiet && !errorLevel
	mu.Unlock()

	if silent {
		return
	}
	fmt.Fprintln(w, line)
}

// PrintError prints an error message in red
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 && fmt.Sprint(args[0]) != "" {
		msg = msg + ": " + fmt.Sprintf("%v", args[0])
	}
	write(true, Red(msg))
}

// PrintSuccess prints a success message in green
func PrintSuccess(msg string) {
	write(false, Green(msg))
}

// PrintInfo prints an info message in cyan
func PrintInfo(label string, value string) {
	write(false, fmt.Sprintf("%s: %s", Cyan(label), Yellow(value)))
}

// PrintWarning prints a warning message in yellow
func PrintWarning(msg string, args ...interface{}) {
	if len(args) > 0 && fmt.Sprint(args[0]) != "" {
		msg = msg + ": " + fmt.Sprintf("%v", args[0])
	}
	write(false, Yellow(msg))
}

// PrintHighlight prints a highlighted message in magenta
func PrintHighlight(msg string) {
	write(false, Magenta(msg))
}
