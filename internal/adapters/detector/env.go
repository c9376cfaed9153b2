// Package detector decides how console output is presented.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents how consoles are rendered.
type OutputMode int

const (
	// ModeAuto lets the environment decide.
	ModeAuto OutputMode = iota
	// ModeInteractive styles console headers and rings the bell when a command finishes.
	ModeInteractive
	// ModePlain writes unstyled, prefixed lines suited to CI logs.
	ModePlain
)

// String returns the flag value for m.
func (m OutputMode) String() string {
	switch m {
	case ModeInteractive:
		return "tty"
	case ModePlain:
		return "plain"
	default:
		return "auto"
	}
}

// DetectEnvironment returns the recommended output mode.
// It checks whether stdout is a terminal and whether CI is set.
func DetectEnvironment() OutputMode {
	return detect(term.IsTerminal(int(os.Stdout.Fd())), os.Getenv("CI"))
}

func detect(isTTY bool, ci string) OutputMode {
	if !isTTY || ci == "true" || ci == "1" {
		return ModePlain
	}
	return ModeInteractive
}

// ResolveMode applies the user's --output flag to the detected mode.
// userFlag should be one of "auto", "tty", "plain", "ci" or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "tty":
		return ModeInteractive
	case "plain", "ci":
		return ModePlain
	default:
		return autoDetected
	}
}
