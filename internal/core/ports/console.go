package ports

import "io"

// ConsoleKind selects the console a command writes to.
type ConsoleKind int

const (
	// ConsoleBuild receives the output of make commands.
	ConsoleBuild ConsoleKind = iota
	// ConsoleRun receives the output of other commands.
	ConsoleRun
)

// String returns the console label.
func (k ConsoleKind) String() string {
	if k == ConsoleBuild {
		return "build"
	}
	return "run"
}

// ConsoleSink is an open output console.
//
//go:generate mockgen -source=console.go -destination=mocks/mock_console.go -package=mocks
type ConsoleSink interface {
	io.Writer

	// Activate brings the console to the front.
	Activate()

	// Close flushes and releases the console.
	Close() error
}

// ConsoleFactory opens output consoles.
type ConsoleFactory interface {
	// Open creates a console of the given kind.
	Open(kind ConsoleKind, title string) ConsoleSink

	// Beep signals the user that a command finished.
	Beep()
}
