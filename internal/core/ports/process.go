package ports

import (
	"context"
	"io"
)

// ProcessSpec describes a child process.
type ProcessSpec struct {
	// Dir is the working directory.
	Dir string
	// Args is the argument vector. Args[0] is the program.
	Args []string
	// Env holds extra "KEY=VALUE" entries on top of the inherited environment.
	Env []string
	// Attached processes send their output to a console.
	// Detached processes only report through the logger.
	Attached bool
}

// Process is a running child process.
//
//go:generate mockgen -source=process.go -destination=mocks/mock_process.go -package=mocks
type Process interface {
	// Wait blocks until the process exits.
	// A killed process returns an error wrapping domain.ErrProcessCancelled.
	Wait() error

	// Kill stops the process.
	Kill() error
}

// ProcessRunner spawns child processes.
type ProcessRunner interface {
	// Start launches spec. Output of attached processes is copied to output.
	Start(ctx context.Context, spec ProcessSpec, output io.Writer) (Process, error)
}
