// Package shell starts the child processes of command pipelines.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/creack/pty"
	"go.trai.ch/crusader/internal/core/domain"
	"go.trai.ch/crusader/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ProcessRunner = (*Runner)(nil)

// Runner implements ports.ProcessRunner. Attached processes run in a PTY so that
// compilers keep their colored output; detached ones report through the logger.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Start launches spec.
func (r *Runner) Start(ctx context.Context, spec ports.ProcessSpec, output io.Writer) (ports.Process, error) {
	if len(spec.Args) == 0 {
		return nil, zerr.Wrap(domain.ErrEmptyCommand, "start process")
	}

	name := spec.Args[0]
	env := resolveEnvironment(os.Environ(), spec.Env)

	executable := name
	if !filepath.IsAbs(name) && !strings.ContainsRune(name, filepath.Separator) {
		if lp, err := lookPath(name, env); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, spec.Args[1:]...) //nolint:gosec // Commands come from the project definition
	cmd.Args[0] = name
	cmd.Dir = spec.Dir
	cmd.Env = env

	if spec.Attached && output != nil {
		return startAttached(cmd, output)
	}
	return r.startDetached(cmd)
}

func startFailed(cmd *exec.Cmd, err error) error {
	return zerr.With(zerr.Wrap(domain.ErrProcessStartFailed, err.Error()), "cmd", cmd.Args[0])
}

func startAttached(cmd *exec.Cmd, output io.Writer) (*process, error) {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return nil, startFailed(cmd, err)
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		defer func() { _ = ptmx.Close() }()
		// Reading the master returns EIO once the child side is closed.
		_, _ = io.Copy(output, ptmx)
	}()

	return &process{cmd: cmd, ioDone: ioDone}, nil
}

func (r *Runner) startDetached(cmd *exec.Cmd) (*process, error) {
	stdout := &logWriter{logger: r.logger}
	stderr := &logWriter{logger: r.logger, warn: true}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return nil, startFailed(cmd, err)
	}
	return &process{cmd: cmd, flush: []*logWriter{stdout, stderr}}, nil
}

// process is a started command.
type process struct {
	cmd    *exec.Cmd
	ioDone <-chan struct{}
	flush  []*logWriter
	killed atomic.Bool
}

// Wait blocks until the process has exited and its output has been copied.
func (p *process) Wait() error {
	err := p.cmd.Wait()
	if p.ioDone != nil {
		<-p.ioDone
	}
	for _, w := range p.flush {
		_ = w.Close()
	}

	if err == nil {
		return nil
	}
	if p.killed.Load() {
		return zerr.Wrap(domain.ErrProcessCancelled, err.Error())
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	return zerr.With(zerr.Wrap(domain.ErrProcessFailed, err.Error()), "exit_code", exitCode)
}

// Kill stops the process. Wait then reports domain.ErrProcessCancelled.
func (p *process) Kill() error {
	p.killed.Store(true)
	if p.cmd.Process == nil {
		return nil
	}
	if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return zerr.Wrap(err, "kill process")
	}
	return nil
}

// logWriter forwards complete lines to the logger.
type logWriter struct {
	logger ports.Logger
	warn   bool
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	if w.warn {
		w.logger.Warn(msg)
		return
	}
	w.logger.Info(msg)
}

// resolveEnvironment applies the extra "KEY=VALUE" entries on top of the inherited
// environment. Later entries win.
func resolveEnvironment(sysEnv, extra []string) []string {
	index := make(map[string]int, len(sysEnv)+len(extra))
	env := make([]string, 0, len(sysEnv)+len(extra))
	for _, entry := range slices.Concat(sysEnv, extra) {
		k, _, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if i, seen := index[k]; seen {
			env[i] = entry
			continue
		}
		index[k] = len(env)
		env = append(env, entry)
	}
	return env
}

// lookPath searches the PATH of env for an executable.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			path = v
		}
	}
	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func isExecutable(file string) bool {
	info, err := os.Stat(file)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Mode()&0o111 != 0
}
