// Package console shows command output and step results on the terminal.
package console

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/crusader/internal/adapters/detector" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/crusader/internal/core/ports"
	"go.trai.ch/crusader/internal/ui/output"
	"go.trai.ch/crusader/internal/ui/style"
)

var (
	_ ports.ConsoleFactory = (*Terminal)(nil)
	_ ports.StepReporter   = (*Terminal)(nil)
)

// Terminal multiplexes every console onto one writer.
// Whenever a different console starts writing, its header is printed again.
// In plain mode each line is prefixed with the console kind instead.
type Terminal struct {
	out io.Writer

	mu     sync.Mutex
	mode   detector.OutputMode
	styled *termenv.Output
	front  *sink
	steps  map[string]step
}

type step struct {
	name  string
	start time.Time
}

// New creates a Terminal writing to out. A nil out means stdout.
func New(out io.Writer, mode detector.OutputMode) *Terminal {
	if out == nil {
		out = os.Stdout
	}
	t := &Terminal{out: out, steps: make(map[string]step)}
	t.SetMode(mode)
	return t
}

// SetMode switches the output mode. ModeAuto detects it from the environment.
func (t *Terminal) SetMode(mode detector.OutputMode) {
	if mode == detector.ModeAuto {
		mode = detector.DetectEnvironment()
	}
	profile := output.ColorProfile
	if mode == detector.ModePlain {
		profile = output.ColorProfileANSI
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.mode = mode
	t.styled = output.NewWithProfile(t.out, profile)
}

// Mode returns the active output mode.
func (t *Terminal) Mode() detector.OutputMode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

// Open creates a console and prints its header.
func (t *Terminal) Open(kind ports.ConsoleKind, title string) ports.ConsoleSink {
	s := &sink{term: t, kind: kind, title: title}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bringToFrontLocked(s)
	return s
}

// Beep rings the terminal bell in interactive mode.
func (t *Terminal) Beep() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.mode == detector.ModeInteractive {
		_, _ = io.WriteString(t.out, "\a")
	}
}

// OnStepStart prints the command line of a step.
func (t *Terminal) OnStepStart(spanID, name string, startTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.steps[spanID] = step{name: name, start: startTime}
	t.endLineLocked()
	line := t.styled.String(style.Arrow + " " + name).Faint()
	_, _ = fmt.Fprintln(t.out, line.String())
}

// OnStepComplete prints the outcome of a step.
func (t *Terminal) OnStepComplete(spanID string, endTime time.Time, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.steps[spanID]
	if !ok {
		return
	}
	delete(t.steps, spanID)

	t.endLineLocked()
	d := endTime.Sub(st.start).Round(10 * time.Millisecond)
	var line termenv.Style
	if err != nil {
		msg := fmt.Sprintf("%s %s failed after %v: %v", style.Cross, st.name, d, err)
		line = t.styled.String(msg).Foreground(t.styled.Color(string(style.Red)))
	} else {
		msg := fmt.Sprintf("%s %s (%v)", style.Check, st.name, d)
		line = t.styled.String(msg).Foreground(t.styled.Color(string(style.Green)))
	}
	_, _ = fmt.Fprintln(t.out, line.String())
}

// bringToFrontLocked prints the header of s unless it was the last console to write.
func (t *Terminal) bringToFrontLocked(s *sink) {
	if t.front == s {
		return
	}
	t.endLineLocked()
	t.front = s

	label := t.styled.String(s.kind.String() + ":").Bold().Foreground(t.styled.Color(string(style.Iris)))
	_, _ = fmt.Fprintf(t.out, "%s %s\n", label, s.title)
}

// endLineLocked terminates a line the front console left open.
func (t *Terminal) endLineLocked() {
	if t.front != nil && t.front.open {
		_, _ = io.WriteString(t.out, "\n")
		t.front.open = false
	}
}

// sink is one console on the terminal.
type sink struct {
	term  *Terminal
	kind  ports.ConsoleKind
	title string

	// open is set while the last line written to the terminal lacks its newline.
	open bool
	// buf holds an incomplete line in plain mode.
	buf []byte
}

func (s *sink) Write(p []byte) (int, error) {
	t := s.term
	t.mu.Lock()
	defer t.mu.Unlock()

	t.bringToFrontLocked(s)
	if t.mode == detector.ModePlain {
		s.buf = append(s.buf, p...)
		for {
			i := bytes.IndexByte(s.buf, '\n')
			if i < 0 {
				break
			}
			s.printLineLocked(s.buf[:i])
			s.buf = s.buf[i+1:]
		}
		return len(p), nil
	}

	if _, err := t.out.Write(p); err != nil {
		return 0, err
	}
	if len(p) > 0 {
		s.open = p[len(p)-1] != '\n'
	}
	return len(p), nil
}

func (s *sink) printLineLocked(line []byte) {
	line = bytes.TrimSuffix(line, []byte("\r"))
	_, _ = fmt.Fprintf(s.term.out, "[%s] %s\n", s.kind, line)
}

// Activate brings the console to the front.
func (s *sink) Activate() {
	s.term.mu.Lock()
	defer s.term.mu.Unlock()
	s.term.bringToFrontLocked(s)
}

// Close prints any incomplete line.
func (s *sink) Close() error {
	t := s.term
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(s.buf) > 0 {
		t.bringToFrontLocked(s)
		s.printLineLocked(s.buf)
		s.buf = nil
	}
	if t.front == s {
		t.endLineLocked()
		t.front = nil
	}
	return nil
}
