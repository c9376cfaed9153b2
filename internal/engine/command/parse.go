package command

import (
	"strings"

	"github.com/google/shlex"
	"go.trai.ch/crusader/internal/core/domain"
	"go.trai.ch/zerr"
)

// parse splits a command template into argument vectors, one per ";" separated segment.
// A segment made of a single "&name" token calls the named command.
func parse(cmd string, allowFns bool) ([][]string, error) {
	if strings.TrimSpace(cmd) == "" {
		return nil, zerr.Wrap(domain.ErrEmptyCommand, "parse command")
	}

	var queue [][]string
	for _, segment := range splitSegments(cmd) {
		args, err := shlex.Split(segment)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "parse command"), "cmd", cmd)
		}
		if len(args) == 0 {
			continue
		}

		if isCall(args[0]) {
			if !allowFns {
				return nil, zerr.With(zerr.Wrap(domain.ErrFnsNotAllowed, "parse command"), "cmd", cmd)
			}
			if len(args) > 1 {
				return nil, zerr.With(zerr.Wrap(domain.ErrArgsNotAllowed, "parse command"), "call", args[0])
			}
		}
		queue = append(queue, args)
	}

	if len(queue) == 0 {
		return nil, zerr.Wrap(domain.ErrEmptyCommand, "parse command")
	}
	return queue, nil
}

func isCall(arg string) bool {
	return len(arg) > 1 && arg[0] == '&'
}

// splitSegments splits s on every ";" that is not quoted or escaped.
func splitSegments(s string) []string {
	var (
		segments []string
		b        strings.Builder
		quote    rune
		escaped  bool
	)
	for _, r := range s {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == ';':
			segments = append(segments, b.String())
			b.Reset()
			continue
		}
		b.WriteRune(r)
	}
	return append(segments, b.String())
}
