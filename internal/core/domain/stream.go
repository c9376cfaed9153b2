package domain

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"

	"go.trai.ch/zerr"
)

// StreamWriter writes the whitespace separated text format used for persisted state.
// The first write error is kept and returned by Err.
type StreamWriter struct {
	w   *bufio.Writer
	err error
}

// NewStreamWriter returns a writer on top of w.
func NewStreamWriter(w io.Writer) *StreamWriter {
	return &StreamWriter{w: bufio.NewWriter(w)}
}

func (s *StreamWriter) write(tok string) {
	if s.err != nil {
		return
	}
	_, s.err = s.w.WriteString(tok)
}

// Comment writes a line that readers skip with SkipLine.
func (s *StreamWriter) Comment(text string) {
	s.write("# " + text + "\n")
}

// String writes a quoted string.
func (s *StreamWriter) String(v string) {
	s.write(strconv.Quote(v) + "\n")
}

// Bool writes T or F.
func (s *StreamWriter) Bool(v bool) {
	if v {
		s.write("T\n")
	} else {
		s.write("F\n")
	}
}

// Int writes a decimal integer.
func (s *StreamWriter) Int(v int) {
	s.write(strconv.Itoa(v) + "\n")
}

// Time writes t as Unix seconds, with 0 for the zero time.
func (s *StreamWriter) Time(t time.Time) {
	if t.IsZero() {
		s.write("0\n")
		return
	}
	s.write(strconv.FormatInt(t.Unix(), 10) + "\n")
}

// TimeNano writes t as Unix nanoseconds, with 0 for the zero time.
func (s *StreamWriter) TimeNano(t time.Time) {
	if t.IsZero() {
		s.write("0\n")
		return
	}
	s.write(strconv.FormatInt(t.UnixNano(), 10) + "\n")
}

// Flush writes buffered data and returns the first error encountered.
func (s *StreamWriter) Flush() error {
	if s.err != nil {
		return s.err
	}
	return s.w.Flush()
}

// StreamReader reads values written by StreamWriter.
// After the first failure every read returns a zero value and Err reports the failure.
type StreamReader struct {
	r   *bufio.Reader
	err error
}

// NewStreamReader returns a reader on top of r.
func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{r: bufio.NewReader(r)}
}

// Err returns the first error encountered.
func (s *StreamReader) Err() error {
	return s.err
}

func (s *StreamReader) fail(what string, cause error) {
	if s.err != nil {
		return
	}
	if cause == nil {
		cause = ErrMalformedStream
	}
	s.err = zerr.With(zerr.Wrap(ErrMalformedStream, cause.Error()), "expected", what)
}

func (s *StreamReader) skipSpace() {
	for {
		r, _, err := s.r.ReadRune()
		if err != nil {
			return
		}
		if !unicode.IsSpace(r) {
			_ = s.r.UnreadRune()
			return
		}
	}
}

func (s *StreamReader) token(what string) string {
	if s.err != nil {
		return ""
	}
	s.skipSpace()
	var b strings.Builder
	for {
		r, _, err := s.r.ReadRune()
		if err != nil {
			if err != io.EOF {
				s.fail(what, err)
				return ""
			}
			break
		}
		if unicode.IsSpace(r) {
			_ = s.r.UnreadRune()
			break
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		s.fail(what, io.ErrUnexpectedEOF)
	}
	return b.String()
}

// SkipLine discards input up to and including the next newline.
func (s *StreamReader) SkipLine() {
	if s.err != nil {
		return
	}
	s.skipSpace()
	if _, err := s.r.ReadString('\n'); err != nil && err != io.EOF {
		s.fail("line", err)
	}
}

// String reads a quoted string.
func (s *StreamReader) String() string {
	if s.err != nil {
		return ""
	}
	s.skipSpace()
	r, _, err := s.r.ReadRune()
	if err != nil || r != '"' {
		s.fail("string", err)
		return ""
	}

	var b strings.Builder
	b.WriteRune('"')
	escaped := false
	for {
		r, _, err := s.r.ReadRune()
		if err != nil {
			s.fail("string", io.ErrUnexpectedEOF)
			return ""
		}
		b.WriteRune(r)
		if escaped {
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		if r == '"' {
			break
		}
	}

	v, err := strconv.Unquote(b.String())
	if err != nil {
		s.fail("string", err)
		return ""
	}
	return v
}

// Bool reads T or F.
func (s *StreamReader) Bool() bool {
	switch tok := s.token("bool"); tok {
	case "T":
		return true
	case "F":
		return false
	case "":
		return false
	default:
		s.fail("bool", nil)
		return false
	}
}

// Int reads a decimal integer.
func (s *StreamReader) Int() int {
	tok := s.token("int")
	if tok == "" {
		return 0
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		s.fail("int", err)
		return 0
	}
	return v
}

// Time reads Unix seconds, returning the zero time for 0.
func (s *StreamReader) Time() time.Time {
	tok := s.token("time")
	if tok == "" {
		return time.Time{}
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		s.fail("time", err)
		return time.Time{}
	}
	if v == 0 {
		return time.Time{}
	}
	return time.Unix(v, 0)
}

// TimeNano reads a time written by StreamWriter.TimeNano.
func (s *StreamReader) TimeNano() time.Time {
	tok := s.token("time")
	if tok == "" {
		return time.Time{}
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		s.fail("time", err)
		return time.Time{}
	}
	if v == 0 {
		return time.Time{}
	}
	return time.Unix(0, v)
}
