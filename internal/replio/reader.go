// Package replio provides the two line-reading strategies cmd/lemonrepl
// chooses between: a GNU-readline-backed interactive reader for TTY
// sessions, and a plain buffered reader for piped/direct input. The split
// and its Close contract mirrors the teacher codebase's
// internal/input package.
package replio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// LineReader is the minimal surface cmd/lemonrepl drives: one blocking line
// read at a time, plus teardown.
type LineReader interface {
	ReadLine() (string, error)
	Close() error
}

// DirectReader reads raw lines from any io.Reader, with no escape-sequence
// handling or history.
type DirectReader struct {
	r *bufio.Reader
}

// NewDirectReader wraps r for line-at-a-time reading.
func NewDirectReader(r io.Reader) *DirectReader {
	return &DirectReader{r: bufio.NewReader(r)}
}

// ReadLine returns the next line with its trailing newline stripped. At end
// of input it returns "", io.EOF.
func (d *DirectReader) ReadLine() (string, error) {
	line, err := d.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Close is a no-op; DirectReader owns no teardown-requiring resources, but
// implements LineReader for symmetry with InteractiveReader.
func (d *DirectReader) Close() error { return nil }

// InteractiveReader reads lines from stdin via GNU-readline-style editing
// and history, for use when connected to an actual terminal.
type InteractiveReader struct {
	rl *readline.Instance
}

// NewInteractiveReader starts a readline session with the given prompt.
func NewInteractiveReader(prompt string) (*InteractiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("initializing readline: %w", err)
	}
	return &InteractiveReader{rl: rl}, nil
}

// ReadLine blocks for the next edited line. At end of input it returns "",
// io.EOF.
func (i *InteractiveReader) ReadLine() (string, error) {
	line, err := i.rl.Readline()
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return line, nil
}

// Close releases readline's terminal resources.
func (i *InteractiveReader) Close() error {
	return i.rl.Close()
}
