// Package lineio loads files as sequences of lines for diffing.
package lineio

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrBinary is wrapped in an *Error when a file looks binary (contains a NUL byte).
var ErrBinary = errors.New("binary file not supported")

// Error is a failure to load Path. It unwraps to the underlying os error (or ErrBinary), so errors.Is(err, fs.ErrNotExist) works.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ReadLines reads path and splits it with SplitLines. Any failure is returned as an *Error.
func ReadLines(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		// Strip the *PathError wrapper; Error already carries the path.
		var pe *os.PathError
		if errors.As(err, &pe) {
			err = pe.Err
		}
		return nil, &Error{Path: path, Err: err}
	}
	if bytes.IndexByte(b, 0) >= 0 {
		return nil, &Error{Path: path, Err: ErrBinary}
	}
	return SplitLines(string(b)), nil
}

// SplitLines splits text into lines without terminators. Both "\n" and "\r\n" end a line. A final terminator does not start an extra empty line, and
// "" yields no lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
