// Package simplelogger is linediff's debug log. Output goes to the file named by LINEDIFF_LOG_FILE; without it, logging is a no-op.
//
// Log has the signature of linediff.TraceFunc, so it can be passed directly as an engine trace hook.
package simplelogger

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"
)

// EnvVar names the log file.
const EnvVar = "LINEDIFF_LOG_FILE"

var mu sync.Mutex

// Enabled reports whether EnvVar is set. It does not check that the file can be opened.
func Enabled() bool {
	return strings.TrimSpace(os.Getenv(EnvVar)) != ""
}

// Log appends one printf-style entry to the log file, adding a trailing newline if missing. If the variable is unset or the path can't be opened
// as a file, Log does nothing.
func Log(format string, args ...any) {
	path := strings.TrimSpace(os.Getenv(EnvVar))
	if path == "" {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	var b bytes.Buffer
	_, _ = fmt.Fprintf(&b, format, args...)
	if b.Len() == 0 || b.Bytes()[b.Len()-1] != '\n' {
		_ = b.WriteByte('\n')
	}
	_, _ = f.Write(b.Bytes())
}

// Prefixed returns a logger that prepends prefix and a space to every entry.
func Prefixed(prefix string) func(format string, args ...any) {
	return func(format string, args ...any) {
		Log("%s %s", prefix, fmt.Sprintf(format, args...))
	}
}
