package cli

import (
	"io"
	"os"
	"sync"

	"github.com/codalotl/linediff/internal/config"
	"golang.org/x/term"
)

// env is the I/O of one Run.
type env struct {
	in  io.Reader
	out io.Writer
	err io.Writer
	dir string

	cfgOnce sync.Once
	cfg     config.Config
	cfgErr  error
}

// config loads the configuration cascade once per Run.
func (e *env) config() (config.Config, error) {
	e.cfgOnce.Do(func() {
		dir := e.dir
		if dir == "" {
			wd, err := os.Getwd()
			if err != nil {
				e.cfgErr = err
				return
			}
			dir = wd
		}
		e.cfg, e.cfgErr = config.Load(dir)
	})
	return e.cfg, e.cfgErr
}

// terminalFd returns the file descriptor of w if w is a terminal.
func terminalFd(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0, false
	}
	return fd, true
}

// useColor resolves a color mode for w. In auto mode, color is used only for terminals and only if NO_COLOR is unset.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	_, ok := terminalFd(w)
	return ok
}

// outputWidth returns width if positive, else the terminal width of w, else 0 (unlimited).
func outputWidth(width int, w io.Writer) int {
	if width > 0 {
		return width
	}
	fd, ok := terminalFd(w)
	if !ok {
		return 0
	}
	cols, _, err := term.GetSize(fd)
	if err != nil || cols <= 0 {
		return 0
	}
	return cols
}
