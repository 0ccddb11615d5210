package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
)

// Version is the linediff version. It is a var (not a const) so build tooling can override it (for example via `-ldflags "-X .../internal/cli.Version=1.2.3"`).
var Version = "0.1.0"

// In/Out/Err override standard I/O. If nil, defaults are used. Overriding is useful for testing.
//
// Dir, if set, is used instead of the working directory when searching for a project config file.
type RunOptions struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
	Dir string
}

// Run runs the CLI with args (typically you'd use os.Args).
//
// It returns a recommended exit code (0, 1, or 2) and an error, if any:
//   - 0 -> err == nil
//   - 1 -> err != nil: a runtime failure, or differences were found and --exit-code was given.
//   - 2 -> err != nil, args parse error, misuse of flags, or an unknown or unimplemented algorithm.
//
// Note that in cases of errors, Run has already displayed an error message to opts.Err || Stderr. Callers may use os.Exit with the exit code.
func Run(args []string, opts *RunOptions) (int, error) {
	argv := args
	if len(argv) > 0 {
		argv = argv[1:]
	}

	e := &env{in: os.Stdin, out: os.Stdout, err: os.Stderr}
	if opts != nil {
		if opts.In != nil {
			e.in = opts.In
		}
		if opts.Out != nil {
			e.out = opts.Out
		}
		if opts.Err != nil {
			e.err = opts.Err
		}
		e.dir = opts.Dir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCommand(e)
	root.SetArgs(argv)
	root.SetIn(e.in)
	root.SetOut(e.out)
	root.SetErr(e.err)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0, nil
	}

	code := exitCodeFor(err)
	if !quiet(err) {
		fmt.Fprintf(e.err, "error: %v\n", err)
		if code == 2 {
			fmt.Fprintf(e.err, "Run '%s --help' for usage.\n", root.Name())
		}
	}
	return code, err
}
