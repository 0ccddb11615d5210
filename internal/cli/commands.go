package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/codalotl/linediff/internal/config"
	"github.com/codalotl/linediff/internal/linediff"
	"github.com/codalotl/linediff/internal/lineio"
	"github.com/codalotl/linediff/internal/report"
	"github.com/codalotl/linediff/internal/selector"
	"github.com/codalotl/linediff/internal/simplelogger"
	"github.com/codalotl/linediff/internal/watch"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// errDifferences is returned (quietly) by --exit-code when the inputs differ.
var errDifferences = ExitError{Code: 1}

// diffFlags are the flags shared by the root command and `interactive`.
type diffFlags struct {
	algorithm string
	format    string
	color     string
	context   int
	width     int
	maxLines  int
	trace     bool
	exitCode  bool
}

func (f *diffFlags) register(fs *pflag.FlagSet, withAlgorithm bool) {
	d := config.Default()
	if withAlgorithm {
		fs.StringVarP(&f.algorithm, "algorithm", "a", d.Algorithm, "diff algorithm: naive, lcs, myers")
	}
	fs.StringVarP(&f.format, "format", "f", d.Format, "output format: report, unified, summary")
	fs.StringVar(&f.color, "color", d.Color, "color output: auto, always, never")
	fs.IntVarP(&f.context, "context", "U", d.Context, "lines of context in unified output")
	fs.IntVar(&f.width, "width", 0, "truncate output lines to this many columns (0: terminal width, or unlimited)")
	fs.IntVar(&f.maxLines, "max-lines", d.MaxLines, "refuse inputs with more total lines than this (0: no limit)")
	fs.BoolVar(&f.trace, "trace", false, "write algorithm internals to $"+simplelogger.EnvVar)
}

// overlay applies explicitly set flags on top of cfg and validates the result.
func (f *diffFlags) overlay(fs *pflag.FlagSet, cfg config.Config) (config.Config, error) {
	if fs.Changed("algorithm") {
		cfg.Algorithm = f.algorithm
	}
	if fs.Changed("format") {
		cfg.Format = f.format
	}
	if fs.Changed("color") {
		cfg.Color = f.color
	}
	if fs.Changed("context") {
		cfg.Context = f.context
	}
	if fs.Changed("max-lines") {
		cfg.MaxLines = f.maxLines
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if f.width < 0 {
		return config.Config{}, usageErrorf("--width must be >= 0 (got %d)", f.width)
	}
	return cfg, nil
}

// exactArgs is cobra.ExactArgs, reporting a UsageError.
func exactArgs(n int, names string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageErrorf("%s expects %d arguments (%s), got %d", cmd.CommandPath(), n, names, len(args))
		}
		return nil
	}
}

func newRootCommand(e *env) *cobra.Command {
	var flags diffFlags

	root := &cobra.Command{
		Use:   "linediff [flags] OLD NEW",
		Short: "Compare two text files line by line",
		Long: `linediff compares two text files line by line and reports which lines were added, deleted, or modified.

Defaults come from ~/.config/linediff/config.toml, the nearest .linediff.toml, and LINEDIFF_* environment
variables, in increasing precedence. Flags override all of them.`,
		Version:       Version,
		Args:          exactArgs(2, "OLD NEW"),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := e.config()
			if err != nil {
				return err
			}
			cfg, err = flags.overlay(cmd.Flags(), cfg)
			if err != nil {
				return err
			}

			p, err := loadPair(args[0], args[1])
			if err != nil {
				return err
			}
			differs, err := p.render(e, cfg, cfg.Algorithm, &flags)
			if err != nil {
				return err
			}
			if differs && flags.exitCode {
				return errDifferences
			}
			return nil
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	flags.register(root.Flags(), true)
	root.Flags().BoolVar(&flags.exitCode, "exit-code", false, "exit with status 1 if the files differ")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return UsageError{Message: err.Error()}
	})

	root.AddCommand(
		newInteractiveCommand(e),
		newWatchCommand(e),
		newAlgorithmsCommand(e),
		newConfigCommand(e),
	)
	return root
}

func newInteractiveCommand(e *env) *cobra.Command {
	var flags diffFlags

	cmd := &cobra.Command{
		Use:   "interactive OLD NEW",
		Short: "Choose algorithms from a menu and compare OLD and NEW with each",
		Args:  exactArgs(2, "OLD NEW"),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := e.config()
			if err != nil {
				return err
			}
			cfg, err = flags.overlay(cmd.Flags(), cfg)
			if err != nil {
				return err
			}

			p, err := loadPair(args[0], args[1])
			if err != nil {
				return err
			}

			s := selector.New(e.in, e.out, func(_ context.Context, algorithm string) error {
				_, err := p.render(e, cfg, algorithm, &flags)
				return err
			})
			if flags.trace {
				logf := simplelogger.Prefixed("selector:")
				s.OnTransition = func(from, to string) { logf("%s -> %s", from, to) }
			}
			return s.Loop(cmd.Context())
		},
	}
	flags.register(cmd.Flags(), false)
	return cmd
}

func newWatchCommand(e *env) *cobra.Command {
	var flags diffFlags
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch OLD NEW",
		Short: "Compare OLD and NEW, then again each time either file changes",
		Args:  exactArgs(2, "OLD NEW"),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := e.config()
			if err != nil {
				return err
			}
			cfg, err = flags.overlay(cmd.Flags(), cfg)
			if err != nil {
				return err
			}

			compare := func() error {
				p, err := loadPair(args[0], args[1])
				if err != nil {
					return err
				}
				_, err = p.render(e, cfg, cfg.Algorithm, &flags)
				return err
			}
			if err := compare(); err != nil {
				return err
			}

			// Later failures (ex: a file caught mid-save) are reported and watching continues.
			return watch.Files(cmd.Context(), args, func() error {
				fmt.Fprintln(e.out)
				if err := compare(); err != nil {
					fmt.Fprintf(e.err, "error: %v\n", err)
				}
				return nil
			}, watch.Options{
				Debounce: debounce,
				OnError:  func(err error) { fmt.Fprintf(e.err, "watch: %v\n", err) },
			})
		},
	}
	flags.register(cmd.Flags(), true)
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before re-comparing")
	return cmd
}

func newAlgorithmsCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List the available diff algorithms",
		Args:  exactArgs(0, "none"),
		RunE: func(cmd *cobra.Command, args []string) error {
			for i, a := range linediff.Algorithms() {
				line := fmt.Sprintf("%d  %-8s  %s", i, a.Name, a.Title)
				if !a.Implemented {
					line += " (not yet implemented)"
				}
				fmt.Fprintln(e.out, line)
			}
			return nil
		},
	}
}

func newConfigCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  exactArgs(0, "none"),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := e.config()
			if err != nil {
				return err
			}
			return cfg.WriteTOML(e.out)
		},
	}
}

// pair is a loaded OLD/NEW input.
type pair struct {
	oldPath, newPath   string
	oldLines, newLines []string
}

func loadPair(oldPath, newPath string) (*pair, error) {
	oldLines, err := lineio.ReadLines(oldPath)
	if err != nil {
		return nil, err
	}
	newLines, err := lineio.ReadLines(newPath)
	if err != nil {
		return nil, err
	}
	return &pair{oldPath: oldPath, newPath: newPath, oldLines: oldLines, newLines: newLines}, nil
}

// render diffs p with algorithm and writes it to e.out in cfg.Format. It reports whether the inputs differ.
func (p *pair) render(e *env, cfg config.Config, algorithm string, flags *diffFlags) (bool, error) {
	opts := &linediff.Options{Label: p.newPath, MaxLines: cfg.MaxLines}
	if flags.trace {
		if !simplelogger.Enabled() {
			fmt.Fprintf(e.err, "warning: --trace has no effect unless %s is set\n", simplelogger.EnvVar)
		}
		simplelogger.Log("linediff: %s %s -> %s", strings.ToLower(algorithm), p.oldPath, p.newPath)
		opts.Trace = simplelogger.Log
	}

	d, err := linediff.Run(algorithm, p.oldLines, p.newLines, opts)
	if err != nil {
		if errors.Is(err, linediff.ErrNoScriptFound) {
			return false, fmt.Errorf("internal error: %w", err)
		}
		return false, err
	}

	ropts := report.Options{
		Color:    useColor(cfg.Color, e.out),
		Context:  cfg.Context,
		Width:    outputWidth(flags.width, e.out),
		TabWidth: cfg.TabWidth,
		From:     p.oldPath,
		To:       p.newPath,
	}

	var out string
	switch cfg.Format {
	case config.FormatUnified:
		if d.Empty() {
			return false, nil
		}
		out = report.Unified(d, p.newLines, ropts)
	case config.FormatSummary:
		out = report.Summary(d)
	default:
		out = report.Report(d, p.newLines, ropts)
	}
	fmt.Fprintln(e.out, out)
	return !d.Empty(), nil
}
