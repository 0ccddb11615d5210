package linediff

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Comparator computes the diff between two line sequences. The returned FileDiff has an empty Label.
type Comparator interface {
	Compare(oldLines, newLines []string) (FileDiff, error)
}

// Algorithm identifiers accepted by Run and Lookup.
const (
	AlgorithmNaive    = "naive"
	AlgorithmLCS      = "lcs"
	AlgorithmMyers    = "myers"
	AlgorithmPatience = "patience" // reserved; Run returns ErrNotImplemented
)

var (
	// ErrUnknownAlgorithm is returned for an identifier that names no algorithm.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrNotImplemented is returned for a reserved identifier that has no engine yet.
	ErrNotImplemented = errors.New("algorithm not yet implemented")

	// ErrNoScriptFound means an engine finished without reaching the end of both inputs. It is never returned by a correct engine.
	ErrNoScriptFound = errors.New("no edit script found")

	// ErrInputTooLarge is returned when Options.MaxLines is exceeded.
	ErrInputTooLarge = errors.New("input too large")
)

// Algorithm describes one selectable algorithm.
type Algorithm struct {
	Name        string // identifier passed to Run
	Title       string // display name
	Implemented bool
}

var algorithms = []Algorithm{
	{Name: AlgorithmNaive, Title: "Naive", Implemented: true},
	{Name: AlgorithmLCS, Title: "LCS", Implemented: true},
	{Name: AlgorithmMyers, Title: "Myers", Implemented: true},
	{Name: AlgorithmPatience, Title: "Patience", Implemented: false},
}

// Algorithms returns every known algorithm in menu order, including reserved ones.
func Algorithms() []Algorithm {
	return slices.Clone(algorithms)
}

// Options configures Run. A nil *Options is equivalent to the zero value.
type Options struct {
	// Label is copied to FileDiff.Label.
	Label string

	// Trace, if non-nil, receives the engine's intermediate state. Leave nil in normal use.
	Trace TraceFunc

	// MaxLines, if > 0, rejects inputs with len(old)+len(new) > MaxLines with ErrInputTooLarge before any work is done. The naive algorithm is linear
	// and is not limited.
	MaxLines int
}

// Lookup returns the Comparator for name. Names are case-insensitive and surrounding whitespace is ignored.
func Lookup(name string, trace TraceFunc) (Comparator, error) {
	switch normalizeName(name) {
	case AlgorithmNaive:
		return Naive{}, nil
	case AlgorithmLCS:
		return LCS{Trace: trace}, nil
	case AlgorithmMyers:
		return Myers{Trace: trace}, nil
	case AlgorithmPatience:
		return nil, fmt.Errorf("%w: %s", ErrNotImplemented, AlgorithmPatience)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// Run diffs oldLines to newLines with the algorithm called name. On error it returns a zero FileDiff.
//
// Run keeps no state between calls and does not modify its inputs.
func Run(name string, oldLines, newLines []string, opts *Options) (FileDiff, error) {
	if opts == nil {
		opts = &Options{}
	}

	cmp, err := Lookup(name, opts.Trace)
	if err != nil {
		return FileDiff{}, err
	}

	if _, linear := cmp.(Naive); !linear && opts.MaxLines > 0 {
		if total := len(oldLines) + len(newLines); total > opts.MaxLines {
			return FileDiff{}, fmt.Errorf("%w: %d lines exceeds limit of %d", ErrInputTooLarge, total, opts.MaxLines)
		}
	}

	d, err := cmp.Compare(oldLines, newLines)
	if err != nil {
		return FileDiff{}, fmt.Errorf("%s: %w", normalizeName(name), err)
	}
	d.Label = opts.Label
	return d, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
