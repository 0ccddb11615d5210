// Package selector runs the interactive algorithm menu: it prompts for an algorithm, validates the answer, hands it to a caller-provided dispatch
// function, and repeats until the user quits or input ends.
//
// The loop is an explicit state machine (prompt, read, validate, dispatch, done) so each transition can be observed and cancelled.
package selector

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/codalotl/linediff/internal/linediff"
)

// Dispatch runs one comparison with the selected algorithm identifier.
type Dispatch func(ctx context.Context, algorithm string) error

type state int

const (
	statePrompt state = iota
	stateRead
	stateValidate
	stateDispatch
	stateDone
)

func (s state) String() string {
	switch s {
	case statePrompt:
		return "prompt"
	case stateRead:
		return "read"
	case stateValidate:
		return "validate"
	case stateDispatch:
		return "dispatch"
	case stateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Messages written to the output stream.
const (
	MsgInvalid        = "Invalid algorithm"
	MsgNotImplemented = "not yet implemented"
	promptText        = "Select algorithm (index or name, q to quit): "
)

// Selector holds the I/O and menu of one interactive session. Create with New.
type Selector struct {
	in       *bufio.Scanner
	out      io.Writer
	dispatch Dispatch
	menu     []linediff.Algorithm

	// OnTransition, if non-nil, is called on every state change. Used for tracing.
	OnTransition func(from, to string)
}

// New returns a Selector reading answers from in and writing the menu, prompts, and messages to out.
func New(in io.Reader, out io.Writer, dispatch Dispatch) *Selector {
	return &Selector{
		in:       bufio.NewScanner(in),
		out:      out,
		dispatch: dispatch,
		menu:     linediff.Algorithms(),
	}
}

// Menu returns the menu text, one "index: Title" per line.
func (s *Selector) Menu() string {
	var b strings.Builder
	for i, a := range s.menu {
		fmt.Fprintf(&b, "%d: %s\n", i, a.Title)
	}
	return b.String()
}

// Loop runs until the user quits (q, quit, exit), input reaches EOF, or ctx is cancelled. Dispatch errors are reported to the output and the loop
// continues, unless the error is a context cancellation, in which case Loop returns it. Loop returns nil on a normal quit or EOF.
func (s *Selector) Loop(ctx context.Context) error {
	var (
		cur    = statePrompt
		answer string
		choice linediff.Algorithm
	)

	for cur != stateDone {
		if err := ctx.Err(); err != nil {
			return err
		}

		next, err := s.step(ctx, cur, &answer, &choice)
		if err != nil {
			return err
		}
		if s.OnTransition != nil {
			s.OnTransition(cur.String(), next.String())
		}
		cur = next
	}
	return nil
}

func (s *Selector) step(ctx context.Context, cur state, answer *string, choice *linediff.Algorithm) (state, error) {
	switch cur {
	case statePrompt:
		fmt.Fprint(s.out, s.Menu())
		fmt.Fprint(s.out, promptText)
		return stateRead, nil

	case stateRead:
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			if err := s.in.Err(); err != nil {
				return stateDone, fmt.Errorf("read selection: %w", err)
			}
			return stateDone, nil
		}
		*answer = strings.TrimSpace(s.in.Text())
		return stateValidate, nil

	case stateValidate:
		switch strings.ToLower(*answer) {
		case "q", "quit", "exit":
			return stateDone, nil
		}
		a, ok := s.resolve(*answer)
		if !ok {
			fmt.Fprintln(s.out, MsgInvalid)
			return statePrompt, nil
		}
		if !a.Implemented {
			fmt.Fprintf(s.out, "%s: %s\n", a.Title, MsgNotImplemented)
			return statePrompt, nil
		}
		*choice = a
		return stateDispatch, nil

	case stateDispatch:
		if err := s.dispatch(ctx, choice.Name); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return stateDone, err
			}
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		return statePrompt, nil
	}

	return stateDone, fmt.Errorf("selector: unexpected state %v", cur)
}

// resolve maps a menu index or a case-insensitive name/title to a menu entry.
func (s *Selector) resolve(answer string) (linediff.Algorithm, bool) {
	if answer == "" {
		return linediff.Algorithm{}, false
	}
	if i, err := strconv.Atoi(answer); err == nil {
		if i < 0 || i >= len(s.menu) {
			return linediff.Algorithm{}, false
		}
		return s.menu[i], true
	}
	for _, a := range s.menu {
		if strings.EqualFold(answer, a.Name) || strings.EqualFold(answer, a.Title) {
			return a, true
		}
	}
	return linediff.Algorithm{}, false
}
