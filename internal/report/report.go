// Package report renders a linediff.FileDiff for humans: a full colored listing (Report), a unified diff (Unified), or a one-line summary (Summary).
//
// Renderers take the new sequence alongside the diff because a FileDiff stores only changed lines; unchanged lines are read from newLines. Line
// content is sanitized (control characters escaped) before it is written, so renderers are safe to point at a terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/codalotl/linediff/internal/linediff"
)

// ANSI codes.
const (
	reset    = "\x1b[0m"
	red      = "\x1b[31m"
	green    = "\x1b[32m"
	magenta  = "\x1b[35m"
	blueBold = "\x1b[1;34m"
	cyanBold = "\x1b[1;36m"
)

// EndMarker is the last line of a Report.
const EndMarker = "End of file comparison"

// Options controls rendering. The zero value renders without color, without context (Unified), with tabs left as-is, and without truncation.
type Options struct {
	Color    bool // emit ANSI colors
	Context  int  // Unified only: unchanged lines shown around each change group
	Width    int  // if > 0, truncate each output line to this many terminal cells
	TabWidth int  // if > 0, expand tabs to this many spaces

	// Unified only: names for the ---/+++ headers. Default to "a" and "b".
	From string
	To   string
}

func (o Options) colorize(s, code string) string {
	if !o.Color {
		return s
	}
	return code + s + reset
}

// line renders one body line: a one-character tag followed by sanitized, width-limited content.
func (o Options) line(tag byte, content string) string {
	s := string(tag) + sanitize(content, o.TabWidth)
	return fit(s, o.Width)
}

// row is one line of the reconstructed listing.
type row struct {
	tag       byte   // ' ', '-', '+'
	text      string // raw content
	oldBefore int    // old lines consumed before this row
	newBefore int    // new lines consumed before this row
}

// rows interleaves unchanged lines from newLines with the changes of d, in display order: for each chunk, its deleted lines then its added lines.
// If d and newLines disagree, unchanged lines that would run past newLines are dropped rather than panicking.
func rows(d linediff.FileDiff, newLines []string) []row {
	var out []row
	oldPos, newPos := 0, 0

	unchanged := func(n int) {
		for i := 0; i < n && newPos < len(newLines); i++ {
			out = append(out, row{tag: ' ', text: newLines[newPos], oldBefore: oldPos, newBefore: newPos})
			oldPos++
			newPos++
		}
	}

	for _, c := range d.Chunks {
		if deleted := c.Deleted(); len(deleted) > 0 {
			unchanged(deleted[0].Line - 1 - oldPos)
		} else if added := c.Added(); len(added) > 0 {
			unchanged(added[0].Line - 1 - newPos)
		}
		for _, lc := range c.Deleted() {
			out = append(out, row{tag: '-', text: lc.Content, oldBefore: oldPos, newBefore: newPos})
			oldPos = lc.Line
		}
		for _, lc := range c.Added() {
			out = append(out, row{tag: '+', text: lc.Content, oldBefore: oldPos, newBefore: newPos})
			newPos = lc.Line
		}
	}
	unchanged(len(newLines) - newPos)

	return out
}

// Report renders every line of the comparison: a "File: <label>" header, then unchanged lines prefixed with a space, deleted lines prefixed with "-"
// (red), and added lines prefixed with "+" (green), then EndMarker. Lines are joined with "\n" with no trailing newline.
func Report(d linediff.FileDiff, newLines []string, opts Options) string {
	var out []string
	out = append(out, opts.colorize(fit("File: "+sanitize(d.Label, opts.TabWidth), opts.Width), blueBold))

	for _, r := range rows(d, newLines) {
		l := opts.line(r.tag, r.text)
		switch r.tag {
		case '-':
			l = opts.colorize(l, red)
		case '+':
			l = opts.colorize(l, green)
		}
		out = append(out, l)
	}

	out = append(out, opts.colorize(EndMarker, blueBold))
	return strings.Join(out, "\n")
}

// Summary returns a one-line description of d, ex: "b.txt: 2 chunks, +3 -1" or "b.txt: no differences".
func Summary(d linediff.FileDiff) string {
	label := d.Label
	if label == "" {
		label = "(unnamed)"
	}
	if d.Empty() {
		return fmt.Sprintf("%s: no differences", label)
	}
	added, deleted := d.Stats()
	noun := "chunks"
	if len(d.Chunks) == 1 {
		noun = "chunk"
	}
	return fmt.Sprintf("%s: %d %s, +%d -%d", label, len(d.Chunks), noun, added, deleted)
}
