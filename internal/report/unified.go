package report

import (
	"fmt"
	"strings"

	"github.com/codalotl/linediff/internal/linediff"
)

// Unified renders d as a unified diff with opts.Context lines of context. Change groups separated by at most 2*opts.Context unchanged lines share
// one @@ hunk. If d has no changes, only the ---/+++ headers are emitted.
func Unified(d linediff.FileDiff, newLines []string, opts Options) string {
	from, to := opts.From, opts.To
	if from == "" {
		from = "a"
	}
	if to == "" {
		to = "b"
	}
	contextSize := max(opts.Context, 0)

	var out []string
	out = append(out, opts.colorize("--- "+sanitize(from, 0), cyanBold))
	out = append(out, opts.colorize("+++ "+sanitize(to, 0), cyanBold))

	all := rows(d, newLines)

	i := 0
	for i < len(all) {
		// Find the next change.
		for i < len(all) && all[i].tag == ' ' {
			i++
		}
		if i == len(all) {
			break
		}

		start := max(i-contextSize, 0)

		// Extend over changes and over unchanged gaps short enough to bridge.
		end := i // last change in the group
		for j := i + 1; j < len(all); j++ {
			if all[j].tag == ' ' {
				continue
			}
			if j-end-1 > 2*contextSize {
				break
			}
			end = j
		}
		stop := min(end+contextSize+1, len(all)) // exclusive

		hunk := all[start:stop]
		oldCount, newCount := 0, 0
		for _, r := range hunk {
			switch r.tag {
			case ' ':
				oldCount++
				newCount++
			case '-':
				oldCount++
			case '+':
				newCount++
			}
		}

		// By convention an empty side reports the line before the hunk (0 at the top of the file).
		oldStart := hunk[0].oldBefore
		if oldCount > 0 {
			oldStart++
		}
		newStart := hunk[0].newBefore
		if newCount > 0 {
			newStart++
		}

		header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", oldStart, oldCount, newStart, newCount)
		out = append(out, opts.colorize(header, magenta))
		for _, r := range hunk {
			l := opts.line(r.tag, r.text)
			switch r.tag {
			case '+':
				l = opts.colorize(l, green)
			case '-':
				l = opts.colorize(l, red)
			}
			out = append(out, l)
		}

		i = stop
	}

	return strings.Join(out, "\n")
}
