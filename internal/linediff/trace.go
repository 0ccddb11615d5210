package linediff

import (
	"fmt"
	"strings"
)

// TraceFunc receives printf-style debug output from the engines. A nil TraceFunc discards everything; engines do not format anything when it is nil.
type TraceFunc func(format string, args ...any)

func (t TraceFunc) printf(format string, args ...any) {
	if t == nil {
		return
	}
	t(format, args...)
}

// table emits dp one row per call.
func (t TraceFunc) table(name string, dp [][]int) {
	if t == nil {
		return
	}
	t("%s: %d x %d table", name, len(dp), len(dp[0]))
	for i, row := range dp {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprint(v)
		}
		t("%s: row %d: [%s]", name, i, strings.Join(cells, " "))
	}
}
