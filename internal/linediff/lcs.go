package linediff

import "slices"

// LCS diffs with a longest-common-subsequence table and a backtrace through it.
//
// Backtrace tie-break: when skipping an old line and skipping a new line are equally good, the new line is reported as added. This only picks between
// equally short edit scripts.
type LCS struct {
	Trace TraceFunc // optional; receives the filled table and each backtrace step
}

// Compare implements Comparator. It never returns an error.
func (e LCS) Compare(oldLines, newLines []string) (FileDiff, error) {
	dp := lcsTable(oldLines, newLines)
	e.Trace.table("lcs", dp)

	var edits []edit // reverse order
	i, j := len(oldLines), len(newLines)
	for i > 0 || j > 0 {
		switch {
		case i == 0:
			e.Trace.printf("lcs: (%d,%d) add new line %d", i, j, j)
			edits = append(edits, edit{op: opInsert, line: j, content: newLines[j-1]})
			j--
		case j == 0:
			e.Trace.printf("lcs: (%d,%d) delete old line %d", i, j, i)
			edits = append(edits, edit{op: opDelete, line: i, content: oldLines[i-1]})
			i--
		case dp[i][j] != max(dp[i-1][j], dp[i][j-1]):
			// Only a match can beat both neighbors.
			e.Trace.printf("lcs: (%d,%d) match", i, j)
			edits = append(edits, edit{op: opMatch})
			i--
			j--
		case dp[i][j-1] < dp[i-1][j]:
			e.Trace.printf("lcs: (%d,%d) delete old line %d", i, j, i)
			edits = append(edits, edit{op: opDelete, line: i, content: oldLines[i-1]})
			i--
		default:
			e.Trace.printf("lcs: (%d,%d) add new line %d", i, j, j)
			edits = append(edits, edit{op: opInsert, line: j, content: newLines[j-1]})
			j--
		}
	}
	slices.Reverse(edits)

	return FileDiff{Chunks: buildChunks(edits)}, nil
}

// lcsTable returns dp where dp[i][j] is the length of the longest common subsequence of oldLines[:i] and newLines[:j].
func lcsTable(oldLines, newLines []string) [][]int {
	m, n := len(oldLines), len(newLines)

	cells := make([]int, (m+1)*(n+1))
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = cells[i*(n+1) : (i+1)*(n+1) : (i+1)*(n+1)]
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if oldLines[i-1] == newLines[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else {
				dp[i][j] = max(dp[i-1][j], dp[i][j-1])
			}
		}
	}
	return dp
}
