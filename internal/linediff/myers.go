package linediff

import "slices"

// Myers diffs by searching the edit graph for a shortest path from (0,0) to (len(old),len(new)), following Myers' "An O(ND) Difference Algorithm".
//
// Nodes are (x,y) with x indexing old and y indexing new. A horizontal move deletes old[x], a vertical move adds new[y], and a diagonal move (only when
// old[x]==new[y]) is free. The search expands by edit distance d; for each d it records, per diagonal k=x-y, the furthest x reachable with d edits.
//
// The frontier of every level is kept (one slice per level) because the backtrace needs level d-1 to recover the step taken at level d.
//
// Predecessor rule, used identically when searching and when backtracking: diagonal k is entered from k+1 (an addition) if k==-d, or if k!=d and
// V[k-1] < V[k+1]; otherwise from k-1 (a deletion). On ties the deletion wins.
type Myers struct {
	Trace TraceFunc // optional; receives each level's frontier and each backtrace step
}

// frontier holds, for one level d, the furthest x reached on each diagonal k at index k+offset.
type frontier []int

// Compare implements Comparator. It returns ErrNoScriptFound only if the search never reaches the end node, which indicates a bug.
func (e Myers) Compare(oldLines, newLines []string) (FileDiff, error) {
	trace, err := e.shortestEdit(oldLines, newLines)
	if err != nil {
		return FileDiff{}, err
	}
	edits := e.backtrack(oldLines, newLines, trace)
	return FileDiff{Chunks: buildChunks(edits)}, nil
}

// shortestEdit runs the forward search. It returns one frontier snapshot per level 0..D, where D is the edit distance.
func (e Myers) shortestEdit(oldLines, newLines []string) ([]frontier, error) {
	m, n := len(oldLines), len(newLines)
	maxD := m + n
	offset := maxD + 1

	// Index offset+1 (k=1) starts at 0, so level 0 behaves as if entered by a vertical move from (0,-1).
	v := make(frontier, 2*maxD+3)
	var trace []frontier

	for d := 0; d <= maxD; d++ {
		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k
			for x < m && y < n && oldLines[x] == newLines[y] {
				x++
				y++
			}
			v[offset+k] = x

			if x >= m && y >= n {
				e.Trace.printf("myers: reached (%d,%d) at d=%d k=%d", x, y, d, k)
				trace = append(trace, slices.Clone(v))
				return trace, nil
			}
		}
		if e.Trace != nil {
			e.Trace("myers: d=%d frontier=%v", d, v[offset-d:offset+d+1])
		}
		trace = append(trace, slices.Clone(v))
	}

	return nil, ErrNoScriptFound
}

// backtrack walks trace from (len(old),len(new)) back to (0,0) and returns the edit script in forward order.
func (e Myers) backtrack(oldLines, newLines []string, trace []frontier) []edit {
	x, y := len(oldLines), len(newLines)
	offset := len(oldLines) + len(newLines) + 1

	var edits []edit // reverse order
	for d := len(trace) - 1; d > 0; d-- {
		v := trace[d-1]
		k := x - y

		insert := k == -d || (k != d && v[offset+k-1] < v[offset+k+1])
		prevK := k - 1
		if insert {
			prevK = k + 1
		}
		prevX := v[offset+prevK]
		prevY := prevX - prevK

		// Node right after this level's single edit.
		startX := prevX
		if !insert {
			startX = prevX + 1
		}
		for x > startX {
			x--
			y--
			edits = append(edits, edit{op: opMatch})
		}

		if insert {
			e.Trace.printf("myers: d=%d (%d,%d)->(%d,%d) add new line %d", d, prevX, prevY, x, y, prevY+1)
			edits = append(edits, edit{op: opInsert, line: prevY + 1, content: newLines[prevY]})
		} else {
			e.Trace.printf("myers: d=%d (%d,%d)->(%d,%d) delete old line %d", d, prevX, prevY, x, y, prevX+1)
			edits = append(edits, edit{op: opDelete, line: prevX + 1, content: oldLines[prevX]})
		}
		x, y = prevX, prevY
	}

	// Level 0 is a single snake from the origin.
	for x > 0 && y > 0 {
		x--
		y--
		edits = append(edits, edit{op: opMatch})
	}

	slices.Reverse(edits)
	return edits
}
