package linediff

import "fmt"

// Validate checks that d is a well-formed diff from oldLines to newLines and returns an error on the first violation:
//   - every chunk is non-empty and its Removed count agrees with its Kind;
//   - line numbers are 1-based, in range, and consecutive within each side of a chunk;
//   - contents match the lines they point at;
//   - unchanged lines between chunks are equal on both sides;
//   - applying the chunks to oldLines reproduces newLines.
func (d FileDiff) Validate(oldLines, newLines []string) error {
	oldPos, newPos := 0, 0 // next unconsumed 0-based index on each side

	for ci, c := range d.Chunks {
		if len(c.Changes) == 0 {
			return fmt.Errorf("chunk[%d]: no changes", ci)
		}
		if c.Removed < 0 || c.Removed > len(c.Changes) {
			return fmt.Errorf("chunk[%d]: Removed=%d out of range", ci, c.Removed)
		}
		switch c.Kind {
		case Addition:
			if c.Removed != 0 {
				return fmt.Errorf("chunk[%d]: addition requires Removed==0", ci)
			}
		case Deletion:
			if c.Removed != len(c.Changes) {
				return fmt.Errorf("chunk[%d]: deletion requires Removed==len(Changes)", ci)
			}
		case Modification:
			if c.Removed == 0 || c.Removed == len(c.Changes) {
				return fmt.Errorf("chunk[%d]: modification requires deleted and added lines", ci)
			}
		default:
			return fmt.Errorf("chunk[%d]: unknown kind %v", ci, c.Kind)
		}

		deleted, added := c.Deleted(), c.Added()

		// Unchanged lines before this chunk.
		var gap int
		if len(deleted) > 0 {
			gap = deleted[0].Line - 1 - oldPos
		} else {
			gap = added[0].Line - 1 - newPos
		}
		if gap < 0 {
			return fmt.Errorf("chunk[%d]: overlaps the previous chunk", ci)
		}
		if oldPos+gap > len(oldLines) || newPos+gap > len(newLines) {
			return fmt.Errorf("chunk[%d]: unchanged lines run past the end of input", ci)
		}
		for i := 0; i < gap; i++ {
			if oldLines[oldPos+i] != newLines[newPos+i] {
				return fmt.Errorf("chunk[%d]: implied unchanged old line %d differs from new line %d", ci, oldPos+i+1, newPos+i+1)
			}
		}
		oldPos += gap
		newPos += gap

		for li, lc := range deleted {
			if lc.Line != oldPos+1 {
				return fmt.Errorf("chunk[%d].change[%d]: deleted line %d, want %d", ci, li, lc.Line, oldPos+1)
			}
			if oldPos >= len(oldLines) || oldLines[oldPos] != lc.Content {
				return fmt.Errorf("chunk[%d].change[%d]: deleted content does not match old line %d", ci, li, lc.Line)
			}
			oldPos++
		}
		for li, lc := range added {
			if lc.Line != newPos+1 {
				return fmt.Errorf("chunk[%d].change[%d]: added line %d, want %d", ci, c.Removed+li, lc.Line, newPos+1)
			}
			if newPos >= len(newLines) || newLines[newPos] != lc.Content {
				return fmt.Errorf("chunk[%d].change[%d]: added content does not match new line %d", ci, c.Removed+li, lc.Line)
			}
			newPos++
		}
	}

	// Trailing unchanged lines.
	if len(oldLines)-oldPos != len(newLines)-newPos {
		return fmt.Errorf("diff: chunks do not reconstruct new (%d old lines left, %d new lines left)", len(oldLines)-oldPos, len(newLines)-newPos)
	}
	for i := 0; oldPos+i < len(oldLines); i++ {
		if oldLines[oldPos+i] != newLines[newPos+i] {
			return fmt.Errorf("diff: trailing old line %d differs from new line %d", oldPos+i+1, newPos+i+1)
		}
	}
	return nil
}
