package linediff

// Naive compares old and new position by position.
//
// Each differing position becomes its own chunk: a one-line Modification where both sides have a line, otherwise a one-line Addition (past the end of
// old) or Deletion (past the end of new). It cannot see shifted blocks: inserting one line at the top reports every following line as modified.
type Naive struct{}

// Compare implements Comparator. It never returns an error.
func (Naive) Compare(oldLines, newLines []string) (FileDiff, error) {
	n := max(len(oldLines), len(newLines))

	var chunks []DiffChunk
	for i := 0; i < n; i++ {
		switch {
		case i >= len(oldLines):
			chunks = append(chunks, DiffChunk{
				Kind:    Addition,
				Changes: []LineChange{{Line: i + 1, Content: newLines[i]}},
			})
		case i >= len(newLines):
			chunks = append(chunks, DiffChunk{
				Kind:    Deletion,
				Changes: []LineChange{{Line: i + 1, Content: oldLines[i]}},
				Removed: 1,
			})
		case oldLines[i] != newLines[i]:
			chunks = append(chunks, DiffChunk{
				Kind: Modification,
				Changes: []LineChange{
					{Line: i + 1, Content: oldLines[i]},
					{Line: i + 1, Content: newLines[i]},
				},
				Removed: 1,
			})
		}
	}

	return FileDiff{Chunks: chunks}, nil
}
