package linediff

import "fmt"

// Kind is the kind of change a DiffChunk describes.
type Kind int

// Kinds of chunks.
const (
	Addition Kind = iota + 1
	Deletion
	Modification
)

func (k Kind) String() string {
	switch k {
	case Addition:
		return "addition"
	case Deletion:
		return "deletion"
	case Modification:
		return "modification"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// LineChange is a single added or deleted line.
type LineChange struct {
	Line    int    // 1-based line number in the sequence the line came from (old for deletions, new for additions).
	Content string // Line content without its terminator.
}

// DiffChunk is a contiguous group of changes of one Kind.
//
// Changes holds deleted lines first, then added lines. Removed is the number of leading deleted lines:
//   - Deletion: Removed == len(Changes)
//   - Addition: Removed == 0
//   - Modification: 0 < Removed < len(Changes)
type DiffChunk struct {
	Kind    Kind
	Changes []LineChange
	Removed int
}

// Deleted returns the lines of c that were deleted from the old sequence.
func (c DiffChunk) Deleted() []LineChange {
	return c.Changes[:c.Removed]
}

// Added returns the lines of c that were added from the new sequence.
func (c DiffChunk) Added() []LineChange {
	return c.Changes[c.Removed:]
}

// FileDiff is the result of one comparison.
type FileDiff struct {
	Label  string      // Caller-chosen name for the comparison, typically the new file's path.
	Chunks []DiffChunk // Ordered chunks; nil if old and new are equal.
}

// Empty reports whether d has no changes.
func (d FileDiff) Empty() bool {
	return len(d.Chunks) == 0
}

// Stats returns the number of added and deleted lines in d.
func (d FileDiff) Stats() (added, deleted int) {
	for _, c := range d.Chunks {
		deleted += c.Removed
		added += len(c.Changes) - c.Removed
	}
	return added, deleted
}

// op is one step of an edit script.
type op uint8

const (
	opMatch op = iota
	opDelete
	opInsert
)

// edit is one step of an edit script in forward order. line is 1-based in the old sequence for opDelete and in the new sequence for opInsert; it is
// unused for opMatch.
type edit struct {
	op      op
	line    int
	content string
}

// buildChunks groups a forward-ordered edit script into chunks. Every maximal run of deletes and inserts between two matches becomes one chunk: its
// deletes (in old order) followed by its inserts (in new order).
func buildChunks(edits []edit) []DiffChunk {
	var chunks []DiffChunk
	var dels, ins []LineChange

	flush := func() {
		if len(dels) == 0 && len(ins) == 0 {
			return
		}
		var kind Kind
		switch {
		case len(dels) > 0 && len(ins) > 0:
			kind = Modification
		case len(dels) > 0:
			kind = Deletion
		default:
			kind = Addition
		}
		changes := make([]LineChange, 0, len(dels)+len(ins))
		changes = append(changes, dels...)
		changes = append(changes, ins...)
		chunks = append(chunks, DiffChunk{Kind: kind, Changes: changes, Removed: len(dels)})
		dels = nil
		ins = nil
	}

	for _, e := range edits {
		switch e.op {
		case opMatch:
			flush()
		case opDelete:
			dels = append(dels, LineChange{Line: e.line, Content: e.content})
		case opInsert:
			ins = append(ins, LineChange{Line: e.line, Content: e.content})
		}
	}
	flush()

	return chunks
}
