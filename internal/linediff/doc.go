// Package linediff computes line-level differences between an "old" and a "new" sequence of lines.
//
// Representation: every algorithm returns a FileDiff, an ordered slice of DiffChunks. Each chunk has a Kind:
//   - Addition: lines present only in the new sequence. Line numbers refer to the new sequence.
//   - Deletion: lines present only in the old sequence. Line numbers refer to the old sequence.
//   - Modification: a group of deleted lines immediately followed by a group of added lines, with no unchanged line in between. The deleted lines come first
//     (DiffChunk.Removed of them), then the added lines.
//
// Unchanged lines are never stored; they are implied by the gaps between chunks.
//
// Invariants:
//   - Chunks never span an unchanged line. Two chunks of the same kind are only ever adjacent in Chunks if at least one unchanged line separates them
//     (Naive is exempt: it reports every differing position as its own chunk).
//   - Applying the chunks to old in order (keep unchanged lines, drop deleted lines, insert added lines) reproduces new. See FileDiff.Validate.
//
// Algorithms:
//   - Naive: positional comparison. Cheap, but reports shifted blocks as a cascade of modifications.
//   - LCS: longest-common-subsequence table plus backtrace. O(m*n) time and memory.
//   - Myers: shortest path through the edit graph. O((m+n)*D) time and memory, where D is the edit distance.
//
// Getting a diff:
//
//	d, err := linediff.Run("myers", oldLines, newLines, &linediff.Options{Label: "new.txt"})
//
// The engines are pure functions over their inputs and keep no state between calls, so they are safe for concurrent use. An optional TraceFunc receives the
// engines' intermediate state (the LCS table, the Myers frontier per level); it is nil, and therefore silent, by default.
package linediff
