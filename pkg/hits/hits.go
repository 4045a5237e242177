// Package hits implements the match-extension algebra over line
// intervals: Hit, GrepResult, and the in-place operators that narrow,
// extend, and merge a set of matched lines before they are turned into
// editable hunks.
package hits

// Hit is a contiguous line interval in one file selected for editing.
//
// Invariant: From+NLines must not exceed the file's length at
// materialization time (enforced by pkg/hunks, not here). Level is the
// count of leading space/tab characters on the hit's first line.
type Hit struct {
	FileID int
	From   int
	NLines int
	Level  int
}

// GrepResult is the output of a search and the working value the
// algebra in algebra.go mutates in place. Files is ordered ascending by
// path; Hits is ordered ascending by (Files[FileID], From).
type GrepResult struct {
	Files []string
	Hits  []Hit
}

// fileKey returns the sort/comparison key for hit h: its file path
// joined with From, matching the (files[file_id], from) ordering spec.md
// requires throughout the algebra.
func (g *GrepResult) fileKey(h Hit) (string, int) {
	return g.Files[h.FileID], h.From
}
