// Package hunks reads each distinct file referenced by a hits.GrepResult
// and attaches the verbatim source lines each Hit selected, producing
// the Hunks spec §4.3 hands to the patch builder.
package hunks

import (
	"bufio"

	"github.com/rkessler/ge/internal/fsio"
	"github.com/rkessler/ge/pkg/hits"
)

// Triple is one materialized hunk: the file it belongs to, its
// 0-based starting line, and the verbatim lines at
// [From, From+len(Lines)). Lines are stored without their terminating
// newline.
type Triple struct {
	FileID int
	From   int
	Lines  []string
}

// Hunks is the input to the patch builder: the file table plus the
// materialized triples, sorted by (FileID, From) with disjoint byte
// ranges within a file.
type Hunks struct {
	Files []string
	Hunks []Triple
}

// Collect opens each distinct file referenced by g once, in sorted
// order, and extracts the lines each hit selected. If a file ends
// earlier than a hit requests, the hunk is truncated silently — a
// tolerated boundary behavior, not an error.
func Collect(g *hits.GrepResult, fs fsio.FileSystem) (*Hunks, error) {
	out := &Hunks{Files: g.Files}

	from := 0
	for i := 1; i <= len(g.Hits); i++ {
		if i < len(g.Hits) && g.Hits[i].FileID == g.Hits[from].FileID {
			continue
		}

		triples, err := collectFromFile(g, from, i, fs)
		if err != nil {
			return nil, err
		}
		out.Hunks = append(out.Hunks, triples...)
		from = i
	}

	return out, nil
}

// collectFromFile materializes every hit in g.Hits[lo:hi] — all hits
// in a single file — by streaming the file once with a peekable line
// cursor that only ever advances forward.
func collectFromFile(g *hits.GrepResult, lo, hi int, fs fsio.FileSystem) ([]Triple, error) {
	fileID := g.Hits[lo].FileID
	f, err := fs.Open(g.Files[fileID])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	pos := 0
	advanceTo := func(target int) bool {
		for pos < target {
			if !scanner.Scan() {
				return false
			}
			pos++
		}
		return true
	}

	var triples []Triple
	for _, h := range g.Hits[lo:hi] {
		if !advanceTo(h.From) {
			triples = append(triples, Triple{FileID: fileID, From: h.From, Lines: nil})
			continue
		}

		var lines []string
		for len(lines) < h.NLines && scanner.Scan() {
			lines = append(lines, scanner.Text())
			pos++
		}
		triples = append(triples, Triple{FileID: fileID, From: h.From, Lines: lines})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return triples, nil
}
