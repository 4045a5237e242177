package grepadapter

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rkessler/ge/internal/gerrors"
	"github.com/rkessler/ge/pkg/hits"
)

// parseOutput turns the NUL-delimited, line-oriented output of the
// search backend into a hits.GrepResult, per spec §4.1.
//
// Each non-empty line must contain exactly two NULs, splitting it into
// filename, 1-based line number, and body. "--" separator lines (hunk
// breaks between non-adjacent regions) are discarded.
func parseOutput(output string) (*hits.GrepResult, error) {
	type triple struct {
		file  string
		from  int
		level int
	}

	var raw []triple
	for _, line := range strings.Split(output, "\n") {
		if line == "" || line == "--" {
			continue
		}

		first := strings.IndexByte(line, 0)
		if first < 0 {
			return nil, gerrors.New(gerrors.MalformedGrepLine, "grep line missing NUL delimiters: %q", line)
		}
		second := strings.IndexByte(line[first+1:], 0)
		if second < 0 {
			return nil, gerrors.New(gerrors.MalformedGrepLine, "grep line missing second NUL delimiter: %q", line)
		}
		second += first + 1

		filename := line[:first]
		lineNoStr := line[first+1 : second]
		body := line[second+1:]

		lineNo, err := strconv.Atoi(lineNoStr)
		if err != nil {
			return nil, gerrors.Wrap(gerrors.MalformedGrepLine, err, "invalid line number %q", lineNoStr)
		}

		raw = append(raw, triple{file: filename, from: lineNo - 1, level: leadingIndent(body)})
	}

	sort.SliceStable(raw, func(i, j int) bool {
		if raw[i].file != raw[j].file {
			return raw[i].file < raw[j].file
		}
		return raw[i].from < raw[j].from
	})

	result := &hits.GrepResult{}
	fileIDs := make(map[string]int)
	for _, t := range raw {
		id, ok := fileIDs[t.file]
		if !ok {
			id = len(result.Files)
			fileIDs[t.file] = id
			result.Files = append(result.Files, t.file)
		}
		result.Hits = append(result.Hits, hits.Hit{
			FileID: id,
			From:   t.from,
			NLines: 1,
			Level:  t.level,
		})
	}

	return result, nil
}

// leadingIndent counts leading space/tab characters up to the first
// non-whitespace character, per spec §3.
func leadingIndent(body string) int {
	n := 0
	for n < len(body) && (body[n] == ' ' || body[n] == '\t') {
		n++
	}
	return n
}

// mergeAdjacent coalesces hits within the same file where
// prev.From+prev.NLines == next.From, extending prev.NLines. Applied
// only when the caller's merge option is set, per spec §4.1.
func mergeAdjacent(g *hits.GrepResult) {
	if len(g.Hits) == 0 {
		return
	}

	merged := g.Hits[:1]
	for _, next := range g.Hits[1:] {
		last := &merged[len(merged)-1]
		if last.FileID == next.FileID && last.From+last.NLines == next.From {
			last.NLines += next.NLines
			continue
		}
		merged = append(merged, next)
	}
	g.Hits = merged
}
