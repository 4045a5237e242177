package patch

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rkessler/ge/internal/gerrors"
)

// lineAccumulator tracks the hunk currently being edited: which file
// it belongs to, its coordinate string, the buffered edited body, and
// the cumulative pos_diff that maps original line numbers to
// post-image line numbers for subsequent hunks in the same file.
type lineAccumulator struct {
	fileID   int // -1 means no file opened yet
	hunk     string
	lines    []string
	posDiff  int
	original map[hunkKey][]string
}

func newLineAccumulator(original map[hunkKey][]string) *lineAccumulator {
	return &lineAccumulator{fileID: -1, original: original}
}

func (l *lineAccumulator) isEmpty() bool {
	return l.fileID == -1 || l.hunk == ""
}

func (l *lineAccumulator) openNewFile(id int) {
	l.fileID = id
	l.posDiff = 0
}

func (l *lineAccumulator) openNewHunk(coord string) {
	l.hunk = coord
	l.lines = nil
}

func (l *lineAccumulator) pushLine(line string) {
	l.lines = append(l.lines, line)
}

// isEdited compares the buffered edited lines against original,
// padding the shorter side with empty strings, per spec §4.5.
func isEdited(edited, original []string) bool {
	n := len(edited)
	if len(original) > n {
		n = len(original)
	}
	for i := 0; i < n; i++ {
		var e, o string
		if i < len(edited) {
			e = edited[i]
		}
		if i < len(original) {
			o = original[i]
		}
		if e != o {
			return true
		}
	}
	return false
}

// dumpHunk flushes the hunk currently being accumulated into acc,
// emitting a unified-diff hunk block only if the edited body differs
// from the stored original.
func (l *lineAccumulator) dumpHunk(acc *hunkAccumulator) error {
	if l.isEmpty() {
		l.openNewHunk("")
		return nil
	}

	coordParts := strings.SplitN(l.hunk, ",", 2)
	origFrom1, err := strconv.Atoi(coordParts[0])
	if err != nil {
		return gerrors.Wrap(gerrors.UnknownFile, err, "invalid hunk coordinate %q", l.hunk)
	}
	origFrom := origFrom1 - 1

	original := l.original[hunkKey{fileID: l.fileID, from: origFrom}]

	if !isEdited(l.lines, original) {
		l.openNewHunk("")
		return nil
	}

	newFrom := origFrom + l.posDiff
	if newFrom < 0 {
		newFrom = 0
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "@@ -%d,%d +%d,%d @@\n", origFrom, len(original), newFrom, len(l.lines))
	for _, o := range original {
		buf.WriteByte('-')
		buf.WriteString(o)
		buf.WriteByte('\n')
	}
	for _, e := range l.lines {
		buf.WriteByte('+')
		buf.WriteString(e)
		buf.WriteByte('\n')
	}
	acc.pushHunk(buf.String())

	l.posDiff += len(l.lines) - len(original)
	l.openNewHunk("")
	return nil
}

// hunkAccumulator holds the unified-diff fragment for one file: a
// header followed by zero or more hunk blocks. It is empty iff only
// the header has been pushed.
type hunkAccumulator struct {
	headerLen int
	buf       strings.Builder
}

func (h *hunkAccumulator) isEmpty() bool {
	return h.headerLen == h.buf.Len()
}

func (h *hunkAccumulator) openNewPatch(filename string) {
	h.buf.Reset()
	fmt.Fprintf(&h.buf, "--- a/%s\n+++ b/%s\n", filename, filename)
	h.headerLen = h.buf.Len()
}

func (h *hunkAccumulator) pushHunk(hunk string) {
	h.buf.WriteString(hunk)
}

func (h *hunkAccumulator) dumpPatch(out *strings.Builder) {
	if h.isEmpty() {
		return
	}
	out.WriteString(h.buf.String())
	h.headerLen = 0
	h.buf.Reset()
}

// ParseHalfDiff parses the edited half-diff bytes and returns a
// unified diff containing only the hunks whose content changed, per
// spec §4.5. buf must be valid UTF-8.
func (b *Builder) ParseHalfDiff(buf []byte) (string, error) {
	if !utf8.Valid(buf) {
		return "", gerrors.New(gerrors.NonUtf8EditResult, "edited buffer is not valid UTF-8")
	}

	var out strings.Builder
	hAcc := &hunkAccumulator{}
	lAcc := newLineAccumulator(b.raw)

	for _, line := range splitLines(string(buf)) {
		switch {
		case hasPrefix(line, b.headerMarker):
			if err := lAcc.dumpHunk(hAcc); err != nil {
				return "", err
			}
			hAcc.dumpPatch(&out)

			filename := strings.TrimSpace(line[len(b.headerMarker):])
			id, ok := b.fileIDOf[filename]
			if !ok {
				return "", gerrors.New(gerrors.UnknownFile, "edited half-diff references unknown file %q", filename)
			}
			hAcc.openNewPatch(filename)
			lAcc.openNewFile(id)

		case hasPrefix(line, b.hunkMarker):
			if err := lAcc.dumpHunk(hAcc); err != nil {
				return "", err
			}
			lAcc.openNewHunk(strings.TrimSpace(line[len(b.hunkMarker):]))

		default:
			lAcc.pushLine(line)
		}
	}

	if err := lAcc.dumpHunk(hAcc); err != nil {
		return "", err
	}
	hAcc.dumpPatch(&out)

	return out.String(), nil
}

// splitLines mimics Rust's str::lines(): split on "\n" without
// producing a trailing empty element when the input ends in "\n".
func splitLines(s string) []string {
	parts := strings.Split(s, "\n")
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
