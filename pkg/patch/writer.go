package patch

import (
	"fmt"
	"strings"
)

// WriteHalfDiff renders the Builder's hunks into the editable
// half-diff buffer, per the grammar in spec §4.4:
//
//	<half-diff> ::= ( <file-section> )*
//	<file-section> ::= <header-line> <hunk>+
//	<header-line> ::= <HMARK> " " <filename> "\n"
//	<hunk> ::= <hunk-line> ( <body-line> "\n" )*
//	<hunk-line> ::= <QMARK> " " <line1-based> "," <count> "\n"
//
// Hunks are emitted in ascending (file_id, from) order; the hunk
// coordinate is 1-based even though Builder stores it 0-based.
func (b *Builder) WriteHalfDiff() string {
	var out strings.Builder

	prevFile := -1
	for _, k := range b.order {
		if k.fileID != prevFile {
			fmt.Fprintf(&out, "%s %s\n", b.headerMarker, b.files[k.fileID])
			prevFile = k.fileID
		}

		lines := b.raw[k]
		fmt.Fprintf(&out, "%s %d,%d\n", b.hunkMarker, k.from+1, len(lines))
		for _, line := range lines {
			out.WriteString(line)
			out.WriteByte('\n')
		}
	}

	return out.String()
}
