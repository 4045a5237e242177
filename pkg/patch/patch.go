// Package patch owns the half-diff textual protocol: rendering
// materialized hunks into the editable buffer (with marker-collision
// avoidance) and reconstructing a unified diff from the edited buffer,
// per spec §4.4 and §4.5.
package patch

import (
	"sort"

	"github.com/rkessler/ge/internal/gerrors"
	"github.com/rkessler/ge/pkg/hunks"
)

// maxCollisionAttempts bounds the marker-extension loop in
// avoidCollision (spec §4.4: "bounded to 16 iterations").
const maxCollisionAttempts = 16

// Config overrides the default markers. A zero value for either field
// means "use the default and allow collision-avoidance to extend it".
type Config struct {
	Header string
	Hunk   string
}

type hunkKey struct {
	fileID int
	from   int
}

// Builder is the frozen, post-hunk-collection state of the patch
// engine: a bidirectional file table, the original hunks keyed by
// (file_id, from), and the two markers (each carrying whether it may
// still be extended to avoid collisions). Builder is immutable once
// constructed; WriteHalfDiff and ParseHalfDiff only ever read it.
type Builder struct {
	headerMarker             string
	hunkMarker               string
	headerCollisionAvoidance bool
	hunkCollisionAvoidance   bool

	files    []string
	fileIDOf map[string]int
	raw      map[hunkKey][]string
	order    []hunkKey // ascending by (fileID, from)
}

// FromHunks consumes h by move and builds a Builder, running
// collision avoidance before returning. h must not be used afterward.
func FromHunks(cfg Config, h *hunks.Hunks) (*Builder, error) {
	b := &Builder{
		headerMarker:             cfg.Header,
		hunkMarker:               cfg.Hunk,
		headerCollisionAvoidance: cfg.Header == "",
		hunkCollisionAvoidance:   cfg.Hunk == "",
		files:                    h.Files,
		fileIDOf:                 make(map[string]int, len(h.Files)),
		raw:                      make(map[hunkKey][]string, len(h.Hunks)),
	}
	if b.headerMarker == "" {
		b.headerMarker = "+++"
	}
	if b.hunkMarker == "" {
		b.hunkMarker = "@@"
	}
	for id, name := range h.Files {
		b.fileIDOf[name] = id
	}

	for _, t := range h.Hunks {
		k := hunkKey{fileID: t.FileID, from: t.From}
		b.raw[k] = t.Lines
		b.order = append(b.order, k)
	}
	sortKeys(b.order)

	if err := b.avoidCollision(); err != nil {
		return nil, err
	}
	return b, nil
}

// scanLines reports whether any body line of any hunk begins with
// marker.
func (b *Builder) scanLines(marker string) bool {
	for _, lines := range b.raw {
		for _, line := range lines {
			if hasPrefix(line, marker) {
				return true
			}
		}
	}
	return false
}

// avoidCollision extends header_marker with "+" and hunk_marker with
// "@" until no body line collides with either, up to
// maxCollisionAttempts tries. If the bound is reached, or a marker was
// explicitly fixed by the user (its *CollisionAvoidance flag is
// false) while a collision remains, it fails with MarkerCollision.
func (b *Builder) avoidCollision() error {
	for i := 0; ; i++ {
		if !b.scanLines(b.headerMarker) {
			break
		}
		if i == maxCollisionAttempts-1 || !b.headerCollisionAvoidance {
			return gerrors.New(gerrors.MarkerCollision, "failed to avoid collision with header marker %q", b.headerMarker)
		}
		b.headerMarker += "+"
	}

	for i := 0; ; i++ {
		if !b.scanLines(b.hunkMarker) {
			break
		}
		if i == maxCollisionAttempts-1 || !b.hunkCollisionAvoidance {
			return gerrors.New(gerrors.MarkerCollision, "failed to avoid collision with hunk marker %q", b.hunkMarker)
		}
		b.hunkMarker += "@"
	}

	return nil
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func sortKeys(keys []hunkKey) {
	sort.SliceStable(keys, func(i, j int) bool {
		if keys[i].fileID != keys[j].fileID {
			return keys[i].fileID < keys[j].fileID
		}
		return keys[i].from < keys[j].from
	})
}
