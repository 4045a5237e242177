package hits

import "sort"

// Sort restores the (Files[FileID], From) ascending ordering the rest
// of the algebra requires as a precondition. Operators that can
// disturb ordering (currently only CollectHead) call this themselves;
// it is exported so callers assembling a GrepResult by hand can too.
func (g *GrepResult) Sort() {
	sort.SliceStable(g.Hits, func(i, j int) bool {
		fi, ai := g.fileKey(g.Hits[i])
		fj, aj := g.fileKey(g.Hits[j])
		if fi != fj {
			return fi < fj
		}
		return ai < aj
	})
}

// FilterFiles retains only hits whose file appears (or, if invert, does
// not appear) in secondary.Files. Matching is by path string equality.
func (g *GrepResult) FilterFiles(secondary *GrepResult, invert bool) {
	present := make(map[string]bool, len(secondary.Files))
	for _, f := range secondary.Files {
		present[f] = true
	}

	kept := g.Hits[:0]
	for _, h := range g.Hits {
		ok := present[g.Files[h.FileID]]
		if invert {
			ok = !ok
		}
		if ok {
			kept = append(kept, h)
		}
	}
	g.Hits = kept
}

// CollectHead replaces every hit with (file_id, from=0, n_lines=n,
// level=0), then sorts and deduplicates so each file that had any
// match contributes exactly one hit: "edit the first N lines of any
// file that has any match."
func (g *GrepResult) CollectHead(n int) {
	for i := range g.Hits {
		g.Hits[i].From = 0
		g.Hits[i].NLines = n
		g.Hits[i].Level = 0
	}
	g.Sort()

	deduped := g.Hits[:0]
	for i, h := range g.Hits {
		if i > 0 && g.Hits[i-1].FileID == h.FileID {
			continue
		}
		deduped = append(deduped, h)
	}
	g.Hits = deduped
}

// ExtendToAnother extends each primary hit downward to the earliest hit
// in secondary within the same file whose From is at or after the
// primary hit's From and whose Level matches. Primary hits with no such
// target are left unchanged.
//
// Both GrepResults must be sorted by (file name, From); the primary
// iteration and the secondary scan both advance monotonically — a
// single two-pointer pass, never backtracking — because a later
// primary hit's From is never smaller than an earlier one's.
func (g *GrepResult) ExtendToAnother(secondary *GrepResult) {
	j := 0

	for i := range g.Hits {
		hit := &g.Hits[i]
		hFile, hFrom := g.fileKey(*hit)

		for j < len(secondary.Hits) {
			sFile, sFrom := secondary.fileKey(secondary.Hits[j])
			if sFile > hFile || (sFile == hFile && sFrom >= hFrom) {
				break
			}
			j++
		}
		if j >= len(secondary.Hits) {
			break
		}

		sFile, _ := secondary.fileKey(secondary.Hits[j])
		if sFile != hFile {
			continue
		}

		for k := j; k < len(secondary.Hits); k++ {
			cand := secondary.Hits[k]
			cFile, cFrom := secondary.fileKey(cand)
			if cFile != hFile {
				break
			}
			if cFrom >= hFrom && cand.Level == hit.Level {
				hit.NLines = cand.From + cand.NLines - hit.From
				break
			}
		}
	}
}

// ExtendByLines pads every hit symmetrically or asymmetrically: the new
// interval is [max(0, from-up), from+n_lines+down). Saturation prevents
// underflow at the top of a file.
func (g *GrepResult) ExtendByLines(up, down int) {
	for i := range g.Hits {
		h := &g.Hits[i]
		end := h.From + h.NLines + down
		start := h.From - up
		if start < 0 {
			start = 0
		}
		h.From = start
		h.NLines = end - start
	}
}

// FilterOverlaps merges each hit into its predecessor, in a single
// left-to-right pass, whenever they share a file and the predecessor's
// span reaches or touches the next hit's start. The merged span covers
// [prev.From, max(prev.end, next.end)).
func (g *GrepResult) FilterOverlaps() {
	if len(g.Hits) == 0 {
		return
	}

	merged := g.Hits[:1]
	for _, next := range g.Hits[1:] {
		last := &merged[len(merged)-1]
		if last.FileID == next.FileID && last.From+last.NLines >= next.From {
			end := next.From + next.NLines
			lastEnd := last.From + last.NLines
			if end > lastEnd {
				last.NLines = end - last.From
			}
			continue
		}
		merged = append(merged, next)
	}
	g.Hits = merged
}
