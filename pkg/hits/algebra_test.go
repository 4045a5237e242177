package hits

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestFilterFiles(t *testing.T) {
	g := &GrepResult{
		Files: []string{"a.go", "b.go", "c.go"},
		Hits: []Hit{
			{FileID: 0, From: 1, NLines: 1},
			{FileID: 1, From: 2, NLines: 1},
			{FileID: 2, From: 3, NLines: 1},
		},
	}
	secondary := &GrepResult{Files: []string{"b.go"}}

	g.FilterFiles(secondary, false)
	require.Len(t, g.Hits, 1)
	require.Equal(t, 1, g.Hits[0].FileID)
}

func TestFilterFiles_Invert(t *testing.T) {
	g := &GrepResult{
		Files: []string{"a.go", "b.go"},
		Hits: []Hit{
			{FileID: 0, From: 1, NLines: 1},
			{FileID: 1, From: 2, NLines: 1},
		},
	}
	secondary := &GrepResult{Files: []string{"b.go"}}

	g.FilterFiles(secondary, true)
	require.Len(t, g.Hits, 1)
	require.Equal(t, 0, g.Hits[0].FileID)
}

func TestCollectHead(t *testing.T) {
	g := &GrepResult{
		Files: []string{"a.go", "b.go"},
		Hits: []Hit{
			{FileID: 0, From: 10, NLines: 1, Level: 4},
			{FileID: 0, From: 20, NLines: 1, Level: 0},
			{FileID: 1, From: 5, NLines: 1, Level: 2},
		},
	}

	g.CollectHead(3)

	want := []Hit{
		{FileID: 0, From: 0, NLines: 3, Level: 0},
		{FileID: 1, From: 0, NLines: 3, Level: 0},
	}
	if diff := cmp.Diff(want, g.Hits); diff != "" {
		t.Errorf("CollectHead mismatch (-want +got):\n%s", diff)
	}
}

// TestExtendToAnother reproduces spec §S5: primary hits at indent 0
// lines {10, 30}; secondary hits with indent 0 at lines {15, 35}, and
// indent 4 at line 12 (to be ignored).
func TestExtendToAnother_S5(t *testing.T) {
	files := []string{"f.go"}
	primary := &GrepResult{
		Files: files,
		Hits: []Hit{
			{FileID: 0, From: 10, NLines: 1, Level: 0},
			{FileID: 0, From: 30, NLines: 1, Level: 0},
		},
	}
	secondary := &GrepResult{
		Files: files,
		Hits: []Hit{
			{FileID: 0, From: 12, NLines: 1, Level: 4},
			{FileID: 0, From: 15, NLines: 1, Level: 0},
			{FileID: 0, From: 35, NLines: 1, Level: 0},
		},
	}

	primary.ExtendToAnother(secondary)

	require.Equal(t, 6, primary.Hits[0].NLines)
	require.Equal(t, 6, primary.Hits[1].NLines)
}

func TestExtendToAnother_NoTargetLeavesHitUnchanged(t *testing.T) {
	files := []string{"f.go"}
	primary := &GrepResult{
		Files: files,
		Hits:  []Hit{{FileID: 0, From: 10, NLines: 2, Level: 0}},
	}
	secondary := &GrepResult{Files: files}

	primary.ExtendToAnother(secondary)

	require.Equal(t, 2, primary.Hits[0].NLines)
}

func TestExtendByLines_SaturatesAtZero(t *testing.T) {
	g := &GrepResult{
		Files: []string{"f.go"},
		Hits:  []Hit{{FileID: 0, From: 1, NLines: 1}},
	}

	g.ExtendByLines(5, 2)

	require.Equal(t, 0, g.Hits[0].From)
	require.Equal(t, 4, g.Hits[0].NLines)
}

// TestFilterOverlaps_MergesTouchingAndOverlapping exercises
// left-to-right merging of touching and overlapping hits within a
// single file.
func TestFilterOverlaps_MergesTouchingAndOverlapping(t *testing.T) {
	g := &GrepResult{
		Files: []string{"f.go"},
		Hits: []Hit{
			{FileID: 0, From: 0, NLines: 5},
			{FileID: 0, From: 3, NLines: 4},
			{FileID: 0, From: 7, NLines: 2},
			{FileID: 0, From: 20, NLines: 1},
		},
	}

	g.FilterOverlaps()

	want := []Hit{
		{FileID: 0, From: 0, NLines: 9},
		{FileID: 0, From: 20, NLines: 1},
	}
	if diff := cmp.Diff(want, g.Hits); diff != "" {
		t.Errorf("FilterOverlaps mismatch (-want +got):\n%s", diff)
	}
}

func TestSort(t *testing.T) {
	g := &GrepResult{
		Files: []string{"a.go", "b.go"},
		Hits: []Hit{
			{FileID: 1, From: 5},
			{FileID: 0, From: 10},
			{FileID: 0, From: 2},
		},
	}

	g.Sort()

	require.Equal(t, 0, g.Hits[0].FileID)
	require.Equal(t, 2, g.Hits[0].From)
	require.Equal(t, 0, g.Hits[1].FileID)
	require.Equal(t, 10, g.Hits[1].From)
	require.Equal(t, 1, g.Hits[2].FileID)
}
