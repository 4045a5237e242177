package grepadapter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/rkessler/ge/pkg/hits"
)

func TestParseOutput_Basic(t *testing.T) {
	output := "a.go\x001\x00func f() {\n" +
		"a.go\x002\x00\treturn\n" +
		"b.go\x005\x00  x := 1\n"

	got, err := parseOutput(output)
	require.NoError(t, err)

	want := &hits.GrepResult{
		Files: []string{"a.go", "b.go"},
		Hits: []hits.Hit{
			{FileID: 0, From: 0, NLines: 1, Level: 0},
			{FileID: 0, From: 1, NLines: 1, Level: 1},
			{FileID: 1, From: 4, NLines: 1, Level: 2},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseOutput mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOutput_SkipsSeparatorLines(t *testing.T) {
	output := "a.go\x001\x00one\n--\na.go\x005\x00two\n"

	got, err := parseOutput(output)
	require.NoError(t, err)
	require.Len(t, got.Hits, 2)
}

func TestParseOutput_MalformedMissingNul(t *testing.T) {
	_, err := parseOutput("a.go:1:no nul here\n")
	require.Error(t, err)
}

func TestParseOutput_MalformedLineNumber(t *testing.T) {
	output := "a.go\x00notanumber\x00body\n"
	_, err := parseOutput(output)
	require.Error(t, err)
}

func TestMergeAdjacent(t *testing.T) {
	g := &hits.GrepResult{
		Files: []string{"a.go"},
		Hits: []hits.Hit{
			{FileID: 0, From: 0, NLines: 2},
			{FileID: 0, From: 2, NLines: 3},
			{FileID: 0, From: 10, NLines: 1},
		},
	}

	mergeAdjacent(g)

	want := []hits.Hit{
		{FileID: 0, From: 0, NLines: 5},
		{FileID: 0, From: 10, NLines: 1},
	}
	if diff := cmp.Diff(want, g.Hits); diff != "" {
		t.Errorf("mergeAdjacent mismatch (-want +got):\n%s", diff)
	}
}
