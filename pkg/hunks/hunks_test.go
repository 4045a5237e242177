package hunks

import (
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/rkessler/ge/pkg/hits"
)

type memFS map[string]string

func (m memFS) Open(name string) (io.ReadCloser, error) {
	content, ok := m[name]
	if !ok {
		return nil, &fsNotFoundError{name}
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

type fsNotFoundError struct{ name string }

func (e *fsNotFoundError) Error() string { return "no such file: " + e.name }

func TestCollect_MaterializesHits(t *testing.T) {
	fs := memFS{
		"a.go": "line0\nline1\nline2\nline3\n",
		"b.go": "x0\nx1\n",
	}
	g := &hits.GrepResult{
		Files: []string{"a.go", "b.go"},
		Hits: []hits.Hit{
			{FileID: 0, From: 1, NLines: 2},
			{FileID: 1, From: 0, NLines: 1},
		},
	}

	got, err := Collect(g, fs)
	require.NoError(t, err)

	want := &Hunks{
		Files: []string{"a.go", "b.go"},
		Hunks: []Triple{
			{FileID: 0, From: 1, Lines: []string{"line1", "line2"}},
			{FileID: 1, From: 0, Lines: []string{"x0"}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Collect mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_TruncatesSilentlyAtEOF(t *testing.T) {
	fs := memFS{"a.go": "only0\nonly1\n"}
	g := &hits.GrepResult{
		Files: []string{"a.go"},
		Hits:  []hits.Hit{{FileID: 0, From: 1, NLines: 5}},
	}

	got, err := Collect(g, fs)
	require.NoError(t, err)
	require.Equal(t, []string{"only1"}, got.Hunks[0].Lines)
}

func TestCollect_MultipleHitsSameFileStreamedOnce(t *testing.T) {
	fs := memFS{"a.go": "l0\nl1\nl2\nl3\nl4\n"}
	g := &hits.GrepResult{
		Files: []string{"a.go"},
		Hits: []hits.Hit{
			{FileID: 0, From: 0, NLines: 1},
			{FileID: 0, From: 3, NLines: 2},
		},
	}

	got, err := Collect(g, fs)
	require.NoError(t, err)
	require.Len(t, got.Hunks, 2)
	require.Equal(t, []string{"l0"}, got.Hunks[0].Lines)
	require.Equal(t, []string{"l3", "l4"}, got.Hunks[1].Lines)
}
