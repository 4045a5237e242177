package gerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorMessage_WithoutCause(t *testing.T) {
	err := New(UnknownFile, "file %q not found", "x.go")
	require.Equal(t, `file "x.go" not found`, err.Error())
}

func TestErrorMessage_WithCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(GrepUnavailable, cause, "grep failed")
	require.Contains(t, err.Error(), "grep failed")
	require.Contains(t, err.Error(), "boom")
}

func TestIs_MatchesByKind(t *testing.T) {
	err := New(MarkerCollision, "collision")
	require.True(t, errors.Is(err, Of(MarkerCollision)))
	require.False(t, errors.Is(err, Of(UnknownFile)))
}

func TestUnwrap_ReturnsCause(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(PatchApplyFailed, cause, "apply failed")
	require.ErrorIs(t, err, cause)
}
