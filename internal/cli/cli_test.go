package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rkessler/ge/internal/gerrors"
)

func TestValidateDialect_RejectsMultiple(t *testing.T) {
	f := &flags{fixed: true, extended: true}
	require.Error(t, validateDialect(f))
}

func TestValidateDialect_AllowsOne(t *testing.T) {
	f := &flags{extended: true}
	require.NoError(t, validateDialect(f))
}

func TestGrepOptions_DefaultsToBasic(t *testing.T) {
	f := &flags{}
	opts := grepOptions(f)
	require.Equal(t, "basic", string(opts.Dialect))
}

func TestExitCode(t *testing.T) {
	require.Equal(t, 0, exitCode(nil))
	require.Equal(t, 1, exitCode(gerrors.New(gerrors.GrepUnavailable, "boom")))
	require.Equal(t, 2, exitCode(errors.New("usage error")))
}
