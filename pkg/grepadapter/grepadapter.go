// Package grepadapter invokes the external source-search backend
// (concretely `git grep`, per SPEC_FULL.md §10) and parses its
// NUL-delimited output into a hits.GrepResult.
package grepadapter

import (
	"bytes"
	"os/exec"

	"github.com/rs/zerolog"

	"github.com/rkessler/ge/internal/gerrors"
	"github.com/rkessler/ge/pkg/hits"
)

// Adapter runs the search backend. The zero value is ready to use.
type Adapter struct {
	Log zerolog.Logger
}

// Grep locates lines matching pattern and returns them as a
// hits.GrepResult. When merge is true, adjacent hits within the same
// file are coalesced (spec §4.1).
func (a Adapter) Grep(pattern string, merge bool, opts Options) (*hits.GrepResult, error) {
	args := []string{"grep", "--color=never", "--line-number", "--null", "-I"}
	args = append(args, opts.args()...)
	args = append(args, pattern)
	args = append(args, opts.pathspecs()...)

	a.Log.Debug().Strs("argv", append([]string{"git"}, args...)).Msg("invoking grep backend")

	cmd := exec.Command("git", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := exitCodeOf(err)
	a.Log.Debug().Int("exit_code", exitCode).Msg("grep backend exited")

	if err != nil {
		if exitCode == 1 {
			// git grep's "no matches" code: not an error, per SPEC_FULL §10.
			return &hits.GrepResult{}, nil
		}
		if _, ok := err.(*exec.ExitError); !ok {
			return nil, gerrors.Wrap(gerrors.GrepUnavailable, err, "failed to start grep backend")
		}
		return nil, gerrors.New(gerrors.GrepUnavailable, "grep backend exited with status %d: %s", exitCode, stderr.String())
	}

	result, parseErr := parseOutput(stdout.String())
	if parseErr != nil {
		return nil, parseErr
	}

	if merge {
		mergeAdjacent(result)
	}

	return result, nil
}

func exitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	return -1
}
