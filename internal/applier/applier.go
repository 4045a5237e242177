// Package applier hands a reconstructed unified diff to `git apply`,
// the external collaborator spec.md §5/§6 leaves abstract. Grounded on
// original_source/src/git.rs::apply, with a defensive parse of the
// emitted diff before it's ever sent to the subprocess.
package applier

import (
	"bytes"
	"os/exec"

	"github.com/rs/zerolog"
	godiff "github.com/sourcegraph/go-diff/diff"

	"github.com/rkessler/ge/internal/gerrors"
)

// Apply validates patch as a well-formed unified diff, then pipes it
// to `git apply --allow-empty --unidiff-zero -`. --unidiff-zero is
// required because §4.5's emitted hunks never carry context lines;
// without it git apply would fuzzy-match context and silently apply
// at the wrong offset if the same body text recurs elsewhere in the
// file.
func Apply(log zerolog.Logger, patch string) error {
	if patch == "" {
		log.Debug().Msg("nothing to apply, patch is empty")
		return nil
	}

	if _, err := godiff.ParseMultiFileDiff([]byte(patch)); err != nil {
		return gerrors.Wrap(gerrors.PatchApplyFailed, err, "internal error: emitted patch does not parse as a unified diff")
	}

	args := []string{"apply", "--allow-empty", "--unidiff-zero", "-"}
	log.Debug().Strs("args", args).Msg("invoking git apply")

	cmd := exec.Command("git", args...)
	cmd.Stdin = bytes.NewReader([]byte(patch))
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		log.Debug().Err(err).Str("stderr", stderr.String()).Msg("git apply exited with error")
		return gerrors.Wrap(gerrors.PatchApplyFailed, err, "git apply failed: %s", stderr.String())
	}
	log.Debug().Msg("git apply exited successfully")

	return nil
}
