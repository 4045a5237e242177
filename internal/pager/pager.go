// Package pager writes preview-mode half-diff output through an
// interactive pager, or straight to stdout when stdout isn't a
// terminal, per spec.md §6 and SPEC_FULL.md §12. Grounded on
// original_source/src/pager.rs.
package pager

import (
	"os"
	"os/exec"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/rkessler/ge/internal/gerrors"
)

// Show writes content to a pager spawned from command, or directly to
// stdout if stdout is not a terminal — piping `ge --preview | less`
// must not start two pagers.
func Show(log zerolog.Logger, command string, content string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		_, err := os.Stdout.WriteString(content)
		return err
	}

	args := strings.Fields(command)
	if len(args) == 0 {
		return gerrors.New(gerrors.PagerUnavailable, "empty pager command")
	}

	prog, err := exec.LookPath(args[0])
	if err != nil {
		return gerrors.Wrap(gerrors.PagerUnavailable, err, "pager %q not found in PATH", args[0])
	}

	log.Debug().Str("prog", prog).Strs("args", args[1:]).Msg("launching pager")

	cmd := exec.Command(prog, args[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return gerrors.Wrap(gerrors.PagerUnavailable, err, "failed to open stdin pipe to pager %q", prog)
	}

	if err := cmd.Start(); err != nil {
		return gerrors.Wrap(gerrors.PagerUnavailable, err, "failed to start pager %q", prog)
	}

	if _, err := stdin.Write([]byte(content)); err != nil {
		stdin.Close()
		_ = cmd.Wait()
		return gerrors.Wrap(gerrors.ChildExitFailed, err, "failed to write to pager %q", prog)
	}
	if err := stdin.Close(); err != nil {
		_ = cmd.Wait()
		return gerrors.Wrap(gerrors.ChildExitFailed, err, "failed to close pager stdin")
	}

	if err := cmd.Wait(); err != nil {
		log.Debug().Err(err).Msg("pager exited with error")
		return gerrors.Wrap(gerrors.ChildExitFailed, err, "pager %q exited with an error", prog)
	}
	log.Debug().Msg("pager exited successfully")

	return nil
}
