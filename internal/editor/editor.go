// Package editor launches the interactive editor on a rendered
// half-diff buffer and reads back the user's edits, per spec.md §5/§6
// and SPEC_FULL.md §11. Grounded on original_source/src/editor.rs:
// the same tempfile-then-reopen discipline, generalized from Rust's
// NamedTempFile to os.CreateTemp, and the same vim inode-swap
// workaround.
package editor

import (
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rkessler/ge/internal/gerrors"
)

var vimNames = map[string]bool{
	"vim":  true,
	"nvim": true,
	"gvim": true,
}

// Edit writes content to a fresh temp file, spawns the resolved
// editor command on it, and returns the file's content after the
// editor exits successfully. The *os.File handle from CreateTemp is
// used only to write the initial content; everything downstream
// re-opens the file by path, matching editor.rs's pattern of never
// trusting a held handle to survive the editor's rename.
func Edit(log zerolog.Logger, command string, content string) (string, error) {
	f, err := os.CreateTemp("", "ge-*.halfdiff")
	if err != nil {
		return "", gerrors.Wrap(gerrors.EditorUnavailable, err, "failed to create temp file for editor")
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return "", gerrors.Wrap(gerrors.EditorUnavailable, err, "failed to write temp file %s", path)
	}
	if err := f.Close(); err != nil {
		return "", gerrors.Wrap(gerrors.EditorUnavailable, err, "failed to close temp file %s", path)
	}

	args := strings.Fields(command)
	if len(args) == 0 {
		return "", gerrors.New(gerrors.EditorUnavailable, "empty editor command")
	}

	prog, err := exec.LookPath(args[0])
	if err != nil {
		return "", gerrors.Wrap(gerrors.EditorUnavailable, err, "editor %q not found in PATH", args[0])
	}

	if isVim(args[0]) {
		args = append(args, "-c", ":set backupcopy=yes")
	}
	args = append(args, path)

	log.Debug().Str("prog", prog).Strs("args", args[1:]).Msg("launching editor")

	cmd := exec.Command(prog, args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		log.Debug().Err(err).Msg("editor exited with error")
		return "", gerrors.Wrap(gerrors.ChildExitFailed, err, "editor %q exited with an error", prog)
	}
	log.Debug().Msg("editor exited successfully")

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", gerrors.Wrap(gerrors.TempFileLost, err, "temp file %s is missing after the editor exited", path)
	}

	return string(edited), nil
}

// isVim reports whether prog is a vim variant, either by its base
// name or by invoking it with --version and checking the output
// starts with "VIM", matching editor.rs::is_a_vim.
func isVim(prog string) bool {
	base := prog
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if vimNames[base] {
		return true
	}

	out, err := exec.Command(prog, "--version").Output()
	if err != nil {
		return false
	}
	return strings.HasPrefix(string(out), "VIM")
}
