// Package cli wires the cobra command tree and drives the pipeline
// spec.md §2 and §5 fix: grep adapter -> hit algebra -> hunk
// materializer -> patch builder -> editor or pager -> applicator.
package cli

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/rkessler/ge/internal/applier"
	"github.com/rkessler/ge/internal/config"
	"github.com/rkessler/ge/internal/editor"
	"github.com/rkessler/ge/internal/fsio"
	"github.com/rkessler/ge/internal/gerrors"
	"github.com/rkessler/ge/internal/logging"
	"github.com/rkessler/ge/internal/pager"
	"github.com/rkessler/ge/pkg/grepadapter"
	"github.com/rkessler/ge/pkg/hunks"
	"github.com/rkessler/ge/pkg/patch"
)

// Version is set by build flags; it defaults to "dev" for local
// builds, matching the teacher's own version-stamping convention.
var Version = "dev"

type flags struct {
	fixed, basic, extended, pcre bool
	functionContext              bool
	ignoreCase                   bool
	wordBoundary                 bool
	maxDepth                     int
	only, exclude                []string
	noMerge                      bool

	context, before, after, head int

	with, without, to string

	preview bool

	header, hunk string

	editor, pager string

	verbose int
	version bool
}

// Execute builds and runs the root command against os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "ge PATTERN",
		Short: "bulk-edit source lines matching a regular expression across a working tree",
		Args: func(cmd *cobra.Command, args []string) error {
			if f.version {
				return nil
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.version {
				fmt.Println("ge " + Version)
				return nil
			}
			return run(cmd, f, args[0])
		},
	}

	pf := cmd.Flags()
	pf.BoolVar(&f.fixed, "fixed", false, "treat the pattern as a fixed string")
	pf.BoolVar(&f.basic, "basic", false, "use basic regular expression syntax (default)")
	pf.BoolVar(&f.extended, "extended", false, "use extended regular expression syntax")
	pf.BoolVar(&f.pcre, "pcre", false, "use Perl-compatible regular expression syntax")
	pf.BoolVarP(&f.functionContext, "function-context", "W", false, "expand each match to its enclosing function")
	pf.BoolVarP(&f.ignoreCase, "ignore-case", "i", false, "case-insensitive match")
	pf.BoolVarP(&f.wordBoundary, "word", "w", false, "match at word boundaries")
	pf.IntVar(&f.maxDepth, "max-depth", 0, "limit search to directories this many levels deep")
	pf.StringArrayVar(&f.only, "only", nil, "restrict the search to paths matching this pathspec glob (repeatable)")
	pf.StringArrayVar(&f.exclude, "exclude", nil, "exclude paths matching this pathspec glob (repeatable)")
	pf.BoolVar(&f.noMerge, "no-merge", false, "do not coalesce adjacent hits within a file")

	pf.IntVarP(&f.context, "context", "C", 0, "extend every hit by N lines above and below")
	pf.IntVarP(&f.before, "before", "B", 0, "extend every hit by N lines above")
	pf.IntVarP(&f.after, "after", "A", 0, "extend every hit by N lines below")
	pf.IntVarP(&f.head, "head", "H", 0, "replace every hit with the first N lines of its file")

	pf.StringVar(&f.with, "with", "", "keep only hits in files that also match this pattern")
	pf.StringVar(&f.without, "without", "", "drop hits in files that match this pattern")
	pf.StringVar(&f.to, "to", "", "extend each hit downward to the next match of this pattern at the same indent")

	pf.BoolVarP(&f.preview, "preview", "p", false, "page the half-diff instead of opening an editor")

	pf.StringVar(&f.header, "header", "", "override the half-diff file-header marker (default +++)")
	pf.StringVar(&f.hunk, "hunk", "", "override the half-diff hunk marker (default @@)")

	pf.StringVar(&f.editor, "editor", "", "override the interactive editor command")
	pf.StringVar(&f.pager, "pager", "", "override the preview pager command")

	pf.CountVarP(&f.verbose, "verbose", "v", "increase logging verbosity (repeatable)")
	pf.BoolVar(&f.version, "version", false, "print the version and exit")

	return cmd
}

func run(cmd *cobra.Command, f *flags, pattern string) error {
	if err := validateDialect(f); err != nil {
		return err
	}

	log := logging.New(f.verbose)
	adapter := grepadapter.Adapter{Log: log}

	primary, err := adapter.Grep(pattern, !f.noMerge, grepOptions(f))
	if err != nil {
		return err
	}

	if f.with != "" {
		secondary, err := adapter.Grep(f.with, true, grepadapter.Options{})
		if err != nil {
			return err
		}
		primary.FilterFiles(secondary, false)
	}
	if f.without != "" {
		secondary, err := adapter.Grep(f.without, true, grepadapter.Options{})
		if err != nil {
			return err
		}
		primary.FilterFiles(secondary, true)
	}

	if cmd.Flags().Changed("head") {
		primary.CollectHead(f.head)
	}

	if f.to != "" {
		secondary, err := adapter.Grep(f.to, true, grepadapter.Options{})
		if err != nil {
			return err
		}
		primary.ExtendToAnother(secondary)
	}

	switch {
	case cmd.Flags().Changed("context"):
		primary.ExtendByLines(f.context, f.context)
	case cmd.Flags().Changed("before") || cmd.Flags().Changed("after"):
		primary.ExtendByLines(f.before, f.after)
	}

	primary.FilterOverlaps()

	h, err := hunks.Collect(primary, fsio.Real{})
	if err != nil {
		return err
	}

	builder, err := patch.FromHunks(patch.Config{Header: f.header, Hunk: f.hunk}, h)
	if err != nil {
		return err
	}

	halfDiff := builder.WriteHalfDiff()

	if f.preview {
		return pager.Show(log, config.Pager(f.pager), halfDiff)
	}

	edited, err := editor.Edit(log, config.Editor(f.editor), halfDiff)
	if err != nil {
		return err
	}

	unifiedDiff, err := builder.ParseHalfDiff([]byte(edited))
	if err != nil {
		return err
	}

	return applier.Apply(log, unifiedDiff)
}

// validateDialect rejects more than one of the mutually exclusive
// regex-dialect flags, per SPEC_FULL.md §18.
func validateDialect(f *flags) error {
	count := 0
	for _, set := range []bool{f.fixed, f.basic, f.extended, f.pcre} {
		if set {
			count++
		}
	}
	if count > 1 {
		return gerrors.New(gerrors.MalformedGrepLine, "at most one of --fixed, --basic, --extended, --pcre may be given")
	}
	return nil
}

func grepOptions(f *flags) grepadapter.Options {
	dialect := grepadapter.Basic
	switch {
	case f.fixed:
		dialect = grepadapter.Fixed
	case f.extended:
		dialect = grepadapter.Extended
	case f.pcre:
		dialect = grepadapter.PCRE
	}

	return grepadapter.Options{
		Dialect:         dialect,
		FunctionContext: f.functionContext,
		IgnoreCase:      f.ignoreCase,
		WordBoundary:    f.wordBoundary,
		MaxDepth:        f.maxDepth,
		Only:            f.only,
		Exclude:         f.exclude,
	}
}

// exitCode maps a returned error to a process exit code, per §6: a
// ChildExitFailed error caused by a child's non-zero exit (editor or
// pager) exits with that child's status; any other *gerrors.Error is a
// deliberate failure surfaced with a short diagnostic and exits 1;
// anything else (e.g. cobra's own usage errors) exits 2.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if ge, ok := err.(*gerrors.Error); ok {
		var exitErr *exec.ExitError
		if ge.Kind == gerrors.ChildExitFailed && errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			return exitErr.ExitCode()
		}
		return 1
	}
	return 2
}

// ExitCode is exported so cmd/ge/main.go can map Execute's error
// without reaching into this package's internals beyond this call.
func ExitCode(err error) int {
	return exitCode(err)
}
