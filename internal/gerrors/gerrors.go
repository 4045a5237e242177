// Package gerrors defines the typed error kinds ge surfaces to the user.
package gerrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies one of the fatal conditions ge can report.
type Kind string

const (
	GrepUnavailable   Kind = "grep_unavailable"
	EditorUnavailable Kind = "editor_unavailable"
	PagerUnavailable  Kind = "pager_unavailable"
	MalformedGrepLine Kind = "malformed_grep_line"
	NonUtf8EditResult Kind = "non_utf8_edit_result"
	UnknownFile       Kind = "unknown_file"
	MarkerCollision   Kind = "marker_collision"
	TempFileLost      Kind = "temp_file_lost"
	PatchApplyFailed  Kind = "patch_apply_failed"
	ChildExitFailed   Kind = "child_exit_failed"
)

// Error is a diagnostic tied to one of the Kind values above. It wraps
// the underlying cause (if any) so %+v retains a stack trace.
type Error struct {
	Kind  Kind
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.msg, e.cause)
	}
	return e.msg
}

// Format implements fmt.Formatter: %+v prints the message followed by
// the wrapped cause in %+v form, which includes its stack trace; every
// other verb formats Error() as a string.
func (e *Error) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') && e.cause != nil {
		fmt.Fprintf(s, "%s: %+v", e.msg, e.cause)
		return
	}
	fmt.Fprintf(s, fmt.FormatString(s, verb), e.Error())
}

func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is the same Kind, so callers can write
// errors.Is(err, gerrors.New(gerrors.UnknownFile, "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New builds an Error of the given kind with no wrapped cause.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given kind around an existing cause,
// attaching a stack trace via github.com/pkg/errors so %+v is useful
// in debug logs.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:  kind,
		msg:   fmt.Sprintf(format, args...),
		cause: errors.WithStack(cause),
	}
}

// Of is a convenience sentinel for errors.Is comparisons, e.g.
// errors.Is(err, gerrors.Of(gerrors.MarkerCollision)).
func Of(kind Kind) error {
	return &Error{Kind: kind}
}
