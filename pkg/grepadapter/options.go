package grepadapter

import "fmt"

// Dialect selects the regex flavor the search backend should use.
type Dialect string

const (
	Fixed    Dialect = "fixed"
	Basic    Dialect = "basic"
	Extended Dialect = "extended"
	PCRE     Dialect = "pcre"
)

// Options composes the search backend's option list, per spec §4.1.
type Options struct {
	Dialect         Dialect
	FunctionContext bool
	IgnoreCase      bool
	WordBoundary    bool
	MaxDepth        int // 0 means unset
	Only            []string
	Exclude         []string
}

// args renders Options into the argv appended after the fixed flags
// every invocation carries, targeting the concrete `git grep` backend
// documented in SPEC_FULL.md §10.
func (o Options) args() []string {
	var args []string

	switch o.Dialect {
	case Fixed:
		args = append(args, "-F")
	case Extended:
		args = append(args, "-E")
	case PCRE:
		args = append(args, "-P")
	case Basic, "":
		// git grep's default dialect; no flag needed.
	}

	if o.FunctionContext {
		args = append(args, "-W")
	}
	if o.IgnoreCase {
		args = append(args, "-i")
	}
	if o.WordBoundary {
		args = append(args, "-w")
	}
	if o.MaxDepth > 0 {
		args = append(args, fmt.Sprintf("--max-depth=%d", o.MaxDepth))
	}

	return args
}

// pathspecs renders Only/Exclude into git pathspec magic, appended
// after a literal "--" separator.
func (o Options) pathspecs() []string {
	if len(o.Only) == 0 && len(o.Exclude) == 0 {
		return nil
	}

	specs := []string{"--"}
	for _, p := range o.Only {
		specs = append(specs, ":(glob)"+p)
	}
	for _, p := range o.Exclude {
		specs = append(specs, ":(glob,exclude)"+p)
	}
	return specs
}
