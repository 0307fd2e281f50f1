package wrap

import (
	"strings"

	"github.com/phobologic/argwrap/internal/token"
)

// ShouldReformat decides whether site is rewritten. The call must have more
// than MaxArguments arguments, carry a named argument when
// NamedArgumentsOnly is set, and currently fit on one line.
func ShouldReformat(s *token.Stream, site CallSite, args []ArgumentSpan, opts Options) bool {
	if len(args) <= opts.MaxArguments {
		return false
	}
	if opts.NamedArgumentsOnly && !anyNamed(args) {
		return false
	}
	return !multiline(s, site)
}

func anyNamed(args []ArgumentSpan) bool {
	for _, a := range args {
		if a.Named {
			return true
		}
	}
	return false
}

// multiline reports whether the text between the call's parentheses spans
// more than one line.
func multiline(s *token.Stream, site CallSite) bool {
	for i := site.Open + 1; i < site.Close; i++ {
		if strings.ContainsRune(s.At(i).Text, '\n') {
			return true
		}
	}
	return false
}
