package wrap

import "github.com/phobologic/argwrap/internal/token"

// ArgumentSpan is one top-level argument of a call: the tokens in
// [Start, End) with surrounding whitespace trimmed.
type ArgumentSpan struct {
	Start int
	End   int
	Named bool
	Key   string
}

// Segment splits the tokens strictly between open and closeIdx into top-level
// arguments. Commas nested in any bracket family are not separators, and a
// trailing comma does not produce an empty argument.
func Segment(s *token.Stream, open, closeIdx int) []ArgumentSpan {
	var args []ArgumentSpan
	add := func(start, end int) {
		for start < end && s.At(start).Kind == token.Whitespace {
			start++
		}
		for end > start && s.At(end-1).Kind == token.Whitespace {
			end--
		}
		if start == end {
			return
		}
		span := ArgumentSpan{Start: start, End: end}
		span.Key, span.Named = NamedKey(s, start, end)
		args = append(args, span)
	}

	depth := 0
	start := open + 1
	for i := open + 1; i < closeIdx; i++ {
		t := s.At(i)
		switch {
		case token.IsOpener(t):
			depth++
		case token.IsCloser(t):
			depth--
		case depth == 0 && t.Equals(","):
			add(start, i)
			start = i + 1
		}
	}
	add(start, closeIdx)
	return args
}
