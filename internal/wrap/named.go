package wrap

import "github.com/phobologic/argwrap/internal/token"

// NamedKey reports whether the argument in [start, end) uses named-argument
// syntax and returns the parameter name.
//
// The name must be the first meaningful token of the argument and be
// followed by exactly one ":". That rejects ternaries ("$a ? b : c"), whose
// colon is never second, and colons inside nested groups, which can only
// appear after an opener. Reserved words are accepted as names because PHP
// allows them there ("class: Foo::class").
func NamedKey(s *token.Stream, start, end int) (string, bool) {
	first := nextIn(s, start-1, end)
	if first < 0 || !s.At(first).IsWord() {
		return "", false
	}
	colon := nextIn(s, first, end)
	if colon < 0 || !s.At(colon).Equals(":") {
		return "", false
	}
	if after := nextIn(s, colon, end); after >= 0 && s.At(after).Equals(":") {
		return "", false
	}
	return s.At(first).Text, true
}

// nextIn is NextMeaningful bounded by end.
func nextIn(s *token.Stream, i, end int) int {
	j := s.NextMeaningful(i)
	if j < 0 || j >= end {
		return -1
	}
	return j
}
