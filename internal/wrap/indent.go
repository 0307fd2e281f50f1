package wrap

import (
	"strings"

	"github.com/phobologic/argwrap/internal/model"
	"github.com/phobologic/argwrap/internal/token"
)

const (
	// sampleTokens bounds how much of a file InferUnit looks at.
	sampleTokens = 500
	defaultUnit  = "    "
)

// InferUnit guesses the file's indentation unit from the leading whitespace
// of lines among the first tokens: a tab when any sampled line is indented
// with a tab, otherwise the shortest non-empty run of spaces, otherwise four
// spaces.
func InferUnit(s *token.Stream) string {
	n := min(s.Len(), sampleTokens)
	shortest := 0
	for i := 0; i < n; i++ {
		t := s.At(i)
		if t.Kind != token.Whitespace || !t.HasNewline() {
			continue
		}
		lead := t.Text[strings.LastIndexByte(t.Text, '\n')+1:]
		if strings.ContainsRune(lead, '\t') {
			return "\t"
		}
		if spaces := len(lead) - len(strings.TrimLeft(lead, " ")); spaces > 0 && (shortest == 0 || spaces < shortest) {
			shortest = spaces
		}
	}
	if shortest == 0 {
		return defaultUnit
	}
	return strings.Repeat(" ", shortest)
}

// BaseIndent returns the leading whitespace of the line holding the token at
// anchor: the text after the last newline of the nearest preceding
// whitespace token that contains one. It is empty on the first line.
func BaseIndent(s *token.Stream, anchor int) string {
	for i := anchor - 1; i >= 0; i-- {
		t := s.At(i)
		if t.Kind == token.Whitespace && t.HasNewline() {
			return t.Text[strings.LastIndexByte(t.Text, '\n')+1:]
		}
	}
	return ""
}

// Profile returns the indentation of the call whose callee name is at anchor.
func Profile(s *token.Stream, anchor int, unit string) model.IndentationProfile {
	return model.IndentationProfile{Unit: unit, Base: BaseIndent(s, anchor)}
}
