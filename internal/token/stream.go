package token

import "strings"

// closers maps every opening delimiter to the closer that ends it.
var closers = map[string]string{
	"(":  ")",
	"[":  "]",
	"{":  "}",
	"#[": "]",
	"${": "}",
}

// IsOpener reports whether t opens a bracketed group.
func IsOpener(t Token) bool {
	if t.Kind != Punct {
		return false
	}
	_, ok := closers[t.Text]
	return ok
}

// IsCloser reports whether t closes a bracketed group.
func IsCloser(t Token) bool {
	return t.Kind == Punct && (t.Text == ")" || t.Text == "]" || t.Text == "}")
}

// Stream is an ordered, immutable sequence of tokens. Edits go through
// Splice, which returns a new Stream and leaves the receiver untouched.
type Stream struct {
	toks []Token
}

// NewStream wraps toks. The slice is owned by the stream afterwards.
func NewStream(toks []Token) *Stream {
	return &Stream{toks: toks}
}

// Len returns the number of tokens.
func (s *Stream) Len() int {
	return len(s.toks)
}

// At returns the token at index i.
func (s *Stream) At(i int) Token {
	return s.toks[i]
}

// Tokens returns a copy of the underlying tokens.
func (s *Stream) Tokens() []Token {
	out := make([]Token, len(s.toks))
	copy(out, s.toks)
	return out
}

// Slice returns a copy of the tokens in [start, end).
func (s *Stream) Slice(start, end int) []Token {
	out := make([]Token, end-start)
	copy(out, s.toks[start:end])
	return out
}

// String concatenates the text of all tokens.
func (s *Stream) String() string {
	return Join(s.toks)
}

// Join concatenates the text of toks.
func Join(toks []Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.Text)
	}
	return b.String()
}

// NextMeaningful returns the index of the first meaningful token after i,
// or -1.
func (s *Stream) NextMeaningful(i int) int {
	for j := i + 1; j < len(s.toks); j++ {
		if s.toks[j].IsMeaningful() {
			return j
		}
	}
	return -1
}

// PrevMeaningful returns the index of the last meaningful token before i,
// or -1.
func (s *Stream) PrevMeaningful(i int) int {
	for j := i - 1; j >= 0; j-- {
		if s.toks[j].IsMeaningful() {
			return j
		}
	}
	return -1
}

// MatchClosing returns the index of the delimiter closing the group opened at
// open. Nested groups of every family are tracked on a stack, so a ")" inside
// an unrelated "[...]" never ends the search. It returns false when open is
// not an opener, when a closer of the wrong family is met, or when the stream
// ends first.
func (s *Stream) MatchClosing(open int) (int, bool) {
	if open < 0 || open >= len(s.toks) || !IsOpener(s.toks[open]) {
		return 0, false
	}
	stack := []string{closers[s.toks[open].Text]}
	for i := open + 1; i < len(s.toks); i++ {
		t := s.toks[i]
		switch {
		case IsOpener(t):
			stack = append(stack, closers[t.Text])
		case IsCloser(t):
			if stack[len(stack)-1] != t.Text {
				return 0, false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// Splice returns a new stream in which the tokens in [start, end) are
// replaced by repl.
func (s *Stream) Splice(start, end int, repl []Token) *Stream {
	out := make([]Token, 0, len(s.toks)-(end-start)+len(repl))
	out = append(out, s.toks[:start]...)
	out = append(out, repl...)
	out = append(out, s.toks[end:]...)
	return &Stream{toks: out}
}
