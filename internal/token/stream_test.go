package token

import "testing"

func punct(texts ...string) *Stream {
	toks := make([]Token, len(texts))
	for i, text := range texts {
		switch text {
		case " ", "\n":
			toks[i] = New(Whitespace, text)
		case "/**/":
			toks[i] = New(Comment, text)
		default:
			toks[i] = New(Punct, text)
		}
	}
	return NewStream(toks)
}

func TestMatchClosing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		s    *Stream
		open int
		want int
		ok   bool
	}{
		{"empty parens", punct("(", ")"), 0, 1, true},
		{"nested same family", punct("(", "(", ")", ")"), 0, 3, true},
		{"nested families", punct("(", "[", "{", "}", "]", ")"), 0, 5, true},
		{"attribute opener", punct("#[", "(", ")", "]"), 0, 3, true},
		{"interpolation opener", punct("${", "(", ")", "}"), 0, 3, true},
		{"inner open", punct("(", "(", ")", ")"), 1, 2, true},
		{"family mismatch", punct("(", "[", ")", "]"), 0, 0, false},
		{"unterminated", punct("(", "(", ")"), 0, 0, false},
		{"not an opener", punct(")", ")"), 0, 0, false},
		{"out of range", punct("("), 3, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := tt.s.MatchClosing(tt.open)
			if ok != tt.ok || got != tt.want {
				t.Errorf("MatchClosing(%d) = %d, %v; want %d, %v", tt.open, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestMatchClosingIgnoresLiterals(t *testing.T) {
	t.Parallel()

	s := NewStream([]Token{
		New(Punct, "("),
		New(Literal, "')'"),
		New(Comment, "/* ) */"),
		New(Punct, ")"),
	})
	if got, ok := s.MatchClosing(0); !ok || got != 3 {
		t.Errorf("MatchClosing = %d, %v; want 3, true", got, ok)
	}
}

func TestMeaningful(t *testing.T) {
	t.Parallel()

	s := punct("(", " ", "/**/", "\n", ")")
	if got := s.NextMeaningful(0); got != 4 {
		t.Errorf("NextMeaningful(0) = %d, want 4", got)
	}
	if got := s.PrevMeaningful(4); got != 0 {
		t.Errorf("PrevMeaningful(4) = %d, want 0", got)
	}
	if got := s.NextMeaningful(4); got != -1 {
		t.Errorf("NextMeaningful(4) = %d, want -1", got)
	}
	if got := s.PrevMeaningful(0); got != -1 {
		t.Errorf("PrevMeaningful(0) = %d, want -1", got)
	}
}

func TestSplice(t *testing.T) {
	t.Parallel()

	s := punct("(", " ", ")")
	out := s.Splice(1, 2, []Token{New(Whitespace, "\n  "), New(Punct, ","), New(Whitespace, "\n")})

	if got := out.String(); got != "(\n  ,\n)" {
		t.Errorf("Splice result = %q", got)
	}
	if got := s.String(); got != "( )" {
		t.Errorf("Splice modified receiver: %q", got)
	}
	if got := s.Splice(0, s.Len(), nil).Len(); got != 0 {
		t.Errorf("Splice of everything left %d tokens", got)
	}
}

func TestTokenPredicates(t *testing.T) {
	t.Parallel()

	if New(Literal, ",").Equals(",") {
		t.Error("literal compared equal to punctuation")
	}
	if !New(Punct, ",").Equals(",") {
		t.Error("comma not equal to itself")
	}
	if !New(Keyword, "FUNCTION").KeywordIs("function") {
		t.Error("keywords must compare case-insensitively")
	}
	if !New(Keyword, "class").IsWord() || New(Keyword, "?->").IsWord() {
		t.Error("IsWord misclassified a keyword")
	}
	if !New(Identifier, "foo").IsWord() || New(Variable, "$foo").IsWord() {
		t.Error("IsWord misclassified a name")
	}
	if New(Whitespace, " ").IsMeaningful() || New(Comment, "// x").IsMeaningful() {
		t.Error("whitespace or comment reported meaningful")
	}
	if !New(Whitespace, "\n ").HasNewline() {
		t.Error("HasNewline missed a line break")
	}
	if (Position{}).IsValid() || !(Position{Line: 1}).IsValid() {
		t.Error("Position.IsValid wrong")
	}
	if Keyword.String() != "keyword" || Kind(99).String() != "unknown" {
		t.Error("Kind.String wrong")
	}
}
