// Package token defines the PHP token stream the rewriters operate on.
package token

import "strings"

// Kind classifies a token.
type Kind int

const (
	Whitespace Kind = iota
	Comment
	Identifier // bare name: function, method, constant or parameter name
	Variable   // $name
	Keyword    // reserved word such as function, new, array
	Punct      // operators and delimiters
	Literal    // strings, heredocs, numbers
	InlineHTML // text outside <?php ... ?>
	Other
)

var kindNames = [...]string{
	Whitespace: "whitespace",
	Comment:    "comment",
	Identifier: "identifier",
	Variable:   "variable",
	Keyword:    "keyword",
	Punct:      "punct",
	Literal:    "literal",
	InlineHTML: "inline_html",
	Other:      "other",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Position is a location in the source file. Line and Column are 1-indexed;
// the zero Position marks a synthesized token.
type Position struct {
	Offset int
	Line   int
	Column int
}

// IsValid reports whether the position refers to real source.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Token is a single lexical element.
type Token struct {
	Kind Kind
	Text string
	Pos  Position
}

// New returns a synthesized token with no source position.
func New(kind Kind, text string) Token {
	return Token{Kind: kind, Text: text}
}

// Equals reports whether the token's text is exactly s. Whitespace, comment
// and literal tokens never equal punctuation.
func (t Token) Equals(s string) bool {
	switch t.Kind {
	case Whitespace, Comment, Literal, InlineHTML:
		return false
	}
	return t.Text == s
}

// IsKind reports whether the token is of kind k.
func (t Token) IsKind(k Kind) bool {
	return t.Kind == k
}

// IsMeaningful reports whether the token is neither whitespace nor a comment.
func (t Token) IsMeaningful() bool {
	return t.Kind != Whitespace && t.Kind != Comment
}

// IsWord reports whether the token is an identifier or a reserved word. PHP
// accepts both as parameter names in named arguments.
func (t Token) IsWord() bool {
	if t.Kind == Identifier {
		return true
	}
	if t.Kind != Keyword || t.Text == "" {
		return false
	}
	for _, r := range t.Text {
		if r != '_' && !isAlnum(r) {
			return false
		}
	}
	return true
}

// HasNewline reports whether the token text contains a line break.
func (t Token) HasNewline() bool {
	return strings.ContainsRune(t.Text, '\n')
}

// KeywordIs reports whether t is the reserved word kw. PHP keywords are
// case-insensitive.
func (t Token) KeywordIs(kw string) bool {
	return t.Kind == Keyword && strings.EqualFold(t.Text, kw)
}

func isAlnum(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r >= 0x80
}
