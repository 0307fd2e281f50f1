// Package parse turns source files into the token streams and call trees the
// rewriters work on, using tree-sitter.
package parse

import (
	"context"
	"fmt"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phobologic/argwrap/internal/lang"
	"github.com/phobologic/argwrap/internal/token"
)

// Tree is a parsed source file. It must be closed after use.
type Tree struct {
	lang   *lang.Language
	tree   *sitter.Tree
	source []byte
}

// Parse parses source with parser, which must have been created for l.
func Parse(ctx context.Context, l *lang.Language, parser *sitter.Parser, source []byte) (*Tree, error) {
	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}
	return &Tree{lang: l, tree: tree, source: source}, nil
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	t.tree.Close()
}

// Source returns the parsed source.
func (t *Tree) Source() []byte {
	return t.source
}

// Tokenize parses source with a fresh parser and returns its token stream.
func Tokenize(ctx context.Context, l *lang.Language, source []byte) (*token.Stream, error) {
	tree, err := Parse(ctx, l, l.NewParser(), source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()
	return tree.Tokens(), nil
}

// Tokens returns the token stream of the file. Leaves of the syntax tree
// become tokens, atomic node types become a single token each, and the gaps
// between them become whitespace tokens, so the stream's text is exactly the
// source.
func (t *Tree) Tokens() *token.Stream {
	z := &tokenizer{
		lang:   t.lang,
		source: t.source,
		lines:  lineStarts(t.source),
	}
	if len(t.source) > 0 {
		z.walk(t.tree.RootNode())
	}
	z.gap(len(t.source))
	return token.NewStream(z.toks)
}

type tokenizer struct {
	lang   *lang.Language
	source []byte
	lines  []int
	toks   []token.Token
	pos    int
}

func (z *tokenizer) walk(n *sitter.Node) {
	kind, atomic := z.lang.Atomic[n.Type()]
	count := int(n.ChildCount())
	if !atomic && count > 0 {
		for i := 0; i < count; i++ {
			z.walk(n.Child(i))
		}
		return
	}

	start, end := int(n.StartByte()), int(n.EndByte())
	if end <= start || start < z.pos {
		// Zero-width (missing) node, or one overlapping a token already emitted.
		return
	}
	z.gap(start)
	if !atomic {
		kind = z.lang.ClassifyLeaf(n, string(z.source[start:end]))
	}
	z.emit(kind, start, end)
}

// gap emits the source between the last token and upto.
func (z *tokenizer) gap(upto int) {
	if upto <= z.pos {
		return
	}
	kind := token.Other
	if strings.TrimSpace(string(z.source[z.pos:upto])) == "" {
		kind = token.Whitespace
	}
	z.emit(kind, z.pos, upto)
}

func (z *tokenizer) emit(kind token.Kind, start, end int) {
	z.toks = append(z.toks, token.Token{
		Kind: kind,
		Text: string(z.source[start:end]),
		Pos:  z.position(start),
	})
	z.pos = end
}

func (z *tokenizer) position(offset int) token.Position {
	line := sort.Search(len(z.lines), func(i int) bool { return z.lines[i] > offset }) - 1
	return token.Position{
		Offset: offset,
		Line:   line + 1,
		Column: offset - z.lines[line] + 1,
	}
}

// lineStarts returns the byte offset at which each line begins.
func lineStarts(source []byte) []int {
	starts := []int{0}
	for i, c := range source {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}
