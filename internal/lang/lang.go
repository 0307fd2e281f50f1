// Package lang provides a language registry mapping file extensions to
// tree-sitter grammars and the node classification used to build token
// streams and call trees from them.
package lang

import (
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phobologic/argwrap/internal/model"
	"github.com/phobologic/argwrap/internal/token"
)

// Language holds tree-sitter configuration for a supported language.
type Language struct {
	Name       string
	Extensions []string
	lang       *sitter.Language

	// Atomic maps node types that become a single token, without descending
	// into their children, to the kind of that token.
	Atomic map[string]token.Kind

	// Calls maps call-expression node types to their call kind.
	Calls map[string]model.CallKind

	// ArrayType is the node type of array literals and ElementType the type
	// of their entries.
	ArrayType   string
	ElementType string

	// Strings and Numbers list the node types of scalar literals.
	Strings map[string]bool
	Numbers map[string]bool

	// ClassifyLeaf returns the token kind of a leaf node that is not atomic.
	ClassifyLeaf func(node *sitter.Node, text string) token.Kind

	// DecodeString returns the value of a string literal node's source text.
	// It reports false for literals whose value cannot be known statically.
	DecodeString func(raw string) (string, bool)
}

// GetLanguage returns the tree-sitter Language pointer.
func (l *Language) GetLanguage() *sitter.Language {
	return l.lang
}

// NewParser creates a fresh tree-sitter parser for this language.
// Each goroutine must use its own parser (not thread-safe).
func (l *Language) NewParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(l.lang)
	return p
}

// Languages maps language names to their configuration.
// Populated by init() functions in per-language files.
var Languages = map[string]*Language{}

// extensionMap is built lazily after all init() functions have run.
var extensionMap map[string]string
var extensionOnce sync.Once

func getExtensionMap() map[string]string {
	extensionOnce.Do(func() {
		extensionMap = make(map[string]string)
		for _, l := range Languages {
			for _, ext := range l.Extensions {
				extensionMap[ext] = l.Name
			}
		}
	})
	return extensionMap
}

// ForExtension returns the language name for a file extension, or "" if unsupported.
func ForExtension(ext string) string {
	return getExtensionMap()[ext]
}

// NodeText returns the source text of a tree-sitter node.
func NodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
