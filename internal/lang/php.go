package lang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/php"

	"github.com/phobologic/argwrap/internal/model"
	"github.com/phobologic/argwrap/internal/token"
)

func init() {
	Languages["php"] = &Language{
		Name:       "php",
		Extensions: []string{".php"},
		lang:       php.GetLanguage(),
		Atomic: map[string]token.Kind{
			"comment":                  token.Comment,
			"text":                     token.InlineHTML,
			"variable_name":            token.Variable,
			"string":                   token.Literal,
			"encapsed_string":          token.Literal,
			"heredoc":                  token.Literal,
			"nowdoc":                   token.Literal,
			"shell_command_expression": token.Literal,
			"integer":                  token.Literal,
			"float":                    token.Literal,
			"boolean":                  token.Literal,
			"null":                     token.Literal,
		},
		Calls: map[string]model.CallKind{
			"function_call_expression":        model.Function,
			"member_call_expression":          model.InstanceMethod,
			"nullsafe_member_call_expression": model.InstanceMethod,
			"scoped_call_expression":          model.StaticCall,
		},
		ArrayType:    "array_creation_expression",
		ElementType:  "array_element_initializer",
		Strings:      map[string]bool{"string": true, "encapsed_string": true},
		Numbers:      map[string]bool{"integer": true, "float": true},
		ClassifyLeaf: phpClassifyLeaf,
		DecodeString: phpDecodeString,
	}
}

// phpClassifyLeaf maps a leaf to a token kind. Named leaves are names or
// grammar-specific atoms; anonymous leaves are keywords or punctuation.
func phpClassifyLeaf(node *sitter.Node, text string) token.Kind {
	if node.IsNamed() {
		if node.Type() == "name" {
			return token.Identifier
		}
		return token.Other
	}
	if isWord(text) {
		return token.Keyword
	}
	return token.Punct
}

// phpDecodeString returns the value of a single- or double-quoted literal.
// Double-quoted literals are only accepted without escapes or interpolation.
func phpDecodeString(raw string) (string, bool) {
	if len(raw) < 2 {
		return "", false
	}
	quote, body := raw[0], raw[1:len(raw)-1]
	if raw[len(raw)-1] != quote {
		return "", false
	}
	switch quote {
	case '\'':
		var b strings.Builder
		for i := 0; i < len(body); i++ {
			if body[i] == '\\' && i+1 < len(body) && (body[i+1] == '\\' || body[i+1] == '\'') {
				i++
			}
			b.WriteByte(body[i])
		}
		return b.String(), true
	case '"':
		if strings.ContainsAny(body, `$\`) {
			return "", false
		}
		return body, true
	}
	return "", false
}

func isWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '_' && !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}
