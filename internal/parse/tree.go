package parse

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phobologic/argwrap/internal/ast"
	"github.com/phobologic/argwrap/internal/lang"
	"github.com/phobologic/argwrap/internal/model"
)

// File builds the reduced call tree of the parsed source.
func (t *Tree) File() *ast.File {
	b := &builder{lang: t.lang, source: t.source}
	b.walk(t.tree.RootNode())
	return &ast.File{Source: t.source, Calls: b.calls}
}

type builder struct {
	lang   *lang.Language
	source []byte
	calls  []*ast.CallExpr
}

func (b *builder) walk(n *sitter.Node) {
	if kind, ok := b.lang.Calls[n.Type()]; ok {
		if c := b.call(n, kind); c != nil {
			b.calls = append(b.calls, c)
		}
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		b.walk(n.Child(i))
	}
}

func (b *builder) call(n *sitter.Node, kind model.CallKind) *ast.CallExpr {
	args := n.ChildByFieldName("arguments")
	if args == nil {
		args = childOfType(n, "arguments")
	}
	if args == nil {
		return nil
	}
	lparen, rparen := int(args.StartByte()), int(args.EndByte())-1
	if rparen <= lparen || b.source[lparen] != '(' || b.source[rparen] != ')' {
		return nil
	}

	c := &ast.CallExpr{
		Kind:   kind,
		Pos:    b.span(n),
		Lparen: lparen,
		Rparen: rparen,
		Line:   int(n.StartPoint().Row) + 1,
	}

	field := "name"
	if kind == model.Function {
		field = "function"
	}
	callee := n.ChildByFieldName(field)
	if callee == nil {
		callee = lastNamedBefore(n, args)
	}
	if callee != nil && (callee.Type() == "name" || callee.Type() == "qualified_name") {
		c.Name = b.text(callee)
	}
	if kind == model.StaticCall {
		scope := n.ChildByFieldName("scope")
		if scope == nil && n.NamedChildCount() > 0 {
			scope = n.NamedChild(0)
		}
		if scope != nil {
			c.Scope = b.text(scope)
		}
	}

	for i := 0; i < int(args.NamedChildCount()); i++ {
		child := args.NamedChild(i)
		if child.Type() == "comment" {
			c.Comments = true
			continue
		}
		a, comments := b.arg(child)
		c.Comments = c.Comments || comments
		c.Args = append(c.Args, a)
	}
	return c
}

// arg converts an argument node. Named arguments are recognised by a name
// directly followed by ":". It also reports whether the node holds a comment
// outside the value.
func (b *builder) arg(n *sitter.Node) (*ast.Arg, bool) {
	if n.Type() != "argument" {
		return &ast.Arg{Value: b.expr(n), Spread: n.Type() == "variadic_unpacking"}, false
	}

	a := &ast.Arg{}
	var (
		value    *sitter.Node
		comments bool
	)
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if !child.IsNamed() {
			if child.Type() == "..." {
				a.Spread = true
			}
			continue
		}
		switch child.Type() {
		case "comment":
			comments = true
			continue
		case "reference_modifier":
			continue
		case "variadic_unpacking":
			a.Spread = true
		}
		if value == nil && a.Name == "" && i+1 < count {
			if next := n.Child(i + 1); !next.IsNamed() && next.Type() == ":" {
				a.Name = b.text(child)
				continue
			}
		}
		value = child
	}
	if value == nil {
		a.Value = &ast.Raw{Pos: b.span(n)}
		return a, comments
	}
	a.Value = b.expr(value)
	return a, comments
}

func (b *builder) expr(n *sitter.Node) ast.Expr {
	switch {
	case n.Type() == b.lang.ArrayType:
		return b.array(n)
	case b.lang.Strings[n.Type()]:
		if v, ok := b.lang.DecodeString(b.text(n)); ok {
			return &ast.StringLit{Pos: b.span(n), Value: v}
		}
	case b.lang.Numbers[n.Type()]:
		return &ast.NumberLit{Pos: b.span(n)}
	}
	return &ast.Raw{Pos: b.span(n)}
}

func (b *builder) array(n *sitter.Node) *ast.ArrayLit {
	arr := &ast.ArrayLit{
		Pos:       b.span(n),
		StartLine: int(n.StartPoint().Row) + 1,
		EndLine:   int(n.EndPoint().Row) + 1,
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "comment":
			arr.Comments = true
		case b.lang.ElementType:
			item, comments := b.element(child)
			arr.Comments = arr.Comments || comments
			arr.Items = append(arr.Items, item)
		default:
			arr.Items = append(arr.Items, &ast.ArrayItem{
				Pos:    b.span(child),
				Value:  b.expr(child),
				Spread: child.Type() == "variadic_unpacking",
			})
		}
	}
	return arr
}

// element converts "key => value", "value", "&$ref" and "...$spread" entries.
// It also reports whether a comment sits between the operands.
func (b *builder) element(n *sitter.Node) (*ast.ArrayItem, bool) {
	item := &ast.ArrayItem{Pos: b.span(n)}
	var (
		operands []*sitter.Node
		comments bool
	)
	arrow := -1
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if !child.IsNamed() {
			switch child.Type() {
			case "=>":
				arrow = len(operands)
			case "&":
				item.ByRef = true
			case "...":
				item.Spread = true
			}
			continue
		}
		switch child.Type() {
		case "comment":
			comments = true
			continue
		case "by_ref":
			item.ByRef = true
		case "variadic_unpacking":
			item.Spread = true
		}
		operands = append(operands, child)
	}

	switch {
	case arrow > 0 && arrow < len(operands):
		item.Key = b.expr(operands[arrow-1])
		item.Value = b.expr(operands[arrow])
	case len(operands) > 0:
		item.Value = b.expr(operands[len(operands)-1])
	default:
		item.Value = &ast.Raw{Pos: item.Pos}
	}
	return item, comments
}

func (b *builder) span(n *sitter.Node) ast.Span {
	return ast.Span{Start: int(n.StartByte()), End: int(n.EndByte())}
}

func (b *builder) text(n *sitter.Node) string {
	return lang.NodeText(n, b.source)
}

func childOfType(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child.Type() == typ {
			return child
		}
	}
	return nil
}

// lastNamedBefore returns the last "name" child of n preceding stop.
func lastNamedBefore(n, stop *sitter.Node) *sitter.Node {
	var found *sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.StartByte() >= stop.StartByte() {
			break
		}
		if child.Type() == "name" {
			found = child
		}
	}
	return found
}
