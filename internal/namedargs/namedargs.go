// Package namedargs rewrites calls whose only argument is an associative
// array literal into calls with one named argument per array entry:
//
//	foo(['x' => $x, 'y' => $y])  =>  foo(x: $x, y: $y)
//
// Only calls selected by a configured target are considered. Any array that
// cannot be converted entry for entry leaves the call untouched.
package namedargs

import (
	"sort"
	"strings"

	"github.com/phobologic/argwrap/internal/ast"
	"github.com/phobologic/argwrap/internal/model"
)

const defaultUnit = "    "

// Options configures the rewrite.
type Options struct {
	Targets []model.Target
	// AlwaysMultiline prints every rewritten call one argument per line,
	// instead of following the layout of the original array.
	AlwaysMultiline bool
	// Unit is the file's indentation unit. Four spaces when empty.
	Unit string
}

// Selected reports whether any target matches call.
func Selected(call *ast.CallExpr, targets []model.Target) bool {
	if call.Name == "" {
		return false
	}
	for _, t := range targets {
		if t.Matches(call.Kind, call.Scope, call.Name) {
			return true
		}
	}
	return false
}

// TryRewrite returns a copy of call whose arguments are the entries of its
// array argument, or false when call is not selected or its argument is not
// convertible. The value expressions of the result are the array's own
// nodes.
func TryRewrite(call *ast.CallExpr, opts Options) (*ast.CallExpr, bool) {
	if !Selected(call, opts.Targets) {
		return nil, false
	}
	if len(call.Args) != 1 || call.Args[0].Name != "" || call.Args[0].Spread || call.Comments {
		return nil, false
	}
	// Comments between entries have no place in the printed argument list.
	arr, ok := call.Args[0].Value.(*ast.ArrayLit)
	if !ok || len(arr.Items) == 0 || arr.Comments {
		return nil, false
	}

	args := make([]*ast.Arg, 0, len(arr.Items))
	seen := make(map[string]bool, len(arr.Items))
	for _, item := range arr.Items {
		name, ok := paramName(item)
		if !ok || seen[name] {
			return nil, false
		}
		seen[name] = true
		args = append(args, &ast.Arg{Name: name, Value: item.Value})
	}

	out := call.Clone()
	out.Args = args
	out.Layout = ast.LayoutInline
	if opts.AlwaysMultiline || arr.Multiline() {
		out.Layout = ast.LayoutMultiline
	}
	return out, true
}

// paramName returns the parameter name an array entry binds to. Only string
// keys spelling a valid identifier qualify; references and spreads have no
// named-argument equivalent.
func paramName(item *ast.ArrayItem) (string, bool) {
	if item.ByRef || item.Spread {
		return "", false
	}
	key, ok := item.Key.(*ast.StringLit)
	if !ok || !model.IsIdentifier(key.Value) {
		return "", false
	}
	return key.Value, true
}

// Rewrite applies TryRewrite to every call of file and returns the new
// source with one change per rewritten call. Nested calls are rewritten
// first so that an enclosing rewrite prints their new text.
func Rewrite(file *ast.File, opts Options) (string, []model.Change) {
	calls := make([]*ast.CallExpr, len(file.Calls))
	copy(calls, file.Calls)
	sort.SliceStable(calls, func(i, j int) bool {
		if calls[i].Pos.Start != calls[j].Pos.Start {
			return calls[i].Pos.Start > calls[j].Pos.Start
		}
		return calls[i].Pos.End < calls[j].Pos.End
	})

	unit := opts.Unit
	if unit == "" {
		unit = defaultUnit
	}

	edits := ast.NewEdits(file.Source)
	var changes []model.Change
	for _, call := range calls {
		out, ok := TryRewrite(call, opts)
		if !ok {
			continue
		}
		indent := model.IndentationProfile{Unit: unit, Base: lineIndent(file.Source, call.Lparen)}
		edits.Replace(call.ArgsSpan(), PrintArgs(out, edits, indent))
		changes = append(changes, model.Change{
			Rule:      model.NamedArguments,
			Line:      call.Line,
			Callee:    model.Callee(call.Kind, call.Scope, call.Name),
			Kind:      call.Kind,
			Arguments: len(out.Args),
		})
	}

	sort.SliceStable(changes, func(i, j int) bool { return changes[i].Line < changes[j].Line })
	return edits.Apply(), changes
}

// PrintArgs renders the argument list of call, without parentheses, in the
// call's layout. Values are copied from the source through edits.
func PrintArgs(call *ast.CallExpr, edits *ast.Edits, indent model.IndentationProfile) string {
	var b strings.Builder
	for i, a := range call.Args {
		switch {
		case call.Layout == ast.LayoutMultiline:
			b.WriteString("\n" + indent.Argument())
		case i > 0:
			b.WriteString(" ")
		}
		if a.Spread {
			b.WriteString("...")
		}
		if a.Name != "" {
			b.WriteString(a.Name + ": ")
		}
		b.WriteString(edits.Text(a.Value.Span()))
		if i < len(call.Args)-1 || call.Layout == ast.LayoutMultiline {
			b.WriteString(",")
		}
	}
	if call.Layout == ast.LayoutMultiline {
		b.WriteString("\n" + indent.Base)
	}
	return b.String()
}

// lineIndent returns the leading blanks of the line holding offset.
func lineIndent(src []byte, offset int) string {
	start := offset
	for start > 0 && src[start-1] != '\n' {
		start--
	}
	end := start
	for end < len(src) && (src[end] == ' ' || src[end] == '\t') {
		end++
	}
	return string(src[start:end])
}
