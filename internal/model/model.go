// Package model defines core data structures for argwrap.
package model

import (
	"fmt"
	"strings"
)

// CallKind indicates the syntactic kind of a call expression.
type CallKind string

const (
	Function       CallKind = "function"
	InstanceMethod CallKind = "method"
	StaticCall     CallKind = "static"
)

// TargetKind tags the shape of a Target.
type TargetKind string

const (
	// FunctionName matches plain function calls by exact name.
	FunctionName TargetKind = "function"
	// ExactType matches static calls on an exact type and member name.
	ExactType TargetKind = "type"
	// AnyReceiver matches instance calls by member name only. The receiver's
	// type is not resolved, so any object with a member of that name matches.
	AnyReceiver TargetKind = "receiver"
)

// Target selects calls for the array-to-named-argument rewrite.
type Target struct {
	Kind   TargetKind
	Type   string // ExactType only, without a leading backslash
	Member string // function name for FunctionName
}

// Matches reports whether a call of the given kind, scope and name is
// selected by t.
func (t Target) Matches(kind CallKind, scope, name string) bool {
	switch t.Kind {
	case FunctionName:
		return kind == Function && trimNS(name) == t.Member
	case ExactType:
		return kind == StaticCall && trimNS(scope) == t.Type && name == t.Member
	case AnyReceiver:
		return kind == InstanceMethod && name == t.Member
	}
	return false
}

func (t Target) String() string {
	switch t.Kind {
	case ExactType:
		return t.Type + "::" + t.Member
	case AnyReceiver:
		return "->" + t.Member
	}
	return t.Member
}

// Callee formats a call's target for reports: "foo", "->bar" or
// "Foo::bar".
func Callee(kind CallKind, scope, name string) string {
	switch kind {
	case InstanceMethod:
		return "->" + name
	case StaticCall:
		return scope + "::" + name
	}
	return name
}

// ParseTarget parses the textual target forms "name", "Type::member" and
// "->member".
func ParseTarget(s string) (Target, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "->"):
		member := s[2:]
		if !IsIdentifier(member) {
			return Target{}, fmt.Errorf("invalid member name in target %q", s)
		}
		return Target{Kind: AnyReceiver, Member: member}, nil
	case strings.Contains(s, "::"):
		typ, member, _ := strings.Cut(s, "::")
		return PairTarget(typ, member)
	default:
		name := trimNS(s)
		if !IsQualifiedName(name) {
			return Target{}, fmt.Errorf("invalid function name in target %q", s)
		}
		return Target{Kind: FunctionName, Member: name}, nil
	}
}

// PairTarget builds an ExactType target from a type and member name.
func PairTarget(typ, member string) (Target, error) {
	typ = trimNS(strings.TrimSpace(typ))
	member = strings.TrimSpace(member)
	if !IsQualifiedName(typ) {
		return Target{}, fmt.Errorf("invalid type name %q", typ)
	}
	if !IsIdentifier(member) {
		return Target{}, fmt.Errorf("invalid member name %q", member)
	}
	return Target{Kind: ExactType, Type: typ, Member: member}, nil
}

// IsIdentifier reports whether s is a valid PHP label.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= 0x80:
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// IsQualifiedName reports whether s is a possibly namespaced PHP name.
func IsQualifiedName(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, `\`) {
		if !IsIdentifier(part) {
			return false
		}
	}
	return true
}

func trimNS(s string) string {
	return strings.TrimPrefix(s, `\`)
}

// IndentationProfile describes how a call site is indented. Unit is shared
// by the whole file; Base is the leading whitespace of the call's line.
type IndentationProfile struct {
	Unit string
	Base string
}

// Argument returns the indentation of one argument inside the call.
func (p IndentationProfile) Argument() string {
	return p.Base + p.Unit
}

// Rule names a transform.
type Rule string

const (
	WrapArguments  Rule = "wrap_arguments"
	NamedArguments Rule = "named_arguments"
)

// Change records one rewritten call site.
type Change struct {
	Rule      Rule
	Line      int
	Callee    string
	Kind      CallKind
	Arguments int
}

// FileResult holds the outcome of processing a single file.
type FileResult struct {
	Path    string
	Input   string
	Output  string
	Changes []Change
	Err     error
}

// Changed reports whether processing altered the file.
func (r *FileResult) Changed() bool {
	return r.Err == nil && r.Input != r.Output
}

// Report is the summary of a run, ready for serialization.
type Report struct {
	Root  string
	Files []FileResult
}
