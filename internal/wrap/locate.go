// Package wrap reformats call argument lists that carry too many arguments
// onto one argument per line. It works on the token stream only.
package wrap

import (
	"github.com/phobologic/argwrap/internal/model"
	"github.com/phobologic/argwrap/internal/token"
)

// CallSite is one call expression found in a token stream. Indices refer to
// the stream the site was located in.
type CallSite struct {
	Kind   model.CallKind
	Callee string
	Name   int // index of the callee name token
	Open   int
	Close  int
}

// Locate returns every well-formed call site in s, ordered by descending
// opening index. Sites whose parenthesis has no matching closer are dropped.
func Locate(s *token.Stream) []CallSite {
	var sites []CallSite
	for _, open := range candidates(s) {
		if site, ok := siteAt(s, open); ok {
			sites = append(sites, site)
		}
	}
	return sites
}

// candidates returns the indices of every "(" in s, highest first.
func candidates(s *token.Stream) []int {
	var out []int
	for i := s.Len() - 1; i >= 0; i-- {
		if s.At(i).Kind == token.Punct && s.At(i).Text == "(" {
			out = append(out, i)
		}
	}
	return out
}

// siteAt classifies the "(" at open. It reports false when the parenthesis
// does not start an argument list or cannot be matched.
func siteAt(s *token.Stream, open int) (CallSite, bool) {
	name := s.PrevMeaningful(open)
	if name < 0 {
		return CallSite{}, false
	}
	callee := s.At(name)

	before := s.PrevMeaningful(name)
	kind := model.Function
	if before >= 0 {
		switch prev := s.At(before); {
		case prev.Equals("->"), prev.Equals("?->"):
			kind = model.InstanceMethod
		case prev.Equals("::"):
			kind = model.StaticCall
		}
	}

	switch {
	case callee.Kind == token.Identifier:
	case kind != model.Function && callee.IsWord():
		// Member names may spell reserved words: $q->list(), Foo::new().
	default:
		return CallSite{}, false
	}
	if kind == model.Function && isDeclaration(s, before) {
		return CallSite{}, false
	}

	closeIdx, ok := s.MatchClosing(open)
	if !ok || s.At(closeIdx).Text != ")" {
		return CallSite{}, false
	}
	return CallSite{
		Kind:   kind,
		Callee: calleeText(s, kind, name, before),
		Name:   name,
		Open:   open,
		Close:  closeIdx,
	}, true
}

// isDeclaration reports whether the name preceded by the token at before is
// being declared rather than called: "function foo(", "function &foo(".
func isDeclaration(s *token.Stream, before int) bool {
	if before < 0 {
		return false
	}
	if s.At(before).Equals("&") {
		before = s.PrevMeaningful(before)
		if before < 0 {
			return false
		}
	}
	t := s.At(before)
	return t.KeywordIs("function") || t.KeywordIs("fn")
}

func calleeText(s *token.Stream, kind model.CallKind, name, before int) string {
	switch kind {
	case model.InstanceMethod:
		return model.Callee(kind, "", s.At(name).Text)
	case model.StaticCall:
		scope := ""
		if i := s.PrevMeaningful(before); i >= 0 {
			scope = qualifiedBefore(s, i)
		}
		return model.Callee(kind, scope, s.At(name).Text)
	}
	return qualifiedBefore(s, name)
}

// qualifiedBefore returns the namespaced name ending at index end, for
// example "App\Support\helper" or "\strlen".
func qualifiedBefore(s *token.Stream, end int) string {
	text := s.At(end).Text
	for i := end - 1; i >= 0; i-- {
		t := s.At(i)
		if t.Kind == token.Identifier || t.Equals(`\`) || t.KeywordIs("namespace") {
			text = t.Text + text
			continue
		}
		break
	}
	return text
}
