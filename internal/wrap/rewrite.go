package wrap

import (
	"github.com/phobologic/argwrap/internal/model"
	"github.com/phobologic/argwrap/internal/token"
)

// Plan fully determines the rewrite of one call site.
type Plan struct {
	Site          CallSite
	Arguments     [][]token.Token
	Indentation   model.IndentationProfile
	TrailingComma bool
}

// NewPlan captures the argument tokens of site verbatim.
func NewPlan(s *token.Stream, site CallSite, args []ArgumentSpan, indent model.IndentationProfile, trailingComma bool) Plan {
	p := Plan{
		Site:          site,
		Arguments:     make([][]token.Token, len(args)),
		Indentation:   indent,
		TrailingComma: trailingComma,
	}
	for i, a := range args {
		p.Arguments[i] = s.Slice(a.Start, a.End)
	}
	return p
}

// Apply returns a copy of s whose argument list for the planned site holds
// one argument per line. Only whitespace and comma tokens are synthesized.
func (p Plan) Apply(s *token.Stream) *token.Stream {
	inner := token.New(token.Whitespace, "\n"+p.Indentation.Argument())
	comma := token.New(token.Punct, ",")

	repl := make([]token.Token, 0, 2+3*len(p.Arguments))
	for i, arg := range p.Arguments {
		repl = append(repl, inner)
		repl = append(repl, arg...)
		if i < len(p.Arguments)-1 || p.TrailingComma {
			repl = append(repl, comma)
		}
	}
	repl = append(repl, token.New(token.Whitespace, "\n"+p.Indentation.Base))
	return s.Splice(p.Site.Open+1, p.Site.Close, repl)
}
