package wrap

import (
	"slices"

	"github.com/phobologic/argwrap/internal/model"
	"github.com/phobologic/argwrap/internal/token"
)

// Options configures Format.
type Options struct {
	// MaxArguments is the largest argument count left on one line.
	MaxArguments int
	// NamedArgumentsOnly restricts wrapping to calls using named arguments.
	NamedArgumentsOnly bool
	// TrailingComma appends a comma after the last wrapped argument.
	TrailingComma bool
	// Indent overrides the inferred indentation unit when non-empty.
	Indent string
}

// DefaultOptions returns the options used when no configuration is given.
func DefaultOptions() Options {
	return Options{MaxArguments: 3, NamedArgumentsOnly: true, TrailingComma: true}
}

// Result is the outcome of Format.
type Result struct {
	Stream  *token.Stream
	Changes []model.Change
}

// Format wraps every qualifying call in s. Call sites are handled from the
// last opening parenthesis to the first, each re-checked against the stream
// as rewritten so far: a rewrite only touches tokens after its opening
// parenthesis, so earlier indices stay valid, and an enclosing call whose
// inner call was wrapped is already multi-line and left alone. Running
// Format on its own output changes nothing.
func Format(s *token.Stream, opts Options) Result {
	unit := opts.Indent
	if unit == "" {
		unit = InferUnit(s)
	}

	var changes []model.Change
	for _, located := range Locate(s) {
		site, ok := siteAt(s, located.Open)
		if !ok {
			continue
		}
		args := Segment(s, site.Open, site.Close)
		if !ShouldReformat(s, site, args, opts) {
			continue
		}
		plan := NewPlan(s, site, args, Profile(s, site.Name, unit), opts.TrailingComma)
		s = plan.Apply(s)
		changes = append(changes, model.Change{
			Rule:      model.WrapArguments,
			Line:      s.At(site.Name).Pos.Line,
			Callee:    site.Callee,
			Kind:      site.Kind,
			Arguments: len(args),
		})
	}
	slices.Reverse(changes)
	return Result{Stream: s, Changes: changes}
}
