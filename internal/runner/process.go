package runner

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phobologic/argwrap/internal/config"
	"github.com/phobologic/argwrap/internal/lang"
	"github.com/phobologic/argwrap/internal/model"
	"github.com/phobologic/argwrap/internal/namedargs"
	"github.com/phobologic/argwrap/internal/parse"
	"github.com/phobologic/argwrap/internal/wrap"
)

// Processor applies the enabled transforms to single files. It holds no
// mutable state and may be shared by concurrent workers, each of which
// brings its own parser.
type Processor struct {
	lang  *lang.Language
	cfg   *config.Config
	named namedargs.Options
	wrap  wrap.Options
}

// NewProcessor prepares the transforms described by cfg.
func NewProcessor(cfg *config.Config) (*Processor, error) {
	targets, err := cfg.NamedArguments.ParseTargets()
	if err != nil {
		return nil, err
	}
	unit := cfg.Indent.Unit()
	return &Processor{
		lang: lang.Languages["php"],
		cfg:  cfg,
		named: namedargs.Options{
			Targets:         targets,
			AlwaysMultiline: cfg.NamedArguments.AlwaysMultiline,
			Unit:            unit,
		},
		wrap: wrap.Options{
			MaxArguments:       cfg.WrapArguments.MaxArguments,
			NamedArgumentsOnly: cfg.WrapArguments.NamedArgumentsOnly,
			TrailingComma:      cfg.WrapArguments.TrailingComma,
			Indent:             unit,
		},
	}, nil
}

// NewParser returns a parser for the processed language.
func (p *Processor) NewParser() *sitter.Parser {
	return p.lang.NewParser()
}

// Process runs the pipeline on src: the named-argument rewrite first, then
// argument wrapping on the re-parsed result, so calls produced by the
// rewrite are wrapped like any other.
func (p *Processor) Process(ctx context.Context, parser *sitter.Parser, path string, src []byte) model.FileResult {
	res := model.FileResult{Path: path, Input: string(src), Output: string(src)}

	if p.cfg.NamedArguments.Enabled {
		out, changes, err := p.rewriteNamed(ctx, parser, []byte(res.Output))
		if err != nil {
			res.Err = fmt.Errorf("%s: %w", path, err)
			return res
		}
		res.Output = out
		res.Changes = append(res.Changes, changes...)
	}

	if p.cfg.WrapArguments.Enabled {
		tree, err := parse.Parse(ctx, p.lang, parser, []byte(res.Output))
		if err != nil {
			res.Err = fmt.Errorf("%s: %w", path, err)
			return res
		}
		formatted := wrap.Format(tree.Tokens(), p.wrap)
		tree.Close()
		res.Output = formatted.Stream.String()
		res.Changes = append(res.Changes, formatted.Changes...)
	}
	return res
}

func (p *Processor) rewriteNamed(ctx context.Context, parser *sitter.Parser, src []byte) (string, []model.Change, error) {
	tree, err := parse.Parse(ctx, p.lang, parser, src)
	if err != nil {
		return "", nil, err
	}
	defer tree.Close()

	opts := p.named
	if opts.Unit == "" {
		opts.Unit = wrap.InferUnit(tree.Tokens())
	}
	out, changes := namedargs.Rewrite(tree.File(), opts)
	return out, changes, nil
}
