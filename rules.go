package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phobologic/argwrap/internal/config"
	"github.com/phobologic/argwrap/internal/model"
	"github.com/phobologic/argwrap/internal/runner"
)

type rule struct {
	name        model.Rule
	description string
	sample      string
	configure   func(cfg *config.Config)
}

var rules = []rule{
	{
		name:        model.WrapArguments,
		description: "Wrap call arguments to separate lines when at least one is named and there are more than wrap_arguments.max_arguments (default 3).",
		sample:      "<?php\n$this->method(arg1: $value1, arg2: $value2, arg3: $value3, arg4: $value4);\n",
		configure:   func(*config.Config) {},
	},
	{
		name:        model.NamedArguments,
		description: "Convert a single associative-array argument into named arguments for the configured functions and methods.",
		sample:      "<?php\nfoo(['a' => $a, 'b' => $b]);\n$form->bar(['x' => $x, 'y' => $y]);\n",
		configure: func(cfg *config.Config) {
			cfg.WrapArguments.Enabled = false
			cfg.NamedArguments.Enabled = true
			cfg.NamedArguments.Targets = []config.TargetSpec{{Name: "foo"}, {Name: "->bar"}}
		},
	},
}

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Describe the rewrite rules with an example of each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printRules(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

// printRules runs every rule on its sample so the printed output is always
// what the current code produces.
func printRules(ctx context.Context, w io.Writer) error {
	for i, r := range rules {
		cfg := config.DefaultConfig()
		r.configure(cfg)
		proc, err := runner.NewProcessor(cfg)
		if err != nil {
			return err
		}
		parser := proc.NewParser()
		res := proc.Process(ctx, parser, string(r.name), []byte(r.sample))
		parser.Close()
		if res.Err != nil {
			return res.Err
		}

		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintf(w, "%s\n  %s\n\n  before:\n%s\n  after:\n%s", r.name, r.description, indent(r.sample), indent(res.Output))
	}
	return nil
}

func indent(s string) string {
	var b strings.Builder
	for line := range strings.SplitSeq(strings.TrimSuffix(s, "\n"), "\n") {
		b.WriteString("    ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
