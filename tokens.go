package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/phobologic/argwrap/internal/lang"
	"github.com/phobologic/argwrap/internal/parse"
	"github.com/phobologic/argwrap/internal/token"
)

func newTokensCmd() *cobra.Command {
	var meaningful bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a PHP file",
		Long: `Print the token stream argwrap works on, one token per line as
line:column, kind and text. Use "-" to read standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				src []byte
				err error
			)
			if args[0] == "-" {
				src, err = io.ReadAll(cmd.InOrStdin())
			} else {
				src, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}

			s, err := parse.Tokenize(cmd.Context(), lang.Languages["php"], src)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			w := cmd.OutOrStdout()
			for _, tok := range s.Tokens() {
				if meaningful && !tok.IsMeaningful() {
					continue
				}
				_, _ = fmt.Fprintln(w, formatToken(tok))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&meaningful, "meaningful", "m", false, "omit whitespace and comments")
	return cmd
}

func formatToken(tok token.Token) string {
	return fmt.Sprintf("%d:%d\t%-11s %# v", tok.Pos.Line, tok.Pos.Column, tok.Kind, pretty.Formatter(tok.Text))
}
