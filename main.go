// argwrap rewrites PHP call argument lists: it wraps long named-argument
// calls one argument per line and turns associative-array arguments into
// named arguments.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/phobologic/argwrap/internal/runner"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	exitCode := runner.ExitOK
	cmd := newRootCmd(stdin, stdout, stderr, &exitCode)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return runner.ExitError
	}
	return exitCode
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer, exitCode *int) *cobra.Command {
	var (
		opts    runner.Options
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "argwrap [flags] [paths...]",
		Short: "Wrap long PHP argument lists and convert array arguments to named arguments",
		Long: `argwrap rewrites PHP call argument lists.

Calls with more arguments than wrap_arguments.max_arguments (and, by default,
at least one named argument) are wrapped one argument per line. Calls to the
configured named_arguments targets whose only argument is an associative array
are converted to named arguments.

Paths may be files or directories. Without paths, source is read from stdin
and the result written to stdout.

Exit codes: 0 ok, 1 changes found (--check, --diff), 2 error.`,
		Args:          cobra.ArbitraryArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			opts.Stdin = stdin
			opts.Stdout = stdout
			opts.Stderr = stderr
			opts.Logger = newLogger(stderr, verbose, opts.Quiet)
			*exitCode = runner.Run(cmd.Context(), &opts)
			return nil
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate("argwrap {{.Version}}\n")

	flags := cmd.Flags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default: discovered in the working directory)")
	flags.BoolVar(&opts.Check, "check", false, "report files that would change and exit 1, without writing")
	flags.BoolVar(&opts.Diff, "diff", false, "print a unified diff instead of writing")
	flags.BoolVar(&opts.Report, "report", false, "print a TOON summary of rewritten calls")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log every rewritten call")
	flags.BoolVarP(&opts.Quiet, "quiet", "q", false, "only log errors")
	cmd.MarkFlagsMutuallyExclusive("check", "diff")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(newInitCmd(), newRulesCmd(), newTokensCmd())
	return cmd
}

// newLogger returns a tint logger on w. Colors are only used on a real
// standard error.
func newLogger(w io.Writer, verbose, quiet bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
		NoColor:    w != os.Stderr || os.Getenv("NO_COLOR") != "",
	}))
}
