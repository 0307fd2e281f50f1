// Package runner orchestrates the read -> transform -> output pipeline.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/phobologic/argwrap/internal/config"
	"github.com/phobologic/argwrap/internal/discover"
	"github.com/phobologic/argwrap/internal/model"
	"github.com/phobologic/argwrap/internal/toon"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitFormatDiff = 1
	ExitError      = 2
)

// stdinName labels standard input in diffs and reports.
const stdinName = "<stdin>"

// Options configures the runner behavior.
type Options struct {
	Paths      []string
	Check      bool
	Diff       bool
	Report     bool
	Quiet      bool
	ConfigPath string
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
}

// Run executes the pipeline and returns an exit code.
func Run(ctx context.Context, opts *Options) int {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		writeErr(opts.Stderr, "argwrap: %v\n", err)
		return ExitError
	}
	proc, err := NewProcessor(cfg)
	if err != nil {
		writeErr(opts.Stderr, "argwrap: %v\n", err)
		return ExitError
	}

	// stdin mode: no paths given.
	if len(opts.Paths) == 0 {
		return runStdin(ctx, opts, proc)
	}

	files, err := discover.Expand(opts.Paths, cfg.Exclude)
	if err != nil {
		writeErr(opts.Stderr, "argwrap: %v\n", err)
		return ExitError
	}
	opts.Logger.Debug("discovered files", "count", len(files))

	results, err := ProcessFiles(ctx, proc, files)
	if err != nil {
		writeErr(opts.Stderr, "argwrap: %v\n", err)
		return ExitError
	}

	exitCode := ExitOK
	for i := range results {
		if code := output(opts, &results[i]); code > exitCode {
			exitCode = code
		}
	}

	if opts.Report {
		fmt.Fprintln(opts.Stdout, toon.Encode(report(results)))
	}
	return exitCode
}

// ProcessFiles reads and transforms files concurrently, one parser per
// worker. Results are returned in the order of files; per-file failures are
// recorded in the result rather than aborting the run.
func ProcessFiles(ctx context.Context, proc *Processor, files []string) ([]model.FileResult, error) {
	results := make([]model.FileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := os.ReadFile(path)
			if err != nil {
				results[i] = model.FileResult{Path: path, Err: err}
				return nil
			}
			parser := proc.NewParser()
			defer parser.Close()
			results[i] = proc.Process(ctx, parser, path, src)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runStdin(ctx context.Context, opts *Options, proc *Processor) int {
	src, err := io.ReadAll(opts.Stdin)
	if err != nil {
		writeErr(opts.Stderr, "argwrap: reading stdin: %v\n", err)
		return ExitError
	}

	parser := proc.NewParser()
	defer parser.Close()
	res := proc.Process(ctx, parser, stdinName, src)
	if res.Err != nil {
		writeErr(opts.Stderr, "argwrap: %v\n", res.Err)
		return ExitError
	}
	logChanges(opts.Logger, &res)

	code := ExitOK
	switch {
	case opts.Check:
		if res.Changed() {
			code = ExitFormatDiff
		}
	case opts.Diff:
		if d := Unified(stdinName, res.Input, res.Output); d != "" {
			writeOut(opts.Stdout, d)
			code = ExitFormatDiff
		}
	default:
		writeOut(opts.Stdout, res.Output)
	}

	if opts.Report {
		w := opts.Stdout
		if !opts.Check && !opts.Diff {
			// Standard output carries the transformed source.
			w = opts.Stderr
		}
		fmt.Fprintln(w, toon.Encode(report([]model.FileResult{res})))
	}
	return code
}

// output reports or writes one processed file and returns its exit code.
func output(opts *Options, res *model.FileResult) int {
	if res.Err != nil {
		opts.Logger.Warn("skipping file", "path", res.Path, "err", res.Err)
		return ExitError
	}
	logChanges(opts.Logger, res)

	if opts.Check {
		if res.Changed() {
			if !opts.Quiet {
				writeErr(opts.Stderr, "%s\n", res.Path)
			}
			return ExitFormatDiff
		}
		return ExitOK
	}

	if opts.Diff {
		d := Unified(filepath.ToSlash(res.Path), res.Input, res.Output)
		if d != "" {
			writeOut(opts.Stdout, d)
			return ExitFormatDiff
		}
		return ExitOK
	}

	// Write mode (default for path args).
	if !res.Changed() {
		return ExitOK
	}
	info, err := os.Stat(res.Path)
	if err != nil {
		writeErr(opts.Stderr, "argwrap: %v\n", err)
		return ExitError
	}
	if err := os.WriteFile(res.Path, []byte(res.Output), info.Mode().Perm()); err != nil {
		writeErr(opts.Stderr, "argwrap: writing %s: %v\n", res.Path, err)
		return ExitError
	}
	opts.Logger.Info("rewrote file", "path", res.Path, "changes", len(res.Changes))
	return ExitOK
}

func logChanges(logger *slog.Logger, res *model.FileResult) {
	for _, c := range res.Changes {
		logger.Debug("rewrote call",
			"path", res.Path,
			"line", c.Line,
			"rule", c.Rule,
			"callee", c.Callee,
			"arguments", c.Arguments,
		)
	}
}

func report(results []model.FileResult) *model.Report {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return &model.Report{Root: filepath.Base(wd), Files: results}
}

// writeOut writes to stdout.
func writeOut(w io.Writer, s string) {
	fmt.Fprint(w, s)
}

// writeErr formats and writes to stderr.
func writeErr(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
