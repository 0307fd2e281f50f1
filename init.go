package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const (
	defaultConfigName     = "argwrap.yml"
	defaultTOMLConfigName = "argwrap.toml"
)

func newInitCmd() *cobra.Command {
	var (
		dryRun bool
		force  bool
		asTOML bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter configuration file",
		Long: `Write a starter argwrap configuration with every setting at its default
value and comments explaining each one.

path defaults to ./argwrap.yml (./argwrap.toml with --toml). An existing file
is only replaced with --force.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, args, dryRun, force, asTOML)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the configuration instead of writing it")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.Flags().BoolVar(&asTOML, "toml", false, "write TOML instead of YAML")
	return cmd
}

// runInit implements the `argwrap init` subcommand.
func runInit(cmd *cobra.Command, args []string, dryRun, force, asTOML bool) error {
	content, path := starterYAML, defaultConfigName
	if asTOML {
		content, path = starterTOML, defaultTOMLConfigName
	}
	if len(args) > 0 {
		path = args[0]
	}

	if dryRun {
		_, _ = fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "wrote argwrap configuration to %s\n", path)
	return nil
}

const starterYAML = `# argwrap configuration

# Wrap call argument lists one argument per line.
wrap_arguments:
  enabled: true
  # Calls with more arguments than this are wrapped.
  max_arguments: 3
  # Only wrap calls that use at least one named argument.
  named_arguments_only: true
  # Add a comma after the last wrapped argument.
  trailing_comma: true

# Convert a single associative-array argument into named arguments.
named_arguments:
  enabled: false
  # Always print converted calls one argument per line.
  always_multiline: false
  # "func", "Type::method" (static calls), "->method" (any receiver),
  # or [Type, method] for both static and instance calls.
  targets: []

# Indentation of wrapped arguments: auto (detect per file), tab or space.
indent:
  style: auto
  size: 4

# Gitignore-style patterns of files to skip inside directories.
exclude: []
`

const starterTOML = `# argwrap configuration

# Gitignore-style patterns of files to skip inside directories.
exclude = []

# Wrap call argument lists one argument per line.
[wrap_arguments]
enabled = true
# Calls with more arguments than this are wrapped.
max_arguments = 3
# Only wrap calls that use at least one named argument.
named_arguments_only = true
# Add a comma after the last wrapped argument.
trailing_comma = true

# Convert a single associative-array argument into named arguments.
[named_arguments]
enabled = false
# Always print converted calls one argument per line.
always_multiline = false
# "func", "Type::method" (static calls), "->method" (any receiver),
# or ["Type", "method"] for both static and instance calls.
targets = []

# Indentation of wrapped arguments: auto (detect per file), tab or space.
[indent]
style = "auto"
size = 4
`
