// Package config defines the configuration types and defaults for argwrap.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/phobologic/argwrap/internal/model"
)

// Indent styles.
const (
	IndentAuto  = "auto"
	IndentTab   = "tab"
	IndentSpace = "space"
)

// Config is the top-level configuration.
type Config struct {
	WrapArguments  WrapConfig   `yaml:"wrap_arguments" toml:"wrap_arguments"`
	NamedArguments NamedConfig  `yaml:"named_arguments" toml:"named_arguments"`
	Indent         IndentConfig `yaml:"indent" toml:"indent"`
	Exclude        []string     `yaml:"exclude" toml:"exclude"`
}

// WrapConfig holds the argument-wrapping settings.
type WrapConfig struct {
	Enabled            bool `yaml:"enabled" toml:"enabled"`
	MaxArguments       int  `yaml:"max_arguments" toml:"max_arguments"`
	NamedArgumentsOnly bool `yaml:"named_arguments_only" toml:"named_arguments_only"`
	TrailingComma      bool `yaml:"trailing_comma" toml:"trailing_comma"`
}

// NamedConfig holds the array-to-named-arguments settings.
type NamedConfig struct {
	Enabled         bool         `yaml:"enabled" toml:"enabled"`
	AlwaysMultiline bool         `yaml:"always_multiline" toml:"always_multiline"`
	Targets         []TargetSpec `yaml:"targets" toml:"targets"`
}

// IndentConfig selects the indentation unit of wrapped arguments.
type IndentConfig struct {
	Style string `yaml:"style" toml:"style"`
	Size  int    `yaml:"size" toml:"size"`
}

// TargetSpec is one configured target: either a string ("foo",
// "Foo::create", "->configure") or a [type, member] pair.
type TargetSpec struct {
	Name string
	Pair []string
}

// DefaultConfig returns a Config with all default values.
func DefaultConfig() *Config {
	return &Config{
		WrapArguments: WrapConfig{
			Enabled:            true,
			MaxArguments:       3,
			NamedArgumentsOnly: true,
			TrailingComma:      true,
		},
		Indent: IndentConfig{
			Style: IndentAuto,
			Size:  4,
		},
	}
}

// UnmarshalYAML accepts a scalar or a two-element sequence.
func (t *TargetSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return value.Decode(&t.Name)
	case yaml.SequenceNode:
		return value.Decode(&t.Pair)
	}
	return errors.Errorf("line %d: target must be a string or a [type, member] pair", value.Line)
}

// UnmarshalTOML accepts a string or a two-element array.
func (t *TargetSpec) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case string:
		t.Name = v
		return nil
	case []any:
		for _, el := range v {
			s, ok := el.(string)
			if !ok {
				return errors.Errorf("target pair element %v is not a string", el)
			}
			t.Pair = append(t.Pair, s)
		}
		return nil
	}
	return errors.Errorf("target %v must be a string or a [type, member] pair", data)
}

func (t TargetSpec) String() string {
	if t.Pair != nil {
		return "[" + strings.Join(t.Pair, ", ") + "]"
	}
	return t.Name
}

// ParseTargets parses the configured targets. A [type, member] pair selects both
// static calls on type and instance calls of member on any receiver.
func (c NamedConfig) ParseTargets() ([]model.Target, error) {
	var out []model.Target
	for _, spec := range c.Targets {
		if spec.Pair == nil {
			t, err := model.ParseTarget(spec.Name)
			if err != nil {
				return nil, errors.Wrap(err, "named_arguments.targets")
			}
			out = append(out, t)
			continue
		}
		if len(spec.Pair) != 2 {
			return nil, errors.Errorf("named_arguments.targets: pair %s must have exactly two elements", spec)
		}
		t, err := model.PairTarget(spec.Pair[0], spec.Pair[1])
		if err != nil {
			return nil, errors.Wrapf(err, "named_arguments.targets: pair %s", spec)
		}
		out = append(out, t, model.Target{Kind: model.AnyReceiver, Member: t.Member})
	}
	return out, nil
}

// Unit returns the configured indentation unit, or "" when it is to be
// inferred from each file.
func (c IndentConfig) Unit() string {
	switch c.Style {
	case IndentTab:
		return "\t"
	case IndentSpace:
		return strings.Repeat(" ", c.Size)
	}
	return ""
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.WrapArguments.MaxArguments < 0 {
		return errors.Errorf("wrap_arguments.max_arguments must not be negative, got %d", c.WrapArguments.MaxArguments)
	}
	switch c.Indent.Style {
	case IndentAuto, IndentTab:
	case IndentSpace:
		if c.Indent.Size <= 0 {
			return errors.Errorf("indent.size must be positive for style %q, got %d", IndentSpace, c.Indent.Size)
		}
	default:
		return errors.Errorf("indent.style must be one of auto, tab, space; got %q", c.Indent.Style)
	}
	targets, err := c.NamedArguments.ParseTargets()
	if err != nil {
		return err
	}
	if c.NamedArguments.Enabled && len(targets) == 0 {
		return errors.New("named_arguments is enabled but has no targets")
	}
	return nil
}
