package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// configFileNames is the ordered list of config file names to search for.
var configFileNames = []string{
	"argwrap.yml",
	"argwrap.yaml",
	".argwrap.yml",
	".argwrap.yaml",
	"argwrap.toml",
	".argwrap.toml",
}

// Discover returns the path of the first config file found in dir,
// following the standard search order. It returns an empty string if
// no config file is found.
func Discover(dir string) string {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads and parses an argwrap config file. If configPath is non-empty,
// that file is loaded directly. Otherwise, Load searches the current working
// directory using Discover. If no config file is found, DefaultConfig is
// returned.
//
// Partial files are supported: any fields not specified retain their
// default values. Files ending in .toml are read as TOML, anything else as
// YAML. The result is validated before it is returned.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "getting working directory")
		}
		configPath = Discover(wd)
	}

	if configPath == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Errorf("config file not found: %s", configPath)
		}
		return nil, errors.Wrapf(err, "reading config file %s", configPath)
	}

	cfg, err := Parse(data, strings.EqualFold(filepath.Ext(configPath), ".toml"))
	if err != nil {
		return nil, errors.Wrapf(err, "config file %s", configPath)
	}
	return cfg, nil
}

// Parse decodes a YAML or TOML document over the defaults and validates it.
func Parse(data []byte, isTOML bool) (*Config, error) {
	// Start from defaults so missing fields retain non-zero defaults.
	cfg := DefaultConfig()
	if isTOML {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, errors.Wrap(err, "parsing TOML")
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parsing YAML")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}
