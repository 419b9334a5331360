// Package config loads the YAML settings file of the viewer.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"geoops/internal/logging"
	"geoops/internal/ops"
)

// DefaultPath is read when no --config flag is given and the file exists.
const DefaultPath = "geoops.yaml"

type Config struct {
	LogLevel string `yaml:"log_level"`
	// UnsupportedKinds is "drop" or "keep": what operations do with
	// geometries of kinds they do not act on.
	UnsupportedKinds string   `yaml:"unsupported_kinds"`
	PreviewCache     bool     `yaml:"preview_cache"`
	Defaults         Defaults `yaml:"defaults"`
}

// Defaults seed the parameter fields of the operation window.
type Defaults struct {
	SimplifyEpsilon      string `yaml:"simplify_epsilon"`
	VisvalingamThreshold string `yaml:"visvalingam_threshold"`
}

func Default() Config {
	return Config{
		LogLevel:         "info",
		UnsupportedKinds: "drop",
		PreviewCache:     true,
	}
}

// Load reads path over the defaults. A missing DefaultPath is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := ops.ParsePolicy(c.UnsupportedKinds); err != nil {
		return err
	}
	return nil
}

// RegistryOptions translates the settings into operation registry options.
func (c Config) RegistryOptions() []ops.Option {
	policy, _ := ops.ParsePolicy(c.UnsupportedKinds)
	opts := []ops.Option{
		ops.WithPolicy(policy),
		ops.WithPreviewCache(c.PreviewCache),
	}
	if c.Defaults.SimplifyEpsilon != "" {
		opts = append(opts, ops.WithSeed(ops.SimplifyName, c.Defaults.SimplifyEpsilon))
	}
	if c.Defaults.VisvalingamThreshold != "" {
		opts = append(opts, ops.WithSeed(ops.VisvalingamName, c.Defaults.VisvalingamThreshold))
	}
	return opts
}
