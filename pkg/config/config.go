// Package config loads circuitry's TOML configuration file.
//
// A config file sets defaults for the run options so they need not be
// repeated on every invocation:
//
//	checkpoint = 1000
//	strategy = "unionfind"
//	workers = 8
//	max_connections = 100000000
//
// Flags given on the command line take precedence over file values; see
// Config.Apply.
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/circuitry/pkg/errors"
	"github.com/matzehuels/circuitry/pkg/pipeline"
)

const (
	appName  = "circuitry"
	fileName = "config.toml"
)

// Config mirrors the persistent subset of pipeline.Options.
type Config struct {
	Checkpoint     int    `toml:"checkpoint"`
	Strategy       string `toml:"strategy"`
	Workers        int    `toml:"workers"`
	MaxConnections int    `toml:"max_connections"`
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/circuitry/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the config at path. An empty path selects DefaultPath, and a
// missing default file yields an empty Config. A missing explicit path is
// an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, nil
		}
		path = p
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// Validate checks value ranges without applying defaults.
func (c Config) Validate() error {
	opts := pipeline.Options{
		Checkpoint:     c.Checkpoint,
		Strategy:       c.Strategy,
		Workers:        c.Workers,
		MaxConnections: c.MaxConnections,
	}
	return opts.ValidateAndSetDefaults()
}

// Apply copies non-zero file values into opts for every field the caller
// has not set explicitly. changed reports whether a flag was given, keyed
// by field name ("checkpoint", "strategy", "workers", "max-connections").
func (c Config) Apply(opts *pipeline.Options, changed func(name string) bool) {
	if c.Checkpoint != 0 && !changed("checkpoint") {
		opts.Checkpoint = c.Checkpoint
	}
	if c.Strategy != "" && !changed("strategy") {
		opts.Strategy = c.Strategy
	}
	if c.Workers != 0 && !changed("workers") {
		opts.Workers = c.Workers
	}
	if c.MaxConnections != 0 && !changed("max-connections") {
		opts.MaxConnections = c.MaxConnections
	}
}
