// Package config loads engine defaults -- search depth, transposition table
// size and root noise -- from an optional YAML file, falling back to
// flag-only defaults when none is given.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arnegrim/corvid/pkg/engine"
)

// Config is the on-disk shape of an engine defaults file.
type Config struct {
	Depth uint `yaml:"depth"`
	Hash  uint `yaml:"hash"`
	Noise bool `yaml:"noise"`
}

// Options converts Config into engine.Options.
func (c Config) Options() engine.Options {
	return engine.Options{Depth: c.Depth, Hash: c.Hash, Noise: c.Noise}
}

// Load reads and parses a YAML config file at path, returning an error if the
// file cannot be read or parsed. The library core never depends on this file
// existing; cmd/corvid only calls Load when -config is given, and exits on
// error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %v: %w", path, err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config %v: %w", path, err)
	}
	return c, nil
}
