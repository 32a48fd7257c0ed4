// Package config loads rpc.config.toml.
//
// Values come from, lowest precedence first: built-in defaults, the config
// file, RPCGEN_* environment variables, and CLI flags (ApplyOverrides).
// Relative paths in the file are resolved against the file's directory.
package config

import (
	"path/filepath"
	"time"

	"github.com/misha-mad/vercel-rpc-sub000/codegen/casing"
	"github.com/misha-mad/vercel-rpc-sub000/codegen/typemap"
)

// FileName is the config file discovered by walking up from the working
// directory.
const FileName = "rpc.config.toml"

// Config is the full rpcgen configuration.
type Config struct {
	Input   InputConfig   `mapstructure:"input" toml:"input"`
	Output  OutputConfig  `mapstructure:"output" toml:"output"`
	Codegen CodegenConfig `mapstructure:"codegen" toml:"codegen"`
	Watch   WatchConfig   `mapstructure:"watch" toml:"watch"`

	// Path is the loaded file, empty when only defaults apply.
	Path string `mapstructure:"-" toml:"-"`
	// Root is the directory relative paths resolve against: the config
	// file's directory, or the working directory without a file.
	Root string `mapstructure:"-" toml:"-"`
}

// InputConfig selects the Rust sources to scan
type InputConfig struct {
	Dir     string   `mapstructure:"dir" toml:"dir"`
	Include []string `mapstructure:"include" toml:"include"`
	Exclude []string `mapstructure:"exclude" toml:"exclude"`
}

// OutputConfig names generated files
type OutputConfig struct {
	Types string `mapstructure:"types" toml:"types"`
}

// CodegenConfig controls TypeScript emission
type CodegenConfig struct {
	PreserveDocs    bool         `mapstructure:"preserve_docs" toml:"preserve_docs"`
	BrandedNewtypes bool         `mapstructure:"branded_newtypes" toml:"branded_newtypes"`
	BigintTypes     []string     `mapstructure:"bigint_types" toml:"bigint_types"`
	Naming          NamingConfig `mapstructure:"naming" toml:"naming"`
	// TypeOverrides is read case-preservingly outside viper, which lowercases
	// keys ("chrono::DateTime" must stay as written).
	TypeOverrides map[string]string `mapstructure:"-" toml:"type_overrides"`
}

// NamingConfig is the global field naming policy
type NamingConfig struct {
	Fields string `mapstructure:"fields" toml:"fields"` // "preserve" or "camelCase"
}

// WatchConfig tunes the watch loop
type WatchConfig struct {
	DebounceMS  int  `mapstructure:"debounce_ms" toml:"debounce_ms"`
	ClearScreen bool `mapstructure:"clear_screen" toml:"clear_screen"`
}

// Resolve makes p absolute against Root. Absolute paths are returned as is.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// InputDir is the resolved input directory.
func (c *Config) InputDir() string { return c.Resolve(c.Input.Dir) }

// OutputPath is the resolved types file path.
func (c *Config) OutputPath() string { return c.Resolve(c.Output.Types) }

// Debounce returns the watch debounce as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}

// FieldPolicy returns the parsed field naming policy. Call Validate first;
// an invalid value falls back to preserve.
func (c *Config) FieldPolicy() casing.Policy {
	p, _ := casing.ParsePolicy(c.Codegen.Naming.Fields)
	return p
}

// Overrides builds the immutable type override table, bigint names merged.
func (c *Config) Overrides() *typemap.Overrides {
	return typemap.NewOverrides(c.Codegen.TypeOverrides, c.Codegen.BigintTypes)
}
