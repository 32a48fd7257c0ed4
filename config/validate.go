package config

import (
	"bytes"
	"os"
	"strings"

	"github.com/misha-mad/vercel-rpc-sub000/codegen/casing"
	"github.com/misha-mad/vercel-rpc-sub000/diag"
	"github.com/misha-mad/vercel-rpc-sub000/errors"
	"github.com/pelletier/go-toml/v2"
)

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Input.Dir) == "" {
		return errors.NewInvalidConfigError("input.dir cannot be empty")
	}
	if strings.TrimSpace(c.Output.Types) == "" {
		return errors.NewInvalidConfigError("output.types cannot be empty")
	}
	if _, err := casing.ParsePolicy(c.Codegen.Naming.Fields); err != nil {
		return errors.WithHint(err, `set codegen.naming.fields to "preserve" or "camelCase"`)
	}
	// zero would rebuild on every event burst
	if c.Watch.DebounceMS <= 0 {
		return errors.NewInvalidConfigError("watch.debounce_ms must be > 0, got %d", c.Watch.DebounceMS)
	}
	for key, ts := range c.Codegen.TypeOverrides {
		if strings.TrimSpace(ts) == "" {
			return errors.NewInvalidConfigError("codegen.type_overrides.%q maps to an empty type", key)
		}
	}
	return nil
}

// Validate decodes the file at path strictly and reports every key rpcgen
// does not know as a warning. A file that is not valid TOML is an error.
func Validate(path string) (diag.List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err = dec.Decode(&cfg)
	if err == nil {
		return nil, nil
	}

	var strict *toml.StrictMissingError
	if !errors.As(err, &strict) {
		return nil, errors.Mark(errors.Wrapf(err, "invalid %s", path), errors.ErrInvalidConfig)
	}

	var warnings diag.List
	for _, e := range strict.Errors {
		row, _ := e.Position()
		key := strings.Join(e.Key(), ".")
		warnings.Add(diag.New(diag.KindDirective, "unknown key %q, ignored", key).
			At(path, row).
			WithSuggestion("see `rpcgen init` for the supported keys"))
	}
	return warnings, nil
}
