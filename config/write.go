package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/misha-mad/vercel-rpc-sub000/errors"
)

const defaultHeader = `# rpcgen configuration.
#
# [codegen.type_overrides] maps Rust type names to TypeScript, e.g.
#   "chrono::DateTime" = "string"
# Keys without a path also match qualified uses ("Uuid" matches uuid::Uuid).

`

// WriteDefault writes a config file holding every default value. An existing
// file is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.WithHint(
			errors.Wrapf(errors.ErrAlreadyExists, "%s", path),
			"pass --force to overwrite it")
	}

	var buf bytes.Buffer
	buf.WriteString(defaultHeader)
	if err := toml.NewEncoder(&buf).Encode(Default()); err != nil {
		return errors.Wrap(err, "failed to encode default config")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "failed to create %s", dir)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
