package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/misha-mad/vercel-rpc-sub000/diag"
	"github.com/misha-mad/vercel-rpc-sub000/errors"
	"github.com/misha-mad/vercel-rpc-sub000/logger"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. RPCGEN_INPUT_DIR.
const EnvPrefix = "RPCGEN"

// Load reads the configuration. An empty path discovers rpc.config.toml by
// walking up from the working directory; when none is found the defaults
// apply relative to the working directory. An explicit path must exist.
//
// Unknown keys in the file are returned as warnings.
func Load(path string) (*Config, diag.List, error) {
	log := logger.ComponentLogger(logger.ComponentConfig)

	cwd, err := os.Getwd()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get working directory")
	}

	if path == "" {
		path = Discover(cwd)
	} else if _, err := os.Stat(path); err != nil {
		return nil, nil, errors.WithHint(
			errors.NewNotFoundError("config file %s", path),
			"run `rpcgen init` to create one")
	}

	v := newViper()
	root := cwd
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, nil, errors.Mark(errors.Wrapf(err, "failed to read %s", path), errors.ErrInvalidConfig)
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		root = filepath.Dir(path)
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, nil, err
	}
	cfg.Path = path
	cfg.Root = root

	var warnings diag.List
	if path != "" {
		overrides, err := readTypeOverrides(path)
		if err != nil {
			return nil, nil, err
		}
		cfg.Codegen.TypeOverrides = overrides

		warnings, err = Validate(path)
		if err != nil {
			return nil, nil, err
		}
	}

	log.Debugw("loaded config",
		logger.FieldConfig, path,
		logger.FieldDir, cfg.InputDir(),
		logger.FieldOutput, cfg.OutputPath(),
		"type_overrides", cfg.Overrides().String())
	return cfg, warnings, nil
}

// LoadWithViper unmarshals a prepared viper instance.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to unmarshal config"), errors.ErrInvalidConfig)
	}
	if cfg.Codegen.TypeOverrides == nil {
		cfg.Codegen.TypeOverrides = map[string]string{}
	}
	return &cfg, nil
}

// newViper initializes Viper with defaults and environment binding
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Discover searches for rpc.config.toml from start up to the filesystem
// root. Returns the path of the first file found, or "" if none.
func Discover(start string) string {
	dir := start
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// readTypeOverrides re-reads [codegen.type_overrides] with the original key
// case.
func readTypeOverrides(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	var file struct {
		Codegen struct {
			TypeOverrides map[string]string `toml:"type_overrides"`
		} `toml:"codegen"`
	}
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "invalid [codegen.type_overrides] in %s", path), errors.ErrInvalidConfig)
	}
	if file.Codegen.TypeOverrides == nil {
		return map[string]string{}, nil
	}
	return file.Codegen.TypeOverrides, nil
}
