package config

import (
	"github.com/spf13/viper"
)

// Default values, shared by SetDefaults and Default.
const (
	DefaultInputDir    = "api"
	DefaultOutputTypes = "src/lib/rpc-types.ts"
	DefaultFieldNaming = "preserve"
	DefaultDebounceMS  = 200
)

// DefaultInclude is the default input.include pattern list.
var DefaultInclude = []string{"**/*.rs"}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("input.dir", DefaultInputDir)
	v.SetDefault("input.include", DefaultInclude)
	v.SetDefault("input.exclude", []string{})

	v.SetDefault("output.types", DefaultOutputTypes)

	v.SetDefault("codegen.preserve_docs", false)
	v.SetDefault("codegen.branded_newtypes", false)
	v.SetDefault("codegen.bigint_types", []string{})
	v.SetDefault("codegen.naming.fields", DefaultFieldNaming)

	v.SetDefault("watch.debounce_ms", DefaultDebounceMS)
	v.SetDefault("watch.clear_screen", false)
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Dir:     DefaultInputDir,
			Include: append([]string(nil), DefaultInclude...),
			Exclude: []string{},
		},
		Output: OutputConfig{Types: DefaultOutputTypes},
		Codegen: CodegenConfig{
			BigintTypes:   []string{},
			Naming:        NamingConfig{Fields: DefaultFieldNaming},
			TypeOverrides: map[string]string{},
		},
		Watch: WatchConfig{DebounceMS: DefaultDebounceMS},
	}
}
