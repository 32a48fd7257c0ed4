package config

import (
	"path/filepath"
)

// Overrides are CLI flag values. Nil pointers and nil slices leave the
// loaded value alone.
type Overrides struct {
	InputDir        *string
	OutputTypes     *string
	Include         []string
	Exclude         []string
	PreserveDocs    *bool
	BrandedNewtypes *bool
	Fields          *string
}

// ApplyOverrides layers flag values on top of the loaded configuration.
// Paths given on the command line are relative to the working directory,
// not to the config file, so they are made absolute here.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.InputDir != nil {
		c.Input.Dir = absPath(*o.InputDir)
	}
	if o.OutputTypes != nil {
		c.Output.Types = absPath(*o.OutputTypes)
	}
	if o.Include != nil {
		c.Input.Include = o.Include
	}
	if o.Exclude != nil {
		c.Input.Exclude = o.Exclude
	}
	if o.PreserveDocs != nil {
		c.Codegen.PreserveDocs = *o.PreserveDocs
	}
	if o.BrandedNewtypes != nil {
		c.Codegen.BrandedNewtypes = *o.BrandedNewtypes
	}
	if o.Fields != nil {
		c.Codegen.Naming.Fields = *o.Fields
	}
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
