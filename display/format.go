// Package display renders command results as JSON or YAML.
package display

import (
	"encoding/json"
	"io"

	"github.com/misha-mad/vercel-rpc-sub000/errors"
	"gopkg.in/yaml.v3"
)

// Format selects how a result is printed.
type Format string

const (
	// FormatText means the command prints its own human summary.
	FormatText Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return FormatText, errors.WithHint(
		errors.Newf("unsupported format %q", s),
		"use --format json or --format yaml")
}

// Marshal encodes v. JSON is indented two spaces and ends with a newline, as
// does YAML.
func Marshal(v any, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode JSON")
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode YAML")
		}
		return data, nil
	}
	return nil, errors.Newf("format %q has no encoding", string(f))
}

// Write encodes v to w.
func Write(w io.Writer, v any, f Format) error {
	data, err := Marshal(v, f)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
