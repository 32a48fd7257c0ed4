// Package codegen turns a scanned model.Manifest into output files.
//
// # Architecture
//
// Generation has two layers:
//  1. The front-end (package parser) builds a language-neutral model.Manifest
//  2. Language-specific generators (typescript/) render the Manifest
//
// Generators are pure: the same Manifest and options always produce the same
// bytes, which is what lets `rpcgen check` compare a fresh run against the
// file on disk.
//
// Writing and freshness checking live here so that every generator shares
// them.
package codegen

import "github.com/misha-mad/vercel-rpc-sub000/model"

// Generator defines the interface for language-specific generators.
type Generator interface {
	// Generate renders the complete output file for m
	Generate(m *model.Manifest) string

	// FileExtension returns the file extension for this language (e.g., "ts")
	FileExtension() string

	// Language returns the language name (e.g., "typescript")
	Language() string
}

// Render runs g over m and returns the file contents.
func Render(g Generator, m *model.Manifest) []byte {
	return []byte(g.Generate(m))
}
