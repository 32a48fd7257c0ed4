package syntax

import (
	"strings"
)

// MetaKind is the shape of an attribute or one of its nested items.
type MetaKind int

const (
	// MetaPath is a bare path: `#[serde]`, `skip`.
	MetaPath MetaKind = iota
	// MetaNameValue is `path = literal`.
	MetaNameValue
	// MetaList is `path(item, item, ...)`.
	MetaList
	// MetaRaw is an argument list that is not meta-shaped; Raw holds its text.
	MetaRaw
)

// LitKind classifies literal values in name-value items.
type LitKind int

const (
	LitStr LitKind = iota
	LitInt
	LitBool
	LitOther
)

// Lit is a literal. For strings Text is the unescaped content.
type Lit struct {
	Kind LitKind
	Text string
}

// Meta is a parsed attribute body, e.g. serde(rename_all = "camelCase", tag = "type").
type Meta struct {
	Path  string
	Kind  MetaKind
	Value Lit
	List  []Meta
	Raw   string
}

// Lookup returns the first nested item whose path is key.
func (m Meta) Lookup(key string) (Meta, bool) {
	for _, item := range m.List {
		if item.Path == key {
			return item, true
		}
	}
	return Meta{}, false
}

// StringValue returns the value of a `key = "str"` item.
func (m Meta) StringValue() (string, bool) {
	if m.Kind == MetaNameValue && m.Value.Kind == LitStr {
		return m.Value.Text, true
	}
	return "", false
}

// BaseName is the last path segment: serde::Serialize -> Serialize.
func (m Meta) BaseName() string {
	if i := strings.LastIndex(m.Path, "::"); i >= 0 {
		return m.Path[i+2:]
	}
	return m.Path
}

// Attribute is one outer attribute. Doc comments are surfaced as
// doc = "text" attributes.
type Attribute struct {
	Meta
	Line int
}

// Attrs is an ordered attribute list.
type Attrs []Attribute

// Find returns the first attribute whose path, or last path segment, is path.
func (a Attrs) Find(path string) (Attribute, bool) {
	for _, attr := range a {
		if attr.Path == path || attr.BaseName() == path {
			return attr, true
		}
	}
	return Attribute{}, false
}

// FindAll returns every attribute whose path, or last path segment, is path.
func (a Attrs) FindAll(path string) []Attribute {
	var out []Attribute
	for _, attr := range a {
		if attr.Path == path || attr.BaseName() == path {
			out = append(out, attr)
		}
	}
	return out
}

// Docs returns doc lines in order, and whether #[doc(hidden)] is present.
func (a Attrs) Docs() (lines []string, hidden bool) {
	for _, attr := range a {
		if attr.Path != "doc" {
			continue
		}
		switch attr.Kind {
		case MetaNameValue:
			if text, ok := attr.StringValue(); ok {
				lines = append(lines, text)
			}
		case MetaList:
			if _, ok := attr.Lookup("hidden"); ok {
				hidden = true
			}
		}
	}
	return lines, hidden
}
