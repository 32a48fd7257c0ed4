// Package syntax is the declaration-level tree the Rust front-end hands to the
// extractor. It keeps only what type generation needs: attributes, names,
// generic parameters, parameter and field types. Function bodies and
// expressions are never represented.
package syntax

import (
	"github.com/misha-mad/vercel-rpc-sub000/model"
)

// File is one parsed source file.
type File struct {
	Path  string
	Items []Item
}

// ItemKind classifies top-level items the front-end keeps.
type ItemKind int

const (
	ItemFn ItemKind = iota
	ItemStruct
	ItemEnum
)

func (k ItemKind) String() string {
	switch k {
	case ItemFn:
		return "fn"
	case ItemStruct:
		return "struct"
	case ItemEnum:
		return "enum"
	}
	return "item"
}

// Item is a top-level fn, struct or enum. Exactly one of Fn, Struct, Enum is
// set, matching Kind.
type Item struct {
	Kind     ItemKind
	Name     string
	Attrs    Attrs
	Generics []GenericParam
	Line     int

	Fn     *FnDecl
	Struct *StructDecl
	Enum   *EnumDecl
}

// GenericKind distinguishes type, lifetime and const parameters.
type GenericKind int

const (
	GenericType GenericKind = iota
	GenericLifetime
	GenericConst
)

// GenericParam is one declared generic parameter, without bounds or defaults.
type GenericParam struct {
	Name string
	Kind GenericKind
}

// FnDecl is a function signature. Output is nil when there is no "->".
type FnDecl struct {
	Params []Param
	Output *model.TypeRef
}

// Param is one function parameter. Receiver marks self, &self, &mut self.
// Ref marks a parameter declared as a reference (&T), whose TypeRef is T.
type Param struct {
	Pattern  string
	Type     model.TypeRef
	Receiver bool
	Ref      bool
}

// Style is the body shape of a struct or enum variant.
type Style int

const (
	StyleUnit Style = iota
	StyleTuple
	StyleNamed
)

// StructDecl is a struct body. Tuple fields have an empty Name.
type StructDecl struct {
	Style  Style
	Fields []Field
}

// Field is a named or positional field.
type Field struct {
	Name  string
	Type  model.TypeRef
	Attrs Attrs
	Line  int
}

// EnumDecl is an enum body.
type EnumDecl struct {
	Variants []Variant
}

// Variant is one enum variant.
type Variant struct {
	Name   string
	Attrs  Attrs
	Style  Style
	Fields []Field
	Line   int
}
