package model

import "strings"

// Names the front-end uses for types that have no path of their own.
const (
	TupleName  = "tuple" // (A, B) -> tuple<A, B>
	ArrayName  = "Array" // [T; N] and [T] -> Array<T>
	OpaqueName = "?"     // dyn Trait, impl Trait, fn(..) pointers
	UnitName   = "()"
)

// TypeRef is a possibly-qualified type name plus its generic arguments,
// e.g. chrono::DateTime<Utc> -> {Name: "chrono::DateTime", Generics: [{Name: "Utc"}]}.
//
// TypeRefs name other declarations by string only, so recursive types need no
// special handling.
type TypeRef struct {
	Name     string    `json:"name" yaml:"name"`
	Generics []TypeRef `json:"generics,omitempty" yaml:"generics,omitempty"`
}

// Simple returns a TypeRef without generic arguments.
func Simple(name string) TypeRef {
	return TypeRef{Name: name}
}

// Generic returns a TypeRef with the given generic arguments.
func Generic(name string, args ...TypeRef) TypeRef {
	return TypeRef{Name: name, Generics: args}
}

// BaseName is the last path segment: "chrono::DateTime" -> "DateTime".
func (t TypeRef) BaseName() string {
	return BaseName(t.Name)
}

// BaseName returns the last "::" segment of a qualified name.
func BaseName(name string) string {
	if i := strings.LastIndex(name, "::"); i >= 0 {
		return name[i+2:]
	}
	return name
}

// Equal reports structural equality.
func (t TypeRef) Equal(other TypeRef) bool {
	if t.Name != other.Name || len(t.Generics) != len(other.Generics) {
		return false
	}
	for i := range t.Generics {
		if !t.Generics[i].Equal(other.Generics[i]) {
			return false
		}
	}
	return true
}

// Walk visits t and every nested generic argument, pre-order.
func (t TypeRef) Walk(fn func(TypeRef)) {
	fn(t)
	for _, g := range t.Generics {
		g.Walk(fn)
	}
}

// String renders the source-like form, e.g. "HashMap<String, Vec<u8>>".
func (t TypeRef) String() string {
	if len(t.Generics) == 0 {
		return t.Name
	}
	args := make([]string, len(t.Generics))
	for i, g := range t.Generics {
		args[i] = g.String()
	}
	return t.Name + "<" + strings.Join(args, ", ") + ">"
}
