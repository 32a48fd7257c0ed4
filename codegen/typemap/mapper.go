package typemap

import (
	"strings"
	"unicode"

	"github.com/misha-mad/vercel-rpc-sub000/model"
)

// UnknownType is emitted for names TypeScript cannot spell, such as trait
// objects or function pointers.
const UnknownType = "unknown"

// primitives maps Rust scalar names to TypeScript.
var primitives = map[string]string{
	"String": "string",
	"str":    "string",
	"char":   "string",

	"i8": "number", "i16": "number", "i32": "number", "i64": "number", "i128": "number", "isize": "number",
	"u8": "number", "u16": "number", "u32": "number", "u64": "number", "u128": "number", "usize": "number",
	"f32": "number", "f64": "number",

	"bool": "boolean",

	model.UnitName: "void",
}

// sequences render as T[].
var sequences = map[string]bool{
	"Vec":           true,
	"VecDeque":      true,
	"HashSet":       true,
	"BTreeSet":      true,
	"IndexSet":      true,
	"LinkedList":    true,
	model.ArrayName: true,
}

// maps render as Record<K, V>.
var maps = map[string]bool{
	"HashMap":  true,
	"BTreeMap": true,
	"IndexMap": true,
}

// transparent wrappers serialize as their inner type.
var transparent = map[string]bool{
	"Box": true,
	"Arc": true,
	"Rc":  true,
	"Cow": true,
}

// Map converts ref to TypeScript syntax. ov may be nil.
//
//	Vec<Option<Item>>       -> (Item | null)[]
//	HashMap<String, u64>    -> Record<string, number>
//	Paginated<Vec<User>>    -> Paginated<User[]>
func Map(ref model.TypeRef, ov *Overrides) string {
	if v, ok := ov.Lookup(ref.Name); ok {
		return v
	}

	base := ref.BaseName()
	args := ref.Generics

	if ts, ok := primitives[base]; ok && len(args) == 0 {
		return ts
	}

	switch {
	case base == "Option" && len(args) == 1:
		inner := Map(args[0], ov)
		if strings.HasSuffix(inner, " | null") {
			return inner
		}
		return inner + " | null"

	case sequences[base] && len(args) == 1:
		return wrapIfCompound(Map(args[0], ov)) + "[]"

	case maps[base] && len(args) == 2:
		return "Record<" + Map(args[0], ov) + ", " + Map(args[1], ov) + ">"

	case base == model.TupleName:
		return "[" + mapList(args, ov) + "]"

	case transparent[base] && len(args) >= 1:
		// Cow<'a, T> arrives with the lifetime already dropped.
		return Map(args[len(args)-1], ov)
	}

	if !IsIdentifier(base) {
		return UnknownType
	}
	if len(args) == 0 {
		return base
	}
	return base + "<" + mapList(args, ov) + ">"
}

// IsOptional reports whether ref is an Option<T> that was not replaced by an
// override. Only such fields may render as `name?: T | null`.
func IsOptional(ref model.TypeRef, ov *Overrides) bool {
	if _, ok := ov.Lookup(ref.Name); ok {
		return false
	}
	return ref.BaseName() == "Option" && len(ref.Generics) == 1
}

func mapList(refs []model.TypeRef, ov *Overrides) string {
	parts := make([]string, len(refs))
	for i, r := range refs {
		parts[i] = Map(r, ov)
	}
	return strings.Join(parts, ", ")
}

// wrapIfCompound parenthesizes a type that has a top-level union or
// intersection, so that "[]" binds to the whole type.
func wrapIfCompound(ts string) string {
	if HasTopLevelOperator(ts) {
		return "(" + ts + ")"
	}
	return ts
}

// HasTopLevelOperator reports a '|' or '&' outside any brackets, braces,
// parentheses or string literals.
func HasTopLevelOperator(ts string) bool {
	depth := 0
	inString := false
	for _, r := range ts {
		switch {
		case inString:
			if r == '"' {
				inString = false
			}
		case r == '"':
			inString = true
		case r == '<' || r == '(' || r == '[' || r == '{':
			depth++
		case r == '>' || r == ')' || r == ']' || r == '}':
			depth--
		case (r == '|' || r == '&') && depth == 0:
			return true
		}
	}
	return false
}

// IsIdentifier reports a valid TypeScript identifier. Names failing it are
// mapped to unknown here and quoted as property keys by the emitter.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || r == '$' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
