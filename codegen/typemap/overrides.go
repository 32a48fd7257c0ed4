// Package typemap rewrites model.TypeRef values into TypeScript type syntax.
package typemap

import (
	"sort"
	"strings"

	"github.com/misha-mad/vercel-rpc-sub000/model"
)

// BigintType is the TypeScript type substituted for names listed in
// [codegen] bigint_types.
const BigintType = "bigint"

// Overrides maps Rust type names to literal TypeScript types.
//
// Lookup tries the exact name first, then the base name (last "::" segment)
// against an index derived from every key's base name. A nil *Overrides is an
// empty table. Overrides is immutable after NewOverrides returns.
type Overrides struct {
	exact map[string]string
	base  map[string]string
}

// NewOverrides builds the table from [codegen.type_overrides] and
// [codegen] bigint_types. A bigint name only applies when the table has no
// entry for that exact name, so explicit overrides always win.
func NewOverrides(table map[string]string, bigintTypes []string) *Overrides {
	exact := make(map[string]string, len(table)+len(bigintTypes))
	for k, v := range table {
		exact[k] = v
	}
	for _, name := range bigintTypes {
		if _, ok := exact[name]; !ok {
			exact[name] = BigintType
		}
	}

	// Collisions in the base index: a short key owns its own base name,
	// otherwise the smallest qualified key wins.
	keys := make([]string, 0, len(exact))
	for k := range exact {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	base := make(map[string]string, len(exact))
	for _, k := range keys {
		b := model.BaseName(k)
		if _, taken := base[b]; taken {
			continue
		}
		if short, ok := exact[b]; ok {
			base[b] = short
			continue
		}
		base[b] = exact[k]
	}

	return &Overrides{exact: exact, base: base}
}

// Lookup resolves a type name to its override.
func (o *Overrides) Lookup(name string) (string, bool) {
	if o == nil {
		return "", false
	}
	if v, ok := o.exact[name]; ok {
		return v, true
	}
	if v, ok := o.base[model.BaseName(name)]; ok {
		return v, true
	}
	return "", false
}

// Len is the number of exact entries, bigint names included.
func (o *Overrides) Len() int {
	if o == nil {
		return 0
	}
	return len(o.exact)
}

// String lists the exact entries in key order, for -vv config output.
func (o *Overrides) String() string {
	if o == nil || len(o.exact) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(o.exact))
	for k := range o.exact {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k + " => " + o.exact[k])
	}
	sb.WriteString("}")
	return sb.String()
}
