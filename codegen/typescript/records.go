package typescript

import (
	"strconv"
	"strings"

	"github.com/misha-mad/vercel-rpc-sub000/codegen/casing"
	"github.com/misha-mad/vercel-rpc-sub000/codegen/typemap"
	"github.com/misha-mad/vercel-rpc-sub000/model"
)

// fieldNamer resolves the emitted property name of a field.
type fieldNamer func(f model.FieldSpec) string

// namer builds the precedence chain: field rename, then each rule in order,
// then the global policy.
func (e *emitter) namer(rules ...casing.Rule) fieldNamer {
	return func(f model.FieldSpec) string {
		if f.Rename != "" {
			return f.Rename
		}
		for _, rule := range rules {
			if rule != casing.RuleNone {
				return casing.Apply(rule, f.Name)
			}
		}
		return e.opts.FieldNaming.Apply(f.Name)
	}
}

// property renders `name: T`, or `name?: T | null` for a defaulted Option.
func (e *emitter) property(f model.FieldSpec, name fieldNamer) string {
	key := propertyKey(name(f))
	if f.HasDefault && typemap.IsOptional(f.Type, e.opts.Overrides) {
		return key + "?: " + e.mapType(f.Type)
	}
	return key + ": " + e.mapType(f.Type)
}

// splitFields drops skipped fields and separates flattened ones.
func splitFields(fields []model.FieldSpec) (plain, flattened []model.FieldSpec) {
	for _, f := range fields {
		switch {
		case f.Skip:
		case f.Flatten:
			flattened = append(flattened, f)
		default:
			plain = append(plain, f)
		}
	}
	return plain, flattened
}

// inlineObject renders `{ a: T; b: U }`. Extra leading members (tag
// properties) come first.
func (e *emitter) inlineObject(fields []model.FieldSpec, name fieldNamer, lead ...string) string {
	props := append([]string(nil), lead...)
	for _, f := range fields {
		props = append(props, e.property(f, name))
	}
	if len(props) == 0 {
		return "{}"
	}
	return "{ " + strings.Join(props, "; ") + " }"
}

// intersect joins an object part with flattened field types. An empty
// object part is omitted when something else remains.
func (e *emitter) intersect(object string, flattened []model.FieldSpec) string {
	var parts []string
	if object != "" {
		parts = append(parts, object)
	}
	for _, f := range flattened {
		parts = append(parts, paren(e.mapType(f.Type)))
	}
	if len(parts) == 0 {
		return "{}"
	}
	return strings.Join(parts, " & ")
}

func (e *emitter) record(r model.RecordSpec) string {
	var sb strings.Builder
	sb.WriteString(e.docs(r.Docs, ""))
	decl := r.Name + typeParams(r.Generics)

	switch {
	case r.IsNewtype():
		inner := e.mapType(r.TupleFields[0])
		if e.opts.BrandedNewtypes {
			sb.WriteString("export type " + decl + " = " + paren(inner) +
				" & { readonly __brand: " + strconv.Quote(r.Name) + " };")
		} else {
			sb.WriteString("export type " + decl + " = " + inner + ";")
		}
		return sb.String()

	case r.IsTuple():
		parts := make([]string, len(r.TupleFields))
		for i, t := range r.TupleFields {
			parts[i] = e.mapType(t)
		}
		sb.WriteString("export type " + decl + " = [" + strings.Join(parts, ", ") + "];")
		return sb.String()
	}

	name := e.namer(r.RenameAll)
	plain, flattened := splitFields(r.Fields)

	if len(flattened) > 0 {
		object := ""
		if len(plain) > 0 {
			object = e.inlineObject(plain, name)
		}
		sb.WriteString("export type " + decl + " = " + e.intersect(object, flattened) + ";")
		return sb.String()
	}

	if len(plain) == 0 {
		sb.WriteString("export interface " + decl + " {}")
		return sb.String()
	}

	sb.WriteString("export interface " + decl + " {\n")
	for _, f := range plain {
		sb.WriteString(e.docs(f.Docs, "  "))
		sb.WriteString("  " + e.property(f, name) + ";\n")
	}
	sb.WriteString("}")
	return sb.String()
}
