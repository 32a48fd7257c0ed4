package typescript

import (
	"sort"
	"strconv"
	"strings"

	"github.com/misha-mad/vercel-rpc-sub000/codegen/casing"
	"github.com/misha-mad/vercel-rpc-sub000/codegen/typemap"
	"github.com/misha-mad/vercel-rpc-sub000/model"
)

// Header opens every generated file.
const Header = "// This file is auto-generated by rpcgen. Do not edit manually.\n" +
	"// Regenerate with: rpcgen generate\n"

// Options control emission.
type Options struct {
	// PreserveDocs emits doc comments as JSDoc.
	PreserveDocs bool
	// BrandedNewtypes emits single-element tuple structs as branded types
	// instead of plain aliases.
	BrandedNewtypes bool
	// FieldNaming applies to fields not covered by a rename or rename_all.
	FieldNaming casing.Policy
	// Overrides replaces mapped types; nil means none.
	Overrides *typemap.Overrides
}

// Generator implements codegen.Generator for TypeScript
type Generator struct {
	opts Options
}

// NewGenerator creates a new TypeScript generator
func NewGenerator(opts Options) *Generator {
	return &Generator{opts: opts}
}

// Language returns "typescript"
func (g *Generator) Language() string {
	return "typescript"
}

// FileExtension returns "ts"
func (g *Generator) FileExtension() string {
	return "ts"
}

// Generate renders the full types file (implements codegen.Generator)
func (g *Generator) Generate(m *model.Manifest) string {
	return GenerateTypesFile(m, g.opts)
}

type emitter struct {
	opts Options
}

// GenerateTypesFile renders records, then sums, then the Procedures map.
// Declarations are sorted by name on a copy; m is not modified. The same
// manifest and options always produce byte-identical output.
func GenerateTypesFile(m *model.Manifest, opts Options) string {
	e := &emitter{opts: opts}

	var sb strings.Builder
	sb.WriteString(Header)
	sb.WriteString("\n")

	if m == nil {
		m = &model.Manifest{}
	}

	records := append([]model.RecordSpec(nil), m.Records...)
	sort.SliceStable(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	for _, r := range records {
		sb.WriteString(e.record(r))
		sb.WriteString("\n\n")
	}

	sums := append([]model.SumSpec(nil), m.Sums...)
	sort.SliceStable(sums, func(i, j int) bool { return sums[i].Name < sums[j].Name })
	for _, s := range sums {
		sb.WriteString(e.sum(s))
		sb.WriteString("\n\n")
	}

	sb.WriteString(e.procedures(m.Procedures))
	sb.WriteString("\n")
	return sb.String()
}

func (e *emitter) mapType(ref model.TypeRef) string {
	return typemap.Map(ref, e.opts.Overrides)
}

func (e *emitter) docs(text, indent string) string {
	if !e.opts.PreserveDocs {
		return ""
	}
	return JSDoc(text, indent)
}

func (e *emitter) procedures(procs []model.ProcedureSpec) string {
	sorted := append([]model.ProcedureSpec(nil), procs...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var sb strings.Builder
	sb.WriteString("export type Procedures = {\n")
	for _, group := range []struct {
		key  string
		kind model.ProcedureKind
	}{{"queries", model.Query}, {"mutations", model.Mutation}} {
		sb.WriteString("  " + group.key + ": {\n")
		for _, p := range sorted {
			if p.Kind != group.kind {
				continue
			}
			sb.WriteString(e.docs(p.Docs, "    "))
			sb.WriteString("    " + propertyKey(p.Name) + ": { input: " + e.optionalRef(p.Input) +
				"; output: " + e.optionalRef(p.Output) + " };\n")
		}
		sb.WriteString("  };\n")
	}
	sb.WriteString("};")
	return sb.String()
}

func (e *emitter) optionalRef(ref *model.TypeRef) string {
	if ref == nil {
		return "void"
	}
	return e.mapType(*ref)
}

// typeParams renders `<T, U>`, or "" without generics.
func typeParams(generics []string) string {
	if len(generics) == 0 {
		return ""
	}
	return "<" + strings.Join(generics, ", ") + ">"
}

// propertyKey quotes names TypeScript cannot use bare.
func propertyKey(name string) string {
	if typemap.IsIdentifier(name) {
		return name
	}
	return strconv.Quote(name)
}

func paren(ts string) string {
	if typemap.HasTopLevelOperator(ts) {
		return "(" + ts + ")"
	}
	return ts
}
