// Package extract turns parsed Rust declarations into the semantic model.
//
// Each declaration is handled on its own: a bad directive is reported as a
// diagnostic and ignored, it never fails the file. Only functions annotated
// with #[rpc_query] / #[rpc_mutation] and structs or enums deriving Serialize
// are kept.
package extract

import (
	"fmt"

	"github.com/misha-mad/vercel-rpc-sub000/diag"
	"github.com/misha-mad/vercel-rpc-sub000/logger"
	"github.com/misha-mad/vercel-rpc-sub000/model"
	"github.com/misha-mad/vercel-rpc-sub000/parser/syntax"
	"go.uber.org/zap"
)

type extractor struct {
	path  string
	diags diag.List
	log   *zap.SugaredLogger
}

// File extracts a partial manifest from one parsed file.
func File(f *syntax.File) (*model.Manifest, diag.List) {
	x := &extractor{
		path: f.Path,
		log:  logger.ChildLogger(logger.ComponentLogger(logger.ComponentExtract), logger.FieldFile, f.Path),
	}

	m := &model.Manifest{}
	for _, item := range f.Items {
		attrs := expandCfgAttr(item.Attrs)
		switch item.Kind {
		case syntax.ItemFn:
			if p, ok := x.procedure(item, attrs); ok {
				m.Procedures = append(m.Procedures, p)
			}
		case syntax.ItemStruct:
			if isSerializable(attrs) {
				m.Records = append(m.Records, x.record(item, attrs))
			}
		case syntax.ItemEnum:
			if isSerializable(attrs) {
				m.Sums = append(m.Sums, x.sum(item, attrs))
			}
		}
	}

	x.log.Debugw("extracted declarations",
		logger.FieldProcedures, len(m.Procedures),
		logger.FieldRecords, len(m.Records),
		logger.FieldSums, len(m.Sums),
		logger.FieldCount, x.diags.Len())
	return m, x.diags
}

func (x *extractor) warn(line int, item string, kind diag.Kind, format string, args ...interface{}) {
	d := diag.New(kind, format, args...).At(x.path, line).For(item)
	x.log.Debugw("diagnostic", logger.FieldItem, item, logger.FieldLine, line, logger.FieldKind, string(kind), "message", d.Message)
	x.diags.Add(d)
}

func (x *extractor) loc(line int) model.SourceLocation {
	return model.SourceLocation{File: x.path, Line: line}
}

func (x *extractor) procedure(item syntax.Item, attrs syntax.Attrs) (model.ProcedureSpec, bool) {
	attr, kind, ok := rpcAttr(attrs)
	if !ok {
		return model.ProcedureSpec{}, false
	}
	opts := x.parseProcedureOptions(attr, kind, item.Name)

	p := model.ProcedureSpec{
		Name:       item.Name,
		Kind:       kind,
		Source:     x.loc(item.Line),
		Docs:       docs(attrs),
		Idempotent: opts.Idempotent,
	}
	if opts.Timeout > 0 {
		p.SetTimeout(opts.Timeout)
	}

	for _, param := range item.Fn.Params {
		if param.Receiver {
			continue
		}
		// injected state from the init hook is passed by reference
		if opts.Init && param.Ref {
			continue
		}
		in := param.Type
		p.Input = &in
		break
	}

	if out := item.Fn.Output; out != nil {
		res := *out
		if res.BaseName() == "Result" && len(res.Generics) > 0 {
			res = res.Generics[0]
		}
		if res.Name != model.UnitName {
			p.Output = &res
		}
	}
	return p, true
}

func genericNames(params []syntax.GenericParam) []string {
	var names []string
	for _, g := range params {
		if g.Kind == syntax.GenericType {
			names = append(names, g.Name)
		}
	}
	return names
}

func (x *extractor) record(item syntax.Item, attrs syntax.Attrs) model.RecordSpec {
	serde := x.parseSerde(attrs, item.Name)
	r := model.RecordSpec{
		Name:      item.Name,
		Generics:  genericNames(item.Generics),
		Source:    x.loc(item.Line),
		Docs:      docs(attrs),
		RenameAll: serde.RenameAll,
	}

	switch item.Struct.Style {
	case syntax.StyleNamed:
		r.Fields = x.fields(item.Struct.Fields, item.Name)
	case syntax.StyleTuple:
		r.TupleArity = len(item.Struct.Fields)
		r.TupleFields = x.tupleTypes(item.Struct.Fields, item.Name)
	}
	return r
}

// tupleTypes returns the element types left after #[serde(skip)]. Whether
// the shape is a newtype or a sequence still follows the declared count.
func (x *extractor) tupleTypes(fields []syntax.Field, owner string) []model.TypeRef {
	var types []model.TypeRef
	for i, f := range fields {
		fs := x.parseSerde(expandCfgAttr(f.Attrs), fmt.Sprintf("%s.%d", owner, i))
		if fs.Skip {
			continue
		}
		types = append(types, f.Type)
	}
	return types
}

func (x *extractor) fields(fields []syntax.Field, owner string) []model.FieldSpec {
	out := make([]model.FieldSpec, 0, len(fields))
	for _, f := range fields {
		attrs := expandCfgAttr(f.Attrs)
		serde := x.parseSerde(attrs, owner+"."+f.Name)
		out = append(out, model.FieldSpec{
			Name:       f.Name,
			Type:       f.Type,
			Rename:     serde.Rename,
			Skip:       serde.Skip,
			HasDefault: serde.Default,
			Flatten:    serde.Flatten,
			Docs:       docs(attrs),
		})
	}
	return out
}

func (x *extractor) sum(item syntax.Item, attrs syntax.Attrs) model.SumSpec {
	serde := x.parseSerde(attrs, item.Name)
	s := model.SumSpec{
		Name:            item.Name,
		Generics:        genericNames(item.Generics),
		Source:          x.loc(item.Line),
		Docs:            docs(attrs),
		RenameAll:       serde.RenameAll,
		RenameAllFields: serde.RenameAllFields,
		Tagging:         x.tagging(serde, item),
	}

	for _, v := range item.Enum.Variants {
		s.Variants = append(s.Variants, x.variant(v, item.Name, s.Tagging))
	}
	return s
}

// tagging picks the enum representation: untagged, then tag+content,
// then tag alone, else external.
func (x *extractor) tagging(serde SerdeInfo, item syntax.Item) model.Tagging {
	switch {
	case serde.Untagged:
		return model.Untagged()
	case serde.Tag != "" && serde.Content != "":
		return model.AdjacentlyTagged(serde.Tag, serde.Content)
	case serde.Tag != "":
		return model.InternallyTagged(serde.Tag)
	case serde.Content != "":
		x.warn(item.Line, item.Name, diag.KindStructure, "content %q requires tag, enum stays externally tagged", serde.Content)
	}
	return model.ExternallyTagged()
}

func (x *extractor) variant(v syntax.Variant, owner string, tagging model.Tagging) model.VariantSpec {
	name := owner + "::" + v.Name
	attrs := expandCfgAttr(v.Attrs)
	serde := x.parseSerde(attrs, name)

	spec := model.VariantSpec{
		Name:      v.Name,
		Rename:    serde.Rename,
		RenameAll: serde.RenameAll,
		Skip:      serde.Skip,
		Docs:      docs(attrs),
	}

	switch v.Style {
	case syntax.StyleUnit:
		spec.Kind = model.VariantUnit
	case syntax.StyleTuple:
		spec.Kind = model.VariantTuple
		spec.Arity = len(v.Fields)
		spec.Types = x.tupleTypes(v.Fields, name)
		if tagging.Kind == model.TaggingInternal && !spec.Skip && spec.Arity != 1 {
			x.warn(v.Line, name, diag.KindStructure,
				"internally tagged tuple variant declares %d elements, serde accepts only newtype variants here", spec.Arity)
		}
	case syntax.StyleNamed:
		spec.Kind = model.VariantStruct
		spec.Fields = x.fields(v.Fields, name)
	}
	return spec
}
