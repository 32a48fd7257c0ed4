package typescript

import (
	"strconv"
	"strings"

	"github.com/misha-mad/vercel-rpc-sub000/codegen/casing"
	"github.com/misha-mad/vercel-rpc-sub000/model"
)

func (e *emitter) sum(s model.SumSpec) string {
	var members, docs []string
	documented := false
	for _, v := range s.Variants {
		if v.Skip {
			continue
		}
		members = append(members, e.variant(s, v))
		doc := e.docs(v.Docs, "  ")
		documented = documented || doc != ""
		docs = append(docs, doc)
	}

	head := e.docs(s.Docs, "") + "export type " + s.Name + typeParams(s.Generics) + " ="
	if len(members) == 0 {
		return head + " never;"
	}
	if !documented {
		return head + " " + strings.Join(members, " | ") + ";"
	}

	// One member per line so each can carry its JSDoc.
	var sb strings.Builder
	sb.WriteString(head)
	for i, m := range members {
		sb.WriteString("\n" + docs[i] + "  | " + m)
	}
	sb.WriteString(";")
	return sb.String()
}

// variantName is the wire name: variant rename, then the container
// rename_all, then the Rust name. The global field policy never applies.
func variantName(s model.SumSpec, v model.VariantSpec) string {
	if v.Rename != "" {
		return v.Rename
	}
	return casing.Apply(s.RenameAll, v.Name)
}

// variant renders one union member.
//
//	shape       external        internal(t)         adjacent(t, c)          untagged
//	unit        "V"             { t: "V" }          { t: "V" }              null
//	tuple(1)    { V: T }        { t: "V" } & T      { t: "V"; c: T }        T
//	tuple(n)    { V: [A, B] }   { t: "V" } & [A, B] { t: "V"; c: [A, B] }   [A, B]
//	struct      { V: { f: T } } { t: "V"; f: T }    { t: "V"; c: { f: T } } { f: T }
func (e *emitter) variant(s model.SumSpec, v model.VariantSpec) string {
	name := variantName(s, v)
	literal := strconv.Quote(name)
	tagging := s.Tagging

	var tag, content string
	if tagging.Kind == model.TaggingInternal || tagging.Kind == model.TaggingAdjacent {
		tag = propertyKey(tagging.Tag) + ": " + literal
		content = propertyKey(tagging.Content)
	}

	switch v.Kind {
	case model.VariantUnit:
		switch tagging.Kind {
		case model.TaggingInternal, model.TaggingAdjacent:
			return "{ " + tag + " }"
		case model.TaggingUntagged:
			return "null"
		}
		return literal

	case model.VariantTuple:
		payload := e.tuplePayload(v)
		switch tagging.Kind {
		case model.TaggingInternal:
			return "{ " + tag + " } & " + paren(payload)
		case model.TaggingAdjacent:
			return "{ " + tag + "; " + content + ": " + payload + " }"
		case model.TaggingUntagged:
			return payload
		}
		return "{ " + propertyKey(name) + ": " + payload + " }"
	}

	// struct variant
	fieldName := e.namer(v.RenameAll, s.RenameAllFields)
	plain, flattened := splitFields(v.Fields)

	if tagging.Kind == model.TaggingInternal {
		return e.intersect(e.inlineObject(plain, fieldName, tag), flattened)
	}

	object := ""
	if len(plain) > 0 || len(flattened) == 0 {
		object = e.inlineObject(plain, fieldName)
	}
	payload := e.intersect(object, flattened)

	switch tagging.Kind {
	case model.TaggingAdjacent:
		return "{ " + tag + "; " + content + ": " + payload + " }"
	case model.TaggingUntagged:
		return payload
	}
	return "{ " + propertyKey(name) + ": " + payload + " }"
}

// tuplePayload renders a newtype variant as its element and any other
// declared arity as a TypeScript tuple of the serialized elements.
func (e *emitter) tuplePayload(v model.VariantSpec) string {
	if v.IsNewtype() {
		return e.mapType(v.Types[0])
	}
	parts := make([]string, len(v.Types))
	for i, t := range v.Types {
		parts[i] = e.mapType(t)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
