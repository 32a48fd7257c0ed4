package extract

import (
	"strings"

	"github.com/misha-mad/vercel-rpc-sub000/codegen/casing"
	"github.com/misha-mad/vercel-rpc-sub000/diag"
	"github.com/misha-mad/vercel-rpc-sub000/parser/syntax"
)

// SerdeInfo holds the serde directives found on one declaration, field or
// variant. Only the serialize side of split directives is kept.
type SerdeInfo struct {
	Rename          string
	RenameAll       casing.Rule
	RenameAllFields casing.Rule
	Skip            bool
	Default         bool
	Flatten         bool
	Tag             string
	Content         string
	Untagged        bool
}

// serde keys that do not change the serialized TypeScript shape.
var ignoredSerdeKeys = map[string]bool{
	"alias":               true,
	"bound":               true,
	"borrow":              true,
	"crate":               true,
	"deny_unknown_fields": true,
	"deserialize_with":    true,
	"expecting":           true,
	"field_identifier":    true,
	"from":                true,
	"getter":              true,
	"into":                true,
	"other":               true,
	"remote":              true,
	"serialize_with":      true,
	"skip_deserializing":  true,
	"skip_serializing_if": true,
	"transparent":         true,
	"try_from":            true,
	"variant_identifier":  true,
	"with":                true,
}

// expandCfgAttr flattens #[cfg_attr(pred, a, b(..))] into #[a] #[b(..)],
// treating the predicate as true.
func expandCfgAttr(attrs syntax.Attrs) syntax.Attrs {
	out := make(syntax.Attrs, 0, len(attrs))
	for _, attr := range attrs {
		if attr.Path != "cfg_attr" || attr.Kind != syntax.MetaList || len(attr.List) < 2 {
			out = append(out, attr)
			continue
		}
		for _, m := range attr.List[1:] {
			out = append(out, expandCfgAttr(syntax.Attrs{{Meta: m, Line: attr.Line}})...)
		}
	}
	return out
}

// isSerializable reports whether a derive list names Serialize.
func isSerializable(attrs syntax.Attrs) bool {
	for _, attr := range attrs.FindAll("derive") {
		for _, m := range attr.List {
			if m.BaseName() == "Serialize" {
				return true
			}
		}
	}
	return false
}

// parseSerde collects serde directives. Problems are reported to the
// extractor's diagnostics and the offending directive is ignored.
func (x *extractor) parseSerde(attrs syntax.Attrs, item string) SerdeInfo {
	var info SerdeInfo
	for _, attr := range attrs {
		if attr.Path != "serde" {
			continue
		}
		if attr.Kind != syntax.MetaList {
			x.warn(attr.Line, item, diag.KindStructure, "serde attribute is not a directive list: %s", attrText(attr))
			continue
		}

		for _, m := range attr.List {
			switch m.Path {
			case "rename":
				if v, ok := x.serializeString(m, attr.Line, item); ok {
					info.Rename = v
				}
			case "rename_all":
				if v, ok := x.serializeString(m, attr.Line, item); ok {
					info.RenameAll = x.renameRule(v, m.Path, attr.Line, item)
				}
			case "rename_all_fields":
				if v, ok := x.serializeString(m, attr.Line, item); ok {
					info.RenameAllFields = x.renameRule(v, m.Path, attr.Line, item)
				}
			case "skip", "skip_serializing":
				info.Skip = true
			case "default":
				info.Default = true
			case "flatten":
				info.Flatten = true
			case "untagged":
				info.Untagged = true
			case "tag":
				if v, ok := x.stringValue(m, attr.Line, item); ok {
					info.Tag = v
				}
			case "content":
				if v, ok := x.stringValue(m, attr.Line, item); ok {
					info.Content = v
				}
			default:
				if !ignoredSerdeKeys[m.Path] {
					x.warn(attr.Line, item, diag.KindDirective, "unknown serde directive %q", m.Path)
				}
			}
		}
	}
	return info
}

// serializeString reads `key = "v"` or `key(serialize = "v", ...)`. A list
// without a serialize entry yields ok=false without a diagnostic.
func (x *extractor) serializeString(m syntax.Meta, line int, item string) (string, bool) {
	if m.Kind == syntax.MetaList {
		ser, ok := m.Lookup("serialize")
		if !ok {
			return "", false
		}
		return x.stringValue(ser, line, item)
	}
	return x.stringValue(m, line, item)
}

func (x *extractor) stringValue(m syntax.Meta, line int, item string) (string, bool) {
	v, ok := m.StringValue()
	if !ok {
		x.warn(line, item, diag.KindStructure, "%s expects a string literal", m.Path)
	}
	return v, ok
}

func (x *extractor) renameRule(v, key string, line int, item string) casing.Rule {
	rule, err := casing.ParseRule(v)
	if err != nil {
		x.diags.Add(diag.New(diag.KindDirective, "unknown %s value %q, directive ignored", key, v).
			At(x.path, line).For(item).
			WithSuggestion("expected one of: " + strings.Join(casing.RuleNames(), ", ")))
		return casing.RuleNone
	}
	return rule
}

func attrText(attr syntax.Attribute) string {
	if attr.Raw != "" {
		return attr.Raw
	}
	return attr.Path
}
