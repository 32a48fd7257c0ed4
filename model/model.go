// Package model is the language-neutral representation of everything the
// compiler discovers in Rust sources: procedures, records (structs) and sums
// (enums), with the serde directives that shape their wire form.
//
// Values are plain data. The extractor builds them, the emitter reads them.
package model

import (
	"time"

	"github.com/misha-mad/vercel-rpc-sub000/codegen/casing"
)

// SourceLocation points at the declaration a spec was built from.
type SourceLocation struct {
	File string `json:"file" yaml:"file"`
	Line int    `json:"line" yaml:"line"`
}

// FieldSpec is one named field of a struct or struct variant.
type FieldSpec struct {
	Name string  `json:"name" yaml:"name"`
	Type TypeRef `json:"type" yaml:"type"`
	// Rename is the serde rename; empty means none.
	Rename     string `json:"rename,omitempty" yaml:"rename,omitempty"`
	Skip       bool   `json:"skip,omitempty" yaml:"skip,omitempty"`
	HasDefault bool   `json:"has_default,omitempty" yaml:"has_default,omitempty"`
	Flatten    bool   `json:"flatten,omitempty" yaml:"flatten,omitempty"`
	Docs       string `json:"docs,omitempty" yaml:"docs,omitempty"`
}

// RecordSpec is a serializable struct. Fields and TupleFields are mutually
// exclusive; a unit struct has neither.
type RecordSpec struct {
	Name        string         `json:"name" yaml:"name"`
	Generics    []string       `json:"generics,omitempty" yaml:"generics,omitempty"`
	Fields      []FieldSpec    `json:"fields,omitempty" yaml:"fields,omitempty"`
	TupleFields []TypeRef      `json:"tuple_fields,omitempty" yaml:"tuple_fields,omitempty"`
	// TupleArity is the declared element count, skipped elements included.
	// Zero means len(TupleFields).
	TupleArity int            `json:"tuple_arity,omitempty" yaml:"tuple_arity,omitempty"`
	Source     SourceLocation `json:"source" yaml:"source"`
	Docs       string         `json:"docs,omitempty" yaml:"docs,omitempty"`
	RenameAll  casing.Rule    `json:"rename_all,omitempty" yaml:"rename_all,omitempty"`
}

func (r RecordSpec) tupleArity() int {
	if r.TupleArity > 0 {
		return r.TupleArity
	}
	return len(r.TupleFields)
}

// IsNewtype reports a tuple struct declaring exactly one element, which is
// serialized as that element alone.
func (r RecordSpec) IsNewtype() bool {
	return len(r.Fields) == 0 && r.tupleArity() == 1 && len(r.TupleFields) == 1
}

// IsTuple reports a tuple struct declaring two or more elements. It stays a
// sequence even when skips leave fewer than two.
func (r RecordSpec) IsTuple() bool {
	return len(r.Fields) == 0 && r.tupleArity() >= 2
}

// VariantKind is the shape of an enum variant.
type VariantKind int

const (
	VariantUnit VariantKind = iota
	VariantTuple
	VariantStruct
)

var variantKindNames = []string{"unit", "tuple", "struct"}

func (k VariantKind) String() string {
	if int(k) < len(variantKindNames) {
		return variantKindNames[k]
	}
	return "unknown"
}

func (k VariantKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// VariantSpec is one enum variant. Types is set for tuple variants,
// Fields for struct variants.
type VariantSpec struct {
	Name   string      `json:"name" yaml:"name"`
	Kind   VariantKind `json:"kind" yaml:"kind"`
	Types  []TypeRef   `json:"types,omitempty" yaml:"types,omitempty"`
	// Arity is the declared tuple element count, skipped elements included.
	// Zero means len(Types).
	Arity  int         `json:"arity,omitempty" yaml:"arity,omitempty"`
	Fields []FieldSpec `json:"fields,omitempty" yaml:"fields,omitempty"`
	Rename string      `json:"rename,omitempty" yaml:"rename,omitempty"`
	// RenameAll is a variant-level rename_all, applied to struct variant fields.
	RenameAll casing.Rule `json:"rename_all,omitempty" yaml:"rename_all,omitempty"`
	Skip      bool        `json:"skip,omitempty" yaml:"skip,omitempty"`
	Docs      string      `json:"docs,omitempty" yaml:"docs,omitempty"`
}

// IsNewtype reports a tuple variant declaring exactly one element.
func (v VariantSpec) IsNewtype() bool {
	if v.Kind != VariantTuple {
		return false
	}
	arity := v.Arity
	if arity == 0 {
		arity = len(v.Types)
	}
	return arity == 1 && len(v.Types) == 1
}

// TaggingKind selects one of serde's four enum representations.
type TaggingKind int

const (
	TaggingExternal TaggingKind = iota
	TaggingInternal
	TaggingAdjacent
	TaggingUntagged
)

var taggingKindNames = []string{"external", "internal", "adjacent", "untagged"}

func (k TaggingKind) String() string {
	if int(k) < len(taggingKindNames) {
		return taggingKindNames[k]
	}
	return "unknown"
}

func (k TaggingKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Tagging is the enum representation. Tag is set for Internal and Adjacent,
// Content only for Adjacent.
type Tagging struct {
	Kind    TaggingKind `json:"kind" yaml:"kind"`
	Tag     string      `json:"tag,omitempty" yaml:"tag,omitempty"`
	Content string      `json:"content,omitempty" yaml:"content,omitempty"`
}

func ExternallyTagged() Tagging { return Tagging{Kind: TaggingExternal} }

func InternallyTagged(tag string) Tagging { return Tagging{Kind: TaggingInternal, Tag: tag} }

func AdjacentlyTagged(tag, content string) Tagging {
	return Tagging{Kind: TaggingAdjacent, Tag: tag, Content: content}
}

func Untagged() Tagging { return Tagging{Kind: TaggingUntagged} }

// SumSpec is a serializable enum.
type SumSpec struct {
	Name      string         `json:"name" yaml:"name"`
	Generics  []string       `json:"generics,omitempty" yaml:"generics,omitempty"`
	Variants  []VariantSpec  `json:"variants" yaml:"variants"`
	Source    SourceLocation `json:"source" yaml:"source"`
	Docs      string         `json:"docs,omitempty" yaml:"docs,omitempty"`
	RenameAll casing.Rule    `json:"rename_all,omitempty" yaml:"rename_all,omitempty"`
	// RenameAllFields is serde's rename_all_fields: a rule for the fields of
	// every struct variant.
	RenameAllFields casing.Rule `json:"rename_all_fields,omitempty" yaml:"rename_all_fields,omitempty"`
	Tagging         Tagging     `json:"tagging" yaml:"tagging"`
}

// ProcedureKind distinguishes queries from mutations.
type ProcedureKind int

const (
	Query ProcedureKind = iota
	Mutation
)

func (k ProcedureKind) String() string {
	if k == Mutation {
		return "mutation"
	}
	return "query"
}

func (k ProcedureKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// ProcedureSpec is an #[rpc_query] or #[rpc_mutation] function. A nil Input or
// Output means unit. Output is already unwrapped from Result<T, E>.
type ProcedureSpec struct {
	Name       string         `json:"name" yaml:"name"`
	Kind       ProcedureKind  `json:"kind" yaml:"kind"`
	Input      *TypeRef       `json:"input,omitempty" yaml:"input,omitempty"`
	Output     *TypeRef       `json:"output,omitempty" yaml:"output,omitempty"`
	Source     SourceLocation `json:"source" yaml:"source"`
	Docs       string         `json:"docs,omitempty" yaml:"docs,omitempty"`
	Timeout    time.Duration  `json:"-" yaml:"-"`
	TimeoutMS  int64          `json:"timeout_ms,omitempty" yaml:"timeout_ms,omitempty"`
	Idempotent bool           `json:"idempotent,omitempty" yaml:"idempotent,omitempty"`
}

// SetTimeout records a timeout in both its Duration and serialized forms.
func (p *ProcedureSpec) SetTimeout(d time.Duration) {
	p.Timeout = d
	p.TimeoutMS = d.Milliseconds()
}
