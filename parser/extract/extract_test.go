package extract_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/misha-mad/vercel-rpc-sub000/codegen/casing"
	"github.com/misha-mad/vercel-rpc-sub000/diag"
	"github.com/misha-mad/vercel-rpc-sub000/model"
	"github.com/misha-mad/vercel-rpc-sub000/parser/extract"
	"github.com/misha-mad/vercel-rpc-sub000/parser/rust"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractSource(t *testing.T, src string) (*model.Manifest, diag.List) {
	t.Helper()
	f, err := rust.ParseFile("api/test.rs", []byte(src))
	require.NoError(t, err)
	return extract.File(f)
}

func ref(t model.TypeRef) *model.TypeRef { return &t }

func TestExtractProcedures(t *testing.T) {
	m, diags := extractSource(t, `
use metaxy::{rpc_query, rpc_mutation};

/// Returns a greeting.
#[rpc_query]
async fn hello(name: String) -> String { format!("hi {name}") }

#[metaxy::rpc_query(timeout = "30s")]
async fn time() -> Result<TimeResponse, String> { todo!() }

#[rpc_mutation(idempotent, timeout = "2m")]
async fn create_user(input: CreateUserInput) -> Result<User, ApiError> { todo!() }

#[rpc_query(init = "setup", cache = "1h")]
async fn stats(state: &AppState, filter: StatsFilter) -> Stats { todo!() }

#[rpc_mutation]
async fn reset() {}

async fn not_exported(x: u8) -> u8 { x }
`)
	assert.Empty(t, diags)

	want := []model.ProcedureSpec{
		{
			Name: "hello", Kind: model.Query,
			Input:  ref(model.Simple("String")),
			Output: ref(model.Simple("String")),
			Source: model.SourceLocation{File: "api/test.rs", Line: 6},
			Docs:   "Returns a greeting.",
		},
		{
			Name: "time", Kind: model.Query,
			Output:  ref(model.Simple("TimeResponse")),
			Source:  model.SourceLocation{File: "api/test.rs", Line: 9},
			Timeout: 30 * time.Second, TimeoutMS: 30000,
		},
		{
			Name: "create_user", Kind: model.Mutation,
			Input:   ref(model.Simple("CreateUserInput")),
			Output:  ref(model.Simple("User")),
			Source:  model.SourceLocation{File: "api/test.rs", Line: 12},
			Timeout: 2 * time.Minute, TimeoutMS: 120000,
			Idempotent: true,
		},
		{
			Name: "stats", Kind: model.Query,
			Input:  ref(model.Simple("StatsFilter")),
			Output: ref(model.Simple("Stats")),
			Source: model.SourceLocation{File: "api/test.rs", Line: 15},
		},
		{
			Name: "reset", Kind: model.Mutation,
			Source: model.SourceLocation{File: "api/test.rs", Line: 18},
		},
	}
	if diff := cmp.Diff(want, m.Procedures); diff != "" {
		t.Errorf("procedures mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractProcedureDirectiveDiagnostics(t *testing.T) {
	m, diags := extractSource(t, `
#[rpc_query(idempotent)]
async fn a() -> u8 { 1 }

#[rpc_query(timeout = "10ms")]
async fn b() -> u8 { 1 }

#[rpc_mutation(cache = "1h", retries = "3")]
async fn c() {}

#[rpc_query(timeout = "0s")]
async fn d() -> u8 { 1 }
`)
	require.Len(t, m.Procedures, 4)
	assert.False(t, m.Procedures[0].Idempotent)
	assert.Zero(t, m.Procedures[1].Timeout)
	assert.Zero(t, m.Procedures[3].Timeout)

	var items []string
	for _, d := range diags {
		assert.Equal(t, diag.KindDirective, d.Kind)
		assert.Equal(t, "api/test.rs", d.File)
		items = append(items, d.Item)
	}
	assert.Equal(t, []string{"a", "b", "c", "c", "d"}, items)
	assert.Contains(t, diags[0].Message, "idempotent is only valid on mutations")
	assert.Contains(t, diags[3].Message, `"retries"`)
}

func TestExtractRecords(t *testing.T) {
	m, diags := extractSource(t, `
/// A user.
///
/// Second paragraph.
#[derive(Debug, Clone, serde::Serialize)]
#[serde(rename_all = "camelCase")]
pub struct User<'a, T, const N: usize> {
    /// Primary key.
    pub user_id: u64,
    #[serde(rename = "display")]
    pub display_name: &'a str,
    #[serde(default)]
    pub label: Option<String>,
    #[serde(skip)]
    pub secret: String,
    #[serde(flatten)]
    pub meta: T,
    #[serde(rename(serialize = "ser", deserialize = "de"))]
    pub split: bool,
}

#[derive(Serialize)]
pub struct UserId(pub String);

#[derive(Serialize)]
pub struct Point(f64, #[serde(skip)] f64, f64);

#[derive(Serialize)]
pub struct Empty;

#[derive(Deserialize)]
pub struct NotSerialized { a: u8 }

#[cfg_attr(feature = "ser", derive(Serialize), serde(rename_all = "snake_case"))]
pub struct Conditional { a: u8 }
`)
	assert.Empty(t, diags)

	want := []model.RecordSpec{
		{
			Name:     "User",
			Generics: []string{"T"},
			Fields: []model.FieldSpec{
				{Name: "user_id", Type: model.Simple("u64"), Docs: "Primary key."},
				{Name: "display_name", Type: model.Simple("str"), Rename: "display"},
				{Name: "label", Type: model.Generic("Option", model.Simple("String")), HasDefault: true},
				{Name: "secret", Type: model.Simple("String"), Skip: true},
				{Name: "meta", Type: model.Simple("T"), Flatten: true},
				{Name: "split", Type: model.Simple("bool"), Rename: "ser"},
			},
			Source:    model.SourceLocation{File: "api/test.rs", Line: 7},
			Docs:      "A user.\n\nSecond paragraph.",
			RenameAll: casing.Camel,
		},
		{
			Name:        "UserId",
			TupleFields: []model.TypeRef{model.Simple("String")},
			TupleArity:  1,
			Source:      model.SourceLocation{File: "api/test.rs", Line: 23},
		},
		{
			Name:        "Point",
			TupleFields: []model.TypeRef{model.Simple("f64"), model.Simple("f64")},
			TupleArity:  3,
			Source:      model.SourceLocation{File: "api/test.rs", Line: 26},
		},
		{
			Name:   "Empty",
			Source: model.SourceLocation{File: "api/test.rs", Line: 29},
		},
		{
			Name:      "Conditional",
			Fields:    []model.FieldSpec{{Name: "a", Type: model.Simple("u8")}},
			Source:    model.SourceLocation{File: "api/test.rs", Line: 35},
			RenameAll: casing.Snake,
		},
	}
	if diff := cmp.Diff(want, m.Records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, m.Records[1].IsNewtype())
	assert.True(t, m.Records[2].IsTuple())
}

func TestExtractSums(t *testing.T) {
	m, diags := extractSource(t, `
#[derive(Serialize)]
#[serde(tag = "type", rename_all = "snake_case", rename_all_fields = "camelCase")]
pub enum Shape {
    Circle { radius_px: f64 },
    #[serde(rename = "rect", rename_all = "SCREAMING_SNAKE_CASE")]
    Rectangle { width: f64, height: f64 },
    Wrapped(Inner),
    #[serde(skip)]
    Hidden,
    Unit = 4,
}

#[derive(Serialize)]
#[serde(tag = "t", content = "c")]
enum Adjacent<T> { A(T) }

#[derive(Serialize)]
#[serde(untagged, tag = "ignored")]
enum Loose { A(u8) }

#[derive(Serialize)]
enum Plain { A, B }
`)
	assert.Empty(t, diags)
	require.Len(t, m.Sums, 4)

	want := model.SumSpec{
		Name: "Shape",
		Variants: []model.VariantSpec{
			{Name: "Circle", Kind: model.VariantStruct, Fields: []model.FieldSpec{{Name: "radius_px", Type: model.Simple("f64")}}},
			{Name: "Rectangle", Kind: model.VariantStruct, Rename: "rect", RenameAll: casing.ScreamingSnake, Fields: []model.FieldSpec{
				{Name: "width", Type: model.Simple("f64")},
				{Name: "height", Type: model.Simple("f64")},
			}},
			{Name: "Wrapped", Kind: model.VariantTuple, Types: []model.TypeRef{model.Simple("Inner")}, Arity: 1},
			{Name: "Hidden", Kind: model.VariantUnit, Skip: true},
			{Name: "Unit", Kind: model.VariantUnit},
		},
		Source:          model.SourceLocation{File: "api/test.rs", Line: 4},
		RenameAll:       casing.Snake,
		RenameAllFields: casing.Camel,
		Tagging:         model.InternallyTagged("type"),
	}
	if diff := cmp.Diff(want, m.Sums[0]); diff != "" {
		t.Errorf("sum mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, model.AdjacentlyTagged("t", "c"), m.Sums[1].Tagging)
	assert.Equal(t, []string{"T"}, m.Sums[1].Generics)
	assert.Equal(t, model.Untagged(), m.Sums[2].Tagging)
	assert.Equal(t, model.ExternallyTagged(), m.Sums[3].Tagging)
}

func TestExtractStructureDiagnostics(t *testing.T) {
	m, diags := extractSource(t, `
#[derive(Serialize)]
#[serde(content = "c")]
enum NoTag { A(u8) }

#[derive(Serialize)]
#[serde(tag = "kind")]
enum BadInternal { Pair(u8, u16), One(u8) }

#[derive(Serialize)]
struct BadRename {
    #[serde(rename = 5)]
    a: u8,
}
`)
	require.Len(t, m.Sums, 2)
	assert.Equal(t, model.ExternallyTagged(), m.Sums[0].Tagging)
	require.Len(t, m.Sums[1].Variants, 2)

	require.Len(t, diags, 3)
	for _, d := range diags {
		assert.Equal(t, diag.KindStructure, d.Kind)
		assert.Equal(t, diag.SeverityWarning, d.Severity)
	}
	assert.Equal(t, "NoTag", diags[0].Item)
	assert.Equal(t, "BadInternal::Pair", diags[1].Item)
	assert.Equal(t, 8, diags[1].Line)
	assert.Equal(t, "BadRename.a", diags[2].Item)
	assert.Empty(t, m.Records[0].Fields[0].Rename)
}

func TestExtractSkippedTupleElements(t *testing.T) {
	m, diags := extractSource(t, `
#[derive(Serialize)]
pub struct Pair(#[serde(skip)] u8, String);

#[derive(Serialize)]
pub enum E {
    V(#[serde(skip_serializing)] u8, String),
    W(u8),
}

#[derive(Serialize)]
#[serde(tag = "kind")]
pub enum I {
    V(#[serde(skip)] u8, String),
}
`)
	require.Len(t, m.Records, 1)
	pair := m.Records[0]
	assert.Equal(t, []model.TypeRef{model.Simple("String")}, pair.TupleFields)
	assert.Equal(t, 2, pair.TupleArity)
	assert.False(t, pair.IsNewtype(), "declared arity decides the shape")
	assert.True(t, pair.IsTuple())

	require.Len(t, m.Sums, 2)
	v := m.Sums[0].Variants[0]
	assert.Equal(t, []model.TypeRef{model.Simple("String")}, v.Types)
	assert.Equal(t, 2, v.Arity)
	assert.False(t, v.IsNewtype())
	assert.True(t, m.Sums[0].Variants[1].IsNewtype())

	// serde rejects tuple variants under an internal tag by declared count.
	require.Len(t, diags, 1)
	assert.Equal(t, "I::V", diags[0].Item)
	assert.Contains(t, diags[0].Message, "declares 2 elements")
}

func TestExtractUnknownRenameRule(t *testing.T) {
	m, diags := extractSource(t, `
#[derive(Serialize)]
#[serde(rename_all = "Title Case")]
struct S { a_b: u8 }
`)
	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, diag.KindDirective, d.Kind)
	assert.Equal(t, "S", d.Item)
	assert.Equal(t, 3, d.Line)
	assert.Contains(t, d.Message, `"Title Case"`)
	assert.Contains(t, d.Suggestion, "camelCase")
	assert.Contains(t, d.Suggestion, "SCREAMING-KEBAB-CASE")
	assert.Equal(t, casing.RuleNone, m.Records[0].RenameAll)
}

func TestExtractDocs(t *testing.T) {
	m, _ := extractSource(t, `
///
/// Padded.
///
#[derive(Serialize)]
struct A;

#[doc = " Attribute doc."]
#[derive(Serialize)]
struct B;

/// Hidden.
#[doc(hidden)]
#[derive(Serialize)]
struct C;

/**
 * Block.
 */
#[derive(Serialize)]
struct D;
`)
	require.Len(t, m.Records, 4)
	assert.Equal(t, "Padded.", m.Records[0].Docs)
	assert.Equal(t, "Attribute doc.", m.Records[1].Docs)
	assert.Empty(t, m.Records[2].Docs)
	assert.Equal(t, "Block.", m.Records[3].Docs)
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr string
	}{
		{"30s", 30 * time.Second, ""},
		{"5m", 5 * time.Minute, ""},
		{"2h", 2 * time.Hour, ""},
		{"1d", 24 * time.Hour, ""},
		{"", 0, "empty"},
		{"10", 0, "suffix"},
		{"10ms", 0, "invalid number"},
		{"xs", 0, "invalid number"},
		{"0m", 0, "zero"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := extract.ParseDuration(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
