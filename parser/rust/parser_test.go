package rust

import (
	"testing"

	"github.com/misha-mad/vercel-rpc-sub000/errors"
	"github.com/misha-mad/vercel-rpc-sub000/model"
	"github.com/misha-mad/vercel-rpc-sub000/parser/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *syntax.File {
	t.Helper()
	f, err := ParseFile("api/test.rs", []byte(src))
	require.NoError(t, err)
	return f
}

func TestParseQueryFunction(t *testing.T) {
	f := parse(t, `
use metaxy::rpc_query;

/// Say hello.
#[rpc_query]
async fn hello(name: String) -> String {
    format!("Hello, {}!", name)
}
`)

	require.Len(t, f.Items, 1)
	item := f.Items[0]
	assert.Equal(t, syntax.ItemFn, item.Kind)
	assert.Equal(t, "hello", item.Name)
	assert.Equal(t, 6, item.Line)

	require.Len(t, item.Attrs, 2)
	assert.Equal(t, "doc", item.Attrs[0].Path)
	assert.Equal(t, " Say hello.", item.Attrs[0].Value.Text)
	assert.Equal(t, "rpc_query", item.Attrs[1].Path)
	assert.Equal(t, syntax.MetaPath, item.Attrs[1].Kind)

	require.Len(t, item.Fn.Params, 1)
	assert.Equal(t, "name", item.Fn.Params[0].Pattern)
	assert.Equal(t, model.Simple("String"), item.Fn.Params[0].Type)
	require.NotNil(t, item.Fn.Output)
	assert.Equal(t, model.Simple("String"), *item.Fn.Output)
}

func TestParseFunctionSignatures(t *testing.T) {
	f := parse(t, `
pub async fn no_return() {}
pub(crate) fn result(input: &'a Input, state: &AppState) -> Result<Vec<Item>, MyError> { todo!() }
const fn constant() -> u32 { 1 }
unsafe extern "C" fn ffi(x: i32) -> i32 { x }
fn with_where<T>(t: T) -> T where T: Clone + Into<String> { t }
fn tuple_pattern((a, b): (u8, u16)) {}
`)

	require.Len(t, f.Items, 6)
	assert.Nil(t, f.Items[0].Fn.Output)
	assert.Empty(t, f.Items[0].Fn.Params)

	res := f.Items[1].Fn
	require.Len(t, res.Params, 2)
	assert.True(t, res.Params[0].Ref)
	assert.Equal(t, model.Simple("Input"), res.Params[0].Type)
	assert.Equal(t, "state", res.Params[1].Pattern)
	assert.Equal(t,
		model.Generic("Result", model.Generic("Vec", model.Simple("Item")), model.Simple("MyError")),
		*res.Output)

	assert.Equal(t, "constant", f.Items[2].Name)
	assert.Equal(t, "ffi", f.Items[3].Name)
	assert.Equal(t, []syntax.GenericParam{{Name: "T", Kind: syntax.GenericType}}, f.Items[4].Generics)
	assert.Equal(t, "(a, b)", f.Items[5].Fn.Params[0].Pattern)
	assert.Equal(t, model.Generic(model.TupleName, model.Simple("u8"), model.Simple("u16")), f.Items[5].Fn.Params[0].Type)
}

func TestParseReceivers(t *testing.T) {
	f := parse(t, `
fn a(&self, x: u8) {}
fn b(&'a mut self) {}
fn c(self: Box<Self>, y: String) {}
fn d(mut self) {}
`)
	for _, item := range f.Items {
		require.NotEmpty(t, item.Fn.Params, item.Name)
		assert.True(t, item.Fn.Params[0].Receiver, item.Name)
	}
	assert.Equal(t, "x", f.Items[0].Fn.Params[1].Pattern)
	assert.Equal(t, "y", f.Items[2].Fn.Params[1].Pattern)
}

func TestParseStructs(t *testing.T) {
	f := parse(t, `
#[derive(Serialize, Deserialize)]
#[serde(rename_all = "camelCase")]
pub struct User<'a, T: Clone = String, const N: usize> {
    /// The id.
    pub id: u64,
    #[serde(rename = "display_name", default)]
    pub(crate) name: Option<&'a str>,
    data: T,
    tags: [String; N],
}

#[derive(Serialize)]
pub struct UserId(pub String);

#[derive(Serialize)]
struct Pair(String, i32);

#[derive(Serialize)]
struct Marker;
`)

	require.Len(t, f.Items, 4)

	user := f.Items[0]
	assert.Equal(t, syntax.ItemStruct, user.Kind)
	assert.Equal(t, []syntax.GenericParam{
		{Name: "'a", Kind: syntax.GenericLifetime},
		{Name: "T", Kind: syntax.GenericType},
		{Name: "N", Kind: syntax.GenericConst},
	}, user.Generics)
	assert.Equal(t, syntax.StyleNamed, user.Struct.Style)
	require.Len(t, user.Struct.Fields, 4)

	id := user.Struct.Fields[0]
	assert.Equal(t, "id", id.Name)
	lines, _ := id.Attrs.Docs()
	assert.Equal(t, []string{" The id."}, lines)

	name := user.Struct.Fields[1]
	assert.Equal(t, model.Generic("Option", model.Simple("str")), name.Type)
	serde, ok := name.Attrs.Find("serde")
	require.True(t, ok)
	rename, ok := serde.Lookup("rename")
	require.True(t, ok)
	v, _ := rename.StringValue()
	assert.Equal(t, "display_name", v)
	_, ok = serde.Lookup("default")
	assert.True(t, ok)

	assert.Equal(t, model.Generic(model.ArrayName, model.Simple("String")), user.Struct.Fields[3].Type)

	assert.Equal(t, syntax.StyleTuple, f.Items[1].Struct.Style)
	require.Len(t, f.Items[1].Struct.Fields, 1)
	assert.Equal(t, model.Simple("String"), f.Items[1].Struct.Fields[0].Type)
	assert.Len(t, f.Items[2].Struct.Fields, 2)
	assert.Equal(t, syntax.StyleUnit, f.Items[3].Struct.Style)
}

func TestParseEnums(t *testing.T) {
	f := parse(t, `
#[derive(Serialize)]
#[serde(tag = "type", content = "data")]
pub enum Event<T> {
    /// Nothing.
    Empty,
    #[serde(rename = "click")]
    Click { x: i32, y: i32 },
    Data(T),
    Pair(String, u8),
    Code = 3,
}
`)

	require.Len(t, f.Items, 1)
	e := f.Items[0]
	assert.Equal(t, syntax.ItemEnum, e.Kind)
	require.Len(t, e.Enum.Variants, 5)

	serde, ok := e.Attrs.Find("serde")
	require.True(t, ok)
	tag, _ := serde.Lookup("tag")
	v, _ := tag.StringValue()
	assert.Equal(t, "type", v)

	vs := e.Enum.Variants
	assert.Equal(t, syntax.StyleUnit, vs[0].Style)
	assert.Equal(t, syntax.StyleNamed, vs[1].Style)
	assert.Len(t, vs[1].Fields, 2)
	assert.Equal(t, syntax.StyleTuple, vs[2].Style)
	assert.Equal(t, model.Simple("T"), vs[2].Fields[0].Type)
	assert.Len(t, vs[3].Fields, 2)
	assert.Equal(t, "Code", vs[4].Name)
	assert.Equal(t, syntax.StyleUnit, vs[4].Style)
}

func TestParseTypes(t *testing.T) {
	tests := []struct {
		src  string
		want model.TypeRef
	}{
		{"()", model.Simple(model.UnitName)},
		{"(u8)", model.Simple("u8")},
		{"(u8,)", model.Generic(model.TupleName, model.Simple("u8"))},
		{"(String, i32)", model.Generic(model.TupleName, model.Simple("String"), model.Simple("i32"))},
		{"&'static str", model.Simple("str")},
		{"&mut Vec<u8>", model.Generic("Vec", model.Simple("u8"))},
		{"*const u8", model.Simple("u8")},
		{"[u8]", model.Generic(model.ArrayName, model.Simple("u8"))},
		{"[u8; 32]", model.Generic(model.ArrayName, model.Simple("u8"))},
		{"::std::collections::HashMap<String, Vec<Option<u8>>>", model.Generic("std::collections::HashMap",
			model.Simple("String"), model.Generic("Vec", model.Generic("Option", model.Simple("u8"))))},
		{"chrono::DateTime<chrono::Utc>", model.Generic("chrono::DateTime", model.Simple("chrono::Utc"))},
		{"Cow<'a, str>", model.Generic("Cow", model.Simple("str"))},
		{"Box<dyn Fn(u8) -> u8 + Send>", model.Generic("Box", model.Simple(model.OpaqueName))},
		{"impl Iterator<Item = u8>", model.Simple(model.OpaqueName)},
		{"fn(u8) -> u8", model.Simple(model.OpaqueName)},
		{"<T as Trait>::Output", model.Simple(model.OpaqueName)},
		{"ArrayVec<u8, 16>", model.Generic("ArrayVec", model.Simple("u8"))},
		{"Vec::<u8>", model.Generic("Vec", model.Simple("u8"))},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			f := parse(t, "struct S("+tt.src+");")
			require.Len(t, f.Items, 1)
			require.Len(t, f.Items[0].Struct.Fields, 1)
			assert.Equal(t, tt.want, f.Items[0].Struct.Fields[0].Type)
		})
	}
}

func TestParseSkipsOtherItems(t *testing.T) {
	f := parse(t, `
#![allow(dead_code)]
//! Crate docs.
use std::collections::HashMap;
mod inner { pub struct Hidden; }
impl<T> Foo for Bar<T> where T: Clone { fn x(&self) {} }
trait Greeter { fn greet(&self) -> String; }
type Alias = HashMap<String, u8>;
const LIMIT: [u8; 3] = [1, 2, 3];
static NAME: &str = "x";
const ORIGIN: Point = Point { x: 0, y: 0 };
macro_rules! m { ($x:expr) => { $x }; }
lazy_static! { static ref X: u8 = 1; }
m!(1);
extern crate serde;
union U { a: u8, b: u16 }
/* block /* nested */ comment */
struct Kept;
`)

	require.Len(t, f.Items, 1)
	assert.Equal(t, "Kept", f.Items[0].Name)
}

func TestParseBodiesWithTrickyTokens(t *testing.T) {
	f := parse(t, `
fn tricky<'a>(s: &'a str) -> char {
    let c = '}';
    let q = '\'';
    let raw = r#"{ unbalanced "quote" }"#;
    let bytes = b"{";
    let lt: &'static str = "}";
    // }
    /* { */
    'x'
}
struct After;
`)
	require.Len(t, f.Items, 2)
	assert.Equal(t, "After", f.Items[1].Name)
}

func TestParseAttributeMeta(t *testing.T) {
	f := parse(t, `
#[rpc_mutation(timeout = "30s", idempotent)]
#[serde(rename_all(serialize = "camelCase", deserialize = "snake_case"))]
#[cfg_attr(feature = "serde", derive(serde::Serialize))]
#[doc = include_str!("README.md")]
#[doc(hidden)]
#[serde(default = "defaults::port", bound = 3, skip_serializing_if = "Option::is_none")]
fn x() {}
`)
	attrs := f.Items[0].Attrs
	require.Len(t, attrs, 6)

	rpc := attrs[0]
	assert.Equal(t, syntax.MetaList, rpc.Kind)
	timeout, ok := rpc.Lookup("timeout")
	require.True(t, ok)
	v, _ := timeout.StringValue()
	assert.Equal(t, "30s", v)
	idem, ok := rpc.Lookup("idempotent")
	require.True(t, ok)
	assert.Equal(t, syntax.MetaPath, idem.Kind)

	ra, ok := attrs[1].Lookup("rename_all")
	require.True(t, ok)
	ser, ok := ra.Lookup("serialize")
	require.True(t, ok)
	v, _ = ser.StringValue()
	assert.Equal(t, "camelCase", v)

	derive, ok := attrs[2].Lookup("derive")
	require.True(t, ok)
	assert.Equal(t, "serde::Serialize", derive.List[0].Path)
	assert.Equal(t, "Serialize", derive.List[0].BaseName())

	assert.Equal(t, syntax.MetaRaw, attrs[3].Kind)
	assert.Equal(t, "doc", attrs[3].Path)
	assert.Equal(t, `doc = include_str!("README.md")`, attrs[3].Raw)

	lines, hidden := attrs.Docs()
	assert.Empty(t, lines)
	assert.True(t, hidden)

	bound, _ := attrs[5].Lookup("bound")
	assert.Equal(t, syntax.LitInt, bound.Value.Kind)
}

func TestParseDocComments(t *testing.T) {
	f := parse(t, `
/// Line one.
///
/// Line three.
//// not a doc
/**
 * Block one.
 * Block two.
 */
#[derive(Serialize)]
struct Documented;
`)
	lines, hidden := f.Items[0].Attrs.Docs()
	assert.False(t, hidden)
	assert.Equal(t, []string{" Line one.", "", " Line three.", " Block one.", " Block two."}, lines)
}

func TestParseStringEscapes(t *testing.T) {
	f := parse(t, `#[serde(rename = "a\"b\\c\u{41}\x42\n")] struct S;`)
	serde, _ := f.Items[0].Attrs.Find("serde")
	rename, _ := serde.Lookup("rename")
	v, ok := rename.StringValue()
	require.True(t, ok)
	assert.Equal(t, "a\"b\\cAB\n", v)
}

func TestParseRawIdentifiers(t *testing.T) {
	f := parse(t, `struct S { r#type: String, r#match: u8 }`)
	assert.Equal(t, "type", f.Items[0].Struct.Fields[0].Name)
	assert.Equal(t, "match", f.Items[0].Struct.Fields[1].Name)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unclosed brace", "fn broken() {", "unclosed delimiter"},
		{"unbalanced", "struct S { a: u8 ) }", "expected"},
		{"unterminated string", `fn x() { let s = "abc; }`, "unterminated string"},
		{"unterminated comment", "/* never closed", "unterminated block comment"},
		{"missing field type", "struct S { a }", "expected ':'"},
		{"enum without body", "enum E;", "expected '{'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFile("api/bad.rs", []byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Contains(t, err.Error(), "api/bad.rs:")
			assert.True(t, errors.Is(err, errors.ErrFrontend))

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, "api/bad.rs", pe.Path)
		})
	}
}

func TestPositionTracking(t *testing.T) {
	toks, err := tokenize("x.rs", "a\n  é b")
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, toks[0].pos)
	assert.Equal(t, Position{Line: 2, Column: 3, Offset: 4}, toks[1].pos)
	assert.Equal(t, Position{Line: 2, Column: 5, Offset: 7}, toks[2].pos)
	assert.Equal(t, tokEOF, toks[3].kind)
}
