package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttrsFind(t *testing.T) {
	attrs := Attrs{
		{Meta: Meta{Path: "derive", Kind: MetaList, List: []Meta{{Path: "serde::Serialize"}}}},
		{Meta: Meta{Path: "metaxy::rpc_query"}},
		{Meta: Meta{Path: "serde", Kind: MetaList, List: []Meta{{Path: "skip"}}}},
		{Meta: Meta{Path: "serde", Kind: MetaList, List: []Meta{{Path: "default"}}}},
	}

	rpc, ok := attrs.Find("rpc_query")
	assert.True(t, ok)
	assert.Equal(t, "metaxy::rpc_query", rpc.Path)

	_, ok = attrs.Find("rpc_mutation")
	assert.False(t, ok)

	assert.Len(t, attrs.FindAll("serde"), 2)
	assert.Empty(t, attrs.FindAll("cfg"))

	derive, _ := attrs.Find("derive")
	assert.Equal(t, "Serialize", derive.List[0].BaseName())
}

func TestAttrsDocs(t *testing.T) {
	doc := func(s string) Attribute {
		return Attribute{Meta: Meta{Path: "doc", Kind: MetaNameValue, Value: Lit{Kind: LitStr, Text: s}}}
	}

	lines, hidden := Attrs{doc(" First."), doc(" Second.")}.Docs()
	assert.Equal(t, []string{" First.", " Second."}, lines)
	assert.False(t, hidden)

	attrs := Attrs{
		doc(" Kept."),
		{Meta: Meta{Path: "doc", Kind: MetaRaw, Raw: `doc = include_str!("x")`}},
		{Meta: Meta{Path: "doc", Kind: MetaList, List: []Meta{{Path: "hidden"}}}},
	}
	lines, hidden = attrs.Docs()
	assert.Equal(t, []string{" Kept."}, lines)
	assert.True(t, hidden)
}

func TestMetaStringValue(t *testing.T) {
	m := Meta{Path: "rename", Kind: MetaNameValue, Value: Lit{Kind: LitStr, Text: "id"}}
	v, ok := m.StringValue()
	assert.True(t, ok)
	assert.Equal(t, "id", v)

	_, ok = Meta{Path: "rename", Kind: MetaNameValue, Value: Lit{Kind: LitInt, Text: "3"}}.StringValue()
	assert.False(t, ok)

	_, ok = Meta{Path: "skip"}.StringValue()
	assert.False(t, ok)
}
