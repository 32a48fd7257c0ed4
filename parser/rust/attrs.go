package rust

import (
	"strings"

	"github.com/misha-mad/vercel-rpc-sub000/parser/syntax"
)

// parseOuterAttrs collects #[...] attributes and doc comments preceding an
// item, field, variant or parameter. Inner attributes (#![...]) are skipped.
func (p *parser) parseOuterAttrs() (syntax.Attrs, error) {
	var attrs syntax.Attrs
	for {
		t := p.peek()
		switch {
		case t.kind == tokDoc:
			p.next()
			attrs = append(attrs, syntax.Attribute{
				Meta: syntax.Meta{Path: "doc", Kind: syntax.MetaNameValue, Value: syntax.Lit{Kind: syntax.LitStr, Text: t.text}},
				Line: t.pos.Line,
			})

		case t.isPunct("#") && p.peekN(1).isPunct("!") && p.peekN(2).isPunct("["):
			p.next()
			p.next()
			if err := p.skipGroup(); err != nil {
				return nil, err
			}

		case t.isPunct("#") && p.peekN(1).isPunct("["):
			p.next()
			end, err := p.matchGroup(p.pos)
			if err != nil {
				return nil, err
			}
			body := p.toks[p.pos+1 : end]
			attrs = append(attrs, syntax.Attribute{Meta: p.metaFromTokens(body), Line: t.pos.Line})
			p.pos = end + 1

		default:
			return attrs, nil
		}
	}
}

// metaFromTokens parses an attribute body. Bodies that are not meta-shaped
// (e.g. doc = include_str!("x")) become MetaRaw with their source text.
func (p *parser) metaFromTokens(toks []token) syntax.Meta {
	if len(toks) == 0 {
		return syntax.Meta{Kind: syntax.MetaRaw}
	}
	mp := &metaParser{toks: toks}
	m, ok := mp.meta()
	if ok && mp.pos == len(toks) {
		return m
	}

	raw := p.src[toks[0].pos.Offset:toks[len(toks)-1].end]
	path, _ := (&metaParser{toks: toks}).path()
	return syntax.Meta{Path: path, Kind: syntax.MetaRaw, Raw: raw}
}

type metaParser struct {
	toks []token
	pos  int
}

func (mp *metaParser) done() bool { return mp.pos >= len(mp.toks) }

func (mp *metaParser) at(punct string) bool {
	return !mp.done() && mp.toks[mp.pos].isPunct(punct)
}

func (mp *metaParser) path() (string, bool) {
	var segs []string
	if mp.at("::") {
		mp.pos++
	}
	for {
		if mp.done() || mp.toks[mp.pos].kind != tokIdent {
			return strings.Join(segs, "::"), false
		}
		segs = append(segs, mp.toks[mp.pos].text)
		mp.pos++
		if mp.at("::") && mp.pos+1 < len(mp.toks) && mp.toks[mp.pos+1].kind == tokIdent {
			mp.pos++
			continue
		}
		return strings.Join(segs, "::"), true
	}
}

func (mp *metaParser) meta() (syntax.Meta, bool) {
	path, ok := mp.path()
	if !ok {
		return syntax.Meta{}, false
	}
	m := syntax.Meta{Path: path, Kind: syntax.MetaPath}

	switch {
	case mp.done() || mp.at(",") || mp.at(")"):
		return m, true

	case mp.at("="):
		mp.pos++
		lit, ok := mp.lit()
		if !ok {
			return syntax.Meta{}, false
		}
		m.Kind = syntax.MetaNameValue
		m.Value = lit
		return m, true

	case mp.at("("):
		mp.pos++
		m.Kind = syntax.MetaList
		for {
			if mp.at(")") {
				mp.pos++
				return m, true
			}
			item, ok := mp.meta()
			if !ok {
				return syntax.Meta{}, false
			}
			m.List = append(m.List, item)
			switch {
			case mp.at(","):
				mp.pos++
			case mp.at(")"):
			default:
				return syntax.Meta{}, false
			}
		}
	}
	return syntax.Meta{}, false
}

func (mp *metaParser) lit() (syntax.Lit, bool) {
	if mp.done() {
		return syntax.Lit{}, false
	}
	t := mp.toks[mp.pos]
	switch {
	case t.kind == tokString:
		mp.pos++
		return syntax.Lit{Kind: syntax.LitStr, Text: t.text}, true
	case t.kind == tokNumber:
		mp.pos++
		return syntax.Lit{Kind: syntax.LitInt, Text: t.text}, true
	case t.kind == tokChar:
		mp.pos++
		return syntax.Lit{Kind: syntax.LitOther, Text: t.text}, true
	case t.isPunct("-") && mp.pos+1 < len(mp.toks) && mp.toks[mp.pos+1].kind == tokNumber:
		mp.pos += 2
		return syntax.Lit{Kind: syntax.LitInt, Text: "-" + mp.toks[mp.pos-1].text}, true
	case t.isIdent("true"), t.isIdent("false"):
		mp.pos++
		return syntax.Lit{Kind: syntax.LitBool, Text: t.text}, true
	case t.kind == tokIdent || t.isPunct("::"):
		// bare paths such as `init = setup::state`
		path, ok := mp.path()
		if !ok {
			return syntax.Lit{}, false
		}
		if mp.at("(") || mp.at("!") {
			return syntax.Lit{}, false
		}
		return syntax.Lit{Kind: syntax.LitOther, Text: path}, true
	}
	return syntax.Lit{}, false
}
