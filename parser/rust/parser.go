// Package rust is a declaration-level Rust front-end. It reads top-level
// functions, structs and enums with their attributes, generic parameters and
// types, and skips everything else (bodies, impls, modules, macros) by
// balanced-delimiter scanning. It does not type-check or expand macros.
package rust

import (
	"github.com/misha-mad/vercel-rpc-sub000/model"
	"github.com/misha-mad/vercel-rpc-sub000/parser/syntax"
)

type parser struct {
	path string
	src  string
	toks []token
	pos  int
}

// ParseFile parses one Rust source file into declaration nodes. A returned
// error is a *ParseError wrapping errors.ErrFrontend.
func ParseFile(path string, src []byte) (*syntax.File, error) {
	toks, err := tokenize(path, string(src))
	if err != nil {
		return nil, err
	}

	p := &parser{path: path, src: string(src), toks: toks}
	items, err := p.parseItems()
	if err != nil {
		return nil, err
	}
	return &syntax.File{Path: path, Items: items}, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) peekN(n int) token {
	if p.pos+n < len(p.toks) {
		return p.toks[p.pos+n]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) eof() bool { return p.peek().kind == tokEOF }

func (p *parser) errorf(t token, format string, args ...interface{}) error {
	return newParseError(p.path, t.pos, format, args...)
}

func (p *parser) unexpected(want string) error {
	t := p.peek()
	if t.kind == tokEOF {
		return p.errorf(t, "unexpected end of file, expected %s", want)
	}
	return p.errorf(t, "expected %s, found %q", want, t.text)
}

func (p *parser) expectPunct(s string) (token, error) {
	if !p.peek().isPunct(s) {
		return token{}, p.unexpected("'" + s + "'")
	}
	return p.next(), nil
}

func (p *parser) expectIdent() (token, error) {
	if p.peek().kind != tokIdent {
		return token{}, p.unexpected("identifier")
	}
	return p.next(), nil
}

func (p *parser) parseItems() ([]syntax.Item, error) {
	var items []syntax.Item
	for !p.eof() {
		if p.peek().isPunct(";") {
			p.next()
			continue
		}

		attrs, err := p.parseOuterAttrs()
		if err != nil {
			return nil, err
		}
		if p.eof() {
			break
		}

		item, ok, err := p.parseItem(attrs)
		if err != nil {
			return nil, err
		}
		if ok {
			items = append(items, item)
		}
	}
	return items, nil
}

// parseItem returns ok=false for items that carry no declarations of interest.
func (p *parser) parseItem(attrs syntax.Attrs) (syntax.Item, bool, error) {
	p.skipVisibility()

	for {
		t := p.peek()
		switch {
		case t.isIdent("async"), t.isIdent("unsafe") && isFnStart(p.peekN(1)):
			p.next()
			continue
		case t.isIdent("const") && isFnStart(p.peekN(1)):
			p.next()
			continue
		case t.isIdent("extern") && p.peekN(1).isIdent("fn"):
			p.next()
			continue
		case t.isIdent("extern") && p.peekN(1).kind == tokString && isFnStart(p.peekN(2)):
			p.next()
			p.next()
			continue
		}
		break
	}

	t := p.peek()
	var (
		item syntax.Item
		err  error
	)
	switch {
	case t.isIdent("fn"):
		item, err = p.parseFn(attrs)
	case t.isIdent("struct"):
		item, err = p.parseStruct(attrs)
	case t.isIdent("enum"):
		item, err = p.parseEnum(attrs)
	default:
		return syntax.Item{}, false, p.skipItem()
	}
	if err != nil {
		return syntax.Item{}, false, err
	}
	return item, true, nil
}

func isFnStart(t token) bool {
	return t.isIdent("fn") || t.isIdent("async") || t.isIdent("unsafe") || t.isIdent("extern") || t.isIdent("const")
}

func (p *parser) parseFn(attrs syntax.Attrs) (syntax.Item, error) {
	p.next() // fn
	name, err := p.expectIdent()
	if err != nil {
		return syntax.Item{}, err
	}
	generics, err := p.parseGenericParams()
	if err != nil {
		return syntax.Item{}, err
	}
	if _, err := p.expectPunct("("); err != nil {
		return syntax.Item{}, err
	}
	params, err := p.parseParams()
	if err != nil {
		return syntax.Item{}, err
	}

	decl := &syntax.FnDecl{Params: params}
	if p.peek().isPunct("->") {
		p.next()
		out, err := p.parseType()
		if err != nil {
			return syntax.Item{}, err
		}
		decl.Output = &out
	}
	if err := p.skipWhere(); err != nil {
		return syntax.Item{}, err
	}

	switch {
	case p.peek().isPunct("{"):
		if err := p.skipGroup(); err != nil {
			return syntax.Item{}, err
		}
	case p.peek().isPunct(";"):
		p.next()
	default:
		return syntax.Item{}, p.unexpected("function body")
	}

	return syntax.Item{
		Kind:     syntax.ItemFn,
		Name:     name.text,
		Attrs:    attrs,
		Generics: generics,
		Line:     name.pos.Line,
		Fn:       decl,
	}, nil
}

func (p *parser) parseParams() ([]syntax.Param, error) {
	var params []syntax.Param
	for {
		if p.peek().isPunct(")") {
			p.next()
			return params, nil
		}
		if _, err := p.parseOuterAttrs(); err != nil {
			return nil, err
		}

		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		params = append(params, param)

		switch {
		case p.peek().isPunct(","):
			p.next()
		case p.peek().isPunct(")"):
		default:
			return nil, p.unexpected("',' or ')'")
		}
	}
}

func (p *parser) parseParam() (syntax.Param, error) {
	// receiver: self, mut self, &self, &'a mut self, self: Box<Self>
	save := p.pos
	if p.peek().isPunct("&") {
		p.next()
		if p.peek().kind == tokLifetime {
			p.next()
		}
	}
	if p.peek().isIdent("mut") {
		p.next()
	}
	if p.peek().isIdent("self") {
		p.next()
		if p.peek().isPunct(":") {
			p.next()
			if _, err := p.parseType(); err != nil {
				return syntax.Param{}, err
			}
		}
		return syntax.Param{Pattern: "self", Receiver: true}, nil
	}
	p.pos = save

	// C variadic
	if p.peek().isPunct(".") {
		for !p.peek().isPunct(",") && !p.peek().isPunct(")") && !p.eof() {
			p.next()
		}
		return syntax.Param{Pattern: "...", Type: model.Simple(model.OpaqueName)}, nil
	}

	start := p.peek()
	if start.isPunct(":") {
		return syntax.Param{}, p.unexpected("parameter pattern")
	}
	for !p.peek().isPunct(":") {
		if p.eof() || p.peek().isPunct(",") || p.peek().isPunct(")") {
			return syntax.Param{}, p.unexpected("':' after parameter pattern")
		}
		if isOpener(p.peek()) {
			if err := p.skipGroup(); err != nil {
				return syntax.Param{}, err
			}
			continue
		}
		p.next()
	}
	pattern := p.src[start.pos.Offset:p.toks[p.pos-1].end]
	p.next() // :

	ref := p.peek().isPunct("&")
	ty, err := p.parseType()
	if err != nil {
		return syntax.Param{}, err
	}
	return syntax.Param{Pattern: pattern, Type: ty, Ref: ref}, nil
}

func (p *parser) parseStruct(attrs syntax.Attrs) (syntax.Item, error) {
	p.next() // struct
	name, err := p.expectIdent()
	if err != nil {
		return syntax.Item{}, err
	}
	generics, err := p.parseGenericParams()
	if err != nil {
		return syntax.Item{}, err
	}
	if err := p.skipWhere(); err != nil {
		return syntax.Item{}, err
	}

	decl := &syntax.StructDecl{}
	switch {
	case p.peek().isPunct("{"):
		decl.Style = syntax.StyleNamed
		if decl.Fields, err = p.parseNamedFields(); err != nil {
			return syntax.Item{}, err
		}
	case p.peek().isPunct("("):
		decl.Style = syntax.StyleTuple
		if decl.Fields, err = p.parseTupleFields(); err != nil {
			return syntax.Item{}, err
		}
		if err := p.skipWhere(); err != nil {
			return syntax.Item{}, err
		}
		if _, err := p.expectPunct(";"); err != nil {
			return syntax.Item{}, err
		}
	case p.peek().isPunct(";"):
		p.next()
		decl.Style = syntax.StyleUnit
	default:
		return syntax.Item{}, p.unexpected("struct body")
	}

	return syntax.Item{
		Kind:     syntax.ItemStruct,
		Name:     name.text,
		Attrs:    attrs,
		Generics: generics,
		Line:     name.pos.Line,
		Struct:   decl,
	}, nil
}

func (p *parser) parseEnum(attrs syntax.Attrs) (syntax.Item, error) {
	p.next() // enum
	name, err := p.expectIdent()
	if err != nil {
		return syntax.Item{}, err
	}
	generics, err := p.parseGenericParams()
	if err != nil {
		return syntax.Item{}, err
	}
	if err := p.skipWhere(); err != nil {
		return syntax.Item{}, err
	}
	if _, err := p.expectPunct("{"); err != nil {
		return syntax.Item{}, err
	}

	decl := &syntax.EnumDecl{}
	for {
		if p.peek().isPunct("}") {
			p.next()
			break
		}
		v, err := p.parseVariant()
		if err != nil {
			return syntax.Item{}, err
		}
		decl.Variants = append(decl.Variants, v)

		switch {
		case p.peek().isPunct(","):
			p.next()
		case p.peek().isPunct("}"):
		default:
			return syntax.Item{}, p.unexpected("',' or '}'")
		}
	}

	return syntax.Item{
		Kind:     syntax.ItemEnum,
		Name:     name.text,
		Attrs:    attrs,
		Generics: generics,
		Line:     name.pos.Line,
		Enum:     decl,
	}, nil
}

func (p *parser) parseVariant() (syntax.Variant, error) {
	attrs, err := p.parseOuterAttrs()
	if err != nil {
		return syntax.Variant{}, err
	}
	p.skipVisibility()
	name, err := p.expectIdent()
	if err != nil {
		return syntax.Variant{}, err
	}

	v := syntax.Variant{Name: name.text, Attrs: attrs, Line: name.pos.Line}
	switch {
	case p.peek().isPunct("{"):
		v.Style = syntax.StyleNamed
		if v.Fields, err = p.parseNamedFields(); err != nil {
			return syntax.Variant{}, err
		}
	case p.peek().isPunct("("):
		v.Style = syntax.StyleTuple
		if v.Fields, err = p.parseTupleFields(); err != nil {
			return syntax.Variant{}, err
		}
	default:
		v.Style = syntax.StyleUnit
	}

	// explicit discriminant
	if p.peek().isPunct("=") {
		p.next()
		if err := p.skipUntil(",", "}"); err != nil {
			return syntax.Variant{}, err
		}
	}
	return v, nil
}

func (p *parser) parseNamedFields() ([]syntax.Field, error) {
	p.next() // {
	var fields []syntax.Field
	for {
		if p.peek().isPunct("}") {
			p.next()
			return fields, nil
		}
		attrs, err := p.parseOuterAttrs()
		if err != nil {
			return nil, err
		}
		p.skipVisibility()
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(":"); err != nil {
			return nil, err
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		// default field values
		if p.peek().isPunct("=") {
			p.next()
			if err := p.skipUntil(",", "}"); err != nil {
				return nil, err
			}
		}
		fields = append(fields, syntax.Field{Name: name.text, Type: ty, Attrs: attrs, Line: name.pos.Line})

		switch {
		case p.peek().isPunct(","):
			p.next()
		case p.peek().isPunct("}"):
		default:
			return nil, p.unexpected("',' or '}'")
		}
	}
}

func (p *parser) parseTupleFields() ([]syntax.Field, error) {
	p.next() // (
	var fields []syntax.Field
	for {
		if p.peek().isPunct(")") {
			p.next()
			return fields, nil
		}
		attrs, err := p.parseOuterAttrs()
		if err != nil {
			return nil, err
		}
		p.skipVisibility()
		line := p.peek().pos.Line
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fields = append(fields, syntax.Field{Type: ty, Attrs: attrs, Line: line})

		switch {
		case p.peek().isPunct(","):
			p.next()
		case p.peek().isPunct(")"):
		default:
			return nil, p.unexpected("',' or ')'")
		}
	}
}

// parseGenericParams reads `<'a, T: Bound, const N: usize = 3>` into names
// and kinds. Returns nil when there is no parameter list.
func (p *parser) parseGenericParams() ([]syntax.GenericParam, error) {
	if !p.peek().isPunct("<") {
		return nil, nil
	}
	p.next()

	var params []syntax.GenericParam
	for {
		if p.peek().isPunct(">") {
			p.next()
			return params, nil
		}
		if _, err := p.parseOuterAttrs(); err != nil {
			return nil, err
		}

		t := p.peek()
		switch {
		case t.kind == tokLifetime:
			p.next()
			params = append(params, syntax.GenericParam{Name: t.text, Kind: syntax.GenericLifetime})
		case t.isIdent("const"):
			p.next()
			name, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			params = append(params, syntax.GenericParam{Name: name.text, Kind: syntax.GenericConst})
		case t.kind == tokIdent:
			p.next()
			params = append(params, syntax.GenericParam{Name: t.text, Kind: syntax.GenericType})
		default:
			return nil, p.unexpected("generic parameter")
		}

		if err := p.skipUntilGenericSep(); err != nil {
			return nil, err
		}
		if p.peek().isPunct(",") {
			p.next()
		}
	}
}
