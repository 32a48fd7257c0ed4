package rust

import (
	"strings"

	"github.com/misha-mad/vercel-rpc-sub000/model"
)

// parseType reads a type expression into a TypeRef.
//
//	&'a mut T          -> T
//	(A, B)             -> tuple<A, B>
//	()                 -> ()
//	[T; 4], [T]        -> Array<T>
//	std::vec::Vec<T>   -> std::vec::Vec<T>
//	Cow<'a, str>       -> Cow<str>
//	dyn Trait, fn(u8)  -> ?
func (p *parser) parseType() (model.TypeRef, error) {
	t := p.peek()
	switch {
	case t.isPunct("&"):
		p.next()
		if p.peek().kind == tokLifetime {
			p.next()
		}
		if p.peek().isIdent("mut") {
			p.next()
		}
		return p.parseType()

	case t.isPunct("*"):
		p.next()
		if p.peek().isIdent("const") || p.peek().isIdent("mut") {
			p.next()
		}
		return p.parseType()

	case t.isPunct("("):
		return p.parseParenType()

	case t.isPunct("["):
		p.next()
		elem, err := p.parseType()
		if err != nil {
			return model.TypeRef{}, err
		}
		if p.peek().isPunct(";") {
			p.next()
			if err := p.skipUntil("]"); err != nil {
				return model.TypeRef{}, err
			}
		}
		if _, err := p.expectPunct("]"); err != nil {
			return model.TypeRef{}, err
		}
		return model.Generic(model.ArrayName, elem), nil

	case t.isPunct("!"), t.isIdent("_"):
		p.next()
		return model.Simple(model.OpaqueName), nil

	case t.isIdent("dyn"), t.isIdent("impl"):
		p.next()
		return model.Simple(model.OpaqueName), p.skipBounds()

	case t.isIdent("fn"), t.isIdent("unsafe"), t.isIdent("extern"):
		return model.Simple(model.OpaqueName), p.skipFnPointer()

	case t.isIdent("for"):
		// higher-ranked: for<'a> fn(&'a u8)
		p.next()
		if _, err := p.parseGenericParams(); err != nil {
			return model.TypeRef{}, err
		}
		return p.parseType()

	case t.isPunct("<"):
		// qualified self: <T as Trait>::Assoc
		p.next()
		if err := p.skipUntilGenericSep(); err != nil {
			return model.TypeRef{}, err
		}
		if _, err := p.expectPunct(">"); err != nil {
			return model.TypeRef{}, err
		}
		for p.peek().isPunct("::") && p.peekN(1).kind == tokIdent {
			p.next()
			p.next()
		}
		return model.Simple(model.OpaqueName), nil

	case t.isPunct("::"), t.kind == tokIdent:
		return p.parsePathType()
	}
	return model.TypeRef{}, p.unexpected("type")
}

func (p *parser) parseParenType() (model.TypeRef, error) {
	p.next() // (
	if p.peek().isPunct(")") {
		p.next()
		return model.Simple(model.UnitName), nil
	}

	var elems []model.TypeRef
	trailingComma := false
	for {
		ty, err := p.parseType()
		if err != nil {
			return model.TypeRef{}, err
		}
		elems = append(elems, ty)
		trailingComma = false

		if p.peek().isPunct(",") {
			p.next()
			trailingComma = true
			if p.peek().isPunct(")") {
				p.next()
				break
			}
			continue
		}
		if _, err := p.expectPunct(")"); err != nil {
			return model.TypeRef{}, err
		}
		break
	}

	if len(elems) == 1 && !trailingComma {
		return elems[0], nil
	}
	return model.Generic(model.TupleName, elems...), nil
}

func (p *parser) parsePathType() (model.TypeRef, error) {
	if p.peek().isPunct("::") {
		p.next()
	}

	var segs []string
	var generics []model.TypeRef
	for {
		seg, err := p.expectIdent()
		if err != nil {
			return model.TypeRef{}, err
		}
		segs = append(segs, seg.text)
		generics = nil

		if p.peek().isPunct("::") && p.peekN(1).isPunct("<") {
			p.next()
		}
		if p.peek().isPunct("<") {
			p.next()
			if generics, err = p.parseGenericArgs(); err != nil {
				return model.TypeRef{}, err
			}
		}
		if p.peek().isPunct("::") && p.peekN(1).kind == tokIdent {
			p.next()
			continue
		}
		break
	}

	switch {
	case p.peek().isPunct("!") && isOpener(p.peekN(1)):
		// type-position macro
		p.next()
		return model.Simple(model.OpaqueName), p.skipGroup()

	case p.peek().isPunct("("):
		// Fn(A) -> B sugar
		if err := p.skipGroup(); err != nil {
			return model.TypeRef{}, err
		}
		if p.peek().isPunct("->") {
			p.next()
			if _, err := p.parseType(); err != nil {
				return model.TypeRef{}, err
			}
		}
		return model.Simple(model.OpaqueName), nil
	}

	return model.TypeRef{Name: strings.Join(segs, "::"), Generics: generics}, nil
}

// parseGenericArgs reads arguments after '<' through the closing '>'.
// Lifetimes, const arguments and associated-type bindings are dropped.
func (p *parser) parseGenericArgs() ([]model.TypeRef, error) {
	var args []model.TypeRef
	for {
		t := p.peek()
		if t.isPunct(">") {
			p.next()
			return args, nil
		}

		switch {
		case t.kind == tokLifetime:
			p.next()
		case t.kind == tokNumber, t.kind == tokString, t.kind == tokChar,
			t.isPunct("-"), t.isPunct("{"), t.isIdent("true"), t.isIdent("false"):
			if err := p.skipUntilGenericSep(); err != nil {
				return nil, err
			}
		case t.kind == tokIdent && (p.peekN(1).isPunct("=") || p.peekN(1).isPunct(":")):
			if err := p.skipUntilGenericSep(); err != nil {
				return nil, err
			}
		default:
			ty, err := p.parseType()
			if err != nil {
				return nil, err
			}
			args = append(args, ty)
		}

		switch {
		case p.peek().isPunct(","):
			p.next()
		case p.peek().isPunct(">"):
		default:
			return nil, p.unexpected("',' or '>'")
		}
	}
}

// skipBounds consumes a trait bound list (Trait + Send + 'a) after dyn/impl.
func (p *parser) skipBounds() error {
	angle := 0
	for {
		t := p.peek()
		switch {
		case t.kind == tokEOF:
			return nil
		case t.isPunct("(") || t.isPunct("["):
			if err := p.skipGroup(); err != nil {
				return err
			}
			continue
		case t.isPunct("<"):
			angle++
		case t.isPunct(">"):
			if angle == 0 {
				return nil
			}
			angle--
		case angle == 0 && (t.isPunct(",") || t.isPunct(")") || t.isPunct("]") ||
			t.isPunct(";") || t.isPunct("=") || t.isPunct("{") || t.isPunct("}")):
			return nil
		}
		p.next()
	}
}

// skipFnPointer consumes `unsafe extern "C" fn(A, B) -> R`.
func (p *parser) skipFnPointer() error {
	for p.peek().isIdent("unsafe") || p.peek().isIdent("extern") || p.peek().kind == tokString {
		p.next()
	}
	if !p.peek().isIdent("fn") {
		return p.unexpected("'fn'")
	}
	p.next()
	if !p.peek().isPunct("(") {
		return p.unexpected("'('")
	}
	if err := p.skipGroup(); err != nil {
		return err
	}
	if p.peek().isPunct("->") {
		p.next()
		if _, err := p.parseType(); err != nil {
			return err
		}
	}
	return nil
}
