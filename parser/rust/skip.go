package rust

var closers = map[string]string{"(": ")", "[": "]", "{": "}"}

func isOpener(t token) bool {
	if t.kind != tokPunct {
		return false
	}
	_, ok := closers[t.text]
	return ok
}

// matchGroup returns the index of the delimiter closing the opener at i.
func (p *parser) matchGroup(i int) (int, error) {
	var stack []string
	for j := i; j < len(p.toks); j++ {
		t := p.toks[j]
		if t.kind == tokEOF {
			return 0, p.errorf(p.toks[i], "unclosed delimiter %q", p.toks[i].text)
		}
		if t.kind != tokPunct {
			continue
		}
		switch t.text {
		case "(", "[", "{":
			stack = append(stack, closers[t.text])
		case ")", "]", "}":
			if len(stack) == 0 || stack[len(stack)-1] != t.text {
				return 0, p.errorf(t, "unbalanced delimiter %q", t.text)
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return j, nil
			}
		}
	}
	return 0, p.errorf(p.toks[i], "unclosed delimiter %q", p.toks[i].text)
}

// skipGroup consumes a balanced (..), [..] or {..} group.
func (p *parser) skipGroup() error {
	end, err := p.matchGroup(p.pos)
	if err != nil {
		return err
	}
	p.pos = end + 1
	return nil
}

// skipItem consumes an item the compiler does not model. Items end at a ';'
// or after a brace-delimited body at nesting depth zero.
func (p *parser) skipItem() error {
	for !p.eof() {
		t := p.peek()
		switch {
		case t.isPunct(";"):
			p.next()
			return nil
		case t.isPunct("{"):
			return p.skipGroup()
		case isOpener(t):
			if err := p.skipGroup(); err != nil {
				return err
			}
		case t.isPunct(")"), t.isPunct("]"), t.isPunct("}"):
			return p.errorf(t, "unbalanced delimiter %q", t.text)
		default:
			p.next()
		}
	}
	return nil
}

// skipUntil consumes tokens up to, not including, one of the stop
// punctuators at nesting depth zero.
func (p *parser) skipUntil(stops ...string) error {
	for {
		t := p.peek()
		if t.kind == tokEOF {
			return p.unexpected("'" + stops[0] + "'")
		}
		for _, s := range stops {
			if t.isPunct(s) {
				return nil
			}
		}
		if isOpener(t) {
			if err := p.skipGroup(); err != nil {
				return err
			}
			continue
		}
		p.next()
	}
}

// skipUntilGenericSep consumes bounds or defaults inside a generic list up to
// the next ',' or the closing '>' at angle depth zero.
func (p *parser) skipUntilGenericSep() error {
	angle := 0
	for {
		t := p.peek()
		switch {
		case t.kind == tokEOF:
			return p.unexpected("'>'")
		case isOpener(t):
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
		case t.isPunct(",") && angle == 0:
			return nil
		}
		p.next()
	}
}

// skipWhere consumes a where clause, stopping before the body or ';'.
func (p *parser) skipWhere() error {
	if !p.peek().isIdent("where") {
		return nil
	}
	p.next()
	return p.skipUntil("{", ";")
}

// skipVisibility consumes pub, pub(crate), pub(super), pub(self), pub(in path).
func (p *parser) skipVisibility() {
	if p.peek().isIdent("crate") && !p.peekN(1).isPunct("::") {
		p.next()
		return
	}
	if !p.peek().isIdent("pub") {
		return
	}
	p.next()
	if !p.peek().isPunct("(") {
		return
	}
	inner := p.peekN(1)
	restricted := inner.isIdent("in") ||
		((inner.isIdent("crate") || inner.isIdent("super") || inner.isIdent("self")) && p.peekN(2).isPunct(")"))
	if restricted {
		_ = p.skipGroup()
	}
}
