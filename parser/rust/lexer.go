package rust

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokLifetime
	tokString
	tokChar
	tokNumber
	tokPunct
	tokDoc
)

// token is one lexeme. For strings text is the unescaped value, for doc
// comments the text after "///", for raw identifiers the name without "r#".
type token struct {
	kind tokenKind
	text string
	pos  Position
	end  int
}

func (t token) isPunct(p string) bool { return t.kind == tokPunct && t.text == p }

func (t token) isIdent(name string) bool { return t.kind == tokIdent && t.text == name }

type lexer struct {
	path string
	src  string
	pt   *positionTracker
	toks []token
}

// tokenize splits Rust source into tokens. Ordinary comments and inner doc
// comments are dropped; outer doc comments become tokDoc tokens, one per line.
func tokenize(path, src string) ([]token, error) {
	lx := &lexer{path: path, src: src, pt: newPositionTracker(src)}
	for {
		lx.skipSpace()
		if lx.pt.offset >= len(lx.src) {
			lx.push(tokEOF, "", lx.pt.mark())
			return lx.toks, nil
		}
		if err := lx.scan(); err != nil {
			return nil, err
		}
	}
}

func (lx *lexer) rest() string { return lx.src[lx.pt.offset:] }

func (lx *lexer) push(kind tokenKind, text string, start Position) {
	lx.toks = append(lx.toks, token{kind: kind, text: text, pos: start, end: lx.pt.offset})
}

func (lx *lexer) skipSpace() {
	for lx.pt.offset < len(lx.src) {
		r, size := utf8.DecodeRuneInString(lx.rest())
		if !unicode.IsSpace(r) {
			return
		}
		lx.pt.advance(size)
	}
}

func (lx *lexer) scan() error {
	start := lx.pt.mark()
	rest := lx.rest()

	switch {
	case strings.HasPrefix(rest, "///") && !strings.HasPrefix(rest, "////"):
		line := untilNewline(rest)
		lx.pt.advance(len(line))
		lx.push(tokDoc, strings.TrimSuffix(line[3:], "\r"), start)
		return nil

	case strings.HasPrefix(rest, "//"):
		lx.pt.advance(len(untilNewline(rest)))
		return nil

	case strings.HasPrefix(rest, "/*"):
		body, n, ok := blockComment(rest)
		if !ok {
			return newParseError(lx.path, start, "unterminated block comment")
		}
		isDoc := strings.HasPrefix(rest, "/**") && !strings.HasPrefix(rest, "/**/") && !strings.HasPrefix(rest, "/***")
		lx.pt.advance(n)
		if isDoc {
			for _, line := range blockDocLines(body[1:]) {
				lx.push(tokDoc, line, start)
			}
		}
		return nil

	case rest[0] == '"':
		return lx.lexString(start, 0)

	case rest[0] == '\'':
		return lx.lexQuote(start, 0)
	}

	if prefix, hashes, ok := rawStringPrefix(rest); ok {
		return lx.lexRawString(start, prefix, hashes)
	}
	if (rest[0] == 'b' || rest[0] == 'c') && len(rest) > 1 && rest[1] == '"' {
		return lx.lexString(start, 1)
	}
	if rest[0] == 'b' && len(rest) > 1 && rest[1] == '\'' {
		return lx.lexQuote(start, 1)
	}
	if strings.HasPrefix(rest, "r#") && len(rest) > 2 && isIdentStart(rune(rest[2])) {
		lx.pt.advance(2)
		name := identPrefix(lx.rest())
		lx.pt.advance(len(name))
		lx.push(tokIdent, name, start)
		return nil
	}

	r, size := utf8.DecodeRuneInString(rest)
	switch {
	case isIdentStart(r):
		name := identPrefix(rest)
		lx.pt.advance(len(name))
		lx.push(tokIdent, name, start)

	case r >= '0' && r <= '9':
		n := numberPrefix(rest)
		lx.pt.advance(n)
		lx.push(tokNumber, rest[:n], start)

	case strings.HasPrefix(rest, "::"), strings.HasPrefix(rest, "->"), strings.HasPrefix(rest, "=>"):
		lx.pt.advance(2)
		lx.push(tokPunct, rest[:2], start)

	default:
		lx.pt.advance(size)
		lx.push(tokPunct, rest[:size], start)
	}
	return nil
}

// lexQuote handles char literals and lifetimes, which both start with '.
func (lx *lexer) lexQuote(start Position, prefix int) error {
	rest := lx.rest()[prefix:]

	if len(rest) >= 2 && rest[1] == '\\' {
		if len(rest) < 4 {
			return newParseError(lx.path, start, "unterminated character literal")
		}
		// skip the escaped character, then find the closing quote
		end := strings.IndexByte(rest[3:], '\'')
		if end < 0 {
			return newParseError(lx.path, start, "unterminated character literal")
		}
		n := prefix + 3 + end + 1
		lx.pt.advance(n)
		lx.push(tokChar, lx.src[start.Offset:lx.pt.offset], start)
		return nil
	}

	r, size := utf8.DecodeRuneInString(rest[1:])
	if 1+size < len(rest) && rest[1+size] == '\'' {
		lx.pt.advance(prefix + size + 2)
		lx.push(tokChar, string(r), start)
		return nil
	}
	if isIdentStart(r) {
		name := identPrefix(rest[1:])
		lx.pt.advance(prefix + 1 + len(name))
		lx.push(tokLifetime, "'"+name, start)
		return nil
	}

	lx.pt.advance(prefix + 1)
	lx.push(tokPunct, "'", start)
	return nil
}

func (lx *lexer) lexString(start Position, prefix int) error {
	rest := lx.rest()
	var sb strings.Builder
	i := prefix + 1
	for i < len(rest) {
		c := rest[i]
		switch c {
		case '"':
			lx.pt.advance(i + 1)
			lx.push(tokString, sb.String(), start)
			return nil
		case '\\':
			n := unescape(rest[i:], &sb)
			i += n
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return newParseError(lx.path, start, "unterminated string literal")
}

func (lx *lexer) lexRawString(start Position, prefix, hashes int) error {
	rest := lx.rest()
	open := prefix + hashes + 1
	closer := `"` + strings.Repeat("#", hashes)
	end := strings.Index(rest[open:], closer)
	if end < 0 {
		return newParseError(lx.path, start, "unterminated raw string literal")
	}
	lx.pt.advance(open + end + len(closer))
	lx.push(tokString, rest[open:open+end], start)
	return nil
}

// unescape decodes one escape sequence at the start of s into sb and returns
// the number of bytes consumed.
func unescape(s string, sb *strings.Builder) int {
	if len(s) < 2 {
		sb.WriteString(s)
		return len(s)
	}
	switch s[1] {
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case '0':
		sb.WriteByte(0)
	case '\\', '"', '\'':
		sb.WriteByte(s[1])
	case 'x':
		if len(s) >= 4 {
			if v, err := strconv.ParseUint(s[2:4], 16, 8); err == nil {
				sb.WriteByte(byte(v))
				return 4
			}
		}
		sb.WriteString(s[:2])
	case 'u':
		if end := strings.IndexByte(s, '}'); len(s) > 2 && s[2] == '{' && end > 3 {
			if v, err := strconv.ParseUint(strings.ReplaceAll(s[3:end], "_", ""), 16, 32); err == nil {
				sb.WriteRune(rune(v))
				return end + 1
			}
		}
		sb.WriteString(s[:2])
	case '\n', '\r':
		// line continuation: drop the newline and leading whitespace
		i := 1
		for i < len(s) && (s[i] == '\n' || s[i] == '\r' || s[i] == ' ' || s[i] == '\t') {
			i++
		}
		return i
	default:
		sb.WriteString(s[:2])
	}
	return 2
}

// rawStringPrefix detects r"..", r#".."#, br"..", cr"..".
func rawStringPrefix(s string) (prefix, hashes int, ok bool) {
	switch {
	case strings.HasPrefix(s, "br"), strings.HasPrefix(s, "cr"):
		prefix = 2
	case strings.HasPrefix(s, "r"):
		prefix = 1
	default:
		return 0, 0, false
	}
	for prefix+hashes < len(s) && s[prefix+hashes] == '#' {
		hashes++
	}
	if prefix+hashes < len(s) && s[prefix+hashes] == '"' {
		return prefix, hashes, true
	}
	return 0, 0, false
}

// blockComment returns the text between "/*" and the matching "*/",
// honoring nesting, and the total length consumed.
func blockComment(s string) (string, int, bool) {
	depth := 0
	for i := 0; i < len(s)-1; i++ {
		switch {
		case s[i] == '/' && s[i+1] == '*':
			depth++
			i++
		case s[i] == '*' && s[i+1] == '/':
			depth--
			i++
			if depth == 0 {
				return s[2 : i-1], i + 1, true
			}
		}
	}
	return "", 0, false
}

// blockDocLines turns the body of a /** */ comment into doc lines, stripping
// the conventional leading " * " decoration.
func blockDocLines(body string) []string {
	raw := strings.Split(body, "\n")
	lines := make([]string, 0, len(raw))
	for i, line := range raw {
		line = strings.TrimRight(line, " \t\r")
		if i > 0 {
			trimmed := strings.TrimLeft(line, " \t")
			if strings.HasPrefix(trimmed, "*") {
				line = trimmed[1:]
			}
		}
		lines = append(lines, line)
	}
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func untilNewline(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func identPrefix(s string) string {
	for i, r := range s {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return s[:i]
		}
	}
	return s
}

// numberPrefix covers integers, floats and suffixed literals (1_000u64, 2.5f32).
func numberPrefix(s string) int {
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			i++
		case c == '.' && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9':
			i++
		default:
			return i
		}
	}
	return i
}
