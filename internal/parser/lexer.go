package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// TokenKind classifies a token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIdent
	TokenNumber
	TokenString
	TokenPunct
)

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "end of input"
	case TokenIdent:
		return "identifier"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenPunct:
		return "punctuation"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Token is a lexical token.
type Token struct {
	Kind TokenKind
	Text string // Identifier name, operator symbol or decoded string contents
	Raw  string // Exact source text
	Pos  Pos
}

func (t Token) describe() string {
	switch t.Kind {
	case TokenEOF:
		return "end of input"
	case TokenPunct:
		return fmt.Sprintf("%q", t.Text)
	default:
		return fmt.Sprintf("%s %s", t.Kind, t.Raw)
	}
}

// Operators and punctuation, longest first so matching is greedy.
var puncts = []string{
	"===", "!==",
	"=>", "==", "!=", "<=", ">=", "&&", "||",
	".", ",", "(", ")", "[", "]", "!", "<", ">", "+", "-", "*", "/", "%", ";",
}

// Lex converts source into tokens, ending with a TokenEOF.
func Lex(src string) ([]Token, error) {
	l := &lexer{src: src, line: 1}
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			return toks, nil
		}
	}
}

type lexer struct {
	src       string
	off       int
	line      int
	lineStart int
}

func (l *lexer) pos(off int) Pos {
	return Pos{
		Offset: off,
		Line:   l.line,
		Column: utf8.RuneCountInString(l.src[l.lineStart:off]) + 1,
	}
}

func (l *lexer) peek(ahead int) byte {
	if l.off+ahead >= len(l.src) {
		return 0
	}
	return l.src[l.off+ahead]
}

func (l *lexer) skipSpace() {
	for l.off < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.off:])
		if r == '\n' {
			l.off += size
			l.line++
			l.lineStart = l.off
			continue
		}
		if !unicode.IsSpace(r) {
			return
		}
		l.off += size
	}
}

func (l *lexer) next() (Token, error) {
	l.skipSpace()
	start := l.off
	if start >= len(l.src) {
		return Token{Kind: TokenEOF, Pos: l.pos(start)}, nil
	}

	c := l.src[start]
	switch {
	case c == '"' || c == '\'':
		return l.lexString(c)
	case isDigit(c) || (c == '.' && isDigit(l.peek(1))):
		return l.lexNumber()
	case c == '`':
		return Token{}, errorf(l.pos(start), "template literals are not supported")
	case c == '?':
		return Token{}, errorf(l.pos(start), "conditional expressions and optional chaining are not supported")
	case c == '{' || c == '}':
		return Token{}, errorf(l.pos(start), "block bodies and object literals are not supported")
	}

	r, _ := utf8.DecodeRuneInString(l.src[start:])
	if isIdentStart(r) {
		return l.lexIdent(), nil
	}

	for _, p := range puncts {
		if strings.HasPrefix(l.src[start:], p) {
			l.off += len(p)
			return Token{Kind: TokenPunct, Text: p, Raw: p, Pos: l.pos(start)}, nil
		}
	}

	switch c {
	case '=':
		return Token{}, errorf(l.pos(start), "assignment is not supported")
	case '&', '|', '^', '~':
		return Token{}, errorf(l.pos(start), "bitwise operator %q is not supported", string(c))
	}
	return Token{}, errorf(l.pos(start), "unexpected character %q", r)
}

func (l *lexer) lexIdent() Token {
	start := l.off
	for l.off < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.off:])
		if !isIdentPart(r) {
			break
		}
		l.off += size
	}
	text := l.src[start:l.off]
	return Token{Kind: TokenIdent, Text: text, Raw: text, Pos: l.pos(start)}
}

func (l *lexer) lexNumber() (Token, error) {
	start := l.off
	for isDigit(l.peek(0)) {
		l.off++
	}
	if l.peek(0) == '.' && isDigit(l.peek(1)) {
		l.off++
		for isDigit(l.peek(0)) {
			l.off++
		}
	}
	if c := l.peek(0); c == 'e' || c == 'E' {
		ahead := 1
		if s := l.peek(1); s == '+' || s == '-' {
			ahead = 2
		}
		if isDigit(l.peek(ahead)) {
			l.off += ahead
			for isDigit(l.peek(0)) {
				l.off++
			}
		}
	}

	raw := l.src[start:l.off]
	if l.off < len(l.src) {
		if r, _ := utf8.DecodeRuneInString(l.src[l.off:]); isIdentStart(r) {
			return Token{}, errorf(l.pos(l.off), "identifier starts immediately after numeric literal")
		}
	}
	return Token{Kind: TokenNumber, Text: raw, Raw: raw, Pos: l.pos(start)}, nil
}

func (l *lexer) lexString(quote byte) (Token, error) {
	start := l.off
	pos := l.pos(start)
	l.off++ // opening quote

	var b strings.Builder
	for {
		if l.off >= len(l.src) {
			return Token{}, errorf(pos, "unterminated string literal")
		}
		c := l.src[l.off]
		switch {
		case c == quote:
			l.off++
			return Token{Kind: TokenString, Text: b.String(), Raw: l.src[start:l.off], Pos: pos}, nil
		case c == '\n' || c == '\r':
			return Token{}, errorf(pos, "unterminated string literal")
		case c == '\\':
			if err := l.lexEscape(&b); err != nil {
				return Token{}, err
			}
		default:
			r, size := utf8.DecodeRuneInString(l.src[l.off:])
			b.WriteRune(r)
			l.off += size
		}
	}
}

// lexEscape decodes the escape sequence at l.off (which points at '\').
func (l *lexer) lexEscape(b *strings.Builder) error {
	escPos := l.pos(l.off)
	l.off++
	if l.off >= len(l.src) {
		return errorf(escPos, "unterminated string literal")
	}
	c := l.src[l.off]
	l.off++
	switch c {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'v':
		b.WriteByte('\v')
	case '0':
		b.WriteByte(0)
	case 'x':
		r, err := l.lexHex(2, escPos)
		if err != nil {
			return err
		}
		b.WriteRune(r)
	case 'u':
		if l.peek(0) == '{' {
			end := strings.IndexByte(l.src[l.off:], '}')
			if end < 0 {
				return errorf(escPos, "invalid unicode escape")
			}
			n, err := strconv.ParseUint(l.src[l.off+1:l.off+end], 16, 32)
			if err != nil || n > unicode.MaxRune {
				return errorf(escPos, "invalid unicode escape")
			}
			l.off += end + 1
			b.WriteRune(rune(n))
			return nil
		}
		r, err := l.lexHex(4, escPos)
		if err != nil {
			return err
		}
		if utf16.IsSurrogate(r) {
			r = l.lexLowSurrogate(r, escPos)
		}
		b.WriteRune(r)
	case '\n':
		// line continuation
		l.line++
		l.lineStart = l.off
	default:
		l.off--
		r, size := utf8.DecodeRuneInString(l.src[l.off:])
		b.WriteRune(r)
		l.off += size
	}
	return nil
}

// lexLowSurrogate combines hi with a following \uXXXX low surrogate. Without
// one, hi is returned unchanged and the input is not consumed.
func (l *lexer) lexLowSurrogate(hi rune, escPos Pos) rune {
	if l.peek(0) != '\\' || l.peek(1) != 'u' {
		return hi
	}
	start := l.off
	l.off += 2
	lo, err := l.lexHex(4, escPos)
	if err == nil {
		if r := utf16.DecodeRune(hi, lo); r != utf8.RuneError {
			return r
		}
	}
	l.off = start
	return hi
}

func (l *lexer) lexHex(digits int, escPos Pos) (rune, error) {
	if l.off+digits > len(l.src) {
		return 0, errorf(escPos, "invalid hexadecimal escape")
	}
	n, err := strconv.ParseUint(l.src[l.off:l.off+digits], 16, 32)
	if err != nil {
		return 0, errorf(escPos, "invalid hexadecimal escape")
	}
	l.off += digits
	return rune(n), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
