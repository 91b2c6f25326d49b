package arith

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is an integer or decimal literal.
	tokenNum
	// tokenIdent is a name or keyword. None are valid in an expression, but
	// the parser needs them to explain why.
	tokenIdent
	// tokenOp is an operator, including ones the parser rejects.
	tokenOp
	// tokenOpen is an open bracket, e.g. (.
	tokenOpen
	// tokenClose is a close bracket, e.g. ).
	tokenClose
	// tokenSep is a comma or semicolon.
	tokenSep
	// tokenStr is a quoted string literal, quotes included.
	tokenStr
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=tokenKind -trimprefix=token

// Operators contains the operators which expressions may use.
var Operators = []string{"+", "-", "*", "/", "%", "**"}

// opchars contains every rune that begins an operator token, whether or not
// the operator is allowed.
const opchars = "+-*/%&|^~<>=!@:."

// digraphs are the two-rune operator tokens.
var digraphs = []string{"**", "//", "<<", ">>", "<=", ">=", "==", "!=", ":="}

// OpenBrackets and CloseBrackets contain the runes which group expressions.
// Only round brackets group arithmetic; the others are lexed so that lists,
// sets, and subscripts can be rejected by name.
const (
	OpenBrackets  = "([{"
	CloseBrackets = ")]}"
)

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	p    lexToken
	eof  bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{
		src:  src,
		rune: 1,
	}
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok lexToken) {
	if l.p.kind != tokenNone {
		panic("arith: double push")
	}
	l.p = tok
}

// must scans the pushed token. Panics if there is no pushed token.
func (l *lexer) must() lexToken {
	tok := l.p
	if tok.kind == tokenNone {
		panic("arith: no pushed token")
	}
	l.p = lexToken{}
	return tok
}

// peek returns the next token without consuming it.
func (l *lexer) peek() (lexToken, error) {
	tok, err := l.next()
	if err != nil {
		return tok, err
	}
	l.push(tok)
	return tok, nil
}

func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. The first time EOF is encountered,
// the result is an EOF token with a nil error. Subsequent times, if the EOF
// token is not pushed, the result is an empty token with io.EOF.
func (l *lexer) next() (lexToken, error) {
	if l.p.kind != tokenNone {
		tok := l.p
		l.p = lexToken{}
		return tok, nil
	}
	if l.eof {
		return lexToken{}, io.EOF
	}
	defer l.buf.Reset()
	tok := lexToken{pos: l.rune}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.kind = tokenEOF
				l.eof = true
				return tok, nil
			}
			return tok, err
		}
		switch {
		case unicode.IsSpace(r):
			tok.pos++
			continue
		case '0' <= r && r <= '9':
			l.unreadRune()
			if err := l.scanNum(false); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenNum
			return tok, nil
		case r == '.':
			// A dot starts a number only if a digit follows. Otherwise it is
			// attribute access, which the parser rejects.
			d, err := l.readRune()
			if err == nil {
				l.unreadRune()
			}
			if err == nil && '0' <= d && d <= '9' {
				l.buf.WriteByte('.')
				if err := l.scanNum(true); err != nil {
					return tok, err
				}
				tok.text = l.buf.String()
				tok.kind = tokenNum
				return tok, nil
			}
			tok.text = "."
			tok.kind = tokenOp
			return tok, nil
		case r == '_', unicode.IsLetter(r):
			l.unreadRune()
			if err := l.scanIdent(); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenIdent
			return tok, nil
		case r == '\'', r == '"':
			l.buf.WriteRune(r)
			if err := l.scanString(r); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenStr
			return tok, nil
		case r == ',', r == ';':
			tok.text = string(r)
			tok.kind = tokenSep
			return tok, nil
		case strings.ContainsRune(opchars, r):
			tok.text = l.scanOp(r)
			tok.kind = tokenOp
			return tok, nil
		case strings.ContainsRune(OpenBrackets, r):
			tok.text = string(r)
			tok.kind = tokenOpen
			return tok, nil
		case strings.ContainsRune(CloseBrackets, r):
			tok.text = string(r)
			tok.kind = tokenClose
			return tok, nil
		default:
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, l.error("")
		}
	}
}

// scanNum scans a decimal literal: digits with at most one decimal point. dot
// indicates that the point has already been written to the buffer.
func (l *lexer) scanNum(dot bool) error {
	var dig bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		switch {
		case '0' <= r && r <= '9':
			l.buf.WriteRune(r)
			dig = true
		case r == '.':
			l.buf.WriteRune(r)
			if dot {
				return l.error("number")
			}
			dot = true
		case r == '_', unicode.IsLetter(r), unicode.IsDigit(r):
			// Exponents, digit separators, and base prefixes are not part of
			// the literal grammar.
			l.buf.WriteRune(r)
			return l.error("number")
		default:
			l.unreadRune()
			return l.checkNum(dig, dot)
		}
	}
	return l.checkNum(dig, dot)
}

// checkNum validates a scanned number.
func (l *lexer) checkNum(dig, dot bool) error {
	if !dig {
		return l.error("number")
	}
	s := l.buf.String()
	if !dot && len(s) > 1 && s[0] == '0' && strings.TrimLeft(s, "0") != "" {
		// Leading zeros in integer literals are reserved for octal.
		return l.error("number")
	}
	return nil
}

func (l *lexer) scanIdent() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// next unreads the rune that decides ident scanning before
				// calling scanIdent, so we have scanned at least one rune.
				return nil
			}
			return err
		}
		switch {
		case r == '_', unicode.IsLetter(r), unicode.IsDigit(r):
			l.buf.WriteRune(r)
		default:
			l.unreadRune()
			return nil
		}
	}
}

// scanString scans a quoted string up to and including the closing quote q.
func (l *lexer) scanString(q rune) error {
	esc := false
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return l.error("string")
			}
			return err
		}
		l.buf.WriteRune(r)
		switch {
		case esc:
			esc = false
		case r == '\\':
			esc = true
		case r == q:
			return nil
		}
	}
}

// scanOp scans an operator beginning with r, preferring digraphs.
func (l *lexer) scanOp(r rune) string {
	s, err := l.readRune()
	if err != nil {
		return string(r)
	}
	op := string([]rune{r, s})
	for _, d := range digraphs {
		if op == d {
			return op
		}
	}
	l.unreadRune()
	return string(r)
}

func (l *lexer) error(kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  l.rune,
	}
}
