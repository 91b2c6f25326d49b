package arith

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []lexToken
		errs   int
	}{
		// spaces
		{"", nil, 0},
		{" \t \r\n ", nil, 0},
		// numbers
		{"0", []lexToken{{text: "0", kind: tokenNum, pos: 1}}, 0},
		{"9876543210", []lexToken{{text: "9876543210", kind: tokenNum, pos: 1}}, 0},
		{"1 0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "0", kind: tokenNum, pos: 3}}, 0},
		{"1.0", []lexToken{{text: "1.0", kind: tokenNum, pos: 1}}, 0},
		{"1.", []lexToken{{text: "1.", kind: tokenNum, pos: 1}}, 0},
		{".5", []lexToken{{text: ".5", kind: tokenNum, pos: 1}}, 0},
		{"00", []lexToken{{text: "00", kind: tokenNum, pos: 1}}, 0},
		{"00.5", []lexToken{{text: "00.5", kind: tokenNum, pos: 1}}, 0},
		{"-1", []lexToken{{text: "-", kind: tokenOp, pos: 1}, {text: "1", kind: tokenNum, pos: 2}}, 0},
		{"1e1", []lexToken{{pos: 1}, {text: "1", kind: tokenNum, pos: 3}}, 1},
		{"1.1.1", []lexToken{{pos: 1}, {text: "1", kind: tokenNum, pos: 5}}, 1},
		{"01", []lexToken{{pos: 1}}, 1},
		{"1_0", []lexToken{{pos: 1}, {text: "0", kind: tokenNum, pos: 3}}, 1},
		{"0x1", []lexToken{{pos: 1}, {text: "1", kind: tokenNum, pos: 3}}, 1},
		{"1a", []lexToken{{pos: 1}}, 1},
		{"1+0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "+", kind: tokenOp, pos: 2}, {text: "0", kind: tokenNum, pos: 3}}, 0},
		{"(1)", []lexToken{{text: "(", kind: tokenOpen, pos: 1}, {text: "1", kind: tokenNum, pos: 2}, {text: ")", kind: tokenClose, pos: 3}}, 0},
		// identifiers
		{"e", []lexToken{{text: "e", kind: tokenIdent, pos: 1}}, 0},
		{"e1", []lexToken{{text: "e1", kind: tokenIdent, pos: 1}}, 0},
		{"π", []lexToken{{text: "π", kind: tokenIdent, pos: 1}}, 0},
		{"_1234_", []lexToken{{text: "_1234_", kind: tokenIdent, pos: 1}}, 0},
		{"a.b", []lexToken{{text: "a", kind: tokenIdent, pos: 1}, {text: ".", kind: tokenOp, pos: 2}, {text: "b", kind: tokenIdent, pos: 3}}, 0},
		{"e(", []lexToken{{text: "e", kind: tokenIdent, pos: 1}, {text: "(", kind: tokenOpen, pos: 2}}, 0},
		// operators
		{"+", []lexToken{{text: "+", kind: tokenOp, pos: 1}}, 0},
		{"++", []lexToken{{text: "+", kind: tokenOp, pos: 1}, {text: "+", kind: tokenOp, pos: 2}}, 0},
		{"**", []lexToken{{text: "**", kind: tokenOp, pos: 1}}, 0},
		{"***", []lexToken{{text: "**", kind: tokenOp, pos: 1}, {text: "*", kind: tokenOp, pos: 3}}, 0},
		{"%", []lexToken{{text: "%", kind: tokenOp, pos: 1}}, 0},
		{"//", []lexToken{{text: "//", kind: tokenOp, pos: 1}}, 0},
		{"<=", []lexToken{{text: "<=", kind: tokenOp, pos: 1}}, 0},
		{"<<", []lexToken{{text: "<<", kind: tokenOp, pos: 1}}, 0},
		{"^", []lexToken{{text: "^", kind: tokenOp, pos: 1}}, 0},
		{"a--b", []lexToken{{text: "a", kind: tokenIdent, pos: 1}, {text: "-", kind: tokenOp, pos: 2}, {text: "-", kind: tokenOp, pos: 3}, {text: "b", kind: tokenIdent, pos: 4}}, 0},
		// brackets
		{"()", []lexToken{{text: "(", kind: tokenOpen, pos: 1}, {text: ")", kind: tokenClose, pos: 2}}, 0},
		{"[]", []lexToken{{text: "[", kind: tokenOpen, pos: 1}, {text: "]", kind: tokenClose, pos: 2}}, 0},
		{"{}", []lexToken{{text: "{", kind: tokenOpen, pos: 1}, {text: "}", kind: tokenClose, pos: 2}}, 0},
		// separators
		{"1,2", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: ",", kind: tokenSep, pos: 2}, {text: "2", kind: tokenNum, pos: 3}}, 0},
		{";", []lexToken{{text: ";", kind: tokenSep, pos: 1}}, 0},
		// strings
		{"'os'", []lexToken{{text: "'os'", kind: tokenStr, pos: 1}}, 0},
		{`"a\"b"`, []lexToken{{text: `"a\"b"`, kind: tokenStr, pos: 1}}, 0},
		{"'abc", []lexToken{{pos: 1}}, 1},
		// erroneous symbols
		{"$", []lexToken{{pos: 1}}, 1},
		{"a$", []lexToken{{text: "a", kind: tokenIdent, pos: 1}, {pos: 2}}, 1},
		{"$a", []lexToken{{pos: 1}, {text: "a", kind: tokenIdent, pos: 2}}, 1},
		{"0$", []lexToken{{text: "0", kind: tokenNum, pos: 1}, {pos: 2}}, 1},
		{"$$", []lexToken{{pos: 1}, {pos: 2}}, 2},
	}

	for _, c := range cases {
		scan := lex(strings.NewReader(c.src))
		for _, want := range c.tokens {
			got, err := scan.next()
			if err == io.EOF || got.kind == tokenEOF {
				t.Errorf("scanning %q: expected token %v but got EOF", c.src, want)
				continue
			}
			if got != want {
				t.Errorf("scanning %q: want %v, got %v", c.src, want, got)
			}
			if err != nil {
				if c.errs > 0 {
					c.errs--
					continue
				}
				t.Errorf("scanning %q: unexpected error %v", c.src, err)
			}
		}
		for got, err := scan.next(); err != io.EOF && got.kind != tokenEOF; got, err = scan.next() {
			if c.errs > 0 {
				c.errs--
			}
			t.Errorf("scanning %q: extra token %v with error: %v", c.src, got, err)
		}
		if c.errs > 0 {
			t.Errorf("scanning %q: not enough errors", c.src)
		}
	}
}

func TestLexErrorsAreSyntax(t *testing.T) {
	for _, src := range []string{"1e5", "0x10", "1_000", "007", "'unterminated", "#", "1.2.3"} {
		scan := lex(strings.NewReader(src))
		var err error
		for err == nil {
			var tok lexToken
			tok, err = scan.next()
			if tok.kind == tokenEOF {
				break
			}
		}
		var lerr *LexError
		if !errors.As(err, &lerr) {
			t.Errorf("scanning %q: want *LexError, got %#v", src, err)
			continue
		}
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("scanning %q: %v does not unwrap to ErrSyntax", src, err)
		}
	}
}

func TestLexPeek(t *testing.T) {
	scan := lex(strings.NewReader("1 + 2"))
	p, err := scan.peek()
	if err != nil {
		t.Fatal(err)
	}
	n, err := scan.next()
	if err != nil {
		t.Fatal(err)
	}
	if p != n {
		t.Errorf("peek returned %v but next returned %v", p, n)
	}
}
