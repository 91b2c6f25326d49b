package arith

import (
	"io"
	"strings"
)

// Expr = num | Neg | Plus | Add | Sub | Mul | Div | Mod | Pow | '(' Expr ')'
// Neg = '-' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// Mod = Expr '%' Expr
// Pow = Expr '**' Expr

// Expr is a parsed expression. It is immutable and safe to evaluate
// concurrently.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// parsectx holds data for a single parse.
type parsectx struct {
	// depth is the current nesting depth.
	depth int
	// max is the nesting limit.
	max int
}

func (p *parsectx) enter() {
	p.depth++
}

func (p *parsectx) exit() {
	p.depth--
}

// Parse parses an expression. Surrounding whitespace is ignored. Parsing
// consumes src up to EOF; only MaxDepth among the options has an effect.
func Parse(src io.RuneScanner, opts ...Option) (*Expr, error) {
	cfg := newconfig(opts)
	scan := lex(src)
	p := parsectx{max: cfg.depth}
	tok, err := scan.peek()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokenEOF {
		return nil, &EmptyExpressionError{Col: tok.pos, Input: true}
	}
	n, err := parseterm(scan, &p, exprprec)
	if err != nil {
		return nil, err
	}
	if n == nil {
		// Only a close bracket stops an operand from being parsed here.
		return nil, itShouldNotHaveEndedThisWay(scan.must(), "")
	}
	if tok := scan.must(); tok.kind != tokenEOF {
		return nil, itShouldNotHaveEndedThisWay(tok, "")
	}
	return &Expr{n: n}, nil
}

// ParseString is a shortcut to parse a string expression.
func ParseString(src string, opts ...Option) (*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// parseterm parses a single term. If there is no error, then parseterm pushes
// the last token it scans, including EOF. If the input is an empty
// subexpression, the result is nil with no error; callers must create an error
// in contexts where empty subexpressions are illegal.
func parseterm(scan *lexer, p *parsectx, until operator) (*node, error) {
	p.enter()
	defer p.exit()
	n, err := parselhs(scan, p, until)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenOp:
			prec := binop(tok.text)
			if prec.op == nodeNone {
				if tok.text == "." {
					return nil, &ConstructError{Col: tok.pos, Construct: "attribute access", Text: tok.text}
				}
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				end := scan.must()
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			n = &node{kind: prec.op, pos: tok.pos, left: n, right: rhs}
		case tokenIdent:
			if keywordops[tok.text] {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			return nil, &TokenError{Col: tok.pos, Text: tok.text, Want: "operator"}
		case tokenOpen:
			// Brackets directly after an operand would apply it to something.
			switch tok.text {
			case "(":
				return nil, &ConstructError{Col: tok.pos, Construct: "function call", Text: tok.text}
			case "[":
				return nil, &ConstructError{Col: tok.pos, Construct: "subscript", Text: tok.text}
			}
			return nil, &TokenError{Col: tok.pos, Text: tok.text, Want: "operator"}
		case tokenSep:
			if tok.text == "," {
				return nil, &ConstructError{Col: tok.pos, Construct: "tuple", Text: tok.text}
			}
			return nil, &TokenError{Col: tok.pos, Text: tok.text, Want: "operator"}
		case tokenNum, tokenStr:
			return nil, &TokenError{Col: tok.pos, Text: tok.text, Want: "operator"}
		case tokenClose, tokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			panic("arith: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary
// and any encountered token must be valid as the start of a subexpression.
func parselhs(scan *lexer, p *parsectx, until operator) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	if p.depth > p.max {
		return nil, &DepthError{Col: tok.pos, Max: p.max}
	}
	var n *node
	switch tok.kind {
	case tokenNum:
		n = &node{kind: nodeNum, name: tok.text, pos: tok.pos}
	case tokenIdent:
		return nil, identError(scan, tok)
	case tokenStr:
		return nil, &ConstructError{Col: tok.pos, Construct: "string literal", Text: tok.text}
	case tokenOp:
		// unary operator
		prec := unop(tok.text)
		if prec.op == nodeNone {
			if binop(tok.text).op != nodeNone || tok.text == "." {
				return nil, &TokenError{Col: tok.pos, Text: tok.text, Want: "operand"}
			}
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// x**-y -> x**(-y)
			// Just use the new operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := parseterm(scan, p, prec)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			end := scan.must()
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n = &node{kind: prec.op, pos: tok.pos, left: rhs}
	case tokenOpen:
		switch tok.text {
		case "[":
			return nil, &ConstructError{Col: tok.pos, Construct: "list display", Text: tok.text}
		case "{":
			return nil, &ConstructError{Col: tok.pos, Construct: "dict or set display", Text: tok.text}
		}
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose || end.text != ")" {
			return nil, itShouldNotHaveEndedThisWay(end, tok.text)
		}
		if rhs == nil {
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n = rhs
	case tokenClose:
		// Let the caller decide what an empty subexpression means.
		scan.push(tok)
		return nil, nil
	case tokenSep:
		return nil, &TokenError{Col: tok.pos, Text: tok.text, Want: "operand"}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("arith: unknown token: " + tok.String())
	}
	return n, nil
}

// keywordops are words which are operators in general-purpose languages.
var keywordops = map[string]bool{
	"and":  true,
	"or":   true,
	"not":  true,
	"is":   true,
	"in":   true,
	"if":   true,
	"else": true,
}

// keywordconstructs are words which begin known non-arithmetic constructs.
var keywordconstructs = map[string]string{
	"True":   "boolean literal",
	"False":  "boolean literal",
	"None":   "None literal",
	"lambda": "lambda expression",
	"await":  "await expression",
	"yield":  "yield expression",
}

// identError classifies an identifier in operand position.
func identError(scan *lexer, tok lexToken) error {
	if keywordops[tok.text] {
		return &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
	}
	if c := keywordconstructs[tok.text]; c != "" {
		return &ConstructError{Col: tok.pos, Construct: c, Text: tok.text}
	}
	next, err := scan.peek()
	if err != nil {
		// The identifier itself is reason enough to reject the input.
		return &ConstructError{Col: tok.pos, Construct: "name", Text: tok.text}
	}
	switch {
	case next.kind == tokenOpen && next.text == "(":
		return &ConstructError{Col: tok.pos, Construct: "function call", Text: tok.text}
	case next.kind == tokenStr:
		// Prefixed string, e.g. b'' or f''.
		return &ConstructError{Col: tok.pos, Construct: "string literal", Text: tok.text + next.text}
	}
	return &ConstructError{Col: tok.pos, Construct: "name", Text: tok.text}
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. left is the bracket that the expression
// should have matched, or the empty string if none.
func itShouldNotHaveEndedThisWay(tok lexToken, left string) error {
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: left, Right: ""}
	case tokenClose:
		// A bracket could be the wrong bracket for the opening brace or any
		// bracket at the end of an input.
		return &BracketError{Col: tok.pos, Left: left, Right: tok.text}
	default:
		panic("arith: it really should not have ended this way: " + tok.String())
	}
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b, false)
	return b.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "%":
		return operator{5, false, nodeMod}
	case "**":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{10, true, nodeNop}
	case "-":
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, nodeNone}
