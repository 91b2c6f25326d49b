package arith

import (
	"errors"
	"strconv"
)

// Kinds of failure. Every error returned by Parse or Eval unwraps to exactly
// one of these, so callers can classify failures with errors.Is.
var (
	// ErrEmpty is the kind of error for empty or whitespace-only input.
	ErrEmpty = errors.New("empty expression")
	// ErrSyntax is the kind of error for malformed input.
	ErrSyntax = errors.New("syntax error")
	// ErrUnsupportedConstruct is the kind of error for names, calls, strings,
	// and other syntax outside the numeric literal grammar.
	ErrUnsupportedConstruct = errors.New("unsupported construct")
	// ErrUnsupportedOperator is the kind of error for operators outside
	// + - * / % **.
	ErrUnsupportedOperator = errors.New("unsupported operator")
	// ErrDivisionByZero is the kind of error for division, modulo, or
	// exponentiation that would divide by zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrArithmetic is the kind of error for results which are not finite,
	// not real, or too large to represent.
	ErrArithmetic = errors.New("arithmetic error")
	// ErrTooDeep is the kind of error for input nested beyond MaxDepth.
	ErrTooDeep = errors.New("expression nested too deeply")
)

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be "number",
	// "string", or the empty string (if a token kind hadn't been decided).
	Kind string
	// Col is the total number of runes scanned by the lexer up to and
	// including this error.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + err.Text
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}

func (err *LexError) Unwrap() error {
	return ErrSyntax
}

// OperatorError is an error indicating an operator token that is not in the
// allowed set. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
	// Unary is whether the parser expected a unary operator at the time.
	Unary bool
}

func (err *OperatorError) Error() string {
	s := "binary"
	if err.Unary {
		s = "unary"
	}
	return errpos(err.Col, "unsupported "+s+" operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

func (err *OperatorError) Unwrap() error {
	return ErrUnsupportedOperator
}

// ConstructError is an error indicating syntax which is recognizable but not
// arithmetic, such as a name or function call. It implements InputError.
type ConstructError struct {
	// Col is the position of the token that begins the construct.
	Col int
	// Construct describes the rejected syntax, e.g. "name" or "function call".
	Construct string
	// Text is the token that identified the construct.
	Text string
}

func (err *ConstructError) Error() string {
	return errpos(err.Col, err.Construct+" "+strconv.Quote(err.Text)+" is not allowed")
}

func (err *ConstructError) Pos() int {
	return err.Col
}

func (err *ConstructError) Unwrap() error {
	return ErrUnsupportedConstruct
}

// BracketError is an error indicating mismatched brackets in the
// input. It implements InputError.
type BracketError struct {
	// Col is the position of the offending bracket or end of input.
	Col int
	// Left is the opening bracket.
	Left string
	// Right is the mismatched closing bracket.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	if err.Right == "" {
		return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
	}
	return errpos(err.Col, "mismatched bracket: "+err.Left+"expr"+err.Right)
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Unwrap() error {
	return ErrSyntax
}

// TokenError is an error indicating a token where the grammar does not allow
// one, e.g. two numbers in a row. It implements InputError.
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Text is the unexpected token.
	Text string
	// Want is what the parser expected instead: "operand" or "operator".
	Want string
}

func (err *TokenError) Error() string {
	return errpos(err.Col, "unexpected "+strconv.Quote(err.Text)+", want "+err.Want)
}

func (err *TokenError) Pos() int {
	return err.Col
}

func (err *TokenError) Unwrap() error {
	return ErrSyntax
}

// EmptyExpressionError is an error indicating an empty expression or
// subexpression. It implements InputError.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
	// Input is true when the entire input is empty. Such errors unwrap to
	// ErrEmpty rather than ErrSyntax.
	Input bool
}

func (err *EmptyExpressionError) Error() string {
	if err.Input {
		return errpos(err.Col, "no expression")
	}
	if err.End == "" {
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

func (err *EmptyExpressionError) Unwrap() error {
	if err.Input {
		return ErrEmpty
	}
	return ErrSyntax
}

// DepthError is an error indicating input nested more deeply than the parser
// allows. It implements InputError.
type DepthError struct {
	// Col is the position of the token at which the limit was exceeded.
	Col int
	// Max is the nesting limit in effect.
	Max int
}

func (err *DepthError) Error() string {
	return errpos(err.Col, "expression nested deeper than "+strconv.Itoa(err.Max)+" levels")
}

func (err *DepthError) Pos() int {
	return err.Col
}

func (err *DepthError) Unwrap() error {
	return ErrTooDeep
}

// ZeroDivisionError is an error from dividing by zero, taking a modulus by
// zero, or raising zero to a negative power. It implements InputError.
type ZeroDivisionError struct {
	// Col is the position of the operator.
	Col int
	// Op is the operator.
	Op string
	// X is the left operand.
	X Value
}

func (err *ZeroDivisionError) Error() string {
	if err.Op == "**" {
		return errpos(err.Col, "zero cannot be raised to a negative power")
	}
	return errpos(err.Col, err.X.String()+" "+err.Op+" 0: division by zero")
}

func (err *ZeroDivisionError) Pos() int {
	return err.Col
}

func (err *ZeroDivisionError) Unwrap() error {
	return ErrDivisionByZero
}

// DomainError is an error from an operation whose result cannot be
// represented, because it is not real, not finite, or too large. It
// implements InputError.
type DomainError struct {
	// Col is the position of the operator.
	Col int
	// Op is the operator, or the empty string for a literal out of range.
	Op string
	// X and Y are the operands. Y is the zero Value for unary operations.
	X, Y Value
	// Reason describes the failure.
	Reason string
}

func (err *DomainError) Error() string {
	if err.Op == "" {
		return errpos(err.Col, err.Reason)
	}
	return errpos(err.Col, err.X.String()+" "+err.Op+" "+err.Y.String()+": "+err.Reason)
}

func (err *DomainError) Pos() int {
	return err.Col
}

func (err *DomainError) Unwrap() error {
	return ErrArithmetic
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*ConstructError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*DepthError)(nil)
	_ InputError = (*ZeroDivisionError)(nil)
	_ InputError = (*DomainError)(nil)
)
