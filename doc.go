// Package arith implements a safe evaluator for arithmetic expressions.
//
// An expression is built only from decimal literals, parentheses, the binary
// operators + - * / % **, and unary + and -. Anything else, such as a name, a
// call, a string, or a comparison, is rejected while parsing with an error
// describing what was found; there is no path by which input can reach
// anything other than arithmetic on numbers.
//
// Precedence follows conventional arithmetic: ** binds tightest and groups to
// the right, so "2 ** 3 ** 2" is 512 and "-2 ** 2" is -4; then unary signs;
// then * / %; then + and -. Integers are exact and arbitrarily large up to a
// configurable limit. Floats have a configurable precision that defaults to
// that of a float64. "/" always produces a float, and "%" takes the sign of
// its divisor.
//
// Every failure is returned as an error that unwraps to one of ErrEmpty,
// ErrSyntax, ErrUnsupportedConstruct, ErrUnsupportedOperator,
// ErrDivisionByZero, ErrArithmetic, or ErrTooDeep.
package arith
