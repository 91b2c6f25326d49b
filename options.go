package arith

import (
	"math/big"
	"strconv"
)

// Defaults for options not given.
const (
	// DefaultPrec is the default precision of floating-point results in bits.
	// It matches the mantissa of an IEEE 754 double.
	DefaultPrec = 53
	// DefaultMaxDepth is the default nesting limit of the parser.
	DefaultMaxDepth = 256
	// DefaultMaxIntBits is the default limit on the size of integer results.
	DefaultMaxIntBits = 1 << 20
)

// Option is an option for parsing or evaluating expressions. Options which do
// not apply to an operation are ignored by it.
type Option interface {
	option(config) config
}

type (
	precopt  uint
	depthopt int
	bitsopt  int
)

// config holds the settings for a parse or evaluation. It is never shared
// between calls.
type config struct {
	// prec is the precision of float results.
	prec uint
	// depth is the maximum parser nesting depth.
	depth int
	// bits is the maximum bit length of an integer result.
	bits int
}

func newconfig(opts []Option) config {
	c := config{
		prec:  DefaultPrec,
		depth: DefaultMaxDepth,
		bits:  DefaultMaxIntBits,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		c = opt.option(c)
	}
	return c
}

// Prec sets the precision of floating-point calculations in bits. Panics if
// prec is zero or greater than big.MaxPrec.
func Prec(prec uint) Option {
	if prec == 0 || prec > big.MaxPrec {
		panic("arith: invalid precision " + strconv.FormatUint(uint64(prec), 10))
	}
	return precopt(prec)
}

func (o precopt) option(c config) config {
	c.prec = uint(o)
	return c
}

// MaxDepth sets the deepest nesting of parentheses, unary operators, and
// exponentiations that the parser accepts. Panics if n is not positive.
func MaxDepth(n int) Option {
	if n <= 0 {
		panic("arith: invalid max depth " + strconv.Itoa(n))
	}
	return depthopt(n)
}

func (o depthopt) option(c config) config {
	c.depth = int(o)
	return c
}

// MaxIntBits sets the largest integer result, in bits, that evaluation will
// produce. Integer multiplications and exponentiations whose results would be
// larger fail with ErrArithmetic. Panics if n is not positive.
func MaxIntBits(n int) Option {
	if n <= 0 {
		panic("arith: invalid max integer bits " + strconv.Itoa(n))
	}
	return bitsopt(n)
}

func (o bitsopt) option(c config) config {
	c.bits = int(o)
	return c
}
