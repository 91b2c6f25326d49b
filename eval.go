package arith

import (
	"io"
	"math/big"
	"strings"
)

// Float results must fit in the exponent range of an IEEE 754 double. A
// big.Float x with MantExp exponent e satisfies 2**(e-1) <= |x| < 2**e.
const (
	maxexp = 1024
	minexp = -1073
)

// evalctx holds the settings for one evaluation. Evaluation never modifies it.
type evalctx struct {
	cfg config
}

// Eval evaluates the expression. Only Prec and MaxIntBits among the options
// have an effect. Eval has no side effects, so any number of goroutines may
// evaluate the same Expr at once.
func (e *Expr) Eval(opts ...Option) (Value, error) {
	c := evalctx{cfg: newconfig(opts)}
	return c.eval(e.n)
}

// Eval is a shortcut to parse an expression and return its result.
func Eval(src io.RuneScanner, opts ...Option) (Value, error) {
	a, err := Parse(src, opts...)
	if err != nil {
		return Value{}, err
	}
	return a.Eval(opts...)
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, opts ...Option) (Value, error) {
	return Eval(strings.NewReader(src), opts...)
}

// Evaluate parses and evaluates an arithmetic expression with default
// options. Leading and trailing whitespace is ignored. The error, if any,
// unwraps to one of the Err kinds declared in this package.
func Evaluate(src string) (Value, error) {
	return EvalString(strings.TrimSpace(src))
}

// eval computes the value of a node.
func (c *evalctx) eval(n *node) (Value, error) {
	switch n.kind {
	case nodeNum:
		return c.num(n)
	case nodeNeg:
		v, err := c.eval(n.left)
		if err != nil {
			return Value{}, err
		}
		return v.Neg(), nil
	case nodeNop:
		return c.eval(n.left)
	case nodePow:
		x, err := c.eval(n.left)
		if err != nil {
			return Value{}, err
		}
		y, err := c.eval(n.right)
		if err != nil {
			return Value{}, err
		}
		return c.pow(n, x, y)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod:
		// Chains of left-associative operators are left-deep. Walk the spine
		// iteratively so that their length doesn't become recursion depth.
		var spine []*node
		l := n
		for l.kind.leftassoc() {
			spine = append(spine, l)
			l = l.left
		}
		x, err := c.eval(l)
		if err != nil {
			return Value{}, err
		}
		for i := len(spine) - 1; i >= 0; i-- {
			m := spine[i]
			y, err := c.eval(m.right)
			if err != nil {
				return Value{}, err
			}
			x, err = c.binary(m, x, y)
			if err != nil {
				return Value{}, err
			}
		}
		return x, nil
	default:
		panic("arith: invalid AST node " + n.kind.String())
	}
}

// num converts a literal.
func (c *evalctx) num(n *node) (Value, error) {
	if !strings.Contains(n.name, ".") {
		r, ok := new(big.Int).SetString(n.name, 10)
		if !ok {
			panic("arith: invalid integer literal: " + n.name)
		}
		if r.BitLen() > c.cfg.bits {
			return Value{}, &DomainError{Col: n.pos, Reason: "integer literal too large"}
		}
		return Value{i: r}, nil
	}
	r, _, err := new(big.Float).SetPrec(c.cfg.prec).Parse(n.name, 10)
	if err != nil {
		panic("arith: invalid number: " + n.name + " (" + err.Error() + ")")
	}
	if !c.fits(r) {
		return Value{}, &DomainError{Col: n.pos, Reason: "float literal out of range"}
	}
	return Value{f: r}, nil
}

// binary applies a left-associative operator.
func (c *evalctx) binary(n *node, x, y Value) (Value, error) {
	switch n.kind {
	case nodeDiv, nodeMod:
		if y.Sign() == 0 {
			return Value{}, &ZeroDivisionError{Col: n.pos, Op: n.kind.symbol(), X: x}
		}
	}
	if x.IsInt() && y.IsInt() {
		return c.intbinary(n, x, y)
	}
	a, err := c.tofloat(n, x, y, x)
	if err != nil {
		return Value{}, err
	}
	b, err := c.tofloat(n, x, y, y)
	if err != nil {
		return Value{}, err
	}
	r := c.newfloat()
	switch n.kind {
	case nodeAdd:
		r.Add(a, b)
	case nodeSub:
		r.Sub(a, b)
	case nodeMul:
		r.Mul(a, b)
	case nodeDiv:
		r.Quo(a, b)
	case nodeMod:
		floatmod(r, a, b)
	default:
		panic("arith: invalid binary node " + n.kind.String())
	}
	return c.fit(n, x, y, r)
}

// intbinary applies a left-associative operator to two integers.
func (c *evalctx) intbinary(n *node, x, y Value) (Value, error) {
	a, b := x.bigint(), y.bigint()
	switch n.kind {
	case nodeAdd:
		return Value{i: new(big.Int).Add(a, b)}, nil
	case nodeSub:
		return Value{i: new(big.Int).Sub(a, b)}, nil
	case nodeMul:
		if a.BitLen()+b.BitLen() > c.cfg.bits+1 {
			return Value{}, &DomainError{Col: n.pos, Op: "*", X: x, Y: y, Reason: "integer result too large"}
		}
		return Value{i: new(big.Int).Mul(a, b)}, nil
	case nodeDiv:
		// Dividing exactly and rounding once gives the correctly rounded
		// quotient even when the operands don't fit the precision.
		q := new(big.Rat).SetFrac(a, b)
		r := c.newfloat().SetRat(q)
		return c.fit(n, x, y, r)
	case nodeMod:
		r := new(big.Int).Rem(a, b)
		if r.Sign() != 0 && (r.Sign() < 0) != (b.Sign() < 0) {
			r.Add(r, b)
		}
		return Value{i: r}, nil
	default:
		panic("arith: invalid binary node " + n.kind.String())
	}
}

// floatmod sets z to the floor modulus of a by b, which has the sign of b. The
// modulus is computed exactly, then rounded to z's precision.
func floatmod(z, a, b *big.Float) *big.Float {
	ra, _ := a.Rat(nil)
	rb, _ := b.Rat(nil)
	q := new(big.Rat).Quo(ra, rb)
	// Num/Denom with a positive denominator is floor division.
	fl := new(big.Int).Div(q.Num(), q.Denom())
	r := new(big.Rat).Mul(rb, new(big.Rat).SetInt(fl))
	r.Sub(ra, r)
	z.SetRat(r)
	if z.Sign() == 0 && b.Signbit() {
		z.Neg(z)
	}
	return z
}

func (c *evalctx) newfloat() *big.Float {
	return new(big.Float).SetPrec(c.cfg.prec)
}

// tofloat converts v, which is one of the operands x and y of n, to a float.
func (c *evalctx) tofloat(n *node, x, y, v Value) (*big.Float, error) {
	if !v.IsInt() {
		return v.f, nil
	}
	r := c.newfloat().SetInt(v.bigint())
	if !c.fits(r) {
		return nil, &DomainError{Col: n.pos, Op: n.kind.symbol(), X: x, Y: y, Reason: "integer too large to convert to float"}
	}
	return r, nil
}

// fits reports whether a float is within the range of results.
func (c *evalctx) fits(r *big.Float) bool {
	if r.IsInf() {
		return false
	}
	return r.MantExp(nil) <= maxexp
}

// fit checks that the float result r of n is finite and in range, flushing it
// to zero if it is too small.
func (c *evalctx) fit(n *node, x, y Value, r *big.Float) (Value, error) {
	if !c.fits(r) {
		return Value{}, &DomainError{Col: n.pos, Op: n.kind.symbol(), X: x, Y: y, Reason: "result too large"}
	}
	if r.Sign() != 0 && r.MantExp(nil) < minexp {
		neg := r.Signbit()
		r.SetInt64(0)
		if neg {
			r.Neg(r)
		}
	}
	return Value{f: r}, nil
}
