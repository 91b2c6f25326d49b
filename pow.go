package arith

import (
	"fmt"
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// pow raises x to the power y. Integers raised to non-negative integers stay
// integers; everything else is computed in floating point.
func (c *evalctx) pow(n *node, x, y Value) (Value, error) {
	if x.IsInt() && y.IsInt() && y.Sign() >= 0 {
		return c.intpow(n, x, y)
	}
	if x.Sign() == 0 && y.Sign() < 0 {
		return Value{}, &ZeroDivisionError{Col: n.pos, Op: "**", X: x}
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
	if b.Sign() == 0 {
		// Anything to the zero is one, including zero.
		r.SetInt64(1)
		return Value{f: r}, nil
	}
	integral := b.IsInt()
	if a.Signbit() && a.Sign() != 0 && !integral {
		return Value{}, &DomainError{Col: n.pos, Op: "**", X: x, Y: y, Reason: "negative base with fractional exponent has no real result"}
	}
	// Compute |a|**b and fix the sign afterward.
	odd := integral && isodd(b)
	abs := new(big.Float).Abs(a)
	switch {
	case abs.Sign() == 0:
		// 0**b for b > 0.
		r.SetInt64(0)
	case abs.Cmp(one) == 0:
		r.SetInt64(1)
	default:
		// Decide overflow and underflow before doing the work. The estimate
		// only needs to be good to a few bits; fit catches the rest.
		est := log2est(abs) * float64est(b)
		switch {
		case est > maxexp+2:
			return Value{}, &DomainError{Col: n.pos, Op: "**", X: x, Y: y, Reason: "result too large"}
		case est < minexp-2:
			r.SetInt64(0)
		case integral:
			k, acc := b.Int64()
			if acc != big.Exact {
				if _, err := bigpow(r, abs, b); err != nil {
					return Value{}, &DomainError{Col: n.pos, Op: "**", X: x, Y: y, Reason: err.Error()}
				}
				break
			}
			powint(r, abs, k)
		default:
			if _, err := bigpow(r, abs, b); err != nil {
				return Value{}, &DomainError{Col: n.pos, Op: "**", X: x, Y: y, Reason: err.Error()}
			}
		}
	}
	if odd && a.Signbit() {
		r.Neg(r)
	}
	return c.fit(n, x, y, r)
}

// intpow raises an integer to a non-negative integer power.
func (c *evalctx) intpow(n *node, x, y Value) (Value, error) {
	a, b := x.bigint(), y.bigint()
	switch {
	case b.Sign() == 0:
		return Value{i: big.NewInt(1)}, nil
	case a.Sign() == 0, a.CmpAbs(big1) == 0:
		// 0, 1, and -1 never grow.
		if a.Sign() < 0 && b.Bit(0) == 0 {
			return Value{i: big.NewInt(1)}, nil
		}
		return Value{i: new(big.Int).Set(a)}, nil
	}
	// |a| >= 2, so the result has at least (BitLen(a)-1)*b+1 bits.
	lo := int64(a.BitLen() - 1)
	if !b.IsInt64() || b.Int64() > int64(c.cfg.bits)/lo {
		return Value{}, &DomainError{Col: n.pos, Op: "**", X: x, Y: y, Reason: "integer result too large"}
	}
	r := new(big.Int).Exp(a, b, nil)
	if r.BitLen() > c.cfg.bits {
		return Value{}, &DomainError{Col: n.pos, Op: "**", X: x, Y: y, Reason: "integer result too large"}
	}
	return Value{i: r}, nil
}

var (
	one  = big.NewFloat(1)
	big1 = big.NewInt(1)
)

// isodd reports whether an integral float is odd.
func isodd(b *big.Float) bool {
	i, _ := b.Int(nil)
	return i.Bit(0) == 1
}

// log2est estimates log2(x) for positive finite x.
func log2est(x *big.Float) float64 {
	var mant big.Float
	e := x.MantExp(&mant)
	m, _ := mant.Float64()
	return float64(e) + math.Log2(m)
}

// float64est converts a float in the result range to float64.
func float64est(x *big.Float) float64 {
	f, _ := x.Float64()
	return f
}

// powint sets z to x**k by repeated squaring, computing with guard bits and
// rounding once to z's precision.
func powint(z, x *big.Float, k int64) *big.Float {
	prec := z.Prec()
	work := prec + 64
	neg := k < 0
	u := uint64(k)
	if neg {
		u = uint64(-k)
	}
	acc := new(big.Float).SetPrec(work).SetInt64(1)
	sq := new(big.Float).SetPrec(work).Set(x)
	for u != 0 {
		if u&1 != 0 {
			acc.Mul(acc, sq)
		}
		u >>= 1
		if u != 0 {
			sq.Mul(sq, sq)
		}
	}
	if neg {
		acc.Quo(new(big.Float).SetPrec(work).SetInt64(1), acc)
	}
	return z.Set(acc)
}

// bigpow sets z to x**y for positive x using bigfloat. Panics from bigfloat
// are returned as errors.
func bigpow(z, x, y *big.Float) (r *big.Float, err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		switch p := p.(type) {
		case error:
			err = p
		default:
			err = fmt.Errorf("%v", p)
		}
	}()
	return bigfloat.Pow(z, x, y), nil
}
