package arith

import (
	"math/big"
	"strings"
)

// Kind is the numeric kind of a Value.
type Kind int8

const (
	// Int is the kind of values which are exact integers.
	Int Kind = iota
	// Float is the kind of values which are floating-point numbers.
	Float
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	default:
		return "invalid"
	}
}

// Value is the result of evaluating an expression. It is either an exact
// integer or a floating-point number. Integer-valued operations on integers
// produce integers; anything involving a float, and all true division,
// produces floats.
//
// Values are immutable. The zero Value is the integer 0.
type Value struct {
	i *big.Int
	f *big.Float
}

// NewInt creates an integer Value.
func NewInt(x int64) Value {
	return Value{i: big.NewInt(x)}
}

// NewFloat creates a float Value. Panics if x is NaN.
func NewFloat(x float64) Value {
	return Value{f: big.NewFloat(x)}
}

// Kind returns the kind of v.
func (v Value) Kind() Kind {
	if v.f != nil {
		return Float
	}
	return Int
}

// IsInt reports whether v has kind Int.
func (v Value) IsInt() bool {
	return v.f == nil
}

// bigint returns v's integer without copying. v must have kind Int.
func (v Value) bigint() *big.Int {
	if v.i == nil {
		return new(big.Int)
	}
	return v.i
}

// Int returns a copy of v's integer. If v has kind Float, the result is nil.
func (v Value) Int() *big.Int {
	if v.f != nil {
		return nil
	}
	return new(big.Int).Set(v.bigint())
}

// Float returns v as a float. Integers are converted exactly.
func (v Value) Float() *big.Float {
	if v.f != nil {
		return new(big.Float).Copy(v.f)
	}
	return new(big.Float).SetInt(v.bigint())
}

// Float64 returns the float64 nearest to v and the accuracy of the conversion.
func (v Value) Float64() (float64, big.Accuracy) {
	if v.f != nil {
		return v.f.Float64()
	}
	return new(big.Float).SetInt(v.bigint()).Float64()
}

// Sign returns -1, 0, or +1 according to the sign of v.
func (v Value) Sign() int {
	if v.f != nil {
		return v.f.Sign()
	}
	return v.bigint().Sign()
}

// Neg returns -v with the same kind.
func (v Value) Neg() Value {
	if v.f != nil {
		return Value{f: new(big.Float).Neg(v.f)}
	}
	return Value{i: new(big.Int).Neg(v.bigint())}
}

// Equal reports whether v and w have the same kind and the same value. Float
// zeros of different signs are equal.
func (v Value) Equal(w Value) bool {
	if v.Kind() != w.Kind() {
		return false
	}
	if v.f != nil {
		return v.f.Cmp(w.f) == 0
	}
	return v.bigint().Cmp(w.bigint()) == 0
}

// String formats v. Integers are formatted in decimal. Floats use the shortest
// decimal representation that reads back to the same value, with ".0" added to
// integral values so the kind stays visible.
func (v Value) String() string {
	if v.f == nil {
		return v.bigint().String()
	}
	s := v.f.Text('g', -1)
	if !strings.ContainsAny(s, ".eInf") {
		s += ".0"
	}
	return s
}
