//go:build go1.18
// +build go1.18

package arith_test

import (
	"errors"
	"testing"

	"github.com/zephyrtronium/arith"
)

func FuzzEval(f *testing.F) {
	f.Add("2 + 3 * 4")
	f.Add("2 ** 3 ** 2")
	f.Add("(-8) ** (1/3)")
	f.Add("10 ** 10 ** 10")
	f.Add("1.5 % -0.0")
	f.Add("__import__('os')")
	f.Fuzz(func(t *testing.T, s string) {
		r, err := arith.Evaluate(s)
		if err == nil {
			if s := r.String(); s == "" {
				t.Errorf("empty result string")
			}
			return
		}
		var ie arith.InputError
		if !errors.As(err, &ie) {
			t.Errorf("%q gave %#v, which is not an InputError", s, err)
		}
		kinds := []error{
			arith.ErrEmpty,
			arith.ErrSyntax,
			arith.ErrUnsupportedConstruct,
			arith.ErrUnsupportedOperator,
			arith.ErrDivisionByZero,
			arith.ErrArithmetic,
			arith.ErrTooDeep,
		}
		for _, k := range kinds {
			if errors.Is(err, k) {
				return
			}
		}
		t.Errorf("%q gave %v, which has no error kind", s, err)
	})
}
